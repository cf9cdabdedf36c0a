package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"plateau-gateway/internal/models"

	"github.com/rs/zerolog/log"
)

// ErrArchiveNotFound is returned when the archive to extract does not exist.
var ErrArchiveNotFound = errors.New("archive: zip file not found")

// ExtractDir returns the directory ExtractGMLFlat unpacks zipPath into.
func ExtractDir(zipPath string) string {
	base := filepath.Base(zipPath)
	return filepath.Join(filepath.Dir(zipPath), "extract_"+strings.TrimSuffix(base, filepath.Ext(base)))
}

// ExtractGMLFlat copies every .gml entry of the archive into a single
// directory, dropping the archive's folder structure. Clashing names get a
// numeric suffix. A previous extraction is replaced; on failure the
// directory is removed.
func ExtractGMLFlat(zipPath string) (*models.ExtractResult, error) {
	if _, err := os.Stat(zipPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, zipPath)
		}
		return nil, fmt.Errorf("archive: stat %s: %w", zipPath, err)
	}

	extractDir := ExtractDir(zipPath)
	log.Info().Str("zip", zipPath).Str("dir", extractDir).Msg("extracting GML files")

	if err := os.RemoveAll(extractDir); err != nil {
		return nil, fmt.Errorf("archive: failed to clear %s: %w", extractDir, err)
	}
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: failed to create %s: %w", extractDir, err)
	}

	files, err := extractFlat(zipPath, extractDir)
	if err != nil {
		_ = os.RemoveAll(extractDir)
		log.Error().Err(err).Str("zip", zipPath).Msg("extraction failed")
		return nil, fmt.Errorf("archive: extract %s: %w", zipPath, err)
	}
	log.Info().Int("files", len(files)).Str("dir", extractDir).Msg("extraction finished")

	return &models.ExtractResult{
		ExtractDir:  extractDir,
		GMLFiles:    files,
		TotalFiles:  len(files),
		ZipFilename: filepath.Base(zipPath),
		Success:     true,
	}, nil
}

func extractFlat(zipPath, extractDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	files := []string{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		// Entries use forward slashes; some archivers write backslashes.
		name := path.Base(strings.ReplaceAll(f.Name, "\\", "/"))
		if !strings.HasSuffix(strings.ToLower(name), ".gml") {
			continue
		}

		target := uniquePath(filepath.Join(extractDir, name))
		if err := copyEntry(f, target); err != nil {
			return nil, err
		}
		files = append(files, target)
		log.Debug().Str("entry", f.Name).Str("file", target).Msg("extracted")
	}
	return files, nil
}

// uniquePath returns p, or p with "_1", "_2", ... inserted before the
// extension when p already exists.
func uniquePath(p string) string {
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return p
	}
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func copyEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
