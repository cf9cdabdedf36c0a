// Package archive downloads packed CityGML archives and unpacks their GML files.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"plateau-gateway/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultFileName is used when no better name can be derived.
const DefaultFileName = "plateau_data.zip"

// ErrUpstream is returned when the archive host fails or answers with a
// status other than 200.
var ErrUpstream = errors.New("archive: upstream download failed")

// Downloader fetches archives to the local filesystem.
type Downloader struct {
	client *http.Client
	now    func() time.Time
}

// NewDownloader creates a downloader using client, or http.DefaultClient when nil.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, now: time.Now}
}

// FileName derives the archive name: "{mesh}_{types}_{yyyymmdd}.zip" when
// both a mesh code and feature types are known, otherwise the last path
// element of the URL.
func FileName(downloadURL, meshCode string, featureTypes []string, date time.Time) string {
	if meshCode != "" && len(featureTypes) > 0 {
		types := append([]string(nil), featureTypes...)
		sort.Strings(types)
		return fmt.Sprintf("%s_%s_%s.zip", meshCode, strings.Join(types, "-"), date.Format("20060102"))
	}

	u, err := url.Parse(downloadURL)
	if err != nil {
		return DefaultFileName
	}
	name := path.Base(u.Path)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "" || name == "." || name == "/" || !strings.HasSuffix(name, ".zip") {
		return DefaultFileName
	}
	// An escaped separator must not move the file out of the save directory.
	return filepath.Base(name)
}

// Download writes the archive at req.DownloadURL into req.SaveDir and, when
// requested, extracts its GML files next to it.
func (d *Downloader) Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error) {
	if req.DownloadURL == "" {
		return nil, fmt.Errorf("archive: download url cannot be empty")
	}
	if err := os.MkdirAll(req.SaveDir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: failed to create save directory: %w", err)
	}

	savePath := filepath.Join(req.SaveDir, FileName(req.DownloadURL, req.MeshCode, req.FeatureTypes, d.now()))
	log.Info().Str("url", req.DownloadURL).Str("path", savePath).Msg("downloading archive")

	n, err := d.fetch(ctx, req.DownloadURL, savePath)
	if err != nil {
		log.Error().Err(err).Str("url", req.DownloadURL).Msg("download failed")
		return nil, fmt.Errorf("archive: download %s failed: %w", req.DownloadURL, err)
	}
	log.Info().Str("path", savePath).Int64("bytes", n).Msg("download finished")

	result := &models.DownloadResult{ZipPath: savePath, Bytes: n, Success: true}
	if req.Extract() {
		extracted, err := ExtractGMLFlat(savePath)
		if err != nil {
			return nil, err
		}
		result.ExtractResult = extracted
	}
	return result, nil
}

func (d *Downloader) fetch(ctx context.Context, rawURL, dest string) (int64, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := d.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		return n, err
	}
	return n, nil
}
