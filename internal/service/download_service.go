package service

import (
	"context"
	"fmt"
	"path/filepath"

	"plateau-gateway/internal/meshcode"
	"plateau-gateway/internal/models"
)

// ArchiveFetcher downloads and unpacks archives
type ArchiveFetcher interface {
	Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error)
}

// DownloadMetrics records finished downloads
type DownloadMetrics interface {
	ObserveDownload(bytes int64, extracted int)
}

// DownloadService saves packed archives below a configured directory
type DownloadService struct {
	fetcher    ArchiveFetcher
	defaultDir string
	metrics    DownloadMetrics
}

// NewDownloadService creates a new download service. Archives are saved
// below defaultDir; a requested save directory is taken relative to it.
func NewDownloadService(fetcher ArchiveFetcher, defaultDir string, metrics DownloadMetrics) *DownloadService {
	return &DownloadService{fetcher: fetcher, defaultDir: defaultDir, metrics: metrics}
}

// Download fetches the archive and optionally extracts its GML files
func (s *DownloadService) Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error) {
	if req.DownloadURL == "" {
		return nil, fmt.Errorf("%w: download_url is required", ErrInvalidInput)
	}
	saveDir, err := s.resolveSaveDir(req.SaveDir)
	if err != nil {
		return nil, err
	}
	req.SaveDir = saveDir
	// The mesh code becomes part of the file name.
	if req.MeshCode != "" {
		if _, err := meshcode.Decode(req.MeshCode); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	for _, ft := range req.FeatureTypes {
		if !models.IsFeatureType(ft) {
			return nil, fmt.Errorf("%w: unknown feature type %q", ErrInvalidInput, ft)
		}
	}

	result, err := s.fetcher.Download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service: failed to download files: %w", err)
	}

	if s.metrics != nil {
		extracted := 0
		if result.ExtractResult != nil {
			extracted = result.ExtractResult.TotalFiles
		}
		s.metrics.ObserveDownload(result.Bytes, extracted)
	}
	return result, nil
}

// resolveSaveDir places dir below the default directory. Absolute paths and
// paths climbing out of it are rejected.
func (s *DownloadService) resolveSaveDir(dir string) (string, error) {
	if dir == "" {
		return s.defaultDir, nil
	}
	if !filepath.IsLocal(dir) {
		return "", fmt.Errorf("%w: save_dir %q must be a relative path inside the download directory", ErrInvalidInput, dir)
	}
	return filepath.Join(s.defaultDir, dir), nil
}
