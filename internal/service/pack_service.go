package service

import (
	"context"
	"errors"
	"fmt"

	"plateau-gateway/internal/models"
	"plateau-gateway/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	defaultJobLimit = 20
	maxJobLimit     = 100
)

// PackAPI is the part of the PLATEAU client the pack service uses
type PackAPI interface {
	Pack(ctx context.Context, urls []string) (*models.PackResponse, error)
	PackStatus(ctx context.Context, id string) (*models.PackStatus, error)
	PackedDownloadURL(ctx context.Context, id string) (*models.PackedDownload, error)
}

// PackJobRepository records pack jobs requested through the gateway
type PackJobRepository interface {
	CreatePackJob(ctx context.Context, job *models.PackJob) error
	UpdatePackJobStatus(ctx context.Context, id string, status models.PackState) error
	SetPackJobDownloadURL(ctx context.Context, id, downloadURL string) error
	GetPackJob(ctx context.Context, id string) (*models.PackJob, error)
	ListPackJobs(ctx context.Context, limit int) ([]models.PackJob, error)
}

// PackService requests ZIP archives of CityGML files and tracks their jobs.
// Ledger failures are logged and never fail a request the API accepted.
type PackService struct {
	api  PackAPI
	repo PackJobRepository
}

// NewPackService creates a new pack service
func NewPackService(api PackAPI, repo PackJobRepository) *PackService {
	return &PackService{api: api, repo: repo}
}

// Pack submits the URLs for packing and records the accepted job
func (s *PackService) Pack(ctx context.Context, urls []string) (*models.PackResponse, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: at least one url is required", ErrInvalidInput)
	}
	for _, u := range urls {
		if u == "" {
			return nil, fmt.Errorf("%w: urls cannot be empty", ErrInvalidInput)
		}
	}

	resp, err := s.api.Pack(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("service: failed to pack citygml: %w", err)
	}

	job := &models.PackJob{ID: resp.ID, URLs: urls, Status: models.PackAccepted}
	if err := s.repo.CreatePackJob(ctx, job); err != nil {
		log.Error().Err(err).Str("job", resp.ID).Msg("failed to record pack job")
	} else {
		log.Info().Str("job", resp.ID).Int("urls", len(urls)).Msg("pack job accepted")
	}

	return resp, nil
}

// Status fetches the remote status of a job and records valid transitions
func (s *PackService) Status(ctx context.Context, id string) (*models.PackStatus, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	status, err := s.api.PackStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get pack status: %w", err)
	}

	s.recordStatus(ctx, id, status.Status)
	return status, nil
}

func (s *PackService) recordStatus(ctx context.Context, id string, next models.PackState) {
	logger := log.With().Str("job", id).Str("status", string(next)).Logger()

	if !next.Valid() {
		logger.Warn().Msg("unknown pack status reported")
		return
	}

	job, err := s.repo.GetPackJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Debug().Msg("pack job was not requested through this gateway")
			return
		}
		logger.Error().Err(err).Msg("failed to load pack job")
		return
	}

	if job.Status == next {
		return
	}
	if !job.Status.CanTransition(next) {
		logger.Warn().Str("recorded", string(job.Status)).Msg("ignoring invalid pack status transition")
		return
	}
	if err := s.repo.UpdatePackJobStatus(ctx, id, next); err != nil {
		logger.Error().Err(err).Msg("failed to record pack status")
	}
}

// DownloadURL resolves the archive location of a succeeded job
func (s *PackService) DownloadURL(ctx context.Context, id string) (*models.PackedDownload, error) {
	status, err := s.Status(ctx, id)
	if err != nil {
		return nil, err
	}
	if status.Status != models.PackSucceeded {
		return nil, fmt.Errorf("%w: job %s is %s", ErrPackNotReady, id, status.Status)
	}

	dl, err := s.api.PackedDownloadURL(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get packed download url: %w", err)
	}

	if err := s.repo.SetPackJobDownloadURL(ctx, id, dl.DownloadURL); err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Error().Err(err).Str("job", id).Msg("failed to record download url")
	}
	return dl, nil
}

// Jobs lists recorded jobs, most recent first
func (s *PackService) Jobs(ctx context.Context, limit int) ([]models.PackJob, error) {
	if limit <= 0 {
		limit = defaultJobLimit
	}
	limit = min(limit, maxJobLimit)

	jobs, err := s.repo.ListPackJobs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list pack jobs: %w", err)
	}
	return jobs, nil
}

// Job returns one recorded job
func (s *PackService) Job(ctx context.Context, id string) (*models.PackJob, error) {
	job, err := s.repo.GetPackJob(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get pack job: %w", err)
	}
	return job, nil
}
