package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plateau-gateway/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no pack job has the requested id.
var ErrNotFound = errors.New("repository: pack job not found")

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository records pack jobs in PostgreSQL
type Repository struct {
	db DB
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS pack_jobs (
		id TEXT PRIMARY KEY,
		urls TEXT[] NOT NULL,
		status TEXT NOT NULL,
		download_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS pack_jobs_created_at_idx ON pack_jobs (created_at DESC);
`

// EnsureSchema creates the pack_jobs table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// CreatePackJob inserts a newly accepted pack job. Timestamps are filled in
// when zero.
func (r *Repository) CreatePackJob(ctx context.Context, job *models.PackJob) error {
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = job.CreatedAt
	}

	sql := `
		INSERT INTO pack_jobs (id, urls, status, download_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, sql, job.ID, job.URLs, string(job.Status), job.DownloadURL, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to insert pack job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repository: pack job %q already exists", job.ID)
	}
	return nil
}

// UpdatePackJobStatus stores the latest status reported for a job
func (r *Repository) UpdatePackJobStatus(ctx context.Context, id string, status models.PackState) error {
	sql := `UPDATE pack_jobs SET status = $2, updated_at = now() WHERE id = $1`
	return r.update(ctx, sql, id, string(status))
}

// SetPackJobDownloadURL stores the archive location of a succeeded job
func (r *Repository) SetPackJobDownloadURL(ctx context.Context, id, downloadURL string) error {
	sql := `UPDATE pack_jobs SET download_url = $2, updated_at = now() WHERE id = $1`
	return r.update(ctx, sql, id, downloadURL)
}

func (r *Repository) update(ctx context.Context, sql, id, value string) error {
	tag, err := r.db.Exec(ctx, sql, id, value)
	if err != nil {
		return fmt.Errorf("repository: failed to update pack job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

const selectJob = `
	SELECT
		id,
		urls,
		status,
		download_url,
		created_at,
		updated_at
	FROM pack_jobs
`

// GetPackJob returns a single job
func (r *Repository) GetPackJob(ctx context.Context, id string) (*models.PackJob, error) {
	job, err := scanJob(r.db.QueryRow(ctx, selectJob+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("repository: failed to get pack job: %w", err)
	}
	return job, nil
}

// ListPackJobs returns the most recent jobs first
func (r *Repository) ListPackJobs(ctx context.Context, limit int) ([]models.PackJob, error) {
	rows, err := r.db.Query(ctx, selectJob+" ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	jobs := []models.PackJob{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan pack job: %w", err)
		}
		jobs = append(jobs, *job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return jobs, nil
}

func scanJob(row pgx.Row) (*models.PackJob, error) {
	var job models.PackJob
	var status string
	err := row.Scan(
		&job.ID,
		&job.URLs,
		&status,
		&job.DownloadURL,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Status = models.PackState(status)
	return &job, nil
}
