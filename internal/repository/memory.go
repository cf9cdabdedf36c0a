package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"plateau-gateway/internal/models"
)

// MemoryRepository keeps pack jobs in process memory. It backs the gateway
// when no database is configured.
type MemoryRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.PackJob
	now  func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{jobs: make(map[string]models.PackJob), now: time.Now}
}

func (m *MemoryRepository) CreatePackJob(_ context.Context, job *models.PackJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[job.ID]; ok {
		return fmt.Errorf("repository: pack job %q already exists", job.ID)
	}
	now := m.now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	if job.UpdatedAt.IsZero() {
		job.UpdatedAt = job.CreatedAt
	}
	stored := *job
	stored.URLs = append([]string(nil), job.URLs...)
	m.jobs[job.ID] = stored
	return nil
}

func (m *MemoryRepository) UpdatePackJobStatus(_ context.Context, id string, status models.PackState) error {
	return m.update(id, func(job *models.PackJob) { job.Status = status })
}

func (m *MemoryRepository) SetPackJobDownloadURL(_ context.Context, id, downloadURL string) error {
	return m.update(id, func(job *models.PackJob) { job.DownloadURL = downloadURL })
}

func (m *MemoryRepository) update(id string, fn func(*models.PackJob)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	fn(&job)
	job.UpdatedAt = m.now().UTC()
	m.jobs[id] = job
	return nil
}

func (m *MemoryRepository) GetPackJob(_ context.Context, id string) (*models.PackJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	job.URLs = append([]string(nil), job.URLs...)
	return &job, nil
}

func (m *MemoryRepository) ListPackJobs(_ context.Context, limit int) ([]models.PackJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]models.PackJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		job.URLs = append([]string(nil), job.URLs...)
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID > jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}
