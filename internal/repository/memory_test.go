package repository

import (
	"context"
	"testing"
	"time"

	"plateau-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	clock := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	urls := []string{"https://example.com/a.gml"}
	require.NoError(t, repo.CreatePackJob(ctx, &models.PackJob{ID: "job-1", URLs: urls, Status: models.PackAccepted}))
	require.NoError(t, repo.CreatePackJob(ctx, &models.PackJob{ID: "job-2", URLs: urls, Status: models.PackAccepted}))
	assert.Error(t, repo.CreatePackJob(ctx, &models.PackJob{ID: "job-1"}))

	urls[0] = "mutated"
	require.NoError(t, repo.UpdatePackJobStatus(ctx, "job-1", models.PackSucceeded))
	require.NoError(t, repo.SetPackJobDownloadURL(ctx, "job-1", "https://example.com/job-1.zip"))

	job, err := repo.GetPackJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, models.PackSucceeded, job.Status)
	assert.Equal(t, "https://example.com/job-1.zip", job.DownloadURL)
	assert.Equal(t, []string{"https://example.com/a.gml"}, job.URLs)
	assert.True(t, job.UpdatedAt.After(job.CreatedAt))

	jobs, err := repo.ListPackJobs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-2", jobs[0].ID)

	jobs, err = repo.ListPackJobs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	_, err = repo.GetPackJob(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePackJobStatus(ctx, "missing", models.PackFailed), ErrNotFound)
}
