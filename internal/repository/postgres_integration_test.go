//go:build integration

package repository

import (
	"context"
	"testing"

	"plateau-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func TestPostgresRepository_PackJobLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx))

	urls := []string{
		"https://assets.cms.plateau.reearth.io/assets/13101_bldg.gml",
		"https://assets.cms.plateau.reearth.io/assets/13101_brid.gml",
	}
	require.NoError(t, repo.CreatePackJob(ctx, &models.PackJob{ID: "job-1", URLs: urls, Status: models.PackAccepted}))
	assert.Error(t, repo.CreatePackJob(ctx, &models.PackJob{ID: "job-1", URLs: urls, Status: models.PackAccepted}))

	require.NoError(t, repo.UpdatePackJobStatus(ctx, "job-1", models.PackProcessing))
	require.NoError(t, repo.UpdatePackJobStatus(ctx, "job-1", models.PackSucceeded))
	require.NoError(t, repo.SetPackJobDownloadURL(ctx, "job-1", "https://example.com/job-1.zip"))

	job, err := repo.GetPackJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, urls, job.URLs)
	assert.Equal(t, models.PackSucceeded, job.Status)
	assert.Equal(t, "https://example.com/job-1.zip", job.DownloadURL)

	_, err = repo.GetPackJob(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	jobs, err := repo.ListPackJobs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
