package service

import (
	"context"
	"testing"

	"plateau-gateway/internal/meshcode"
	"plateau-gateway/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockArchiveFetcher is a mock implementation of the ArchiveFetcher interface
type MockArchiveFetcher struct {
	mock.Mock
}

func (m *MockArchiveFetcher) Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.DownloadResult)
	return result, args.Error(1)
}

// MockDownloadMetrics is a mock implementation of the DownloadMetrics interface
type MockDownloadMetrics struct {
	mock.Mock
}

func (m *MockDownloadMetrics) ObserveDownload(bytes int64, extracted int) {
	m.Called(bytes, extracted)
}

func TestDownloadService_Download(t *testing.T) {
	ctx := context.Background()
	const zipURL = "https://storage.example.com/job-1.zip"

	tests := []struct {
		name          string
		req           models.DownloadRequest
		forwarded     models.DownloadRequest
		result        *models.DownloadResult
		mockError     error
		expectError   error
		expectedFiles int
	}{
		{
			name:      "uses default directory",
			req:       models.DownloadRequest{DownloadURL: zipURL, MeshCode: "53394611", FeatureTypes: []string{"bldg"}},
			forwarded: models.DownloadRequest{DownloadURL: zipURL, SaveDir: "/data", MeshCode: "53394611", FeatureTypes: []string{"bldg"}},
			result: &models.DownloadResult{
				ZipPath: "/data/53394611_bldg_20251014.zip",
				Bytes:   1024,
				Success: true,
				ExtractResult: &models.ExtractResult{
					GMLFiles:   []string{"a.gml", "b.gml"},
					TotalFiles: 2,
					Success:    true,
				},
			},
			expectedFiles: 2,
		},
		{
			name:      "requested directory below default",
			req:       models.DownloadRequest{DownloadURL: zipURL, SaveDir: "tokyo/bldg"},
			forwarded: models.DownloadRequest{DownloadURL: zipURL, SaveDir: "/data/tokyo/bldg"},
			result:    &models.DownloadResult{ZipPath: "/data/tokyo/bldg/job-1.zip", Bytes: 10, Success: true},
		},
		{
			name:        "absolute directory",
			req:         models.DownloadRequest{DownloadURL: zipURL, SaveDir: "/tmp/out"},
			expectError: ErrInvalidInput,
		},
		{
			name:        "directory escaping default",
			req:         models.DownloadRequest{DownloadURL: zipURL, SaveDir: "../etc"},
			expectError: ErrInvalidInput,
		},
		{
			name:        "directory escaping after clean",
			req:         models.DownloadRequest{DownloadURL: zipURL, SaveDir: "tokyo/../../etc"},
			expectError: ErrInvalidInput,
		},
		{
			name:        "missing url",
			req:         models.DownloadRequest{},
			expectError: ErrInvalidInput,
		},
		{
			name:        "invalid mesh code",
			req:         models.DownloadRequest{DownloadURL: zipURL, MeshCode: "53x"},
			expectError: meshcode.ErrInvalidCode,
		},
		{
			name:        "unknown feature type",
			req:         models.DownloadRequest{DownloadURL: zipURL, FeatureTypes: []string{"bldg", "road"}},
			expectError: ErrInvalidInput,
		},
		{
			name:        "fetch error",
			req:         models.DownloadRequest{DownloadURL: zipURL},
			forwarded:   models.DownloadRequest{DownloadURL: zipURL, SaveDir: "/data"},
			mockError:   assert.AnError,
			expectError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockArchiveFetcher)
			metrics := new(MockDownloadMetrics)
			svc := NewDownloadService(fetcher, "/data", metrics)

			if tt.result != nil || tt.mockError != nil {
				fetcher.On("Download", ctx, tt.forwarded).Return(tt.result, tt.mockError)
			}
			if tt.result != nil {
				metrics.On("ObserveDownload", tt.result.Bytes, tt.expectedFiles).Return()
			}

			result, err := svc.Download(ctx, tt.req)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			fetcher.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}
