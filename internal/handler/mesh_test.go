package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"plateau-gateway/internal/meshcode"
	"plateau-gateway/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMeshCodeService is a mock implementation of the MeshCodeService interface
type MockMeshCodeService struct {
	mock.Mock
}

func (m *MockMeshCodeService) Encode(lat, lon float64, level int) (*models.MeshCode, error) {
	args := m.Called(lat, lon, level)
	result, _ := args.Get(0).(*models.MeshCode)
	return result, args.Error(1)
}

func (m *MockMeshCodeService) Decode(code string) (*meshcode.Cell, error) {
	args := m.Called(code)
	result, _ := args.Get(0).(*meshcode.Cell)
	return result, args.Error(1)
}

func TestMeshCodeHandler_MeshCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	_, rangeErr := meshcode.Encode(35.681236, 139.767125, 6)

	tests := []struct {
		name           string
		query          string
		mockLevel      int
		mockResult     *models.MeshCode
		mockError      error
		expectedStatus int
		expectedBody   interface{}
	}{
		{
			name:           "missing query parameters",
			query:          "lat=35.681236",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing required query parameters 'lat' and 'lon'"},
		},
		{
			name:           "invalid latitude",
			query:          "lat=north&lon=139.767125",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid latitude format"},
		},
		{
			name:           "invalid longitude",
			query:          "lat=35.681236&lon=east",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid longitude format"},
		},
		{
			name:           "invalid level",
			query:          "lat=35.681236&lon=139.767125&level=two",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "invalid level format"},
		},
		{
			name:           "default level",
			query:          "lat=35.681236&lon=139.767125",
			mockLevel:      2,
			mockResult:     &models.MeshCode{Latitude: 35.681236, Longitude: 139.767125, Level: 2, Code: "533946"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"latitude": 35.681236, "longitude": 139.767125, "level": float64(2), "code": "533946",
			},
		},
		{
			name:           "explicit level",
			query:          "lat=35.681236&lon=139.767125&level=5",
			mockLevel:      5,
			mockResult:     &models.MeshCode{Latitude: 35.681236, Longitude: 139.767125, Level: 5, Code: "5339461132"},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"latitude": 35.681236, "longitude": 139.767125, "level": float64(5), "code": "5339461132",
			},
		},
		{
			name:           "level out of range",
			query:          "lat=35.681236&lon=139.767125&level=6",
			mockLevel:      6,
			mockError:      rangeErr,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "meshcode: level 6 out of range [1, 5]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockMeshCodeService)
			handler := NewMeshCodeHandler(mockSvc)

			called := tt.mockResult != nil || tt.mockError != nil
			if called {
				mockSvc.On("Encode", 35.681236, 139.767125, tt.mockLevel).Return(tt.mockResult, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/meshcode?"+tt.query, nil)
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.MeshCode(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody interface{}
			err := json.Unmarshal(w.Body.Bytes(), &actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			if called {
				mockSvc.AssertExpectations(t)
			} else {
				mockSvc.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestMeshCodeHandler_Cell(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cell, err := meshcode.Decode("5339")
	require.NoError(t, err)

	mockSvc := new(MockMeshCodeService)
	mockSvc.On("Decode", "5339").Return(&cell, nil)
	_, decodeErr := meshcode.Decode("53x9")
	mockSvc.On("Decode", "53x9").Return(nil, decodeErr)
	handler := NewMeshCodeHandler(mockSvc)

	t.Run("geojson feature", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/meshcode/5339", nil)
		c.Params = gin.Params{{Key: "code", Value: "5339"}}

		handler.Cell(c)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Type     string `json:"type"`
			ID       string `json:"id"`
			Geometry struct {
				Type        string        `json:"type"`
				Coordinates [][][]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Feature", body.Type)
		assert.Equal(t, "5339", body.ID)
		assert.Equal(t, "Polygon", body.Geometry.Type)
		require.Len(t, body.Geometry.Coordinates, 1)
		ring := body.Geometry.Coordinates[0]
		require.Len(t, ring, 5)
		assert.Equal(t, ring[0], ring[4])
		assert.InDelta(t, 139.0, ring[0][0], 1e-9)
		assert.InDelta(t, 35.0+20.0/60, ring[0][1], 1e-9)
		assert.Equal(t, float64(1), body.Properties["level"])
		assert.Equal(t, float64(meshcode.SRID), body.Properties["srid"])
	})

	t.Run("invalid code", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/meshcode/53x9", nil)
		c.Params = gin.Params{{Key: "code", Value: "53x9"}}

		handler.Cell(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid mesh code")
	})

	mockSvc.AssertExpectations(t)
}
