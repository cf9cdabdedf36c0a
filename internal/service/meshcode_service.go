package service

import (
	"fmt"

	"plateau-gateway/internal/meshcode"
	"plateau-gateway/internal/models"
)

// MeshMetrics records encoder usage
type MeshMetrics interface {
	ObserveEncode(level int, err error)
}

// MeshCodeService exposes the mesh code encoder
type MeshCodeService struct {
	metrics MeshMetrics
}

// NewMeshCodeService creates a new mesh code service
func NewMeshCodeService(metrics MeshMetrics) *MeshCodeService {
	return &MeshCodeService{metrics: metrics}
}

// Encode returns the mesh code of the given level containing the point.
// Out of range input is returned as *meshcode.OutOfRangeError.
func (s *MeshCodeService) Encode(lat, lon float64, level int) (*models.MeshCode, error) {
	code, err := meshcode.Encode(lat, lon, level)
	if s.metrics != nil {
		s.metrics.ObserveEncode(level, err)
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to encode mesh code: %w", err)
	}
	return &models.MeshCode{Latitude: lat, Longitude: lon, Level: level, Code: code}, nil
}

// Decode returns the cell addressed by code
func (s *MeshCodeService) Decode(code string) (*meshcode.Cell, error) {
	cell, err := meshcode.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("service: failed to decode mesh code: %w", err)
	}
	return &cell, nil
}
