package service

import (
	"fmt"
	"strings"

	"plateau-gateway/internal/models"
)

const (
	qgisReadyMessage   = "QGIS command generated. Make sure QGIS is running before executing it."
	qgisPendingMessage = "QGIS command generated, but no QGIS connection is configured. Start QGIS and enable the PLATEAU QGIS Plugin."
)

// QGISService builds commands for the QGIS Python console that load CityGML
// through the PLATEAU QGIS Plugin.
type QGISService struct {
	available bool
}

// NewQGISService creates a new QGIS service
func NewQGISService(available bool) *QGISService {
	return &QGISService{available: available}
}

// Command returns a one-line command that loads the file as vector layers.
// LOD preference is 0 (simplest), 1 (most detailed) or 2 (all).
func (s *QGISService) Command(req models.QGISCommandRequest) (*models.QGISCommand, error) {
	if req.CityGMLPath == "" {
		return nil, fmt.Errorf("%w: citygml_path is required", ErrInvalidInput)
	}
	if req.LODPreference < 0 || req.LODPreference > 2 {
		return nil, fmt.Errorf("%w: lod_preference must be 0, 1 or 2, got %d", ErrInvalidInput, req.LODPreference)
	}

	cmd := fmt.Sprintf(
		`processing.runAndLoadResults("plateau_plugin:load_as_vector", {'INPUT': '%s', 'LOD_PREFERENCE': %d, 'SEMANTIC_PARTS': %s, 'FORCE_2D': False, 'APPEND_MODE': True, 'CRS': QgsCoordinateReferenceSystem('EPSG:6668')})`,
		pyQuote(req.CityGMLPath), req.LODPreference, pyBool(req.SemanticParts),
	)

	message := qgisReadyMessage
	if !s.available {
		message = qgisPendingMessage
	}
	return &models.QGISCommand{Command: &cmd, Status: "ready", Message: message}, nil
}

// pyQuote escapes s for use inside a single-quoted Python literal.
func pyQuote(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s)
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
