package handler

import (
	"net/http"
	"strconv"

	"plateau-gateway/internal/meshcode"
	"plateau-gateway/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// MeshCodeService is the mesh code encoder used by the handler
type MeshCodeService interface {
	Encode(lat, lon float64, level int) (*models.MeshCode, error)
	Decode(code string) (*meshcode.Cell, error)
}

// MeshCodeHandler handles mesh code requests
type MeshCodeHandler struct {
	service MeshCodeService
}

// NewMeshCodeHandler creates a new mesh code handler
func NewMeshCodeHandler(svc MeshCodeService) *MeshCodeHandler {
	return &MeshCodeHandler{service: svc}
}

// MeshCode handles GET /meshcode requests
//
//	@Summary	Mesh code of a point
//	@Tags		meshcode
//	@Produce	json
//	@Param		lat		query		number	true	"Latitude in degrees"
//	@Param		lon		query		number	true	"Longitude in degrees"
//	@Param		level	query		int		false	"Mesh level 1-5"	default(2)
//	@Success	200		{object}	models.MeshCode
//	@Failure	400		{object}	ErrorResponse
//	@Router		/meshcode [get]
func (h *MeshCodeHandler) MeshCode(c *gin.Context) {
	lat, lon, ok := pointQuery(c)
	if !ok {
		return
	}

	level := meshcode.DefaultLevel
	if s := c.Query("level"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level format"})
			return
		}
		level = v
	}

	result, err := h.service.Encode(lat, lon, level)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Cell handles GET /meshcode/:code requests. The cell is returned as a
// GeoJSON feature in JGD2011 longitude/latitude order.
//
//	@Summary	Cell addressed by a mesh code
//	@Tags		meshcode
//	@Produce	json
//	@Param		code	path		string	true	"Mesh code of 4, 6, 8, 9 or 10 digits"
//	@Success	200		{object}	object
//	@Failure	400		{object}	ErrorResponse
//	@Router		/meshcode/{code} [get]
func (h *MeshCodeHandler) Cell(c *gin.Context) {
	cell, err := h.service.Decode(c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}

	center := cell.Center()
	c.JSON(http.StatusOK, &geojson.Feature{
		ID:       cell.Code,
		Geometry: cell.Polygon(),
		Properties: map[string]interface{}{
			"code":   cell.Code,
			"level":  cell.Level,
			"south":  cell.South,
			"west":   cell.West,
			"north":  cell.North,
			"east":   cell.East,
			"center": center,
			"srid":   meshcode.SRID,
		},
	})
}

// pointQuery reads the lat and lon query parameters, writing a 400 response
// when either is missing or malformed.
func pointQuery(c *gin.Context) (float64, float64, bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return 0, 0, false
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return 0, 0, false
	}

	return lat, lon, true
}
