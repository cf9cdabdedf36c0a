package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"plateau-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// CatalogService looks up CityGML files and their contents
type CatalogService interface {
	ConditionForPoint(lat, lon float64) (string, error)
	ListCityGML(ctx context.Context, conditions, featureTypes []string) (*models.CatalogURLs, error)
	Attributes(ctx context.Context, fileURL, id string, skipCodeListFetch bool) (json.RawMessage, error)
	Features(ctx context.Context, fileURL, sid string) (json.RawMessage, error)
	SpatialIDAttributes(ctx context.Context, sid, featureType string, skipCodeListFetch bool) (json.RawMessage, error)
}

// CityGMLHandler handles catalog and feature lookups
type CityGMLHandler struct {
	service CatalogService
}

// NewCityGMLHandler creates a new CityGML handler
func NewCityGMLHandler(svc CatalogService) *CityGMLHandler {
	return &CityGMLHandler{service: svc}
}

// List handles GET /citygml requests. Conditions and feature types may
// repeat; a lat/lon pair is turned into the third-level mesh condition
// containing it.
//
//	@Summary	List CityGML file URLs
//	@Tags		citygml
//	@Produce	json
//	@Param		conditions		query		[]string	false	"Mesh condition (m:53394611) or municipality code"	collectionFormat(multi)
//	@Param		lat				query		number		false	"Latitude used when conditions is empty"
//	@Param		lon				query		number		false	"Longitude used when conditions is empty"
//	@Param		feature_type	query		[]string	true	"Feature type such as bldg"	collectionFormat(multi)
//	@Success	200				{object}	models.CatalogURLs
//	@Failure	400				{object}	ErrorResponse
//	@Failure	502				{object}	ErrorResponse
//	@Router		/citygml [get]
func (h *CityGMLHandler) List(c *gin.Context) {
	featureTypes := c.QueryArray("feature_type")
	if len(featureTypes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'feature_type'"})
		return
	}

	conditions := c.QueryArray("conditions")
	if len(conditions) == 0 {
		if c.Query("lat") == "" && c.Query("lon") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'conditions' or 'lat' and 'lon'"})
			return
		}
		lat, lon, ok := pointQuery(c)
		if !ok {
			return
		}
		cond, err := h.service.ConditionForPoint(lat, lon)
		if err != nil {
			writeError(c, err)
			return
		}
		conditions = []string{cond}
	}

	result, err := h.service.ListCityGML(c.Request.Context(), conditions, featureTypes)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Attributes handles GET /citygml/attributes requests
//
//	@Summary	Attributes of a feature
//	@Tags		citygml
//	@Produce	json
//	@Param		url						query		string	true	"CityGML file URL"
//	@Param		id						query		string	true	"Feature ID"
//	@Param		skip_code_list_fetch	query		bool	false	"Skip resolving code lists"
//	@Success	200						{object}	object
//	@Failure	400						{object}	ErrorResponse
//	@Failure	502						{object}	ErrorResponse
//	@Router		/citygml/attributes [get]
func (h *CityGMLHandler) Attributes(c *gin.Context) {
	skip, ok := boolQuery(c, "skip_code_list_fetch")
	if !ok {
		return
	}

	out, err := h.service.Attributes(c.Request.Context(), c.Query("url"), c.Query("id"), skip)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

// Features handles GET /citygml/features requests
//
//	@Summary	Feature IDs inside a spatial ID
//	@Tags		citygml
//	@Produce	json
//	@Param		url	query		string	true	"CityGML file URL"
//	@Param		sid	query		string	true	"Spatial ID"
//	@Success	200	{object}	object
//	@Failure	400	{object}	ErrorResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/citygml/features [get]
func (h *CityGMLHandler) Features(c *gin.Context) {
	out, err := h.service.Features(c.Request.Context(), c.Query("url"), c.Query("sid"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

// SpatialIDAttributes handles GET /citygml/spatialid-attributes requests
//
//	@Summary	Attributes of features per spatial ID
//	@Tags		citygml
//	@Produce	json
//	@Param		sid						query		string	true	"Spatial ID"
//	@Param		type					query		string	true	"Feature type"
//	@Param		skip_code_list_fetch	query		bool	false	"Skip resolving code lists"
//	@Success	200						{object}	object
//	@Failure	400						{object}	ErrorResponse
//	@Failure	502						{object}	ErrorResponse
//	@Router		/citygml/spatialid-attributes [get]
func (h *CityGMLHandler) SpatialIDAttributes(c *gin.Context) {
	skip, ok := boolQuery(c, "skip_code_list_fetch")
	if !ok {
		return
	}

	out, err := h.service.SpatialIDAttributes(c.Request.Context(), c.Query("sid"), c.Query("type"), skip)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

func boolQuery(c *gin.Context, name string) (bool, bool) {
	s := c.Query(name)
	if s == "" {
		return false, true
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " format"})
		return false, false
	}
	return v, true
}
