package handler

import (
	"context"
	"net/http"
	"strconv"

	"plateau-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// PackService packs CityGML files and tracks the resulting jobs
type PackService interface {
	Pack(ctx context.Context, urls []string) (*models.PackResponse, error)
	Status(ctx context.Context, id string) (*models.PackStatus, error)
	DownloadURL(ctx context.Context, id string) (*models.PackedDownload, error)
	Jobs(ctx context.Context, limit int) ([]models.PackJob, error)
	Job(ctx context.Context, id string) (*models.PackJob, error)
}

// PackHandler handles pack job requests
type PackHandler struct {
	service PackService
}

// NewPackHandler creates a new pack handler
func NewPackHandler(svc PackService) *PackHandler {
	return &PackHandler{service: svc}
}

// Pack handles POST /citygml/pack requests
//
//	@Summary	Pack CityGML files into a ZIP archive
//	@Tags		pack
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.PackRequest	true	"Files to pack"
//	@Success	202		{object}	models.PackResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/citygml/pack [post]
func (h *PackHandler) Pack(c *gin.Context) {
	var req models.PackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain a non-empty 'urls' list"})
		return
	}

	resp, err := h.service.Pack(c.Request.Context(), req.URLs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// Status handles GET /citygml/pack/:id/status requests
//
//	@Summary	Status of a pack job
//	@Tags		pack
//	@Produce	json
//	@Param		id	path		string	true	"Pack job ID"
//	@Success	200	{object}	models.PackStatus
//	@Failure	502	{object}	ErrorResponse
//	@Router		/citygml/pack/{id}/status [get]
func (h *PackHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// DownloadURL handles GET /citygml/pack/:id/download-url requests
//
//	@Summary	Download URL of a succeeded pack job
//	@Tags		pack
//	@Produce	json
//	@Param		id	path		string	true	"Pack job ID"
//	@Success	200	{object}	models.PackedDownload
//	@Failure	409	{object}	ErrorResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/citygml/pack/{id}/download-url [get]
func (h *PackHandler) DownloadURL(c *gin.Context) {
	dl, err := h.service.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dl)
}

// Jobs handles GET /jobs requests
//
//	@Summary	Recorded pack jobs, most recent first
//	@Tags		jobs
//	@Produce	json
//	@Param		limit	query	int	false	"Maximum number of jobs"	default(20)
//	@Success	200		{array}	models.PackJob
//	@Router		/jobs [get]
func (h *PackHandler) Jobs(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit format"})
			return
		}
		limit = v
	}

	jobs, err := h.service.Jobs(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// Job handles GET /jobs/:id requests
//
//	@Summary	One recorded pack job
//	@Tags		jobs
//	@Produce	json
//	@Param		id	path		string	true	"Pack job ID"
//	@Success	200	{object}	models.PackJob
//	@Failure	404	{object}	ErrorResponse
//	@Router		/jobs/{id} [get]
func (h *PackHandler) Job(c *gin.Context) {
	job, err := h.service.Job(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
