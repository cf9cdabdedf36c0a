package handler

import (
	"context"
	"net/http"

	"plateau-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// DownloadService fetches packed archives to local disk
type DownloadService interface {
	Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error)
}

// QGISService generates QGIS console commands
type QGISService interface {
	Command(req models.QGISCommandRequest) (*models.QGISCommand, error)
}

// FileHandler handles downloads and their display in QGIS
type FileHandler struct {
	downloads DownloadService
	qgis      QGISService
}

// NewFileHandler creates a new file handler
func NewFileHandler(downloads DownloadService, qgis QGISService) *FileHandler {
	return &FileHandler{downloads: downloads, qgis: qgis}
}

// Download handles POST /citygml/download requests
//
//	@Summary	Download a packed archive and extract its GML files
//	@Tags		files
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.DownloadRequest	true	"Archive to download"
//	@Success	200		{object}	models.DownloadResult
//	@Failure	400		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Router		/citygml/download [post]
func (h *FileHandler) Download(c *gin.Context) {
	var req models.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain 'download_url'"})
		return
	}

	result, err := h.downloads.Download(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// QGISCommand handles POST /qgis/command requests
//
//	@Summary	QGIS console command displaying a CityGML file
//	@Tags		files
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.QGISCommandRequest	true	"File to display"
//	@Success	200		{object}	models.QGISCommand
//	@Failure	400		{object}	ErrorResponse
//	@Router		/qgis/command [post]
func (h *FileHandler) QGISCommand(c *gin.Context) {
	var req models.QGISCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain 'citygml_path'"})
		return
	}

	cmd, err := h.qgis.Command(req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cmd)
}
