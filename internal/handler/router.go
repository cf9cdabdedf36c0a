package handler

import (
	"net/http"

	_ "plateau-gateway/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups everything the router serves
type Handlers struct {
	MeshCode *MeshCodeHandler
	CityGML  *CityGMLHandler
	Pack     *PackHandler
	Files    *FileHandler
	// Metrics serves the Prometheus exposition; nil disables /metrics.
	Metrics http.Handler
}

// NewRouter registers every route of the gateway
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/meshcode", h.MeshCode.MeshCode)
	r.GET("/meshcode/:code", h.MeshCode.Cell)

	r.GET("/citygml", h.CityGML.List)
	r.GET("/citygml/attributes", h.CityGML.Attributes)
	r.GET("/citygml/features", h.CityGML.Features)
	r.GET("/citygml/spatialid-attributes", h.CityGML.SpatialIDAttributes)

	r.POST("/citygml/pack", h.Pack.Pack)
	r.GET("/citygml/pack/:id/status", h.Pack.Status)
	r.GET("/citygml/pack/:id/download-url", h.Pack.DownloadURL)
	r.GET("/jobs", h.Pack.Jobs)
	r.GET("/jobs/:id", h.Pack.Job)

	r.POST("/citygml/download", h.Files.Download)
	r.POST("/qgis/command", h.Files.QGISCommand)

	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
