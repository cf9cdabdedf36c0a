package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"plateau-gateway/internal/archive"
	"plateau-gateway/internal/config"
	"plateau-gateway/internal/handler"
	"plateau-gateway/internal/logger"
	"plateau-gateway/internal/observability"
	"plateau-gateway/internal/plateau"
	"plateau-gateway/internal/repository"
	"plateau-gateway/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

//	@title			PLATEAU Gateway API
//	@version		1.0
//	@description	Mesh code encoding and PLATEAU CityGML tools over HTTP.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(config.LogLevel, config.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs, closeJobs := openJobRepository(ctx, config.DBSource)
	defer closeJobs()

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot register metrics")
	}

	// Initialize layers
	client := plateau.NewClient(plateau.Options{
		Endpoint:   config.PlateauEndpoint,
		Retries:    config.HTTPRetries,
		RetryDelay: config.HTTPRetryDelay,
		Timeout:    config.HTTPTimeout,
		RateLimit:  config.HTTPRateLimit,
		Observer:   metrics,
	})
	downloader := archive.NewDownloader(&http.Client{Timeout: config.HTTPTimeout})

	meshService := service.NewMeshCodeService(metrics)
	catalogService := service.NewCatalogService(client)
	packService := service.NewPackService(client, jobs)
	downloadService := service.NewDownloadService(downloader, config.DownloadDir, metrics)
	qgisService := service.NewQGISService(config.QGISEnabled)

	gin.SetMode(gin.ReleaseMode)
	r := handler.NewRouter(handler.Handlers{
		MeshCode: handler.NewMeshCodeHandler(meshService),
		CityGML:  handler.NewCityGMLHandler(catalogService),
		Pack:     handler.NewPackHandler(packService),
		Files:    handler.NewFileHandler(downloadService, qgisService),
		Metrics:  metrics.Handler(),
	})

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Msg("gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openJobRepository connects the pack job ledger. Without a database the
// gateway keeps jobs in memory.
func openJobRepository(ctx context.Context, dbSource string) (service.PackJobRepository, func()) {
	if dbSource == "" {
		log.Warn().Msg("DB_SOURCE is empty, pack jobs are kept in memory")
		return repository.NewMemoryRepository(), func() {}
	}

	// Database connection
	conn, err := pgxpool.New(ctx, dbSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}

	repo := repository.NewRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		conn.Close()
		log.Fatal().Err(err).Msg("cannot create pack job schema")
	}
	return repo, conn.Close
}
