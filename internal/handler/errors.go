package handler

import (
	"errors"
	"fmt"
	"net/http"

	"plateau-gateway/internal/archive"
	"plateau-gateway/internal/meshcode"
	"plateau-gateway/internal/plateau"
	"plateau-gateway/internal/repository"
	"plateau-gateway/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}

func classify(err error) (int, string) {
	var rangeErr *meshcode.OutOfRangeError
	var statusErr *plateau.StatusError

	switch {
	case errors.As(err, &rangeErr):
		return http.StatusBadRequest, rangeErr.Error()
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, meshcode.ErrInvalidCode):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "pack job not found"
	case errors.Is(err, service.ErrPackNotReady):
		return http.StatusConflict, err.Error()
	case errors.As(err, &statusErr):
		return http.StatusBadGateway, fmt.Sprintf("plateau api returned status %d", statusErr.StatusCode)
	case errors.Is(err, plateau.ErrUnavailable):
		return http.StatusBadGateway, "plateau api unavailable"
	case errors.Is(err, archive.ErrUpstream):
		return http.StatusBadGateway, "archive download failed"
	}
	return http.StatusInternalServerError, "internal server error"
}
