package service

import "errors"

var (
	// ErrInvalidInput marks caller errors detected before any remote call.
	ErrInvalidInput = errors.New("service: invalid input")
	// ErrPackNotReady is returned when a download is requested for a pack
	// job that has not succeeded.
	ErrPackNotReady = errors.New("service: pack job is not ready")
)
