package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrQuotaExceeded   = errors.New("free generation limit reached")

	// Content errors
	ErrEmptyContent = errors.New("extracted content is empty")
	ErrEmptyMessage = errors.New("message is empty")

	// File errors
	ErrFileTooLarge = errors.New("file too large")

	// Rendering errors
	ErrRender            = errors.New("document rendering failed")
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
