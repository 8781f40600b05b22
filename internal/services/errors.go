package services

import "errors"

var (
	// ErrProjectNotFound covers both missing projects and projects owned by
	// someone else, so callers cannot probe for ids.
	ErrProjectNotFound = errors.New("project not found")
	ErrConceptNotFound = errors.New("concept not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrToolkitNotReady = errors.New("toolkit has not been generated yet")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConceptCount    = errors.New("expected exactly 3 concepts")
)
