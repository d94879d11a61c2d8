package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown file type, provider or backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Questions cannot be answered without it; search still works.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Pipeline Errors.

	// ErrExtractionFailed indicates a whole document could not be parsed.
	// Ingestion skips the document and reports it.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrNoReferenceMaterial indicates the corpus holds no documents.
	// It is a valid state, surfaced before retrieval so the LLM is never called.
	ErrNoReferenceMaterial = errors.New("no reference material available")

	// ErrIngestInProgress indicates another ingestion run has not finished.
	ErrIngestInProgress = errors.New("ingest in progress")

	// ErrFetchFailed indicates a remote source could not be downloaded.
	ErrFetchFailed = errors.New("fetch failed")

	// Access Errors.

	// ErrUnauthorized indicates a missing or invalid admin credential.
	ErrUnauthorized = errors.New("unauthorized")
)
