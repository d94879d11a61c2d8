package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrExtractionFailed", ErrExtractionFailed},
		{"ErrNoReferenceMaterial", ErrNoReferenceMaterial},
		{"ErrIngestInProgress", ErrIngestInProgress},
		{"ErrFetchFailed", ErrFetchFailed},
		{"ErrUnauthorized", ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
}

// TestErrNoReferenceMaterial tests ErrNoReferenceMaterial error
func TestErrNoReferenceMaterial(t *testing.T) {
	assert.Equal(t, "no reference material available", ErrNoReferenceMaterial.Error())
	assert.False(t, errors.Is(ErrNoReferenceMaterial, ErrNotFound))
}

// TestErrors_Wrapped tests that wrapped errors still match their sentinel
func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("extract report.pdf: %w", ErrExtractionFailed)

	assert.True(t, errors.Is(wrapped, ErrExtractionFailed))
	assert.False(t, errors.Is(wrapped, ErrFetchFailed))
	assert.Contains(t, wrapped.Error(), "report.pdf")
}
