package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

var pdfMagic = []byte("%PDF-")

// LibraryService manages PDFs in the local library folder.
// Changes take effect in the corpus after the next ingestion.
type LibraryService struct {
	library driven.DocumentLibrary
}

// NewLibraryService creates a new library service.
func NewLibraryService(library driven.DocumentLibrary) *LibraryService {
	return &LibraryService{library: library}
}

// List returns library files sorted by name.
func (s *LibraryService) List(ctx context.Context) ([]domain.LibraryFile, error) {
	return s.library.List(ctx)
}

// Upload stores a PDF. Only .pdf files up to domain.MaxUploadBytes are accepted.
func (s *LibraryService) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return "", fmt.Errorf("%w: only PDF files are allowed", domain.ErrUnsupportedType)
	}
	if len(data) > domain.MaxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, domain.MaxUploadBytes)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", fmt.Errorf("%w: file is not a PDF", domain.ErrUnsupportedType)
	}

	stored, err := s.library.Save(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	logger.Info("Uploaded %s (%d bytes)", stored, len(data))
	return stored, nil
}

// Delete removes a PDF from the library.
func (s *LibraryService) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	return s.library.Delete(ctx, name)
}
