package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService manages the remote share link list.
type SourceService struct {
	sourceStore driven.SourceStore
}

// NewSourceService creates a new source service.
func NewSourceService(sourceStore driven.SourceStore) *SourceService {
	return &SourceService{sourceStore: sourceStore}
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sourceStore.List(ctx)
}

// Add appends a new source.
func (s *SourceService) Add(ctx context.Context, src domain.Source) error {
	if err := src.Validate(); err != nil {
		return err
	}

	sources, err := s.sourceStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}
	for _, existing := range sources {
		if existing.Name == src.Name {
			return fmt.Errorf("source %q: %w", src.Name, domain.ErrAlreadyExists)
		}
	}

	return s.sourceStore.Save(ctx, append(sources, src))
}

// Remove deletes a source by name.
func (s *SourceService) Remove(ctx context.Context, name string) error {
	sources, err := s.sourceStore.List(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	kept := make([]domain.Source, 0, len(sources))
	for _, src := range sources {
		if src.Name != name {
			kept = append(kept, src)
		}
	}
	if len(kept) == len(sources) {
		return fmt.Errorf("source %q: %w", name, domain.ErrNotFound)
	}

	return s.sourceStore.Save(ctx, kept)
}
