package tui

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// MockAskService implements driving.AskService for testing.
type MockAskService struct {
	Events []domain.StreamEvent
	Err    error
}

func (m *MockAskService) Ask(_ context.Context, _ domain.Question) (iter.Seq[domain.StreamEvent], error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return func(yield func(domain.StreamEvent) bool) {
		for _, ev := range m.Events {
			if !yield(ev) {
				return
			}
		}
	}, nil
}

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	Hits []domain.SearchHit
	Err  error
}

func (m *MockSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchHit, error) {
	return m.Hits, m.Err
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{"all set", &Ports{Ask: &MockAskService{}, Search: &MockSearchService{}}, nil},
		{"missing ask", &Ports{Search: &MockSearchService{}}, ErrMissingAskService},
		{"missing search", &Ports{Ask: &MockAskService{}}, ErrMissingSearchService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
