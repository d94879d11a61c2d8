// Package tui provides an interactive chat interface over the reference corpus.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Ask answers questions as a stream of events.
	Ask driving.AskService

	// Search finds the pages that contain a query.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
