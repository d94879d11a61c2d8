package httpapi

import (
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Ask answers questions. Required.
	Ask driving.AskService

	// Search serves /search.
	Search driving.SearchService

	// Ingest rebuilds the corpus from /admin/ingest.
	Ingest driving.IngestService

	// Library manages uploaded PDFs.
	Library driving.LibraryService

	// Source manages remote share links.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Admin and search routes are only mounted for the ports provided
	return nil
}
