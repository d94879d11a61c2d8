package mcp

import (
	"github.com/custodia-labs/refdesk/internal/core/ports/driving"
)

// Ports are the services the MCP server drives. Only Search is required.
// The ask tool is registered only when Ask is set.
type Ports struct {
	Search driving.SearchService
	Ask    driving.AskService
	Source driving.SourceService
	Ingest driving.IngestService
}

// Validate reports a missing required service.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
