// Package mcp provides an MCP (Model Context Protocol) server adapter for refdesk.
// It lets AI assistants search the reference corpus and ask cited questions.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrAskUnavailable is returned by the ask tool when no ask service is wired.
var ErrAskUnavailable = errors.New("mcp: ask is not available")
