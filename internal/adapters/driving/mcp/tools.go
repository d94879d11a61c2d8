package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"words or phrase to look for, matched literally and case-insensitively"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of pages to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single matching page.
type SearchResultOutput struct {
	Document string `json:"document"`
	Page     string `json:"page"`
	Excerpt  string `json:"excerpt"`
}

// TurnInput is one earlier conversation turn.
type TurnInput struct {
	Role    string `json:"role" jsonschema:"user or assistant"`
	Content string `json:"content"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string      `json:"question" jsonschema:"the question to answer from the reference materials"`
	History  []TurnInput `json:"history,omitempty" jsonschema:"earlier turns of the conversation, oldest first"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find pages of the reference documents that contain the query",
	}, s.handleSearch)

	if s.ports.Ask != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Answer a question using only the reference documents, with [Source X: file, Page Y] citations",
		}, s.handleAsk)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultTopK
	}

	hits, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(hits)),
		Count:   len(hits),
	}
	for i, hit := range hits {
		output.Results[i] = SearchResultOutput{
			Document: hit.Document,
			Page:     hit.Page,
			Excerpt:  hit.Excerpt,
		}
	}

	return nil, output, nil
}

// handleAsk runs the question pipeline and collects the streamed answer.
// A stream that ends in an error event fails the tool call.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Ask == nil {
		return nil, AskOutput{}, ErrAskUnavailable
	}

	q := domain.Question{Text: input.Question}
	for _, turn := range input.History {
		q.History = append(q.History, domain.ConversationTurn{Role: domain.Role(turn.Role), Text: turn.Content})
	}

	events, err := s.ports.Ask.Ask(ctx, q)
	if err != nil {
		return nil, AskOutput{}, err
	}

	var answer strings.Builder
	for ev := range events {
		switch ev.Kind {
		case domain.StreamText:
			answer.WriteString(ev.Text)
		case domain.StreamError:
			return nil, AskOutput{}, fmt.Errorf("answer failed: %s", ev.Err)
		}
	}

	return nil, AskOutput{Answer: answer.String()}, nil
}
