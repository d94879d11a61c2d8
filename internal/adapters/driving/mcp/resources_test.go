package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleSourcesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil source service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("refdesk://sources"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns sources successfully", func(t *testing.T) {
		mockSource := &mockSourceService{
			sources: []domain.Source{{Name: "Guide", Link: "https://example.com/guide.pdf"}},
		}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Source: mockSource})
		require.NoError(t, err)

		result, err := server.handleSourcesResource(ctx, makeReadResourceRequest("refdesk://sources"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.JSONEq(t, `[{"name":"Guide","link":"https://example.com/guide.pdf"}]`, result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		mockSource := &mockSourceService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Source: mockSource})
		require.NoError(t, err)

		_, err = server.handleSourcesResource(ctx, makeReadResourceRequest("refdesk://sources"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing sources")
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil ingest service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("refdesk://documents"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists corpus names", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search: &mockSearchService{},
			Ingest: &mockIngestService{docs: []string{"doc1", "doc2"}},
		})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("refdesk://documents"))
		require.NoError(t, err)
		assert.JSONEq(t, `["doc1","doc2"]`, result.Contents[0].Text)
	})

	t.Run("empty corpus is an empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Ingest: &mockIngestService{}})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("refdesk://documents"))
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, result.Contents[0].Text)
	})
}
