package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

func TestSearchCmd_Flags(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)

	limit := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "n", limit.Shorthand)
	assert.Equal(t, "5", limit.DefValue)
	assert.NotNil(t, searchCmd.Flags().Lookup("json"))
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute("search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_ErrorsWithoutService(t *testing.T) {
	old := searchService
	searchService = nil
	defer func() { searchService = old }()

	_, err := execute("search", "fever")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSearchCmd_Table(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "FEVER")

	require.NoError(t, err)
	assert.Contains(t, out, "[1] doc1, Page 1")
	assert.Contains(t, out, "Aspirin reduces fever.")
	assert.Contains(t, out, "1 page(s)")
}

func TestSearchCmd_NoMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("search", "insulin")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching pages.")
}

func TestSearchCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { searchJSON = false }()

	out, err := execute("search", "--json", "fever")
	require.NoError(t, err)

	var hits []domain.SearchHit
	require.NoError(t, json.Unmarshal([]byte(out), &hits))
	assert.Equal(t, []domain.SearchHit{{Document: "doc1", Page: "1", Excerpt: "Aspirin reduces fever."}}, hits)
}

func TestSearchCmd_JSONEmptyIsArray(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { searchJSON = false }()

	out, err := execute("search", "--json", "insulin")

	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

type failingSearch struct{}

func (failingSearch) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchHit, error) {
	return nil, errors.New("store offline")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	old := searchService
	searchService = failingSearch{}
	defer func() { searchService = old }()

	_, err := execute("search", "fever")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed: store offline")
}
