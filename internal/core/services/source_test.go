package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/refdesk/internal/core/domain"
)

func TestSourceService_AddAndList(t *testing.T) {
	svc := NewSourceService(memory.NewSourceStore())
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, domain.Source{Name: "b", Link: "https://example.com/b"}))
	require.NoError(t, svc.Add(ctx, domain.Source{Name: "a", Link: "https://example.com/a"}))

	sources, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "b", sources[0].Name)
	assert.Equal(t, "a", sources[1].Name)
}

func TestSourceService_AddDuplicate(t *testing.T) {
	svc := NewSourceService(memory.NewSourceStore(domain.Source{Name: "a", Link: "https://example.com/a"}))

	err := svc.Add(context.Background(), domain.Source{Name: "a", Link: "https://example.com/other"})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSourceService_AddInvalid(t *testing.T) {
	svc := NewSourceService(memory.NewSourceStore())

	err := svc.Add(context.Background(), domain.Source{Name: "a", Link: "not a url"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSourceService_Remove(t *testing.T) {
	svc := NewSourceService(memory.NewSourceStore(
		domain.Source{Name: "a", Link: "https://example.com/a"},
		domain.Source{Name: "b", Link: "https://example.com/b"},
	))
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, "a"))
	assert.ErrorIs(t, svc.Remove(ctx, "a"), domain.ErrNotFound)

	sources, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "b", sources[0].Name)
}
