package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/core/domain"
)

func TestCorpusStore_EmptyByDefault(t *testing.T) {
	store := NewCorpusStore()

	assert.True(t, store.LoadAll(context.Background()).IsEmpty())
	assert.Equal(t, 0, store.Writes())
}

func TestCorpusStore_ReplaceAll(t *testing.T) {
	store := NewCorpusStore()
	ctx := context.Background()

	first := domain.NewCorpus()
	first.Put("old.pdf", "old")
	require.NoError(t, store.ReplaceAll(ctx, first))

	second := domain.NewCorpus()
	second.Put("b.pdf", "b")
	second.Put("a.pdf", "a")
	require.NoError(t, store.ReplaceAll(ctx, second))

	loaded := store.LoadAll(ctx)
	assert.Equal(t, []string{"b.pdf", "a.pdf"}, loaded.Names())
	assert.Equal(t, 2, store.Writes())
}

func TestCorpusStore_IsolatedFromCaller(t *testing.T) {
	store := NewCorpusStore()
	ctx := context.Background()

	c := domain.NewCorpus()
	c.Put("a", "1")
	require.NoError(t, store.ReplaceAll(ctx, c))
	c.Put("b", "2")

	loaded := store.LoadAll(ctx)
	loaded.Put("c", "3")

	assert.Equal(t, []string{"a"}, store.LoadAll(ctx).Names())
}

func TestCorpusStore_Concurrent(t *testing.T) {
	store := NewCorpusStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := domain.NewCorpus()
			c.Put("doc", "text")
			assert.NoError(t, store.ReplaceAll(ctx, c))
		}()
		go func() {
			defer wg.Done()
			n := store.LoadAll(ctx).Len()
			assert.True(t, n == 0 || n == 1)
		}()
	}
	wg.Wait()
}

func TestSourceStore_ListSave(t *testing.T) {
	store := NewSourceStore(domain.Source{Name: "a", Link: "https://a"})
	ctx := context.Background()

	sources, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 1)

	sources = append(sources, domain.Source{Name: "b", Link: "https://b"})
	require.NoError(t, store.Save(ctx, sources))

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{got[0].Name, got[1].Name})
}

func TestSourceStore_EmptyListNotNil(t *testing.T) {
	sources, err := NewSourceStore().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sources)
}

func TestLibrary_Lifecycle(t *testing.T) {
	lib := NewLibrary()
	ctx := context.Background()

	name, err := lib.Save(ctx, "../nested/b.pdf", []byte("%PDF-b"))
	require.NoError(t, err)
	assert.Equal(t, "b.pdf", name)
	_, err = lib.Save(ctx, "a.pdf", []byte("%PDF-a"))
	require.NoError(t, err)

	files, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.pdf", files[0].Name)
	assert.Equal(t, int64(6), files[1].Size)

	data, err := lib.Read(ctx, "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-a", string(data))

	require.NoError(t, lib.Delete(ctx, "a.pdf"))
	assert.ErrorIs(t, lib.Delete(ctx, "a.pdf"), domain.ErrNotFound)
	_, err = lib.Read(ctx, "a.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigStore(t *testing.T) {
	store := NewConfigStore("/tmp/refdesk/config.toml")

	require.NoError(t, store.Set("retrieval.top_k", int64(3)))
	require.NoError(t, store.Set("llm.provider", "openai"))
	require.NoError(t, store.Set("server.allowed_origins", []string{"http://x"}))

	assert.Equal(t, 3, store.GetInt("retrieval.top_k"))
	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, []string{"http://x"}, store.GetStringSlice("server.allowed_origins"))
	assert.Empty(t, store.GetString("missing"))
	assert.Equal(t, "/tmp/refdesk/config.toml", store.Path())
}
