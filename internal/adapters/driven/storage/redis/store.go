package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/logger"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "refdesk:"

	corpusOrderKey = "corpus:order" // list of document names
	corpusDocsKey  = "corpus:docs"  // hash name -> text
	sourcesKey     = "sources"      // JSON array of sources
)

// Store wraps a Redis client and hands out the corpus and source stores.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore connects to addr, which is either host:port or a redis:// URL.
func NewStore(ctx context.Context, addr string) (*Store, error) {
	if addr == "" {
		return nil, fmt.Errorf("%w: redis address is required", domain.ErrInvalidInput)
	}

	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("%w: redis url: %v", domain.ErrInvalidInput, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}

	return NewStoreWithClient(client, DefaultPrefix), nil
}

// NewStoreWithClient wraps an existing client. An empty prefix uses DefaultPrefix.
func NewStoreWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// ==================== Corpus Store ====================

type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// LoadAll reads the name list and the text hash in one transaction.
func (c *corpusStore) LoadAll(ctx context.Context) domain.Corpus {
	var (
		namesCmd *redis.StringSliceCmd
		docsCmd  *redis.MapStringStringCmd
	)

	_, err := c.store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		namesCmd = pipe.LRange(ctx, c.store.key(corpusOrderKey), 0, -1)
		docsCmd = pipe.HGetAll(ctx, c.store.key(corpusDocsKey))
		return nil
	})
	if err != nil {
		logger.Warn("Loading corpus from redis: %v", err)
		return domain.NewCorpus()
	}

	docs := docsCmd.Val()
	corpus := domain.NewCorpus()
	for _, name := range namesCmd.Val() {
		text, ok := docs[name]
		if !ok {
			logger.Warn("Corpus entry %q missing text, skipping", name)
			continue
		}
		corpus.Put(name, text)
	}
	return corpus
}

// ReplaceAll rewrites both corpus keys in one MULTI/EXEC.
func (c *corpusStore) ReplaceAll(ctx context.Context, corpus domain.Corpus) error {
	orderKey := c.store.key(corpusOrderKey)
	docsKey := c.store.key(corpusDocsKey)

	names := make([]any, 0, corpus.Len())
	fields := make([]any, 0, corpus.Len()*2)
	for name, text := range corpus.All() {
		names = append(names, name)
		fields = append(fields, name, text)
	}

	_, err := c.store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, orderKey, docsKey)
		if len(names) > 0 {
			pipe.RPush(ctx, orderKey, names...)
			pipe.HSet(ctx, docsKey, fields...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace corpus: %w", err)
	}
	return nil
}

func (c *corpusStore) Close() error {
	return nil
}

// ==================== Source Store ====================

type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	data, err := s.store.client.Get(ctx, s.store.key(sourcesKey)).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.Source{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}

	sources := []domain.Source{}
	if err := json.Unmarshal([]byte(data), &sources); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
	}
	return sources, nil
}

func (s *sourceStore) Save(ctx context.Context, sources []domain.Source) error {
	if sources == nil {
		sources = []domain.Source{}
	}
	data, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}
	if err := s.store.client.Set(ctx, s.store.key(sourcesKey), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save sources: %w", err)
	}
	return nil
}
