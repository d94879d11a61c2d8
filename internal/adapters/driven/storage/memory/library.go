package memory

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

// Ensure Library implements the interface.
var _ driven.DocumentLibrary = (*Library)(nil)

// Library is an in-memory document library.
type Library struct {
	mu    sync.RWMutex
	files map[string][]byte
	times map[string]time.Time
}

// NewLibrary creates an empty in-memory library.
func NewLibrary() *Library {
	return &Library{
		files: make(map[string][]byte),
		times: make(map[string]time.Time),
	}
}

// List returns files sorted by name.
func (l *Library) List(_ context.Context) ([]domain.LibraryFile, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.LibraryFile, 0, len(l.files))
	for name, data := range l.files {
		out = append(out, domain.LibraryFile{Name: name, Size: int64(len(data)), Modified: l.times[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Read returns a copy of the named file.
func (l *Library) Read(_ context.Context, name string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	data, ok := l.files[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores data under the base name of name.
func (l *Library) Save(_ context.Context, name string, data []byte) (string, error) {
	name = filepath.Base(name)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.files[name] = append([]byte(nil), data...)
	l.times[name] = time.Now()
	return name, nil
}

// Delete removes the named file.
func (l *Library) Delete(_ context.Context, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.files[name]; !ok {
		return domain.ErrNotFound
	}
	delete(l.files, name)
	delete(l.times, name)
	return nil
}

// Dir returns a placeholder path.
func (l *Library) Dir() string {
	return "memory://library"
}
