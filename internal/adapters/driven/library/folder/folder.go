// Package folder provides a filesystem-backed document library.
package folder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

// Ensure Library implements the interface.
var _ driven.DocumentLibrary = (*Library)(nil)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Library stores PDFs as plain files in one directory.
type Library struct {
	dir string
}

// New creates a library rooted at dir, creating the directory if needed.
func New(dir string) (*Library, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: library directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}
	return &Library{dir: dir}, nil
}

// Dir returns the folder path.
func (l *Library) Dir() string {
	return l.dir
}

// List returns the .pdf files in the folder sorted by name.
func (l *Library) List(_ context.Context) ([]domain.LibraryFile, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.LibraryFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}

	files := make([]domain.LibraryFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !IsPDF(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // removed between ReadDir and Info
		}
		files = append(files, domain.LibraryFile{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Read returns the bytes of a library file.
func (l *Library) Read(_ context.Context, name string) ([]byte, error) {
	path, err := l.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Save writes data under the sanitised name, overwriting any existing file.
func (l *Library) Save(_ context.Context, name string, data []byte) (string, error) {
	safe := SanitizeName(name)
	if safe == "" {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}

	if err := os.WriteFile(filepath.Join(l.dir, safe), data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", safe, err)
	}
	return safe, nil
}

// Delete removes a library file.
func (l *Library) Delete(_ context.Context, name string) error {
	path, err := l.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	return nil
}

func (l *Library) path(name string) (string, error) {
	safe := SanitizeName(name)
	if safe == "" {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(l.dir, safe), nil
}

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// SanitizeName reduces name to a safe single path element.
// Path separators and whitespace become underscores, other characters outside
// [A-Za-z0-9_.-] are dropped, and leading or trailing dots and underscores are
// trimmed. An empty result means the name cannot be stored.
func SanitizeName(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}
