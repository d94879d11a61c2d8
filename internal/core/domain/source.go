package domain

import (
	"fmt"
	"strings"
)

// Source is a remote document reachable through a share link.
// Sources are persisted as an ordered list and fetched on every ingestion.
type Source struct {
	// Name is the corpus key the fetched document is stored under.
	Name string `json:"name" yaml:"name"`

	// Link is the share or direct-download URL.
	Link string `json:"link" yaml:"link"`
}

// Validate checks that the source can be fetched.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: source name is required", ErrInvalidInput)
	}
	if !strings.HasPrefix(s.Link, "http://") && !strings.HasPrefix(s.Link, "https://") {
		return fmt.Errorf("%w: source link must be an http(s) URL", ErrInvalidInput)
	}
	return nil
}
