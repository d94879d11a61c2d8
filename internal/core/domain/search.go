package domain

// DefaultTopK is the number of hits handed to the prompt composer.
const DefaultTopK = 5

// DefaultExcerptChars bounds the excerpt stored on a search hit.
const DefaultExcerptChars = 1000

// DefaultContextChars bounds the excerpt rendered into the prompt context.
const DefaultContextChars = 500

// SearchHit is one page that contained the query.
// Hits are transient; they are never persisted.
type SearchHit struct {
	// Document is the corpus key the page belongs to.
	Document string `json:"document"`

	// Page is the page label ("1", "2", ... or "Unknown").
	Page string `json:"page"`

	// Excerpt is the leading text of the page, capped at the excerpt bound.
	Excerpt string `json:"excerpt"`
}

// SearchOptions configures a retrieval call.
type SearchOptions struct {
	// Limit caps the number of hits returned. Zero means unlimited.
	Limit int

	// ExcerptChars caps each hit's excerpt. Zero means DefaultExcerptChars.
	ExcerptChars int
}

// Truncate returns s cut to at most n characters (runes).
// A non-positive n returns s unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
