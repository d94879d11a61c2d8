package domain

// SourceKind distinguishes where an ingested document came from.
type SourceKind string

// Ingestion origins.
const (
	SourceKindLibrary SourceKind = "library"
	SourceKindLink    SourceKind = "link"
)

// IngestReport summarises one full corpus rebuild.
type IngestReport struct {
	// Documents is the number of documents written to the corpus.
	Documents int `json:"documents"`

	// Skipped is the number of documents that produced no pages.
	Skipped int `json:"skipped"`

	// Errors holds one message per skipped document.
	Errors []string `json:"errors,omitempty"`
}

// Success reports whether every document was ingested.
func (r IngestReport) Success() bool {
	return r.Skipped == 0
}
