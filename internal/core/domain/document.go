package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownPage is the label used when a page number cannot be recovered.
const UnknownPage = "Unknown"

// Page marker delimiters. A document's concatenated text stores each page as
// "\n--- Page <n> ---\n<text>".
const (
	pageMarkerOpen  = "--- Page"
	pageMarkerClose = "---"
)

// Document is the extracted text of one ingested file.
type Document struct {
	// Name is the unique document identity (file name or display name).
	Name string

	// Pages holds the extracted pages in physical order.
	Pages []Page
}

// Page is one page of extracted text.
// Pages are immutable once created.
type Page struct {
	// Number is the 1-based page index. Zero means unknown.
	Number int

	// Text is the raw extracted text. Empty when extraction of this page failed.
	Text string
}

// Label returns the human-readable page label.
func (p Page) Label() string {
	if p.Number <= 0 {
		return UnknownPage
	}
	return strconv.Itoa(p.Number)
}

// PageSection is a page recovered from concatenated document text.
type PageSection struct {
	// Label is the page label found in the marker, or UnknownPage.
	Label string

	// Text is the page text following the marker.
	Text string
}

// PageMarker returns the textual marker that precedes page n.
func PageMarker(n int) string {
	return fmt.Sprintf("%s %d %s", pageMarkerOpen, n, pageMarkerClose)
}

// JoinPages concatenates pages into the persisted page-tagged form.
// Pages without a number are tagged with their position.
func JoinPages(pages []Page) string {
	var b strings.Builder
	for i, p := range pages {
		n := p.Number
		if n <= 0 {
			n = i + 1
		}
		b.WriteString("\n")
		b.WriteString(PageMarker(n))
		b.WriteString("\n")
		b.WriteString(p.Text)
	}
	return b.String()
}

// SplitPages recovers page sections from page-tagged text.
//
// The text is split on the page marker; the label is the fragment between
// "--- Page" and the next "---". Text before the first marker is kept as an
// UnknownPage section only when it holds something other than whitespace.
func SplitPages(text string) []PageSection {
	segments := strings.Split(text, pageMarkerOpen)
	sections := make([]PageSection, 0, len(segments))

	for i, seg := range segments {
		if i == 0 {
			if strings.TrimSpace(seg) != "" {
				sections = append(sections, PageSection{Label: UnknownPage, Text: seg})
			}
			continue
		}

		label, body, found := strings.Cut(seg, pageMarkerClose)
		if !found {
			sections = append(sections, PageSection{Label: UnknownPage, Text: seg})
			continue
		}

		label = strings.TrimSpace(label)
		if label == "" {
			label = UnknownPage
		}

		body = strings.TrimPrefix(body, "\n")
		if i < len(segments)-1 {
			// JoinPages puts a newline in front of every marker.
			body = strings.TrimSuffix(body, "\n")
		}
		sections = append(sections, PageSection{Label: label, Text: body})
	}

	return sections
}
