package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads PDF bytes with relaxed validation so that slightly
// malformed files still yield text.
type Extractor struct {
	conf *model.Configuration
}

// New creates a new PDF extractor.
func New() *Extractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Extractor{conf: conf}
}

// Extract returns one page per PDF page, in order.
func (e *Extractor) Extract(ctx context.Context, data []byte) ([]domain.Page, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrExtractionFailed)
	}

	pdfCtx, err := e.read(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if pdfCtx.PageCount == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrExtractionFailed)
	}

	pages := make([]domain.Page, 0, pdfCtx.PageCount)
	for n := 1; n <= pdfCtx.PageCount; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := pageText(pdfCtx, n)
		if err != nil {
			logger.Warn("Page %d: text extraction failed: %v", n, err)
			text = ""
		}
		pages = append(pages, domain.Page{Number: n, Text: text})
	}

	return pages, nil
}

// read parses and validates the document. pdfcpu panics on some corrupt
// inputs, so panics are turned into errors.
func (e *Extractor) read(data []byte) (pdfCtx *model.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse: %v", r)
		}
	}()
	return api.ReadValidateAndOptimize(bytes.NewReader(data), e.conf)
}

func pageText(pdfCtx *model.Context, pageNr int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", pageNr, r)
		}
	}()

	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return ContentText(content, pageFonts(pdfCtx, pageNr))
}
