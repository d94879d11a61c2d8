package pdf

import (
	"bytes"
	"fmt"
	"strings"
)

// pdfBuilder writes minimal PDF 1.4 files. Objects 1 and 2 are the catalog
// and the page tree; xref offsets are computed from the bytes written.
type pdfBuilder struct {
	objs []string
	kids []int
}

func newPDFBuilder() *pdfBuilder {
	return &pdfBuilder{objs: make([]string, 2)}
}

func (b *pdfBuilder) add(body string) int {
	b.objs = append(b.objs, body)
	return len(b.objs)
}

func (b *pdfBuilder) stream(dict, data string) int {
	return b.add(fmt.Sprintf("<< %s /Length %d >>\nstream\n%s\nendstream", dict, len(data), data))
}

func (b *pdfBuilder) helvetica() int {
	return b.add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
}

// identityFont adds a Type0 Identity-H font. cmap is its /ToUnicode
// stream; empty leaves the entry out.
func (b *pdfBuilder) identityFont(cmap string) int {
	desc := b.add("<< /Type /FontDescriptor /FontName /AAAAAA+Calibri /Flags 32 " +
		"/FontBBox [-503 -250 1240 750] /ItalicAngle 0 /Ascent 750 /Descent -250 /CapHeight 632 /StemV 80 >>")
	cid := b.add(fmt.Sprintf("<< /Type /Font /Subtype /CIDFontType2 /BaseFont /AAAAAA+Calibri "+
		"/CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >> "+
		"/FontDescriptor %d 0 R /CIDToGIDMap /Identity /DW 1000 >>", desc))
	toUnicode := ""
	if cmap != "" {
		toUnicode = fmt.Sprintf(" /ToUnicode %d 0 R", b.stream("", cmap))
	}
	return b.add(fmt.Sprintf("<< /Type /Font /Subtype /Type0 /BaseFont /AAAAAA+Calibri "+
		"/Encoding /Identity-H /DescendantFonts [%d 0 R]%s >>", cid, toUnicode))
}

// page adds a page showing content with font as /F1. An empty content
// leaves /Contents out.
func (b *pdfBuilder) page(content string, font int) {
	contents := ""
	if content != "" {
		contents = fmt.Sprintf(" /Contents %d 0 R", b.stream("", content))
	}
	b.kids = append(b.kids, b.add(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 %d 0 R >> >>%s >>", font, contents)))
}

func (b *pdfBuilder) bytes() []byte {
	kids := make([]string, len(b.kids))
	for i, k := range b.kids {
		kids[i] = fmt.Sprintf("%d 0 R", k)
	}
	b.objs[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	b.objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(b.objs))
	for i, body := range b.objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// textLine is a content stream showing s in /F1.
func textLine(s string) string {
	return fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", s)
}

// buildPDF writes one Helvetica text line per page.
func buildPDF(pages []string) []byte {
	b := newPDFBuilder()
	font := b.helvetica()
	for _, text := range pages {
		b.page(textLine(text), font)
	}
	return b.bytes()
}

// helloCMap maps the glyph ids 002B, 0048, 004F and 0052 to "H", "e", "l" and "o".
const helloCMap = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
2 beginbfchar
<002B> <0048>
<0052> <006F>
endbfchar
2 beginbfrange
<0048> <0048> <0065>
<004F> <0050> [<006C> <0070>]
endbfrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end`

// helloGlyphs shows "Hello" as Identity-H glyph ids.
const helloGlyphs = "BT /F1 12 Tf 72 720 Td <002B0048004F004F0052> Tj ET"
