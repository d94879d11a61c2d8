package pdf

import (
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pageFonts builds a decoder for every font in the page's resources,
// keyed by resource name. Fonts that cannot be resolved are left out and
// fall back to the default decoding.
func pageFonts(pdfCtx *model.Context, pageNr int) map[string]*Font {
	pageDict, _, inh, err := pdfCtx.PageDict(pageNr, false)
	if err != nil {
		return nil
	}

	var res types.Dict
	if inh != nil {
		res = inh.Resources
	}
	if res == nil && pageDict != nil {
		if o, ok := pageDict.Find("Resources"); ok {
			res, _ = pdfCtx.DereferenceDict(o)
		}
	}
	if res == nil {
		return nil
	}

	o, ok := res.Find("Font")
	if !ok {
		return nil
	}
	fontRes, err := pdfCtx.DereferenceDict(o)
	if err != nil || fontRes == nil {
		return nil
	}

	fonts := make(map[string]*Font, len(fontRes))
	for name, ref := range fontRes {
		fd, err := pdfCtx.DereferenceDict(ref)
		if err != nil || fd == nil {
			continue
		}
		fonts[name] = loadFont(pdfCtx, fd)
	}
	return fonts
}

func loadFont(pdfCtx *model.Context, fd types.Dict) *Font {
	var toUnicode map[uint32]string
	codeLen := 0
	if o, ok := fd.Find("ToUnicode"); ok {
		if data := streamContent(pdfCtx, o); data != nil {
			codeLen, toUnicode = ParseToUnicode(data)
		}
	}

	if nameOf(pdfCtx, fd, "Subtype") == "Type0" {
		enc := nameOf(pdfCtx, fd, "Encoding")
		if toUnicode == nil && (strings.Contains(enc, "UCS2") || strings.Contains(enc, "UTF16")) {
			return &Font{codeLen: 2, utf16: true}
		}
		if codeLen == 0 {
			codeLen = 2
		}
		return NewCompositeFont(codeLen, toUnicode)
	}

	return NewSimpleFont(toUnicode, differences(pdfCtx, fd))
}

// differences reads /Encoding << /Differences [code /name ...] >> of a simple font.
func differences(pdfCtx *model.Context, fd types.Dict) map[byte]string {
	o, ok := fd.Find("Encoding")
	if !ok {
		return nil
	}
	enc, err := pdfCtx.DereferenceDict(o)
	if err != nil || enc == nil {
		return nil
	}
	o, ok = enc.Find("Differences")
	if !ok {
		return nil
	}
	o, err = pdfCtx.Dereference(o)
	if err != nil {
		return nil
	}
	arr, ok := o.(types.Array)
	if !ok {
		return nil
	}

	m := make(map[byte]string)
	code := 0
	for _, el := range arr {
		switch v := el.(type) {
		case types.Integer:
			code = int(v)
		case types.Name:
			if s, ok := glyphText(string(v)); ok && code >= 0 && code < 256 {
				m[byte(code)] = s
			}
			code++
		}
	}
	return m
}

func nameOf(pdfCtx *model.Context, d types.Dict, key string) string {
	o, ok := d.Find(key)
	if !ok {
		return ""
	}
	o, err := pdfCtx.Dereference(o)
	if err != nil {
		return ""
	}
	if n, ok := o.(types.Name); ok {
		return string(n)
	}
	return ""
}

func streamContent(pdfCtx *model.Context, o types.Object) []byte {
	sd, _, err := pdfCtx.DereferenceStreamDict(o)
	if err != nil || sd == nil {
		return nil
	}
	if err := sd.Decode(); err != nil {
		return nil
	}
	return sd.Content
}
