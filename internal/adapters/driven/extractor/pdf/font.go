package pdf

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Font decodes the character codes of strings shown with one font resource.
// A nil *Font reads one byte per code through WinAnsiEncoding, or UTF-16BE
// when the string starts with a byte order mark.
type Font struct {
	codeLen   int
	utf16     bool
	toUnicode map[uint32]string
	encoding  map[byte]string
}

// NewSimpleFont returns a one-byte font. toUnicode may be nil; differences
// overrides the WinAnsi base encoding per code.
func NewSimpleFont(toUnicode map[uint32]string, differences map[byte]string) *Font {
	return &Font{codeLen: 1, toUnicode: toUnicode, encoding: differences}
}

// NewCompositeFont returns a Type0 font with codeLen-byte codes. Without a
// toUnicode map its codes are glyph ids and nothing decodes.
func NewCompositeFont(codeLen int, toUnicode map[uint32]string) *Font {
	if codeLen < 1 || codeLen > 4 {
		codeLen = 2
	}
	return &Font{codeLen: codeLen, toUnicode: toUnicode}
}

// Decode maps raw string bytes to text. ok is false when raw holds codes
// but none of them map to Unicode.
func (f *Font) Decode(raw []byte) (text string, ok bool) {
	if len(raw) == 0 {
		return "", true
	}
	if f == nil {
		if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
			return utf16BE(raw[2:]), true
		}
		return winAnsiText(raw), true
	}
	if f.utf16 {
		return utf16BE(raw), true
	}

	var out strings.Builder
	mapped := 0
	for i := 0; i+f.codeLen <= len(raw); i += f.codeLen {
		var code uint32
		for _, c := range raw[i : i+f.codeLen] {
			code = code<<8 | uint32(c)
		}
		if s, found := f.toUnicode[code]; found {
			out.WriteString(s)
			mapped++
			continue
		}
		if f.codeLen != 1 {
			continue
		}
		if s, found := f.encoding[byte(code)]; found {
			out.WriteString(s)
		} else {
			out.WriteRune(winAnsi(byte(code)))
		}
		mapped++
	}
	return out.String(), mapped > 0
}

func utf16BE(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(units))
}

func winAnsiText(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = winAnsi(c)
	}
	return string(runes)
}

// winAnsiHigh covers 0x80-0x9F, where WinAnsiEncoding departs from Latin-1.
var winAnsiHigh = [32]rune{
	'€', 0x81, '‚', 'ƒ', '„', '…', '†', '‡', 'ˆ', '‰', 'Š', '‹', 'Œ', 0x8D, 'Ž', 0x8F,
	0x90, '‘', '’', '“', '”', '•', '–', '—', '˜', '™', 'š', '›', 'œ', 0x9D, 'ž', 'Ÿ',
}

func winAnsi(c byte) rune {
	if c >= 0x80 && c <= 0x9F {
		return winAnsiHigh[c-0x80]
	}
	return rune(c)
}

// glyphNames maps the Adobe glyph names that commonly appear in
// /Differences arrays and are not single characters.
var glyphNames = map[string]string{
	"space": " ", "exclam": "!", "quotedbl": "\"", "numbersign": "#",
	"dollar": "$", "percent": "%", "ampersand": "&", "quotesingle": "'",
	"quoteright": "’", "quoteleft": "‘", "quotedblleft": "“", "quotedblright": "”",
	"parenleft": "(", "parenright": ")", "asterisk": "*", "plus": "+",
	"comma": ",", "hyphen": "-", "minus": "−", "period": ".", "slash": "/",
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"colon": ":", "semicolon": ";", "less": "<", "equal": "=", "greater": ">",
	"question": "?", "at": "@", "bracketleft": "[", "backslash": "\\",
	"bracketright": "]", "underscore": "_", "braceleft": "{", "bar": "|",
	"braceright": "}", "endash": "–", "emdash": "—", "bullet": "•",
	"ellipsis": "…", "degree": "°", "plusminus": "±", "multiply": "×",
	"fi": "fi", "fl": "fl", "ff": "ff", "ffi": "ffi", "ffl": "ffl",
	"aacute": "á", "agrave": "à", "adieresis": "ä", "acircumflex": "â",
	"eacute": "é", "egrave": "è", "edieresis": "ë", "ecircumflex": "ê",
	"iacute": "í", "idieresis": "ï", "oacute": "ó", "odieresis": "ö",
	"ocircumflex": "ô", "uacute": "ú", "udieresis": "ü", "ccedilla": "ç",
	"ntilde": "ñ", "germandbls": "ß",
}

// glyphText resolves a glyph name to its text.
func glyphText(name string) (string, bool) {
	if s, ok := glyphNames[name]; ok {
		return s, true
	}
	if base, _, found := strings.Cut(name, "."); found && base != "" {
		return glyphText(base)
	}
	if len(name) == 1 {
		return name, true
	}
	for _, prefix := range []string{"uni", "u"} {
		hex, ok := strings.CutPrefix(name, prefix)
		if !ok || len(hex) < 4 || len(hex) > 6 {
			continue
		}
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(v)), true
		}
	}
	return "", false
}
