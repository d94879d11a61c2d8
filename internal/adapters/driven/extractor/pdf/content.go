package pdf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// kerningSpace is the TJ adjustment (in thousandths of an em) treated as a word gap.
const kerningSpace = -200

// ErrUndecodable reports a content stream that shows text, none of which
// maps to Unicode (for example glyph ids of a Type0 font without /ToUnicode).
var ErrUndecodable = errors.New("no decodable text")

// ContentText returns the text shown by a decoded page content stream.
//
// Strings passed to Tj, TJ, ' and " are concatenated. BT, T*, Td, TD and
// the quote operators start a new line. Each string is decoded with the
// font selected by the last Tf; fonts maps resource names to decoders and
// may be nil, in which case strings are read as WinAnsi text unless they
// carry a UTF-16 BOM. Strings that do not decode to printable text are
// dropped.
func ContentText(content []byte, fonts map[string]*Font) (string, error) {
	s := &scanner{src: content}
	var out strings.Builder
	var operands []operand
	var font *Font
	shown, dropped := 0, 0

	newline := func() {
		if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
			out.WriteByte('\n')
		}
	}
	show := func(raw []byte) {
		text, ok := font.Decode(raw)
		if !ok || !printable(text) {
			dropped++
			return
		}
		shown++
		out.WriteString(text)
	}

	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		if tok.kind != kindOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "BT", "T*", "Td", "TD":
			newline()
		case "Tf":
			if name := lastOf(operands, kindName); name != nil {
				font = fonts[name.text]
			}
		case "Tj":
			if last := lastOf(operands, kindString); last != nil {
				show(last.raw)
			}
		case "'", "\"":
			newline()
			if last := lastOf(operands, kindString); last != nil {
				show(last.raw)
			}
		case "TJ":
			if last := lastOf(operands, kindArray); last != nil {
				for _, el := range last.items {
					switch el.kind {
					case kindString:
						show(el.raw)
					case kindNumber:
						if el.num <= kerningSpace {
							out.WriteByte(' ')
						}
					}
				}
			}
		}
		operands = operands[:0]
	}

	if shown == 0 && dropped > 0 {
		return "", fmt.Errorf("%w: %d string(s) dropped", ErrUndecodable, dropped)
	}
	return strings.TrimSpace(out.String()), nil
}

// printable reports whether s holds no control characters or replacement runes.
func printable(s string) bool {
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
		case r < 0x20, r >= 0x7f && r <= 0x9f, r == utf8.RuneError:
			return false
		}
	}
	return true
}

func lastOf(operands []operand, kind operandKind) *operand {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind == kind {
			return &operands[i]
		}
	}
	return nil
}

type operandKind int

const (
	kindOperator operandKind = iota
	kindString
	kindNumber
	kindArray
	kindName
	kindOther
)

type operand struct {
	kind  operandKind
	text  string
	raw   []byte
	num   float64
	items []operand
}

type scanner struct {
	src []byte
	pos int
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func (s *scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case isSpace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r' {
				s.pos++
			}
		default:
			return
		}
	}
}

func (s *scanner) next() (operand, bool) {
	s.skipSpaceAndComments()
	if s.pos >= len(s.src) {
		return operand{}, false
	}

	switch c := s.src[s.pos]; {
	case c == '(':
		s.pos++
		return operand{kind: kindString, raw: s.literal()}, true
	case c == '<' && s.peek(1) == '<':
		s.pos += 2
		s.skipDict()
		return operand{kind: kindOther}, true
	case c == '<':
		s.pos++
		return operand{kind: kindString, raw: s.hex()}, true
	case c == '[':
		s.pos++
		return s.array(), true
	case c == ']' || c == '>' || c == ')' || c == '{' || c == '}':
		s.pos++
		return operand{kind: kindOther}, true
	case c == '/':
		s.pos++
		return operand{kind: kindName, text: s.word()}, true
	default:
		w := s.word()
		if w == "" {
			s.pos++
			return operand{kind: kindOther}, true
		}
		if n, err := strconv.ParseFloat(w, 64); err == nil {
			return operand{kind: kindNumber, num: n, text: w}, true
		}
		if w == "BI" {
			s.skipInlineImage()
		}
		return operand{kind: kindOperator, text: w}, true
	}
}

func (s *scanner) peek(offset int) byte {
	if s.pos+offset < len(s.src) {
		return s.src[s.pos+offset]
	}
	return 0
}

func (s *scanner) word() string {
	start := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) && !isDelimiter(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) array() operand {
	arr := operand{kind: kindArray}
	for {
		s.skipSpaceAndComments()
		if s.pos >= len(s.src) {
			return arr
		}
		if s.src[s.pos] == ']' {
			s.pos++
			return arr
		}
		el, ok := s.next()
		if !ok {
			return arr
		}
		arr.items = append(arr.items, el)
	}
}

// literal reads a (...) string body; the opening paren is already consumed.
func (s *scanner) literal() []byte {
	var out []byte
	depth := 1
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		case '\\':
			out = s.escape(out)
		default:
			out = append(out, c)
		}
	}
	return out
}

func (s *scanner) escape(out []byte) []byte {
	if s.pos >= len(s.src) {
		return out
	}
	c := s.src[s.pos]
	s.pos++
	switch c {
	case 'n':
		return append(out, '\n')
	case 'r':
		return append(out, '\r')
	case 't':
		return append(out, '\t')
	case 'b':
		return append(out, '\b')
	case 'f':
		return append(out, '\f')
	case '\r':
		if s.pos < len(s.src) && s.src[s.pos] == '\n' {
			s.pos++
		}
		return out
	case '\n':
		return out
	}
	if c >= '0' && c <= '7' {
		v := int(c - '0')
		for i := 0; i < 2 && s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '7'; i++ {
			v = v*8 + int(s.src[s.pos]-'0')
			s.pos++
		}
		return append(out, byte(v))
	}
	return append(out, c)
}

// hex reads a <...> string body; the opening bracket is already consumed.
func (s *scanner) hex() []byte {
	var digits []byte
	for s.pos < len(s.src) && s.src[s.pos] != '>' {
		if c := s.src[s.pos]; !isSpace(c) {
			digits = append(digits, c)
		}
		s.pos++
	}
	s.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

func (s *scanner) skipDict() {
	depth := 1
	for s.pos < len(s.src) && depth > 0 {
		switch {
		case s.src[s.pos] == '<' && s.peek(1) == '<':
			depth++
			s.pos += 2
		case s.src[s.pos] == '>' && s.peek(1) == '>':
			depth--
			s.pos += 2
		default:
			s.pos++
		}
	}
}

// skipInlineImage jumps past binary inline image data up to EI.
func (s *scanner) skipInlineImage() {
	for s.pos+2 < len(s.src) {
		if isSpace(s.src[s.pos]) && s.src[s.pos+1] == 'E' && s.src[s.pos+2] == 'I' &&
			(s.pos+3 >= len(s.src) || isSpace(s.src[s.pos+3])) {
			s.pos += 3
			return
		}
		s.pos++
	}
	s.pos = len(s.src)
}
