package pdf

import "unicode/utf16"

// maxRange caps a single bfrange so a corrupt CMap cannot allocate unbounded.
const maxRange = 1 << 16

// ParseToUnicode reads a /ToUnicode CMap stream. It returns the code length
// from the first codespacerange (0 when absent) and the code to text map
// built from the bfchar and bfrange sections.
func ParseToUnicode(data []byte) (codeLen int, m map[uint32]string) {
	m = make(map[uint32]string)
	s := &scanner{src: data}
	var operands []operand

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
		case "endcodespacerange":
			if codeLen == 0 && len(operands) > 0 && operands[0].kind == kindString {
				codeLen = len(operands[0].raw)
			}
		case "endbfchar":
			for i := 0; i+1 < len(operands); i += 2 {
				src, dst := operands[i], operands[i+1]
				if src.kind == kindString && dst.kind == kindString {
					m[codeOf(src.raw)] = utf16BE(dst.raw)
				}
			}
		case "endbfrange":
			for i := 0; i+2 < len(operands); i += 3 {
				bfRange(m, operands[i], operands[i+1], operands[i+2])
			}
		}
		operands = operands[:0]
	}
	return codeLen, m
}

func bfRange(m map[uint32]string, lo, hi, dst operand) {
	if lo.kind != kindString || hi.kind != kindString {
		return
	}
	start, end := codeOf(lo.raw), codeOf(hi.raw)
	if end < start || end-start >= maxRange {
		return
	}

	switch dst.kind {
	case kindString:
		units := make([]uint16, 0, len(dst.raw)/2)
		for j := 0; j+1 < len(dst.raw); j += 2 {
			units = append(units, uint16(dst.raw[j])<<8|uint16(dst.raw[j+1]))
		}
		if len(units) == 0 {
			return
		}
		for off := uint32(0); off <= end-start; off++ {
			next := append([]uint16(nil), units...)
			next[len(next)-1] += uint16(off)
			m[start+off] = string(utf16.Decode(next))
		}
	case kindArray:
		for j, el := range dst.items {
			if uint32(j) > end-start {
				break
			}
			if el.kind == kindString {
				m[start+uint32(j)] = utf16BE(el.raw)
			}
		}
	}
}

func codeOf(raw []byte) uint32 {
	var code uint32
	for _, c := range raw {
		code = code<<8 | uint32(c)
	}
	return code
}
