package parser

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeNumber evaluates a numeric literal. Malformed input yields NaN.
func decodeNumber(raw string) float64 {
	s := strings.ReplaceAll(raw, "_", "")
	s = strings.TrimSuffix(s, "n")
	if s == "" {
		return math.NaN()
	}

	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			return decodeInteger(s, 0)
		}
		if isLegacyOctal(s) {
			return decodeInteger(s[1:], 8)
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func decodeInteger(s string, base int) float64 {
	i, ok := new(big.Int).SetString(s, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}

// isLegacyOctal reports literals such as 017. A literal like 019 stays
// decimal.
func isLegacyOctal(s string) bool {
	for _, c := range s[1:] {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}

// decodeString resolves the escapes of a quoted string literal.
func decodeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch e := body[i]; e {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\r':
			// line continuation, CRLF form
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if r, ok := hexRune(body, i+1, 2); ok {
				sb.WriteRune(r)
				i += 2
			} else {
				sb.WriteByte(e)
			}
		case 'u':
			r, width := unicodeEscape(body, i+1)
			if width == 0 {
				sb.WriteByte(e)
				continue
			}
			sb.WriteRune(r)
			i += width
		default:
			r, size := utf8.DecodeRuneInString(body[i:])
			sb.WriteRune(r)
			i += size - 1
		}
	}
	return sb.String()
}

func hexRune(s string, from, n int) (rune, bool) {
	if from+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[from:from+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// unicodeEscape decodes \uXXXX or \u{X...} starting after the 'u'. It
// returns the rune and the number of bytes consumed.
func unicodeEscape(s string, from int) (rune, int) {
	if from < len(s) && s[from] == '{' {
		end := strings.IndexByte(s[from:], '}')
		if end < 2 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[from+1:from+end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0
		}
		return rune(v), end + 1
	}
	r, ok := hexRune(s, from, 4)
	if !ok {
		return 0, 0
	}
	// surrogate pair
	if r >= 0xD800 && r < 0xDC00 && from+10 <= len(s) && s[from+4] == '\\' && s[from+5] == 'u' {
		if lo, ok := hexRune(s, from+6, 4); ok && lo >= 0xDC00 && lo < 0xE000 {
			return (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000, 10
		}
	}
	return r, 4
}
