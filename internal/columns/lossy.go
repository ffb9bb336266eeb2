package columns

import (
	"strings"
	"unicode/utf8"
)

// decodeLossy converts b to valid UTF-8. Each maximal subpart of an
// ill-formed sequence becomes one U+FFFD: "\xff\xfe" yields two replacement
// characters, while the truncated sequence "\xe2\x82" yields one.
func decodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 2)
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			sb.WriteByte(b[i])
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r != utf8.RuneError || size > 1 {
			sb.Write(b[i : i+size])
			i += size
			continue
		}
		sb.WriteRune(utf8.RuneError)
		i += invalidPrefixLen(b[i], b[i+1:])
	}
	return sb.String()
}

// invalidPrefixLen returns the length of the maximal subpart starting with
// lead, given the bytes that follow it. The sequence is known to be invalid.
func invalidPrefixLen(lead byte, rest []byte) int {
	var n int
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		n = 2
	case lead == 0xE0:
		n, lo = 3, 0xA0
	case lead == 0xED:
		n, hi = 3, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		n = 3
	case lead == 0xF0:
		n, lo = 4, 0x90
	case lead == 0xF4:
		n, hi = 4, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		n = 4
	default:
		return 1
	}

	size := 1
	for j := 0; j < len(rest) && size < n; j++ {
		c := rest[j]
		if j == 0 && (c < lo || c > hi) {
			break
		}
		if j > 0 && (c < 0x80 || c > 0xBF) {
			break
		}
		size++
	}
	return size
}
