package pathvalidate

import (
	"fmt"
	"unicode/utf8"
)

// UnicodeThreat describes a single dangerous codepoint found in a raw path
// string, before any canonicalization has run.
type UnicodeThreat struct {
	Category  string // "zero-width", "bidi-override", "tag-char", "control-char", "invalid-utf8"
	Codepoint string // e.g. "U+200B"
	Position  int    // byte offset in the input
}

// scanPathUnicode inspects a raw path for smuggling indicators: invisible
// characters, bidirectional overrides, and Unicode tag characters. Paths are
// data, not display text — a human reading an audit log, or a glob matcher
// comparing strings, must see what the filesystem will actually resolve.
// Unlike a command-line scanner, this never downgrades a hit to "audit":
// any match is a hard rejection, since there is no reason a legitimate path
// ever contains one of these codepoints.
func scanPathUnicode(path string) *UnicodeThreat {
	i := 0
	for i < len(path) {
		r, size := utf8.DecodeRuneInString(path[i:])
		if r == utf8.RuneError && size == 1 {
			return &UnicodeThreat{
				Category:  "invalid-utf8",
				Codepoint: fmt.Sprintf("0x%02X", path[i]),
				Position:  i,
			}
		}
		if cat := classifyPathRune(r); cat != "" {
			return &UnicodeThreat{
				Category:  cat,
				Codepoint: fmt.Sprintf("U+%04X", r),
				Position:  i,
			}
		}
		i += size
	}
	return nil
}

func classifyPathRune(r rune) string {
	if isZeroWidth(r) {
		return "zero-width"
	}
	if isBidiOverride(r) {
		return "bidi-override"
	}
	if isTagCharacter(r) {
		return "tag-char"
	}
	if isUnsafeControl(r) {
		return "control-char"
	}
	return ""
}

// isZeroWidth reports whether r is an invisible character historically used
// to hide path segments from a human reviewing a log: zero-width space,
// ZWNJ/ZWJ, the BOM, the word joiner, the Mongolian vowel separator, and the
// LTR/RTL marks.
func isZeroWidth(r rune) bool {
	switch r {
	case 0x200B, 0x200C, 0x200D, 0xFEFF, 0x2060, 0x180E, 0x200E, 0x200F:
		return true
	}
	return false
}

// isBidiOverride reports whether r is a bidirectional control character that
// can make a rendered path differ from the bytes the filesystem resolves.
func isBidiOverride(r rune) bool {
	switch r {
	case '‪', '‫', '‬', '‭', '‮',
		'⁦', '⁧', '⁨', '⁩':
		return true
	}
	return false
}

// isTagCharacter reports whether r falls in the Unicode tag block
// (U+E0000-U+E007F), historically abused to smuggle hidden payloads.
func isTagCharacter(r rune) bool {
	return r >= 0xE0000 && r <= 0xE007F
}

// isUnsafeControl reports whether r is a control character other than the
// three whitespace controls a path must never legitimately need.
func isUnsafeControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return r < 0x20 || r == 0x7F
}
