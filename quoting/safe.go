// Package quoting implements the quote/indent normalizer (§4.4): pure
// string algorithmics with no tree and no I/O, reused by both the parser
// (stripping incidental indentation on ingestion) and the serializer
// (choosing quote depth, compound splitting and indent padding on
// emission).
package quoting

import "strings"

// IsSafeByte reports whether b may appear unquoted inside an XMQ text
// token: not whitespace, not a control byte, not '&' (which begins an
// entity reference), and not one of the reserved delimiter characters
// (§4.2's "safe character" rule, reused here for emission-time safety
// classification per §4.4.2).
func IsSafeByte(b byte) bool {
	if b < 0x20 {
		return false
	}
	switch b {
	case ' ', '\t', '\r', '\n', '=', '{', '}', '(', ')', '\'', '"', '&':
		return false
	}
	return true
}

// IsSafeText reports whether s may be emitted unquoted: every byte passes
// IsSafeByte and s does not begin with "=", "&", "//" or "/*" (§4.4.2 step 1).
func IsSafeText(s string) bool {
	if strings.HasPrefix(s, "=") || strings.HasPrefix(s, "&") ||
		strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/*") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsSafeByte(s[i]) {
			return false
		}
	}
	return true
}
