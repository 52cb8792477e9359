// Package detect classifies a byte buffer as XMQ, XML, HTML or JSON from
// its leading bytes, implementing §4.1 of the XMQ specification.
package detect

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// ContentType is the result of classifying a buffer.
type ContentType int

const (
	Unknown ContentType = iota
	XMQ
	XML
	HTML
	JSON
)

func (c ContentType) String() string {
	switch c {
	case XMQ:
		return "xmq"
	case XML:
		return "xml"
	case HTML:
		return "html"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Detect classifies b per §4.1: skip an optional UTF-8 BOM, reject UTF-16
// BOMs as Unknown, skip leading whitespace and leading comments, then
// classify the first significant byte.
func Detect(b []byte) ContentType {
	if bytes.HasPrefix(b, utf16LEBOM) || bytes.HasPrefix(b, utf16BEBOM) {
		return Unknown
	}
	if bytes.HasPrefix(b, utf8BOM) {
		b = b[len(utf8BOM):]
	}

	for {
		b = skipLeadingWhitespace(b)
		if len(b) == 0 {
			return Unknown
		}

		if bytes.HasPrefix(b, []byte("<!--")) {
			end := bytes.Index(b[4:], []byte("-->"))
			if end < 0 {
				return Unknown
			}
			b = b[4+end+3:]
			continue
		}

		return classifyFirst(b)
	}
}

func skipLeadingWhitespace(b []byte) []byte {
	i := 0
	for i < len(b) {
		r, size := utf8.DecodeRune(b[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return b[i:]
}

func classifyFirst(b []byte) ContentType {
	if bytes.HasPrefix(b, []byte("<?xml")) {
		return XML
	}

	if b[0] == '<' {
		if hasCaseInsensitivePrefix(b, "<!doctype") {
			if containsCaseInsensitive(b, "html") {
				return HTML
			}
			return XML
		}
		if hasCaseInsensitivePrefix(b, "<html") && (len(b) == 5 || !isIdentContinuation(rune(b[5]))) {
			return HTML
		}
		return XML
	}

	switch b[0] {
	case '{', '[', '"':
		return JSON
	}
	if b[0] >= '0' && b[0] <= '9' {
		return JSON
	}
	if b[0] == '-' && len(b) > 1 && b[1] >= '0' && b[1] <= '9' {
		return JSON
	}

	if isStandaloneLiteral(b, "true") || isStandaloneLiteral(b, "false") || isStandaloneLiteral(b, "null") {
		return JSON
	}

	return XMQ
}

func hasCaseInsensitivePrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	return bytes.EqualFold(b[:len(prefix)], []byte(prefix))
}

func containsCaseInsensitive(b []byte, needle string) bool {
	return bytes.Contains(bytes.ToLower(b), []byte(needle))
}

func isStandaloneLiteral(b []byte, word string) bool {
	if !hasCaseInsensitivePrefix(b, word) {
		return false
	}
	if len(b) == len(word) {
		return true
	}
	r, _ := utf8.DecodeRune(b[len(word):])
	return !isIdentContinuation(r)
}

func isIdentContinuation(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}
