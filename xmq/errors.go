package xmq

import "fmt"

// InputError signals that a buffer could not be read at all: a UTF-16 byte
// order mark, an empty buffer where content was required, or a buffer past
// the caller's configured size limit.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("xmq: input error: %s", e.Reason)
}

// LexError reports a tokenizer failure: an unterminated quote or comment, a
// stray reserved character, or a malformed escape. Line and Column are
// 1-based and point at the offending byte.
type LexError struct {
	Reason string
	Line   int
	Column int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("xmq: lex error at %d:%d: %s", e.Line, e.Column, e.Reason)
}

// SyntaxError reports a parser-level failure: an unbalanced brace or paren,
// more than one top-level element with no implicit root, a malformed
// DOCTYPE, or a missing attribute name.
type SyntaxError struct {
	Reason string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xmq: syntax error at %d:%d: %s", e.Line, e.Column, e.Reason)
}

// EncodingError reports invalid UTF-8 or a numeric character reference
// outside 0..=0x10FFFF or inside the surrogate range.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("xmq: encoding error: %s", e.Reason)
}

// FormatMismatch reports that a caller asserted a content type (XML, HTML,
// JSON) but the detector found something else.
type FormatMismatch struct {
	Asserted string
	Detected string
}

func (e *FormatMismatch) Error() string {
	return fmt.Sprintf("xmq: format mismatch: asserted %s, detected %s", e.Asserted, e.Detected)
}

// Unsupported reports a request for a feature that is reserved but not
// implemented, namely trim=exact.
type Unsupported struct {
	Feature string
}

func (e *Unsupported) Error() string {
	return fmt.Sprintf("xmq: unsupported: %s", e.Feature)
}

// Warning reports ambiguous quoting that was auto-corrected. It is never
// returned as an error from a public entry point; it is only ever delivered
// through a Logger passed in an Options value.
type Warning struct {
	Reason string
	Line   int
	Column int
}

func (e *Warning) Error() string {
	return fmt.Sprintf("xmq: warning at %d:%d: %s", e.Line, e.Column, e.Reason)
}

// ErrUnsupportedTrimExact is returned whenever a caller requests
// TrimExact.
var ErrUnsupportedTrimExact = &Unsupported{Feature: "trim=exact"}
