// Package serialize implements the XMQ serializer (§4.5): a depth-first
// walk of an xmq.Document that renders element/attribute/comment/text/PI/
// DocType nodes back into XMQ source, in compact or pretty mode, styled
// through an optional theme.Theme.
package serialize

import (
	"github.com/libxmq/xmq/quoting"
	"github.com/libxmq/xmq/theme"
	"github.com/libxmq/xmq/xmq"
)

// Options configures Write.
type Options struct {
	// Compact selects single-line output: no indentation, value newlines
	// become &#10;, attribute key alignment is disabled.
	Compact bool

	// IndentStep is the number of spaces per nesting level in pretty
	// mode. Zero means the default of 4.
	IndentStep int

	// Theme styles each emitted span by syntactic role. The zero value
	// is theme.Plain (no styling).
	Theme theme.Theme

	// Escape names extra characters that force a value into compound
	// form on emission (§4.4.2 step 4); the zero value escapes nothing
	// beyond what §4.4.2 always requires.
	Escape quoting.EscapeSet

	// Logger receives a Warning whenever quoting chooses an
	// auto-corrected delimiter depth (§7's "ambiguous quoting that was
	// auto-corrected"). Nil discards them.
	Logger xmq.Logger
}

func (o Options) indentStep() int {
	if o.IndentStep <= 0 {
		return 4
	}
	return o.IndentStep
}
