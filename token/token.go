// Package token implements the XMQ tokenizer (§4.2): a lazy sequence of
// typed tokens pulled from a byte buffer. It follows the token-type enum
// style used throughout the retrieval pack's tokenizer packages (a small
// int Category with a String method, and a plain-data Token struct)
// rather than a tagged union or channel-based generator, keeping the
// tokenizer synchronous and allocation-light per §5.
package token

import "strings"

// Category discriminates a token's lexical class (§4.2 table).
type Category int

const (
	Whitespace Category = iota
	Equals
	BraceLeft
	BraceRight
	ParenLeft
	ParenRight
	CParenLeft
	CParenRight
	Quote
	Entity
	Comment
	Text
	Colon
	EOF
)

func (c Category) String() string {
	switch c {
	case Whitespace:
		return "whitespace"
	case Equals:
		return "equals"
	case BraceLeft:
		return "brace_left"
	case BraceRight:
		return "brace_right"
	case ParenLeft:
		return "paren_left"
	case ParenRight:
		return "paren_right"
	case CParenLeft:
		return "cparen_left"
	case CParenRight:
		return "cparen_right"
	case Quote:
		return "quote"
	case Entity:
		return "entity"
	case Comment:
		return "comment"
	case Text:
		return "text"
	case Colon:
		return "colon"
	case EOF:
		return "eof"
	default:
		return "unknown"
	}
}

// Token is one lexical unit. Start/Stop are byte offsets into the buffer
// the Lexer was constructed with, spanning the full token (including any
// delimiters); the body is not interpreted here, matching §4.2's "only the
// byte range is returned". Line/Column are 1-based and locate Start.
type Token struct {
	Category Category
	Line     int
	Column   int
	Start    int
	Stop     int

	// QuoteDepth is the number of single quotes that delimit a Quote
	// token (the "N" in the "run of N single quotes" rule). Zero for
	// every other category.
	QuoteDepth int

	// Continuation holds the inner body bounds of each quote literal a
	// line-continuation (§4.2: a `\` or `\n` suffix right after the
	// closing quote, then whitespace, then another opening quote) joined
	// into this single token. Empty for an ordinary, unjoined literal.
	Continuation []Segment
}

// Segment is a byte range within the Lexer's source buffer.
type Segment struct {
	Start, Stop int
}

// Raw returns the token's full source text, delimiters included.
func (t Token) Raw(src []byte) string {
	return string(src[t.Start:t.Stop])
}

// Body returns a Quote token's content, with the delimiting quote runs
// stripped from both ends. For any other category it behaves like Raw. A
// token built from a line-continuation (Continuation non-empty) returns
// each joined literal's body concatenated with a newline between them,
// per §4.2.
func (t Token) Body(src []byte) string {
	if t.Category != Quote {
		return t.Raw(src)
	}
	if len(t.Continuation) > 0 {
		parts := make([]string, len(t.Continuation))
		for i, seg := range t.Continuation {
			parts[i] = string(src[seg.Start:seg.Stop])
		}
		return strings.Join(parts, "\n")
	}
	return string(src[t.Start+t.QuoteDepth : t.Stop-t.QuoteDepth])
}
