package token

import (
	"github.com/libxmq/xmq/quoting"
	"github.com/libxmq/xmq/xmq"
)

// Lexer pulls Tokens out of a byte buffer one at a time. It carries its own
// state (no package-level mutable state), matching §5's "every parse call
// carries its own state" resource model.
type Lexer struct {
	src  []byte
	pos  int
	line int
	col  int

	// lastSignificant is the category of the last non-whitespace token
	// emitted, used to disambiguate '(' as ParenLeft (after an
	// identifier) vs CParenLeft (after '=').
	lastSignificant Category

	// parenStack records which kind of '(' is open, so the matching ')'
	// is categorized the same way.
	parenStack []Category
}

// NewLexer returns a Lexer over src. src is not copied; the caller must
// keep it alive and unmodified for the Lexer's lifetime.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		switch l.src[l.pos+i] {
		case '\n':
			l.line++
			l.col = 1
		case '\t':
			l.col += 8
		default:
			l.col++
		}
	}
	l.pos += n
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// isSafe reports whether b may appear unquoted in a Text token per the
// "safe character" rule (§4.2). '&' is unsafe per byte, so an entity
// always starts a new token; the comment prefixes are checked separately by
// the caller via peek. The per-byte rule is shared with the quoting
// package's emission-time safety classification.
func isSafe(b byte) bool {
	return quoting.IsSafeByte(b)
}

// Next returns the next token, or an EOF token once the buffer is
// exhausted. It returns an error for any condition in §4.2's Failure list.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{Category: EOF, Line: l.line, Column: l.col, Start: l.pos, Stop: l.pos}, nil
	}

	startLine, startCol, start := l.line, l.col, l.pos
	b := l.src[l.pos]

	switch {
	case isWhitespace(b):
		return l.lexWhitespace(startLine, startCol, start)
	case b == '=':
		l.advance(1)
		return l.finish(Equals, startLine, startCol, start)
	case b == '{':
		l.advance(1)
		return l.finish(BraceLeft, startLine, startCol, start)
	case b == '}':
		l.advance(1)
		return l.finish(BraceRight, startLine, startCol, start)
	case b == ':':
		l.advance(1)
		return l.finish(Colon, startLine, startCol, start)
	case b == '(':
		return l.lexOpenParen(startLine, startCol, start)
	case b == ')':
		return l.lexCloseParen(startLine, startCol, start)
	case b == '\'':
		return l.lexQuote(startLine, startCol, start)
	case b == '&':
		return l.lexEntity(startLine, startCol, start)
	case b == '/' && l.peek(1) == '/':
		return l.lexLineComment(startLine, startCol, start)
	case b == '/' && l.peekIsBlockCommentOpen():
		return l.lexBlockComment(startLine, startCol, start)
	default:
		return l.lexText(startLine, startCol, start)
	}
}

func (l *Lexer) finish(cat Category, line, col, start int) (Token, error) {
	t := Token{Category: cat, Line: line, Column: col, Start: start, Stop: l.pos}
	l.lastSignificant = cat
	return t, nil
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) lexWhitespace(line, col, start int) (Token, error) {
	for l.pos < len(l.src) && isWhitespace(l.src[l.pos]) {
		l.advance(1)
	}
	return Token{Category: Whitespace, Line: line, Column: col, Start: start, Stop: l.pos}, nil
}

func (l *Lexer) lexOpenParen(line, col, start int) (Token, error) {
	cat := ParenLeft
	if l.lastSignificant == Equals {
		cat = CParenLeft
	}
	l.advance(1)
	l.parenStack = append(l.parenStack, cat)
	return l.finish(cat, line, col, start)
}

func (l *Lexer) lexCloseParen(line, col, start int) (Token, error) {
	if len(l.parenStack) == 0 {
		return Token{}, &xmq.LexError{Reason: "unexpected ')' with no matching '('", Line: line, Column: col}
	}
	opened := l.parenStack[len(l.parenStack)-1]
	l.parenStack = l.parenStack[:len(l.parenStack)-1]

	cat := ParenRight
	if opened == CParenLeft {
		cat = CParenRight
	}
	l.advance(1)
	return l.finish(cat, line, col, start)
}

// lexQuote implements §4.2's quote lexing: an opening run of N >= 1 single
// quotes, a body that extends to the next run of exactly N quotes, with
// the N==2 run being the reserved empty-string literal rather than an
// opening delimiter. A `\` or `\n` suffix immediately after the closing
// quote, followed by whitespace and another opening quote, joins the two
// literals into one token whose Body concatenates both bodies with a
// newline (§4.2's line-continuation rule).
func (l *Lexer) lexQuote(line, col, start int) (Token, error) {
	depth, bodyStart, bodyEnd, err := l.lexOneQuoteLiteral(line, col)
	if err != nil {
		return Token{}, err
	}
	segments := []Segment{{Start: bodyStart, Stop: bodyEnd}}

	for {
		ok, err := l.tryConsumeQuoteContinuation()
		if err != nil {
			return Token{}, err
		}
		if !ok {
			break
		}
		_, nextStart, nextEnd, err := l.lexOneQuoteLiteral(l.line, l.col)
		if err != nil {
			return Token{}, err
		}
		segments = append(segments, Segment{Start: nextStart, Stop: nextEnd})
	}

	tok := Token{Category: Quote, Line: line, Column: col, Start: start, Stop: l.pos, QuoteDepth: depth}
	if len(segments) > 1 {
		tok.Continuation = segments
	}
	l.lastSignificant = Quote
	return tok, nil
}

// lexOneQuoteLiteral consumes one opening run of quotes and its matching
// close, returning the opening run's length (1 for the N==2 empty-string
// special case) and the byte bounds of the body between the delimiters.
func (l *Lexer) lexOneQuoteLiteral(line, col int) (depth, bodyStart, bodyEnd int, err error) {
	runStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] == '\'' {
		l.advance(1)
	}
	n := l.pos - runStart

	if n == 2 {
		// The empty string literal: '' with no immediately following
		// quote extending the run.
		return 1, l.pos, l.pos, nil
	}

	// Any other run length (including 1, 3, 4, ...) opens a literal
	// delimited by N quotes; find the next run of exactly N quotes.
	bodyStart = l.pos
	for {
		idx := indexByte(l.src[l.pos:], '\'')
		if idx < 0 {
			return 0, 0, 0, &xmq.LexError{Reason: "unterminated quote", Line: line, Column: col}
		}
		l.advance(idx)
		closeStart := l.pos
		for l.pos < len(l.src) && l.src[l.pos] == '\'' {
			l.advance(1)
		}
		closeLen := l.pos - closeStart
		if closeLen == n {
			bodyEnd = closeStart
			return n, bodyStart, bodyEnd, nil
		}
		// A run of any other length is part of the body; keep scanning
		// from here.
	}
}

// tryConsumeQuoteContinuation looks immediately past the current position
// for a line-continuation: an optional `\` (which must then be followed by
// `\n`, else it is the explicit "backslash continuation not followed by a
// newline" failure), or a bare `\n`, followed by horizontal whitespace and
// another opening quote. It only advances the Lexer when a continuation is
// actually found; an ordinary newline not followed by a quote is left
// untouched for the next Next() call to lex as plain whitespace.
func (l *Lexer) tryConsumeQuoteContinuation() (bool, error) {
	i := l.pos
	if i >= len(l.src) {
		return false, nil
	}

	if l.src[i] == '\\' {
		backslashLine, backslashCol := l.posAt(i)
		i++
		if i >= len(l.src) || l.src[i] != '\n' {
			return false, &xmq.LexError{
				Reason: "backslash continuation not followed by a newline",
				Line:   backslashLine,
				Column: backslashCol,
			}
		}
		i++
	} else if l.src[i] == '\n' {
		i++
	} else {
		return false, nil
	}

	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
		i++
	}
	if i >= len(l.src) || l.src[i] != '\'' {
		return false, nil
	}

	l.advance(i - l.pos)
	return true, nil
}

// posAt reports the line/column that would result from advancing to byte
// offset i, without mutating the Lexer.
func (l *Lexer) posAt(i int) (line, col int) {
	line, col = l.line, l.col
	for p := l.pos; p < i; p++ {
		switch l.src[p] {
		case '\n':
			line++
			col = 1
		case '\t':
			col += 8
		default:
			col++
		}
	}
	return line, col
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// lexEntity implements &name;, &#d+; and &#xH+;.
func (l *Lexer) lexEntity(line, col, start int) (Token, error) {
	l.advance(1) // consume '&'
	if l.pos < len(l.src) && l.src[l.pos] == '#' {
		l.advance(1)
		if l.pos < len(l.src) && (l.src[l.pos] == 'x' || l.src[l.pos] == 'X') {
			l.advance(1)
			digits := 0
			for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
				l.advance(1)
				digits++
			}
			if digits == 0 {
				return Token{}, &xmq.LexError{Reason: "invalid numeric character reference", Line: line, Column: col}
			}
		} else {
			digits := 0
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.advance(1)
				digits++
			}
			if digits == 0 {
				return Token{}, &xmq.LexError{Reason: "invalid numeric character reference", Line: line, Column: col}
			}
		}
	} else {
		nameLen := 0
		for l.pos < len(l.src) && isNameByte(l.src[l.pos]) {
			l.advance(1)
			nameLen++
		}
		if nameLen == 0 {
			return Token{}, &xmq.LexError{Reason: "empty entity name", Line: line, Column: col}
		}
	}

	if l.pos >= len(l.src) || l.src[l.pos] != ';' {
		return Token{}, &xmq.LexError{Reason: "entity reference not terminated by ';'", Line: line, Column: col}
	}
	l.advance(1)
	return l.finish(Entity, line, col, start)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isNameByte(b byte) bool {
	return isSafe(b) && b != ';'
}

func (l *Lexer) lexLineComment(line, col, start int) (Token, error) {
	l.advance(2) // "//"
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance(1)
	}
	return l.finish(Comment, line, col, start)
}

// peekIsBlockCommentOpen reports whether the current position begins a
// run of N>=1 slashes followed by '*'.
func (l *Lexer) peekIsBlockCommentOpen() bool {
	i := l.pos
	for i < len(l.src) && l.src[i] == '/' {
		i++
	}
	return i > l.pos && i < len(l.src) && l.src[i] == '*'
}

// lexBlockComment implements the N-slash opening/closing rule: a comment
// opened by N leading slashes before '*' is terminated by '*' followed by
// a run of at least N slashes, so "///* ... *///" is a single comment that
// may itself contain "*/".
func (l *Lexer) lexBlockComment(line, col, start int) (Token, error) {
	openStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] == '/' {
		l.advance(1)
	}
	n := l.pos - openStart
	l.advance(1) // consume '*'

	for {
		idx := indexByte(l.src[l.pos:], '*')
		if idx < 0 {
			return Token{}, &xmq.LexError{Reason: "unterminated block comment", Line: line, Column: col}
		}
		l.advance(idx)
		starPos := l.pos
		l.advance(1) // consume '*'
		slashRunStart := l.pos
		for l.pos < len(l.src) && l.src[l.pos] == '/' {
			l.advance(1)
		}
		if l.pos-slashRunStart >= n {
			return l.finish(Comment, line, col, start)
		}
		// Not a real close (too few trailing slashes): keep the '*' as
		// body content and resume scanning right after it.
		_ = starPos
	}
}

func (l *Lexer) lexText(line, col, start int) (Token, error) {
	// In a value position (right after '=' or inside a compound value) ':'
	// is ordinary text; in a name position it separates prefix from local
	// name and is lexed as its own Colon token.
	inValue := l.lastSignificant == Equals ||
		(len(l.parenStack) > 0 && l.parenStack[len(l.parenStack)-1] == CParenLeft)
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if !isSafe(b) {
			break
		}
		if b == ':' && !inValue {
			break
		}
		if b == '/' && (l.peek(1) == '/' || l.peekIsBlockCommentOpen()) {
			break
		}
		l.advance(1)
	}
	if l.pos == start {
		return Token{}, &xmq.LexError{Reason: "unexpected character", Line: line, Column: col}
	}
	return l.finish(Text, line, col, start)
}
