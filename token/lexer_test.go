package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libxmq/xmq/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	lex := token.NewLexer([]byte(src))
	var toks []token.Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.Category == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func categories(toks []token.Token) []token.Category {
	out := make([]token.Category, len(toks))
	for i, t := range toks {
		out[i] = t.Category
	}
	return out
}

func TestLexSimpleElement(t *testing.T) {
	toks := collect(t, `greeting = 'hello world'`)
	assert.Equal(t, []token.Category{
		token.Text, token.Whitespace, token.Equals, token.Whitespace, token.Quote,
	}, categories(toks))
}

func TestLexEmptyStringLiteral(t *testing.T) {
	toks := collect(t, `x = ''`)
	quote := toks[len(toks)-1]
	assert.Equal(t, token.Quote, quote.Category)
	assert.Equal(t, 1, quote.QuoteDepth)
	assert.Equal(t, "", quote.Body([]byte(`x = ''`)))
}

func TestLexCompoundQuoteDepth(t *testing.T) {
	src := `msg = '''he said 'hi' '''`
	toks := collect(t, src)
	quote := toks[len(toks)-1]
	assert.Equal(t, token.Quote, quote.Category)
	assert.Equal(t, 3, quote.QuoteDepth)
	assert.Equal(t, "he said 'hi' ", quote.Body([]byte(src)))
}

func TestLexParenDisambiguation(t *testing.T) {
	toks := collect(t, `config(mode=fast)`)
	assert.Equal(t, []token.Category{
		token.Text, token.ParenLeft, token.Text, token.Equals, token.Text, token.ParenRight,
	}, categories(toks))
}

func TestLexCompoundParen(t *testing.T) {
	toks := collect(t, `x = ( 'a' &#10; 'b' )`)
	assert.Equal(t, token.CParenLeft, toks[4].Category)
	assert.Equal(t, token.CParenRight, toks[len(toks)-1].Category)
}

func TestLexEntity(t *testing.T) {
	toks := collect(t, `&amp; &#10; &#x1F600;`)
	assert.Equal(t, []token.Category{
		token.Entity, token.Whitespace, token.Entity, token.Whitespace, token.Entity,
	}, categories(toks))
}

func TestLexLineComment(t *testing.T) {
	toks := collect(t, "// hello\nx")
	assert.Equal(t, token.Comment, toks[0].Category)
	assert.Equal(t, "// hello", toks[0].Raw([]byte("// hello\nx")))
}

func TestLexBlockCommentWithEmbeddedCloser(t *testing.T) {
	src := "///* this */ has one *///x"
	toks := collect(t, src)
	assert.Equal(t, token.Comment, toks[0].Category)
	assert.Equal(t, "///* this */ has one *///", toks[0].Raw([]byte(src)))
}

func TestLexUnterminatedQuoteError(t *testing.T) {
	lex := token.NewLexer([]byte(`x = 'unterminated`))
	var err error
	for {
		var tok token.Token
		tok, err = lex.Next()
		if err != nil || tok.Category == token.EOF {
			break
		}
	}
	require.Error(t, err)
}

func TestLexUnexpectedCloseParen(t *testing.T) {
	lex := token.NewLexer([]byte(`)`))
	_, err := lex.Next()
	require.Error(t, err)
}

func TestLexQuoteContinuationBareNewline(t *testing.T) {
	src := "x = 'a'\n      'b'"
	toks := collect(t, src)
	quote := toks[len(toks)-1]
	assert.Equal(t, token.Quote, quote.Category)
	assert.Equal(t, "a\nb", quote.Body([]byte(src)))
}

func TestLexQuoteContinuationBackslashNewline(t *testing.T) {
	src := "x = 'a'\\\n  'b'"
	toks := collect(t, src)
	quote := toks[len(toks)-1]
	assert.Equal(t, token.Quote, quote.Category)
	assert.Equal(t, "a\nb", quote.Body([]byte(src)))
}

func TestLexQuoteContinuationChainsMultiple(t *testing.T) {
	src := "x = 'a'\n 'b'\n 'c'"
	toks := collect(t, src)
	quote := toks[len(toks)-1]
	assert.Equal(t, token.Quote, quote.Category)
	assert.Equal(t, "a\nb\nc", quote.Body([]byte(src)))
}

func TestLexQuoteBackslashNotFollowedByNewlineFails(t *testing.T) {
	lex := token.NewLexer([]byte(`x = 'a'\b`))
	var err error
	for {
		var tok token.Token
		tok, err = lex.Next()
		if err != nil || tok.Category == token.EOF {
			break
		}
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backslash continuation not followed by a newline")
}

func TestLexQuoteNoContinuationWhenNoFollowingQuote(t *testing.T) {
	src := "x = 'a'\ny = 'b'"
	toks := collect(t, src)
	var quotes []token.Token
	for _, tok := range toks {
		if tok.Category == token.Quote {
			quotes = append(quotes, tok)
		}
	}
	require.Len(t, quotes, 2)
	assert.Equal(t, "a", quotes[0].Body([]byte(src)))
	assert.Equal(t, "b", quotes[1].Body([]byte(src)))
}
