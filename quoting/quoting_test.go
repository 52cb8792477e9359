package quoting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libxmq/xmq/quoting"
)

func TestUnquoteIncidentalIndent(t *testing.T) {
	body := "\n    rose\n    violet\n    "
	got := quoting.Unquote(body, 0, ' ')
	assert.Equal(t, "rose\nviolet\n", got)
}

func TestUnquoteBaselineWiderThanIncidental(t *testing.T) {
	// First line's own indent (8, from k) exceeds the body's incidental
	// indent (4), so the emitted first line is padded back out.
	body := "  line one\n    line two"
	got := quoting.Unquote(body, 8, ' ')
	assert.Equal(t, "    line one\nline two", got)
}

func TestUnquoteEmptyBody(t *testing.T) {
	assert.Equal(t, "", quoting.Unquote("", 0, ' '))
}

func TestChooseQuotingSafe(t *testing.T) {
	p := quoting.ChooseQuoting("hello", 0, false, quoting.EscapeSet{})
	assert.Equal(t, quoting.FormSafe, p.Form)
	assert.Equal(t, "hello", p.Text)
}

func TestChooseQuotingEmptyIsQuotedOne(t *testing.T) {
	p := quoting.ChooseQuoting("", 0, false, quoting.EscapeSet{})
	assert.Equal(t, quoting.FormQuoted, p.Form)
	assert.Equal(t, 1, p.Delims)
	assert.Equal(t, "'" + "'", quoting.RenderQuoted(p, 0, false))
}

func TestChooseQuotingDepthBumpsRunOfTwo(t *testing.T) {
	p := quoting.ChooseQuoting("he said 'hi' ", 0, false, quoting.EscapeSet{})
	assert.Equal(t, quoting.FormQuoted, p.Form)
	assert.Equal(t, 3, p.Delims)
}

func TestChooseQuotingCompactWithNewlineGoesCompound(t *testing.T) {
	p := quoting.ChooseQuoting("line1\nline2", 0, true, quoting.EscapeSet{})
	assert.Equal(t, quoting.FormCompound, p.Form)
}

func TestSplitCompoundRoundTrip(t *testing.T) {
	decode := map[string]rune{"#10": '\n', "apos": '\''}
	pieces := quoting.SplitCompound("a'b\nc", quoting.EscapeSet{Newlines: true}, false)

	joined, err := quoting.JoinCompound(pieces, func(name string) (rune, bool) {
		r, ok := decode[name]
		return r, ok
	})
	assert.NoError(t, err)
	assert.Equal(t, "a'b\nc", joined)
}

func TestEscapeCommentInvolution(t *testing.T) {
	cases := []string{
		"plain comment",
		"has -- a dash run",
		"many----dashes",
		"",
	}
	for _, c := range cases {
		escaped := quoting.EscapeComment(c)
		assert.Equal(t, c, quoting.UnescapeComment(escaped))
	}
}

func TestFormatLineComment(t *testing.T) {
	assert.Equal(t, "//  hello", quoting.FormatLineComment("  hello  "))
	assert.Equal(t, "//", quoting.FormatLineComment("   "))
}

func TestBlockCommentDepthAvoidsEmbeddedClose(t *testing.T) {
	content := " this */ has one embedded close "
	depth := quoting.BlockCommentDepth(content)
	assert.Equal(t, 2, depth)

	rendered := quoting.FormatBlockComment(content)
	assert.Equal(t, "//*"+content+"*//", rendered)
}

func TestFormatBlockCommentPadsContentWithoutOwnWhitespace(t *testing.T) {
	rendered := quoting.FormatBlockComment("one\ntwo")
	assert.Equal(t, "/* one\ntwo */", rendered)
}
