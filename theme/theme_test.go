package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainThemeIsIdentity(t *testing.T) {
	src := []byte(`msg(lang=en) { greeting = hello child }`)
	out, err := Colorize(src, Plain)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(out))
}

func TestDarkBGWrapsElementName(t *testing.T) {
	out, err := Colorize([]byte(`msg`), DarkBG)
	require.NoError(t, err)
	assert.Contains(t, string(out), "msg")
	assert.True(t, strings.HasPrefix(string(out), "\x1b["))
	assert.True(t, strings.HasSuffix(string(out), reset))
}

func TestColorizePreservesByteContentUnderStrip(t *testing.T) {
	src := []byte(`msg(lang=en) { 'hi there' }`)
	out, err := Colorize(src, DarkBG)
	require.NoError(t, err)
	assert.Equal(t, string(src), StripANSI(string(out)))
}

func TestColorizeSyntaxErrorPropagates(t *testing.T) {
	_, err := Colorize([]byte(`}`), Plain)
	require.Error(t, err)
}

func TestHTMLThemeWrapsComment(t *testing.T) {
	out, err := Colorize([]byte(`// a note
msg`), HTMLTheme)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<span class="xmq-comment">`)
}

func TestEscapeTeXSpecialCharacters(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeTeX("100%"))
	assert.Equal(t, `a\_b`, EscapeTeX("a_b"))
}

func TestRoleStringNames(t *testing.T) {
	assert.Equal(t, "element_name", ElementName.String())
	assert.Equal(t, "doctype_keyword", DocTypeKeyword.String())
	assert.Equal(t, "ns_declaration", NSDeclaration.String())
	assert.Equal(t, "unknown", Role(999).String())
}

func TestColorizeGivesXmlnsAttributeItsOwnRole(t *testing.T) {
	th := Theme{NSDeclaration: Style{Prefix: "<ns>", Suffix: "</ns>"}}
	out, err := Colorize([]byte(`svg(xmlns = 'http://www.w3.org/2000/svg')`), th)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<ns>xmlns</ns>")
}

func TestColorizeDistinguishesBraceFromParen(t *testing.T) {
	th := Theme{Brace: Style{Prefix: "B"}, Paren: Style{Prefix: "P"}}
	out, err := Colorize([]byte(`x(a=1) { y }`), th)
	require.NoError(t, err)
	assert.Contains(t, string(out), "P(")
	assert.Contains(t, string(out), "B{")
}
