package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libxmq/xmq/parse"
	"github.com/libxmq/xmq/xmq"
)

func TestParseEmptyElement(t *testing.T) {
	doc, err := parse.Parse([]byte("item"), parse.Options{})
	require.NoError(t, err)
	roots := doc.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, xmq.ElementNode, doc.Kind(roots[0]))
	assert.Equal(t, "item", doc.Name(roots[0]))
	assert.Empty(t, doc.Children(roots[0]))
}

func TestParseEmptyStringValue(t *testing.T) {
	doc, err := parse.Parse([]byte("item = ''"), parse.Options{})
	require.NoError(t, err)
	item := doc.Roots()[0]
	children := doc.Children(item)
	require.Len(t, children, 1, "an empty quoted value is one empty text child, distinct from no value at all")
	assert.Equal(t, xmq.TextNode, doc.Kind(children[0]))
	assert.Equal(t, "", doc.Text(children[0]))
}

func TestParseElementValueText(t *testing.T) {
	doc, err := parse.Parse([]byte("name = John"), parse.Options{})
	require.NoError(t, err)
	item := doc.Roots()[0]
	children := doc.Children(item)
	require.Len(t, children, 1)
	assert.Equal(t, xmq.TextNode, doc.Kind(children[0]))
	assert.Equal(t, "John", doc.Text(children[0]))
}

func TestParseBraceBody(t *testing.T) {
	doc, err := parse.Parse([]byte("root { a = 1 b = 2 }"), parse.Options{})
	require.NoError(t, err)
	root := doc.Roots()[0]
	kids := doc.Children(root)
	require.Len(t, kids, 2)
	assert.Equal(t, "a", doc.Name(kids[0]))
	assert.Equal(t, "1", doc.Text(doc.Children(kids[0])[0]))
	assert.Equal(t, "b", doc.Name(kids[1]))
	assert.Equal(t, "2", doc.Text(doc.Children(kids[1])[0]))
}

func TestParseNestedSiblingsDoNotLeak(t *testing.T) {
	// b has no body; c must still be a's child, not b's.
	doc, err := parse.Parse([]byte("a { b c }"), parse.Options{})
	require.NoError(t, err)
	a := doc.Roots()[0]
	kids := doc.Children(a)
	require.Len(t, kids, 2)
	assert.Equal(t, "b", doc.Name(kids[0]))
	assert.Equal(t, "c", doc.Name(kids[1]))
	assert.Empty(t, doc.Children(kids[0]))
}

func TestParseAttributes(t *testing.T) {
	doc, err := parse.Parse([]byte("item(id=42 color=red)"), parse.Options{})
	require.NoError(t, err)
	item := doc.Roots()[0]
	attrs := doc.Attrs(item)
	require.Len(t, attrs, 2)
	assert.Equal(t, "id", attrs[0].Name)
	assert.Equal(t, "42", attrs[0].Value[0].Text)
	assert.Equal(t, "color", attrs[1].Name)
	assert.Equal(t, "red", attrs[1].Value[0].Text)
}

func TestParseValuelessAttribute(t *testing.T) {
	doc, err := parse.Parse([]byte("item(disabled)"), parse.Options{})
	require.NoError(t, err)
	item := doc.Roots()[0]
	attrs := doc.Attrs(item)
	require.Len(t, attrs, 1)
	assert.Equal(t, "disabled", attrs[0].Name)
	assert.Empty(t, attrs[0].Value)
}

func TestParseNamespacePrefix(t *testing.T) {
	doc, err := parse.Parse([]byte("svg:rect(svg:width=10)"), parse.Options{})
	require.NoError(t, err)
	rect := doc.Roots()[0]
	assert.Equal(t, "rect", doc.Name(rect))
	assert.Equal(t, "svg", doc.Prefix(rect))
	attrs := doc.Attrs(rect)
	require.Len(t, attrs, 1)
	assert.Equal(t, "svg", attrs[0].Prefix)
}

func TestParseNamespaceDeclarationResolves(t *testing.T) {
	doc, err := parse.Parse([]byte("svg(xmlns:svg='http://www.w3.org/2000/svg') { svg:rect }"), parse.Options{})
	require.NoError(t, err)
	svg := doc.Roots()[0]
	rect := doc.Children(svg)[0]
	uri, ok := doc.ResolveNamespace(rect, "svg")
	require.True(t, ok)
	assert.Equal(t, "http://www.w3.org/2000/svg", uri)
}

func TestParseImplicitRootWrapsMultipleTopLevelNodes(t *testing.T) {
	doc, err := parse.Parse([]byte("a b"), parse.Options{})
	require.NoError(t, err)
	roots := doc.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "root", doc.Name(roots[0]))
	kids := doc.Children(roots[0])
	require.Len(t, kids, 2)
	assert.Equal(t, "a", doc.Name(kids[0]))
	assert.Equal(t, "b", doc.Name(kids[1]))
}

func TestParseCustomRootName(t *testing.T) {
	doc, err := parse.Parse([]byte("a b"), parse.Options{RootName: "document"})
	require.NoError(t, err)
	assert.Equal(t, "document", doc.Name(doc.Roots()[0]))
}

func TestParseTextMergesAcrossEntities(t *testing.T) {
	doc, err := parse.Parse([]byte("msg { 'tom ' &amp; ' jerry' }"), parse.Options{})
	require.NoError(t, err)
	msg := doc.Roots()[0]
	kids := doc.Children(msg)
	require.Len(t, kids, 1, "merged into a single Text node")
	assert.Equal(t, xmq.TextNode, doc.Kind(kids[0]))
	assert.Equal(t, "tom & jerry", doc.Text(kids[0]))
}

func TestParseNoMergeTextKeepsEntityStandalone(t *testing.T) {
	doc, err := parse.Parse([]byte("msg { 'tom ' &amp; ' jerry' }"), parse.Options{NoMergeText: true})
	require.NoError(t, err)
	msg := doc.Roots()[0]
	kids := doc.Children(msg)
	require.Len(t, kids, 3)
	assert.Equal(t, xmq.TextNode, doc.Kind(kids[0]))
	assert.Equal(t, xmq.EntityRefNode, doc.Kind(kids[1]))
	assert.Equal(t, "amp", doc.EntityName(kids[1]))
	assert.Equal(t, xmq.TextNode, doc.Kind(kids[2]))
}

func TestParseUnknownNamedEntityStaysStandalone(t *testing.T) {
	doc, err := parse.Parse([]byte("msg = &copyright;"), parse.Options{})
	require.NoError(t, err)
	msg := doc.Roots()[0]
	kids := doc.Children(msg)
	require.Len(t, kids, 1)
	assert.Equal(t, xmq.EntityRefNode, doc.Kind(kids[0]))
	assert.Equal(t, "copyright", doc.EntityName(kids[0]))
}

func TestParseOutOfRangeNumericEntityIsEncodingError(t *testing.T) {
	_, err := parse.Parse([]byte("msg = &#xD800;"), parse.Options{})
	require.Error(t, err)
	_, ok := err.(*xmq.EncodingError)
	assert.True(t, ok, "expected *xmq.EncodingError, got %T", err)
}

func TestParseCompoundElementValue(t *testing.T) {
	doc, err := parse.Parse([]byte("msg = (hello&apos;world)"), parse.Options{})
	require.NoError(t, err)
	msg := doc.Roots()[0]
	kids := doc.Children(msg)
	require.Len(t, kids, 1)
	assert.Equal(t, "hello'world", doc.Text(kids[0]))
}

func TestParseComment(t *testing.T) {
	doc, err := parse.Parse([]byte("// a note\nitem"), parse.Options{})
	require.NoError(t, err)
	roots := doc.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, xmq.CommentNode, doc.Kind(roots[0]))
	assert.Equal(t, " a note", doc.Text(roots[0]))
	assert.Equal(t, "item", doc.Name(roots[1]))
}

func TestParseAdjacentCommentsMerge(t *testing.T) {
	doc, err := parse.Parse([]byte("// line one\n// line two\nitem"), parse.Options{})
	require.NoError(t, err)
	roots := doc.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, " line one\n line two", doc.Text(roots[0]))
}

func TestParseTrimExactRejected(t *testing.T) {
	_, err := parse.Parse([]byte("item"), parse.Options{Trim: xmq.TrimExact})
	assert.Equal(t, xmq.ErrUnsupportedTrimExact, err)
}

func TestParseUnterminatedBraceIsSyntaxError(t *testing.T) {
	_, err := parse.Parse([]byte("item {"), parse.Options{})
	require.Error(t, err)
	_, ok := err.(*xmq.SyntaxError)
	assert.True(t, ok, "expected *xmq.SyntaxError, got %T", err)
}
