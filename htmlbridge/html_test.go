package htmlbridge_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libxmq/xmq/htmlbridge"
	"github.com/libxmq/xmq/xmq"
)

func TestReadDetectsRootElement(t *testing.T) {
	doc, err := htmlbridge.Read(strings.NewReader(`<html><body><p>hi</p></body></html>`))
	require.NoError(t, err)

	root := doc.Roots()[0]
	assert.Equal(t, "html", doc.Name(root))
}

func TestReadSkipsWhitespaceOnlyText(t *testing.T) {
	doc, err := htmlbridge.Read(strings.NewReader("<div>\n  <span>hi</span>\n</div>"))
	require.NoError(t, err)

	div := findByName(doc, doc.Roots()[0], "div")
	require.NotNil(t, div)
	for _, c := range doc.Children(*div) {
		assert.NotEqual(t, xmq.TextNode, doc.Kind(c))
	}
}

func TestWriteEmitsDoctype(t *testing.T) {
	doc, err := htmlbridge.Read(strings.NewReader(`<p>hi</p>`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, htmlbridge.Write(&buf, doc))
	assert.True(t, strings.HasPrefix(buf.String(), "<!DOCTYPE html>"))
}

func findByName(doc *xmq.Document, id xmq.NodeID, name string) *xmq.NodeID {
	if doc.Kind(id) == xmq.ElementNode && doc.Name(id) == name {
		return &id
	}
	if doc.Kind(id) != xmq.ElementNode {
		return nil
	}
	for _, c := range doc.Children(id) {
		if found := findByName(doc, c, name); found != nil {
			return found
		}
	}
	return nil
}
