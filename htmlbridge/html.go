// Package htmlbridge converts between HTML5 markup and an xmq.Document
// (§6's HTML bridge), built on golang.org/x/net/html the way the
// retrieval pack's DOM-serializer code builds and renders html.Node
// trees: html.Parse/html.Render and the html.Node{Type, Data, Attr}
// shape, rather than a hand-rolled tokenizer. Void elements and
// lax-attribute-equality are the only HTML-specific conventions carried
// into the Document (table/tbody implied-structure reproduction is out
// of scope).
package htmlbridge

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/libxmq/xmq/xmq"
)

// voidElements lists the HTML5 elements that never have a closing tag or
// children, matching html.Render's own void-element list.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Read parses r as HTML5 and returns the resulting Document, rooted at
// <html>.
func Read(r io.Reader) (*xmq.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := xmq.NewDocument()
	id, err := convertFromHTML(doc, root)
	if err != nil {
		return nil, err
	}
	if id != xmq.NoNode {
		if err := doc.AddRoot(id); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// convertFromHTML converts one html.Node (and its subtree) into a Document
// node, returning xmq.NoNode for nodes with no XMQ representation (the
// synthetic html.DocumentNode wrapper itself).
func convertFromHTML(doc *xmq.Document, n *html.Node) (xmq.NodeID, error) {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			id, err := convertFromHTML(doc, c)
			if err != nil {
				return xmq.NoNode, err
			}
			if id == xmq.NoNode || doc.Kind(id) != xmq.ElementNode {
				continue
			}
			return id, nil // the <html> element
		}
		return xmq.NoNode, nil

	case html.ElementNode:
		id := doc.NewElement(n.Data)
		for _, attr := range n.Attr {
			must(doc.AddAttribute(id, xmq.Attribute{
				Name:  attr.Key,
				Value: []xmq.ValueFragment{{Text: attr.Val}},
			}))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			childID, err := convertFromHTML(doc, c)
			if err != nil {
				return xmq.NoNode, err
			}
			if childID == xmq.NoNode {
				continue
			}
			if err := doc.AddChild(id, childID); err != nil {
				return xmq.NoNode, err
			}
		}
		return id, nil

	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return xmq.NoNode, nil
		}
		return doc.NewText(n.Data), nil

	case html.CommentNode:
		return doc.NewComment(n.Data), nil

	case html.DoctypeNode:
		return doc.NewDocType(n.Data), nil

	default:
		return xmq.NoNode, nil
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Write renders doc's first root as HTML5 into w, emitting the standard
// "<!DOCTYPE html>" prologue.
func Write(w io.Writer, doc *xmq.Document) error {
	roots := doc.Roots()
	if len(roots) == 0 {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>")

	node, err := convertToHTML(doc, roots[0])
	if err != nil {
		return err
	}
	if err := html.Render(&buf, node); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func convertToHTML(doc *xmq.Document, id xmq.NodeID) (*html.Node, error) {
	switch doc.Kind(id) {
	case xmq.ElementNode:
		name := doc.Name(id)
		n := &html.Node{
			Type:     html.ElementNode,
			Data:     name,
			DataAtom: atom.Lookup([]byte(name)),
		}
		for _, attr := range doc.Attrs(id) {
			n.Attr = append(n.Attr, html.Attribute{
				Key: attr.Name,
				Val: flattenValue(attr.Value),
			})
		}
		if voidElements[name] {
			return n, nil
		}
		for _, c := range doc.Children(id) {
			child, err := convertToHTML(doc, c)
			if err != nil {
				return nil, err
			}
			if child == nil {
				continue
			}
			n.AppendChild(child)
		}
		return n, nil

	case xmq.TextNode, xmq.CDataNode:
		return &html.Node{Type: html.TextNode, Data: doc.Text(id)}, nil

	case xmq.CommentNode:
		return &html.Node{Type: html.CommentNode, Data: doc.Text(id)}, nil

	case xmq.EntityRefNode:
		return &html.Node{Type: html.TextNode, Data: "&" + doc.EntityName(id) + ";"}, nil

	default:
		return nil, nil
	}
}

func flattenValue(frags []xmq.ValueFragment) string {
	var b strings.Builder
	for _, f := range frags {
		if f.IsEntity {
			b.WriteString("&" + f.Entity + ";")
		} else {
			b.WriteString(f.Text)
		}
	}
	return b.String()
}
