// Package xmlwriter renders an xmq.Document as XML (§6's XML bridge). Its
// escaping is hand-rolled the way ucarion/c14n's Canonicalize writes XML
// text and attribute values, rather than encoding/xml's xml.EscapeText:
// EscapeText escapes newlines inside attribute values and the apostrophe
// character in text, which round-trips incorrectly for XMQ content that
// intentionally carries either.
package xmlwriter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/libxmq/xmq/internal/attrorder"
	"github.com/libxmq/xmq/xmq"
)

// Options configures Write.
type Options struct {
	// Declaration, when true, emits the standard XML declaration before
	// the document element.
	Declaration bool

	// Indent, when non-empty, pretty-prints with this per-level prefix
	// (e.g. "  "). Empty means compact, no added whitespace.
	Indent string
}

// Write renders doc's roots as XML into w.
func Write(w io.Writer, doc *xmq.Document, opts Options) error {
	var buf bytes.Buffer
	if opts.Declaration {
		buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
		buf.WriteByte('\n')
	}
	for _, r := range doc.Roots() {
		if err := writeNode(&buf, doc, r, opts, 0); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeNode(buf *bytes.Buffer, doc *xmq.Document, id xmq.NodeID, opts Options, depth int) error {
	switch doc.Kind(id) {
	case xmq.ElementNode:
		return writeElement(buf, doc, id, opts, depth)
	case xmq.TextNode, xmq.CDataNode:
		writeText(buf, doc.Text(id))
		return nil
	case xmq.EntityRefNode:
		fmt.Fprintf(buf, "&%s;", doc.EntityName(id))
		return nil
	case xmq.CommentNode:
		fmt.Fprintf(buf, "<!--%s-->", doc.Text(id))
		return nil
	case xmq.PINode:
		if data := doc.PIData(id); data != "" {
			fmt.Fprintf(buf, "<?%s %s?>", doc.PITarget(id), data)
		} else {
			fmt.Fprintf(buf, "<?%s?>", doc.PITarget(id))
		}
		return nil
	case xmq.DocTypeNode:
		fmt.Fprintf(buf, "<!DOCTYPE %s>", doc.DocTypePayload(id))
		return nil
	default:
		return nil
	}
}

func qname(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}

func writeElement(buf *bytes.Buffer, doc *xmq.Document, id xmq.NodeID, opts Options, depth int) error {
	indent(buf, opts, depth)

	name := qname(doc.Prefix(id), doc.Name(id))
	fmt.Fprintf(buf, "<%s", name)

	declaredInSource := map[string]bool{} // "" or prefix, for xmlns attrs already in the source attribute list
	for _, attr := range doc.Attrs(id) {
		val, err := flattenAttrValue(attr.Value)
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, " %s=\"", qname(attr.Prefix, attr.Name))
		writeAttrValue(buf, val)
		buf.WriteByte('"')

		if attr.Prefix == "" && attr.Name == "xmlns" {
			declaredInSource[""] = true
		} else if attr.Prefix == "xmlns" {
			declaredInSource[attr.Name] = true
		}
	}

	writeSynthesizedNamespaces(buf, doc, id, declaredInSource)

	children := doc.Children(id)
	if len(children) == 0 {
		buf.WriteString("/>")
		if opts.Indent != "" {
			buf.WriteByte('\n')
		}
		return nil
	}

	buf.WriteByte('>')
	onlyText := len(children) == 1 && isTextLike(doc.Kind(children[0]))
	if !onlyText && opts.Indent != "" {
		buf.WriteByte('\n')
	}
	for _, c := range children {
		if err := writeNode(buf, doc, c, opts, depth+1); err != nil {
			return err
		}
	}
	if !onlyText && opts.Indent != "" {
		indent(buf, opts, depth)
	}
	fmt.Fprintf(buf, "</%s>", name)
	if opts.Indent != "" {
		buf.WriteByte('\n')
	}
	return nil
}

func isTextLike(k xmq.Kind) bool {
	return k == xmq.TextNode || k == xmq.CDataNode || k == xmq.EntityRefNode
}

func indent(buf *bytes.Buffer, opts Options, depth int) {
	if opts.Indent == "" {
		return
	}
	for i := 0; i < depth; i++ {
		buf.WriteString(opts.Indent)
	}
}

// writeSynthesizedNamespaces emits xmlns/xmlns:prefix attributes for
// bindings a constructed Document declared directly (DeclareNamespace /
// DeclareDefaultNamespace) rather than as an ordinary source attribute,
// ordered the way the teacher orders c14n's namespace axis.
func writeSynthesizedNamespaces(buf *bytes.Buffer, doc *xmq.Document, id xmq.NodeID, declaredInSource map[string]bool) {
	var decls []attrorder.NSAttr
	if uri, ok := doc.ResolveNamespaceLocal(id, ""); ok && !declaredInSource[""] {
		decls = append(decls, attrorder.NSAttr{Prefix: "", URI: uri})
	}
	for _, p := range doc.LocalNamespacePrefixes(id) {
		if declaredInSource[p] {
			continue
		}
		uri, _ := doc.ResolveNamespaceLocal(id, p)
		decls = append(decls, attrorder.NSAttr{Prefix: p, URI: uri})
	}
	attrorder.Sort(decls)
	for _, d := range decls {
		if d.Prefix == "" {
			fmt.Fprintf(buf, ` xmlns="%s"`, escapeAttr(d.URI))
		} else {
			fmt.Fprintf(buf, ` xmlns:%s="%s"`, d.Prefix, escapeAttr(d.URI))
		}
	}
}

func flattenAttrValue(frags []xmq.ValueFragment) (string, error) {
	var b bytes.Buffer
	for _, f := range frags {
		if f.IsEntity {
			b.WriteString("&" + f.Entity + ";")
		} else {
			b.WriteString(f.Text)
		}
	}
	return b.String(), nil
}

// These mirror ucarion/c14n's hand-rolled escape tables (c14n.go), applied
// directly rather than through xml.EscapeText.
var (
	amp     = []byte("&")
	escAmp  = []byte("&amp;")
	lt      = []byte("<")
	escLt   = []byte("&lt;")
	gt      = []byte(">")
	escGt   = []byte("&gt;")
	cr      = []byte("\r")
	escCr   = []byte("&#xD;")
	quot    = []byte("\"")
	escQuot = []byte("&quot;")
)

func writeText(buf *bytes.Buffer, s string) {
	t := []byte(s)
	t = bytes.ReplaceAll(t, amp, escAmp)
	t = bytes.ReplaceAll(t, lt, escLt)
	t = bytes.ReplaceAll(t, gt, escGt)
	t = bytes.ReplaceAll(t, cr, escCr)
	buf.Write(t)
}

func writeAttrValue(buf *bytes.Buffer, s string) {
	buf.WriteString(escapeAttr(s))
}

func escapeAttr(s string) string {
	t := []byte(s)
	t = bytes.ReplaceAll(t, amp, escAmp)
	t = bytes.ReplaceAll(t, lt, escLt)
	t = bytes.ReplaceAll(t, quot, escQuot)
	t = bytes.ReplaceAll(t, cr, escCr)
	return string(t)
}
