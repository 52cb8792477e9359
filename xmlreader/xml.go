// Package xmlreader builds an xmq.Document from XML (§6's XML bridge). It
// is grounded directly on ucarion/c14n's Canonicalize: both walk an
// xml.Decoder's RawToken stream and dispatch on xml.StartElement,
// xml.EndElement, xml.CharData, xml.Comment, xml.ProcInst and
// xml.Directive. Canonicalize re-serializes each token immediately;
// Read instead builds a Document, using internal/nsstack for the live
// per-element namespace-scope bookkeeping the streaming walk needs (the
// core XMQ parser resolves namespaces lazily over the finished tree
// instead, since it never streams).
package xmlreader

import (
	"encoding/xml"
	"io"

	"github.com/libxmq/xmq/internal/nsstack"
	"github.com/libxmq/xmq/xmq"
)

// Read decodes r as XML and returns the resulting Document.
func Read(r io.Reader) (*xmq.Document, error) {
	dec := xml.NewDecoder(r)
	doc := xmq.NewDocument()

	var stack []xmq.NodeID // open elements, outermost first
	var nsStack nsstack.Stack

	container := func() xmq.NodeID {
		if len(stack) == 0 {
			return xmq.NoNode
		}
		return stack[len(stack)-1]
	}
	attach := func(id xmq.NodeID) error {
		target := container()
		if target == xmq.NoNode {
			return doc.AddRoot(id)
		}
		return doc.AddChild(target, id)
	}

	for {
		tok, err := dec.RawToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			names := map[string]string{}
			for _, attr := range t.Attr {
				if name, ok := namespaceAttr(attr); ok {
					names[name] = attr.Value
				}
			}
			nsStack.Push(names)

			id := doc.NewElement(t.Name.Local)
			if t.Name.Space != "" {
				doc.SetPrefix(id, t.Name.Space)
			}
			for _, attr := range t.Attr {
				if _, ok := namespaceAttr(attr); ok {
					continue
				}
				must(doc.AddAttribute(id, xmq.Attribute{
					Name:   attr.Name.Local,
					Prefix: attr.Name.Space,
					Value:  []xmq.ValueFragment{{Text: attr.Value}},
				}))
			}
			if err := attach(id); err != nil {
				return nil, err
			}
			if uri, ok := names[""]; ok {
				doc.DeclareDefaultNamespace(id, uri)
			}
			for prefix, uri := range names {
				if prefix != "" {
					doc.DeclareNamespace(id, prefix, uri)
				}
			}
			stack = append(stack, id)

			// Mark every prefix this element or its attributes actually
			// reference as used, mirroring the teacher's visibly-used
			// bookkeeping; xmlwriter trusts Document.ResolveNamespace's
			// ancestor walk for resolution, so the marks themselves are
			// only consulted when a caller asks nsStack.Used() for the
			// bindings this subtree actually exercised.
			if t.Name.Space != "" {
				nsStack.Get(t.Name.Space)
			}
			for _, attr := range t.Attr {
				if attr.Name.Space != "" && attr.Name.Space != "xmlns" {
					nsStack.Get(attr.Name.Space)
				}
			}

		case xml.EndElement:
			nsStack.Pop()
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			if err := attach(doc.NewText(string(t))); err != nil {
				return nil, err
			}

		case xml.Comment:
			if err := attach(doc.NewComment(string(t))); err != nil {
				return nil, err
			}

		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			if err := attach(doc.NewProcessingInstruction(t.Target, string(t.Inst))); err != nil {
				return nil, err
			}

		case xml.Directive:
			payload := string(t)
			const prefix = "DOCTYPE "
			if len(payload) > len(prefix) && payload[:len(prefix)] == prefix {
				payload = payload[len(prefix):]
			}
			if err := attach(doc.NewDocType(payload)); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}

func namespaceAttr(attr xml.Attr) (string, bool) {
	if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
		return "", true
	}
	if attr.Name.Space == "xmlns" {
		return attr.Name.Local, true
	}
	return "", false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
