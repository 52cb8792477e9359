package parse

import (
	"github.com/libxmq/xmq/quoting"
	"github.com/libxmq/xmq/token"
	"github.com/libxmq/xmq/xmq"
)

// Options configures Parse.
type Options struct {
	// Trim selects the incidental-whitespace policy applied to quoted
	// text (§4.4.1). TrimExact is rejected with ErrUnsupportedTrimExact.
	Trim xmq.TrimMode

	// NoMergeText disables folding adjacent text, predefined entities and
	// numeric character references into a single Text node (§4.3);
	// every token then becomes its own node, in source order.
	NoMergeText bool

	// RootName names the synthetic element Parse wraps around the
	// document when it finds more than one top-level element. Empty means
	// "root".
	RootName string
}

func (o Options) rootName() string {
	if o.RootName == "" {
		return "root"
	}
	return o.RootName
}

// Parse reads an XMQ buffer and builds an xmq.Document (§4.3). When there
// is more than one top-level element, all top-level nodes are wrapped under
// a synthetic root element named by Options.RootName; a single top-level
// element keeps any sibling comments, PIs or text as separate roots.
func Parse(src []byte, opts Options) (doc *xmq.Document, err error) {
	if opts.Trim == xmq.TrimExact {
		return nil, xmq.ErrUnsupportedTrimExact
	}

	b := &builder{doc: xmq.NewDocument(), opts: opts, curElem: xmq.NoNode, src: src}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = &xmq.SyntaxError{Reason: e.Error()}
				return
			}
			panic(r)
		}
	}()

	if werr := Walk(src, b.table()); werr != nil {
		return nil, werr
	}

	b.wrapMultipleRoots(opts.rootName())
	return b.doc, nil
}

// builder accumulates an xmq.Document from the RoleTable callbacks Walk
// invokes. It keeps only the state the grammar genuinely requires: a
// container stack for open brace-bodied elements, and per-attribute
// scratch fields that reset as each new attribute or element begins.
type builder struct {
	doc  *xmq.Document
	opts Options
	src  []byte

	stack   []xmq.NodeID // open brace-bodied elements, outermost first
	curElem xmq.NodeID   // most recently named element, target for its attrs/value

	pendingElemPrefix string
	pendingAttrPrefix string

	attrName      string
	attrPrefix    string
	attrFragments []xmq.ValueFragment
	haveAttr      bool // an attribute is currently being accumulated

	pendingNS map[string]string // prefix ("" = default) -> uri, for curElem
}

func (b *builder) table() RoleTable {
	return RoleTable{
		ElementNS:                  b.elementNS,
		ElementName:                b.elementName,
		NSColon:                    noopTok,
		Equals:                     noopTok,
		BraceLeft:                  b.braceLeft,
		BraceRight:                 b.braceRight,
		AParLeft:                   b.aparLeft,
		AParRight:                  b.aparRight,
		CParLeft:                   noopTok,
		CParRight:                  noopTok,
		Quote:                      b.bareQuote,
		AttrNS:                     b.attrNS,
		AttrKey:                    b.attrKey,
		AttrValueText:              b.attrValueText,
		AttrValueQuote:             b.attrValueQuote,
		AttrValueEntity:            b.attrValueEntity,
		AttrValueCompoundQuote:     b.attrValueQuote,
		AttrValueCompoundEntity:    b.attrValueEntity,
		ElementValueText:           b.elementValueText,
		ElementValueQuote:          b.elementValueQuote,
		ElementValueEntity:         b.elementValueEntity,
		ElementValueCompoundQuote:  b.elementValueQuote,
		ElementValueCompoundEntity: b.elementValueEntity,
		Entity:                     b.bareEntity,
		Comment:                    b.comment,
		Whitespace:                 noopTok,
	}
}

func (b *builder) container() xmq.NodeID {
	if len(b.stack) == 0 {
		return xmq.NoNode
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) attach(target, id xmq.NodeID) error {
	if target == xmq.NoNode {
		return b.doc.AddRoot(id)
	}
	return b.doc.AddChild(target, id)
}

func (b *builder) lastChild(target xmq.NodeID) xmq.NodeID {
	var children []xmq.NodeID
	if target == xmq.NoNode {
		children = b.doc.Roots()
	} else {
		children = b.doc.Children(target)
	}
	if len(children) == 0 {
		return xmq.NoNode
	}
	return children[len(children)-1]
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// appendText attaches s to target, merging into an immediately preceding
// Text node when merging is enabled (§4.3). s may be empty — an empty
// quote literal (`x = ''`) must still produce an empty Text child, to
// distinguish "element with an empty value" from "element with no value"
// (§8: `x = ''` parses to one empty text child; `x` parses to none).
func (b *builder) appendText(target xmq.NodeID, s string) error {
	if !b.opts.NoMergeText {
		if last := b.lastChild(target); last != xmq.NoNode && b.doc.Kind(last) == xmq.TextNode {
			b.doc.SetText(last, b.doc.Text(last)+s)
			return nil
		}
	}
	return b.attach(target, b.doc.NewText(s))
}

// appendEntity attaches an entity reference to target: folded into
// adjacent text when it is predefined/numeric and merging is enabled,
// otherwise kept as its own EntityRefNode.
func (b *builder) appendEntity(target xmq.NodeID, name string) error {
	if !b.opts.NoMergeText {
		r, ok, err := decodeMergeableEntity(name)
		if err != nil {
			return err
		}
		if ok {
			return b.appendText(target, string(r))
		}
	}
	return b.attach(target, b.doc.NewEntityRef(name))
}

func (b *builder) unquote(tok token.Token) string {
	body := tok.Body(b.src)
	if b.opts.Trim == xmq.TrimNone {
		return body
	}
	k := tok.Column - 1
	if k < 0 {
		k = 0
	}
	return quoting.Unquote(body, k, ' ')
}

// --- element & namespace roles ---

func (b *builder) elementNS(name string) error {
	b.pendingElemPrefix = name
	return nil
}

func (b *builder) elementName(name string) error {
	b.flushAttr()
	id := b.doc.NewElement(name)
	if b.pendingElemPrefix != "" {
		b.doc.SetPrefix(id, b.pendingElemPrefix)
		b.pendingElemPrefix = ""
	}
	if err := b.attach(b.container(), id); err != nil {
		return err
	}
	b.curElem = id
	b.pendingNS = nil
	return nil
}

func (b *builder) braceLeft(token.Token) error {
	b.stack = append(b.stack, b.curElem)
	return nil
}

func (b *builder) braceRight(token.Token) error {
	if len(b.stack) == 0 {
		return nil
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

// --- attribute roles ---

func (b *builder) attrNS(name string) error {
	b.pendingAttrPrefix = name
	return nil
}

// flushAttr commits whatever attribute is mid-flight (valueless, or with a
// fully accumulated value) onto curElem. Called whenever a new attribute
// begins or the attribute list closes.
func (b *builder) flushAttr() {
	if !b.haveAttr {
		return
	}
	attr := xmq.Attribute{Name: b.attrName, Prefix: b.attrPrefix, Value: b.attrFragments}
	must(b.doc.AddAttribute(b.curElem, attr))

	if b.attrPrefix == "xmlns" {
		if b.pendingNS == nil {
			b.pendingNS = map[string]string{}
		}
		b.pendingNS[b.attrName] = flatValue(attr.Value)
	} else if b.attrPrefix == "" && b.attrName == "xmlns" {
		if b.pendingNS == nil {
			b.pendingNS = map[string]string{}
		}
		b.pendingNS[""] = flatValue(attr.Value)
	}

	b.haveAttr = false
	b.attrName, b.attrPrefix = "", ""
	b.attrFragments = nil
}

// flatValue renders a simple (non-entity) attribute value as plain text,
// for the common xmlns="uri" case; entity-bearing namespace URIs are
// vanishingly rare and fall back to their literal text pieces joined.
func flatValue(frags []xmq.ValueFragment) string {
	s := ""
	for _, f := range frags {
		if !f.IsEntity {
			s += f.Text
		}
	}
	return s
}

func (b *builder) attrKey(name string) error {
	b.flushAttr()
	b.attrName = name
	b.attrPrefix = b.pendingAttrPrefix
	b.pendingAttrPrefix = ""
	b.attrFragments = nil
	b.haveAttr = true
	return nil
}

func (b *builder) attrValueText(text string) error {
	b.attrFragments = append(b.attrFragments, xmq.ValueFragment{Text: text})
	return nil
}

func (b *builder) attrValueQuote(tok token.Token) error {
	b.attrFragments = append(b.attrFragments, xmq.ValueFragment{Text: b.unquote(tok)})
	return nil
}

func (b *builder) attrValueEntity(name string) error {
	if len(name) > 0 && name[0] == '#' {
		if _, ok := decodeNumericEntity(name); !ok {
			return &xmq.EncodingError{Reason: "numeric character reference &" + name + "; is out of range"}
		}
	}
	b.attrFragments = append(b.attrFragments, xmq.ValueFragment{IsEntity: true, Entity: name})
	return nil
}

func (b *builder) aparLeft(token.Token) error {
	return nil
}

func (b *builder) aparRight(token.Token) error {
	b.flushAttr()
	for prefix, uri := range b.pendingNS {
		if prefix == "" {
			b.doc.DeclareDefaultNamespace(b.curElem, uri)
		} else {
			b.doc.DeclareNamespace(b.curElem, prefix, uri)
		}
	}
	return nil
}

// --- element value roles ---

func (b *builder) elementValueText(text string) error {
	return b.appendText(b.curElem, text)
}

func (b *builder) elementValueQuote(tok token.Token) error {
	return b.appendText(b.curElem, b.unquote(tok))
}

func (b *builder) elementValueEntity(name string) error {
	return b.appendEntity(b.curElem, name)
}

// --- bare (document/body level) roles ---

func (b *builder) bareQuote(tok token.Token) error {
	return b.appendText(b.container(), b.unquote(tok))
}

func (b *builder) bareEntity(name string) error {
	return b.appendEntity(b.container(), name)
}

func (b *builder) comment(tok token.Token) error {
	target := b.container()
	body := quoting.UnescapeComment(quoting.StripCommentDelimiters(tok.Raw(b.src)))
	if last := b.lastChild(target); last != xmq.NoNode && b.doc.Kind(last) == xmq.CommentNode {
		b.doc.SetText(last, b.doc.Text(last)+"\n"+body)
		return nil
	}
	return b.attach(target, b.doc.NewComment(body))
}

// wrapMultipleRoots wraps the document's top-level nodes in a synthetic
// root element when more than one of them is an element, so every
// Document Parse returns has at most one top-level element.
func (b *builder) wrapMultipleRoots(name string) {
	roots := b.doc.Roots()
	elements := 0
	for _, r := range roots {
		if b.doc.Kind(r) == xmq.ElementNode {
			elements++
		}
	}
	if elements <= 1 {
		return
	}
	root := b.doc.NewElement(name)
	for _, r := range roots {
		must(b.doc.AddChild(root, r))
	}
	b.doc.ReplaceRoots(root)
}
