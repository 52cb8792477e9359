package serialize

import (
	"bytes"
	"io"
	"strings"

	"github.com/libxmq/xmq/quoting"
	"github.com/libxmq/xmq/theme"
	"github.com/libxmq/xmq/xmq"
)

// Write renders doc as XMQ source into w per §4.5: a depth-first walk
// emitting each element/attribute/comment/text/PI/DocType node, in
// compact or pretty layout, styled through opts.Theme.
func Write(w io.Writer, doc *xmq.Document, opts Options) error {
	p := &printer{doc: doc, opts: opts}
	roots := doc.Roots()
	for i, r := range roots {
		if i > 0 {
			p.separator(0)
		}
		if err := p.writeNode(r, 0); err != nil {
			return err
		}
	}
	if !opts.Compact {
		p.out.WriteByte('\n')
	}
	_, err := w.Write(p.out.Bytes())
	return err
}

type printer struct {
	doc  *xmq.Document
	opts Options
	out  bytes.Buffer
}

func (p *printer) style(r theme.Role, s string) string {
	return p.opts.Theme.Wrap(r, s)
}

func (p *printer) write(r theme.Role, s string) {
	p.out.WriteString(p.style(r, s))
}

// column reports the buffer's current output column, counted from the
// most recent newline (or the start of the buffer), for RenderQuoted's
// continuation-line indentation.
func (p *printer) column() int {
	b := p.out.Bytes()
	idx := bytes.LastIndexByte(b, '\n')
	return len(b) - idx - 1
}

// line reports the buffer's current 1-based output line, for Warning
// diagnostics.
func (p *printer) line() int {
	return bytes.Count(p.out.Bytes(), []byte("\n")) + 1
}

func (p *printer) indentStr(depth int) string {
	if p.opts.Compact {
		return ""
	}
	return strings.Repeat(" ", depth*p.opts.indentStep())
}

// writeIndent emits depth's leading whitespace through the
// indentation-space role (§4.5), distinct from Whitespace, which a themed
// colorizer uses for whitespace already present between source tokens.
func (p *printer) writeIndent(depth int) {
	p.write(theme.IndentationSpace, p.indentStr(depth))
}

// separator emits whatever belongs between two sibling nodes at depth:
// a single space in compact mode, a newline plus the next node's
// indentation in pretty mode.
func (p *printer) separator(depth int) {
	if p.opts.Compact {
		p.out.WriteByte(' ')
		return
	}
	p.out.WriteByte('\n')
	p.writeIndent(depth)
}

func (p *printer) writeNode(id xmq.NodeID, depth int) error {
	switch p.doc.Kind(id) {
	case xmq.ElementNode:
		return p.writeElement(id, depth)
	case xmq.TextNode, xmq.CDataNode:
		return p.writeTextValue(p.doc.Text(id), depth)
	case xmq.EntityRefNode:
		p.write(theme.Entity, "&"+p.doc.EntityName(id)+";")
		return nil
	case xmq.CommentNode:
		return p.writeComment(id)
	case xmq.PINode:
		return p.writePI(id, depth)
	case xmq.DocTypeNode:
		return p.writeDocType(id, depth)
	default:
		return nil
	}
}

func (p *printer) writeElement(id xmq.NodeID, depth int) error {
	if prefix := p.doc.Prefix(id); prefix != "" {
		p.write(theme.ElementPrefix, prefix)
		p.write(theme.Punctuation, ":")
	}
	p.write(theme.ElementName, p.doc.Name(id))

	if attrs := p.doc.Attrs(id); len(attrs) > 0 {
		if err := p.writeAttrs(attrs, depth); err != nil {
			return err
		}
	}

	children := p.doc.Children(id)
	switch {
	case len(children) == 0:
		return nil // empty element: just the name (and any attrs)
	case len(children) == 1 && isValueKind(p.doc.Kind(children[0])):
		if p.opts.Compact {
			p.write(theme.Equals, "=")
		} else {
			p.write(theme.Equals, " = ")
		}
		return p.writeNode(children[0], depth)
	default:
		return p.writeBody(children, depth)
	}
}

func isValueKind(k xmq.Kind) bool {
	return k == xmq.TextNode || k == xmq.CDataNode || k == xmq.EntityRefNode
}

func (p *printer) writeBody(children []xmq.NodeID, depth int) error {
	if p.opts.Compact {
		p.write(theme.Brace, "{")
	} else {
		p.write(theme.Brace, " {")
	}
	inner := depth + 1
	for _, c := range children {
		p.separator(inner)
		if err := p.writeNode(c, inner); err != nil {
			return err
		}
	}
	if p.opts.Compact {
		p.out.WriteByte(' ')
	} else {
		p.out.WriteByte('\n')
		p.writeIndent(depth)
	}
	p.write(theme.Brace, "}")
	return nil
}

func (p *printer) writeAttrs(attrs []xmq.Attribute, depth int) error {
	p.write(theme.Paren, "(")
	inner := depth + 1

	width := 0
	if !p.opts.Compact && len(attrs) > 1 {
		for _, a := range attrs {
			if n := len(attrKeyLabel(a)); n > width {
				width = n
			}
		}
	}

	for i, a := range attrs {
		if i > 0 {
			p.separator(inner)
		}
		label := attrKeyLabel(a)
		if a.Prefix != "" {
			if a.Prefix == "xmlns" {
				p.write(theme.NSDeclaration, a.Prefix)
			} else {
				p.write(theme.AttrPrefix, a.Prefix)
			}
			p.write(theme.Punctuation, ":")
			p.write(theme.AttrName, a.Name)
		} else if a.Name == "xmlns" {
			p.write(theme.NSDeclaration, a.Name)
		} else {
			p.write(theme.AttrName, a.Name)
		}
		if width > len(label) {
			p.out.WriteString(strings.Repeat(" ", width-len(label)))
		}
		if len(a.Value) == 0 {
			continue // valueless attribute
		}
		if p.opts.Compact {
			p.write(theme.Equals, "=")
		} else {
			p.write(theme.Equals, " = ")
		}
		if err := p.writeAttrValue(a.Value, inner); err != nil {
			return err
		}
	}
	p.write(theme.Paren, ")")
	return nil
}

func attrKeyLabel(a xmq.Attribute) string {
	if a.Prefix == "" {
		return a.Name
	}
	return a.Prefix + ":" + a.Name
}

// writeAttrValue renders an attribute's fragment list: a single plain-text
// fragment goes through the normal quote-selection path; anything with an
// embedded entity, or more than one fragment, is a compound value.
func (p *printer) writeAttrValue(frags []xmq.ValueFragment, depth int) error {
	if len(frags) == 1 && !frags[0].IsEntity {
		return p.writeTextValue(frags[0].Text, depth)
	}
	return p.writeCompoundFragments(frags)
}

func (p *printer) writeCompoundFragments(frags []xmq.ValueFragment) error {
	p.write(theme.Paren, "(")
	for _, f := range frags {
		if f.IsEntity {
			p.write(entityRole(f.Entity), "&"+f.Entity+";")
			continue
		}
		for _, piece := range quoting.SplitCompound(f.Text, p.opts.Escape, p.opts.Compact) {
			if piece.IsEntity {
				p.write(entityRole(piece.Entity), "&"+piece.Entity+";")
			} else {
				p.writeCompoundPieceText(piece.Text)
			}
		}
	}
	p.write(theme.Paren, ")")
	return nil
}

// entityRole picks the themed role for an entity reference: the three
// explicit-whitespace roles (§4.5) for the numeric character references
// SplitCompound emits to force a literal newline/tab/CR into a compound
// value, Entity for everything else (named entities, &apos;, other
// numeric character references).
func entityRole(name string) theme.Role {
	switch name {
	case "#10":
		return theme.ExplicitNL
	case "#9":
		return theme.ExplicitTab
	case "#13":
		return theme.ExplicitCR
	default:
		return theme.Entity
	}
}

// writeCompoundPieceText emits one compound-value text span (§4.4.3): bare
// when every byte is safe unquoted, or single-quoted otherwise so that
// re-lexing recovers it as one token instead of being split apart at
// whitespace or another reserved byte the way bare text would be. A piece
// never itself contains a single quote (SplitCompound always carves those
// out as their own &apos; entity), so a depth-1 quote always suffices.
func (p *printer) writeCompoundPieceText(s string) {
	if quoting.IsSafeText(s) {
		p.write(theme.Text, s)
		return
	}
	p.write(theme.Quote, "'")
	p.write(theme.Text, s)
	p.write(theme.Quote, "'")
}

// writeTextValue renders a logical string through §4.4.2's quote-selection
// algorithm: bare, single-quoted, or compound.
func (p *printer) writeTextValue(s string, depth int) error {
	k := p.column()
	plan := quoting.ChooseQuoting(s, k, p.opts.Compact, p.opts.Escape)
	switch plan.Form {
	case quoting.FormSafe:
		p.write(theme.Text, plan.Text)
	case quoting.FormQuoted:
		if plan.Widened {
			xmq.Warn(p.opts.Logger, &xmq.Warning{
				Reason: "ambiguous quoting: a delimiter run of 2 collides with the empty-string literal, widened to 3",
				Line:   p.line(),
				Column: k + 1,
			})
		}
		delim := strings.Repeat("'", plan.Delims)
		rendered := quoting.RenderQuoted(plan, k, p.opts.Compact)
		body := rendered[plan.Delims : len(rendered)-plan.Delims]
		p.write(theme.Quote, delim)
		p.write(theme.Text, body)
		p.write(theme.Quote, delim)
	case quoting.FormCompound:
		p.write(theme.Paren, "(")
		for _, piece := range plan.Pieces {
			if piece.IsEntity {
				p.write(entityRole(piece.Entity), "&"+piece.Entity+";")
			} else {
				p.writeCompoundPieceText(piece.Text)
			}
		}
		p.write(theme.Paren, ")")
	}
	return nil
}

func (p *printer) writeComment(id xmq.NodeID) error {
	body := quoting.EscapeComment(p.doc.Text(id))
	if strings.Contains(body, "\n") {
		p.write(theme.Comment, quoting.FormatBlockComment(body))
		return nil
	}
	p.write(theme.Comment, quoting.FormatLineComment(body))
	return nil
}

func (p *printer) writePI(id xmq.NodeID, depth int) error {
	p.write(theme.Punctuation, "?")
	p.write(theme.ElementName, p.doc.PITarget(id))
	if data := p.doc.PIData(id); data != "" {
		p.write(theme.Punctuation, " ")
		return p.writeTextValue(data, depth)
	}
	return nil
}

func (p *printer) writeDocType(id xmq.NodeID, depth int) error {
	p.write(theme.DocTypeKeyword, "!DOCTYPE")
	p.write(theme.Equals, " = ")
	return p.writeTextValue(p.doc.DocTypePayload(id), depth)
}
