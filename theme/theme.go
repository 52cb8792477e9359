// Package theme assigns a visual style to each lexical role the tokenizer
// recognises (§4.5) and renders a themed copy of an XMQ buffer by driving
// the same token stream package parse's tree builder consumes. Built-in
// themes target a terminal (ANSI SGR), an HTML page, and a TeX document,
// mirroring how the retrieval pack's terminal-facing tool
// (charm.land/bubbletea-based) and its styling stack separate "what role is
// this" from "how does this role look".
package theme

// Role names one of the 18 syntactic roles §4.5's theming hook enumerates
// (element-name, attribute-key, quote, entity, comment, brace, paren,
// namespace-prefix, equals, whitespace, indentation-space, explicit-space,
// explicit-nl, explicit-tab, explicit-cr, ns-declaration, unicode-whitespace,
// doctype-keyword), plus Text and Punctuation, two catch-alls the list
// leaves implicit (literal text runs, and the stray punctuation — the
// namespace colon, the reserved-name sigils — that isn't any named role).
// Where the spec names one role for something this tokenizer already
// distinguishes by position (namespace-prefix covers both an element's and
// an attribute's prefix), this type keeps the finer split: ElementPrefix
// and AttrPrefix.
type Role int

const (
	ElementName Role = iota
	ElementPrefix
	AttrName
	AttrPrefix
	Quote
	Entity
	Comment
	Text
	Punctuation
	Whitespace

	Brace
	Paren
	Equals
	NSDeclaration
	DocTypeKeyword
	IndentationSpace
	ExplicitSpace
	ExplicitNL
	ExplicitTab
	ExplicitCR
	UnicodeWhitespace
)

func (r Role) String() string {
	switch r {
	case ElementName:
		return "element_name"
	case ElementPrefix:
		return "element_prefix"
	case AttrName:
		return "attr_name"
	case AttrPrefix:
		return "attr_prefix"
	case Quote:
		return "quote"
	case Entity:
		return "entity"
	case Comment:
		return "comment"
	case Text:
		return "text"
	case Punctuation:
		return "punctuation"
	case Whitespace:
		return "whitespace"
	case Brace:
		return "brace"
	case Paren:
		return "paren"
	case Equals:
		return "equals"
	case NSDeclaration:
		return "ns_declaration"
	case DocTypeKeyword:
		return "doctype_keyword"
	case IndentationSpace:
		return "indentation_space"
	case ExplicitSpace:
		return "explicit_space"
	case ExplicitNL:
		return "explicit_nl"
	case ExplicitTab:
		return "explicit_tab"
	case ExplicitCR:
		return "explicit_cr"
	case UnicodeWhitespace:
		return "unicode_whitespace"
	default:
		return "unknown"
	}
}

// Style wraps a role's rendered span in a fixed prefix and suffix: ANSI SGR
// codes for a terminal theme, opening/closing tags for an HTML theme, or a
// macro invocation for the TeX theme.
type Style struct {
	Prefix string
	Suffix string
}

// Theme maps each Role to its Style. A Role missing from the map renders
// with the zero Style (no prefix or suffix), so a caller can build a
// partial theme that only overrides the roles it cares about.
type Theme map[Role]Style

// Plain is the identity theme: every role renders with no decoration.
var Plain = Theme{}

// styleFor returns th's Style for r, or the zero Style if r is unset.
func (th Theme) styleFor(r Role) Style {
	return th[r]
}

// Wrap renders s styled as role r under th.
func (th Theme) Wrap(r Role, s string) string {
	st := th.styleFor(r)
	if st.Prefix == "" && st.Suffix == "" {
		return s
	}
	return st.Prefix + s + st.Suffix
}
