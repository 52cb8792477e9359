package theme

// TeX wraps each role's span in a macro invocation, for embedding a
// colourized XMQ listing inside a LaTeX document (e.g. via the listings
// or minted packages' \newcommand escape hooks). TeXPreamble defines the
// matching macros.
var TeX = Theme{
	ElementName:       Style{Prefix: `\xmqElem{`, Suffix: `}`},
	ElementPrefix:     Style{Prefix: `\xmqNs{`, Suffix: `}`},
	AttrName:          Style{Prefix: `\xmqAttr{`, Suffix: `}`},
	AttrPrefix:        Style{Prefix: `\xmqNs{`, Suffix: `}`},
	Quote:             Style{Prefix: `\xmqQuote{`, Suffix: `}`},
	Entity:            Style{Prefix: `\xmqEntity{`, Suffix: `}`},
	Comment:           Style{Prefix: `\xmqComment{`, Suffix: `}`},
	Punctuation:       Style{Prefix: `\xmqPunct{`, Suffix: `}`},
	Brace:             Style{Prefix: `\xmqPunct{`, Suffix: `}`},
	Paren:             Style{Prefix: `\xmqPunct{`, Suffix: `}`},
	Equals:            Style{Prefix: `\xmqPunct{`, Suffix: `}`},
	NSDeclaration:     Style{Prefix: `\xmqNs{`, Suffix: `}`},
	DocTypeKeyword:    Style{Prefix: `\xmqElem{`, Suffix: `}`},
	ExplicitSpace:     Style{Prefix: `\xmqWs{`, Suffix: `}`},
	ExplicitNL:        Style{Prefix: `\xmqWs{`, Suffix: `}`},
	ExplicitTab:       Style{Prefix: `\xmqWs{`, Suffix: `}`},
	ExplicitCR:        Style{Prefix: `\xmqWs{`, Suffix: `}`},
	UnicodeWhitespace: Style{Prefix: `\xmqWs{`, Suffix: `}`},
}

// TeXPreamble returns \newcommand definitions for every macro TeX uses,
// suitable for inclusion before \begin{document}.
func TeXPreamble() string {
	return `\newcommand{\xmqElem}[1]{\textbf{\textcolor{xmqElemColor}{#1}}}
\newcommand{\xmqNs}[1]{\textcolor{xmqNsColor}{#1}}
\newcommand{\xmqAttr}[1]{\textcolor{xmqAttrColor}{#1}}
\newcommand{\xmqQuote}[1]{\textcolor{xmqQuoteColor}{#1}}
\newcommand{\xmqEntity}[1]{\textbf{\textcolor{xmqEntityColor}{#1}}}
\newcommand{\xmqComment}[1]{\textit{\textcolor{xmqCommentColor}{#1}}}
\newcommand{\xmqPunct}[1]{\textcolor{xmqPunctColor}{#1}}
\newcommand{\xmqWs}[1]{\textcolor{xmqWsColor}{#1}}
`
}

// EscapeTeX escapes the characters TeX treats specially so arbitrary XMQ
// text survives inside a macro argument.
func EscapeTeX(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			out = append(out, '\\', 't', 'e', 'x', 'b', 'a', 'c', 'k', 's', 'l', 'a', 's', 'h', '{', '}')
		case '{', '}', '%', '$', '&', '#', '_':
			out = append(out, '\\', c)
		case '~':
			out = append(out, '\\', 't', 'e', 'x', 't', 'a', 's', 'c', 'i', 'i', 't', 'i', 'l', 'd', 'e', '{', '}')
		case '^':
			out = append(out, '\\', 't', 'e', 'x', 't', 'a', 's', 'c', 'i', 'i', 'c', 'i', 'r', 'c', 'u', 'm', '{', '}')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
