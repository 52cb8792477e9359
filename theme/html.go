package theme

import "html"

// HTMLTheme wraps each role's span in a <span class="xmq-*"> element, for
// embedding a colourized XMQ listing on a web page. Colorize only splices
// in Style.Prefix/Suffix; callers feeding its result into an HTML page
// must run EscapeHTML over src first so "<", ">" and "&" inside quoted
// text and comments render literally rather than as markup.
var HTMLTheme = Theme{
	ElementName:       Style{Prefix: `<span class="xmq-elem">`, Suffix: `</span>`},
	ElementPrefix:     Style{Prefix: `<span class="xmq-ns">`, Suffix: `</span>`},
	AttrName:          Style{Prefix: `<span class="xmq-attr">`, Suffix: `</span>`},
	AttrPrefix:        Style{Prefix: `<span class="xmq-ns">`, Suffix: `</span>`},
	Quote:             Style{Prefix: `<span class="xmq-quote">`, Suffix: `</span>`},
	Entity:            Style{Prefix: `<span class="xmq-entity">`, Suffix: `</span>`},
	Comment:           Style{Prefix: `<span class="xmq-comment">`, Suffix: `</span>`},
	Punctuation:       Style{Prefix: `<span class="xmq-punct">`, Suffix: `</span>`},
	Brace:             Style{Prefix: `<span class="xmq-punct">`, Suffix: `</span>`},
	Paren:             Style{Prefix: `<span class="xmq-punct">`, Suffix: `</span>`},
	Equals:            Style{Prefix: `<span class="xmq-punct">`, Suffix: `</span>`},
	NSDeclaration:     Style{Prefix: `<span class="xmq-ns">`, Suffix: `</span>`},
	DocTypeKeyword:    Style{Prefix: `<span class="xmq-elem">`, Suffix: `</span>`},
	ExplicitSpace:     Style{Prefix: `<span class="xmq-ws">`, Suffix: `</span>`},
	ExplicitNL:        Style{Prefix: `<span class="xmq-ws">`, Suffix: `</span>`},
	ExplicitTab:       Style{Prefix: `<span class="xmq-ws">`, Suffix: `</span>`},
	ExplicitCR:        Style{Prefix: `<span class="xmq-ws">`, Suffix: `</span>`},
	UnicodeWhitespace: Style{Prefix: `<span class="xmq-ws">`, Suffix: `</span>`},
}

// EscapeHTML returns s with the five predefined XML/HTML entities escaped,
// for use as the text-role renderer before handing a buffer to Colorize
// under HTMLTheme (Colorize itself never escapes; it only wraps).
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// HTMLStylesheet returns a minimal CSS stylesheet matching HTMLTheme's
// class names, suitable for inlining into a <style> block alongside a
// Colorize(src, HTMLTheme) rendering.
func HTMLStylesheet() string {
	return `.xmq-elem { color: #1a6fb5; font-weight: bold; }
.xmq-ns { color: #4a8fc0; }
.xmq-attr { color: #2a8f4a; }
.xmq-quote { color: #b5701a; }
.xmq-entity { color: #a5308a; font-weight: bold; }
.xmq-comment { color: #888888; font-style: italic; }
.xmq-punct { color: #666666; }
.xmq-ws { color: #bbbbbb; }
`
}
