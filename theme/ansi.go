package theme

import "github.com/charmbracelet/x/ansi"

// sgr builds a Select Graphic Rendition escape sequence for the given
// parameter codes, e.g. sgr("1", "38;5;39") for bold + a 256-colour
// foreground.
func sgr(codes ...string) string {
	s := "\x1b["
	for i, c := range codes {
		if i > 0 {
			s += ";"
		}
		s += c
	}
	return s + "m"
}

const reset = "\x1b[0m"

func style(codes ...string) Style {
	return Style{Prefix: sgr(codes...), Suffix: reset}
}

// DarkBG is a 256-colour ANSI theme tuned for a dark terminal background,
// in the same spirit as the retrieval pack's terminal UI libraries
// (charm.land's bubbletea/lipgloss stack) assigning a distinct colour per
// semantic role.
var DarkBG = Theme{
	ElementName:       style("1", "38;5;81"),
	ElementPrefix:     style("38;5;66"),
	AttrName:          style("38;5;150"),
	AttrPrefix:        style("38;5;108"),
	Quote:             style("38;5;215"),
	Entity:            style("1", "38;5;212"),
	Comment:           style("3", "38;5;244"),
	Text:              Style{},
	Punctuation:       style("38;5;245"),
	Whitespace:        Style{},
	Brace:             style("38;5;245"),
	Paren:             style("38;5;245"),
	Equals:            style("38;5;245"),
	NSDeclaration:     style("1", "38;5;108"),
	DocTypeKeyword:    style("1", "38;5;81"),
	IndentationSpace:  Style{},
	ExplicitSpace:     style("2", "38;5;240"),
	ExplicitNL:        style("2", "38;5;240"),
	ExplicitTab:       style("2", "38;5;240"),
	ExplicitCR:        style("2", "38;5;240"),
	UnicodeWhitespace: style("2", "38;5;240"),
}

// LightBG mirrors DarkBG with colours chosen to stay legible on a light
// terminal background.
var LightBG = Theme{
	ElementName:       style("1", "38;5;25"),
	ElementPrefix:     style("38;5;24"),
	AttrName:          style("38;5;22"),
	AttrPrefix:        style("38;5;23"),
	Quote:             style("38;5;130"),
	Entity:            style("1", "38;5;90"),
	Comment:           style("3", "38;5;241"),
	Text:              Style{},
	Punctuation:       style("38;5;238"),
	Whitespace:        Style{},
	Brace:             style("38;5;238"),
	Paren:             style("38;5;238"),
	Equals:            style("38;5;238"),
	NSDeclaration:     style("1", "38;5;23"),
	DocTypeKeyword:    style("1", "38;5;25"),
	IndentationSpace:  Style{},
	ExplicitSpace:     style("2", "38;5;250"),
	ExplicitNL:        style("2", "38;5;250"),
	ExplicitTab:       style("2", "38;5;250"),
	ExplicitCR:        style("2", "38;5;250"),
	UnicodeWhitespace: style("2", "38;5;250"),
}

// StripANSI removes every SGR escape sequence Colorize may have inserted,
// recovering the original plain-text span. It defers to
// charmbracelet/x/ansi, the escape-sequence library the retrieval pack's
// terminal-UI stack depends on, rather than hand-rolling an ANSI parser.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
