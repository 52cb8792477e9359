package parse

import (
	"github.com/libxmq/xmq/token"
	"github.com/libxmq/xmq/xmq"
)

// walker drives a token.Lexer through a RoleTable. It holds no tree state
// of its own — every mutation happens inside the table's bound closures —
// only the grammar position (§4.3's informal grammar) and a one-token
// lookahead buffer.
type walker struct {
	src   []byte
	lex   *token.Lexer
	table RoleTable
	ahead *token.Token
}

// Walk drives src's tokens through table per the grammar of §4.3. It is
// shared by package parse's tree builder and package theme's colourizer.
func Walk(src []byte, table RoleTable) error {
	w := &walker{src: src, lex: token.NewLexer(src)}
	w.table = table
	return w.parseDoc()
}

func (w *walker) next() (token.Token, error) {
	if w.ahead != nil {
		t := *w.ahead
		w.ahead = nil
		return t, nil
	}
	return w.lex.Next()
}

func (w *walker) peek() (token.Token, error) {
	if w.ahead == nil {
		t, err := w.lex.Next()
		if err != nil {
			return token.Token{}, err
		}
		w.ahead = &t
	}
	return *w.ahead, nil
}

func (w *walker) skipWS() error {
	for {
		t, err := w.peek()
		if err != nil {
			return err
		}
		if t.Category != token.Whitespace {
			return nil
		}
		w.next()
		if err := w.table.Whitespace(t); err != nil {
			return err
		}
	}
}

func synErr(t token.Token, reason string) error {
	return &xmq.SyntaxError{Reason: reason, Line: t.Line, Column: t.Column}
}

func (w *walker) parseDoc() error {
	for {
		if err := w.skipWS(); err != nil {
			return err
		}
		t, err := w.peek()
		if err != nil {
			return err
		}
		switch t.Category {
		case token.EOF:
			return nil
		case token.Comment:
			w.next()
			if err := w.table.Comment(t); err != nil {
				return err
			}
		case token.Quote:
			w.next()
			if err := w.table.Quote(t); err != nil {
				return err
			}
		case token.Entity:
			w.next()
			name, err := decodeEntityToken(t, w.src)
			if err != nil {
				return err
			}
			if err := w.table.Entity(name); err != nil {
				return err
			}
		case token.Text:
			if err := w.parseElement(); err != nil {
				return err
			}
		case token.BraceRight:
			return synErr(t, "unexpected '}' with no matching '{'")
		default:
			return synErr(t, "expected a comment, quote, entity reference or element")
		}
	}
}

func decodeEntityToken(t token.Token, src []byte) (string, error) {
	raw := t.Raw(src)
	// strip leading '&' and trailing ';'
	return raw[1 : len(raw)-1], nil
}

func (w *walker) parseElement() error {
	nameTok, err := w.next()
	if err != nil {
		return err
	}
	name := nameTok.Raw(w.src)

	colonTok, err := w.peek()
	if err != nil {
		return err
	}
	if colonTok.Category == token.Colon {
		ct, _ := w.next()
		if err := w.table.ElementNS(name); err != nil {
			return err
		}
		if err := w.table.NSColon(ct); err != nil {
			return err
		}
		localTok, err := w.next()
		if err != nil {
			return err
		}
		if localTok.Category != token.Text {
			return synErr(localTok, "expected element local name after ':'")
		}
		name = localTok.Raw(w.src)
	}
	if err := w.table.ElementName(name); err != nil {
		return err
	}

	if err := w.skipWS(); err != nil {
		return err
	}
	t, err := w.peek()
	if err != nil {
		return err
	}
	if t.Category == token.ParenLeft {
		if err := w.parseAttrs(); err != nil {
			return err
		}
		if err := w.skipWS(); err != nil {
			return err
		}
		t, err = w.peek()
		if err != nil {
			return err
		}
	}

	switch t.Category {
	case token.Equals:
		eqTok, _ := w.next()
		if err := w.table.Equals(eqTok); err != nil {
			return err
		}
		if err := w.skipWS(); err != nil {
			return err
		}
		return w.parseElementValue()
	case token.BraceLeft:
		brTok, _ := w.next()
		if err := w.table.BraceLeft(brTok); err != nil {
			return err
		}
		return w.parseBody()
	default:
		return nil // empty element
	}
}

func (w *walker) parseAttrs() error {
	open, _ := w.next() // ParenLeft
	if err := w.table.AParLeft(open); err != nil {
		return err
	}
	for {
		if err := w.skipWS(); err != nil {
			return err
		}
		t, err := w.peek()
		if err != nil {
			return err
		}
		if t.Category == token.ParenRight {
			closeTok, _ := w.next()
			return w.table.AParRight(closeTok)
		}
		if t.Category == token.EOF {
			return synErr(open, "unterminated attribute list")
		}
		if err := w.parseAttr(); err != nil {
			return err
		}
	}
}

func (w *walker) parseAttr() error {
	nameTok, err := w.next()
	if err != nil {
		return err
	}
	if nameTok.Category != token.Text {
		return synErr(nameTok, "expected attribute name")
	}
	name := nameTok.Raw(w.src)

	colonTok, err := w.peek()
	if err != nil {
		return err
	}
	if colonTok.Category == token.Colon {
		ct, _ := w.next()
		if err := w.table.AttrNS(name); err != nil {
			return err
		}
		if err := w.table.NSColon(ct); err != nil {
			return err
		}
		localTok, err := w.next()
		if err != nil {
			return err
		}
		if localTok.Category != token.Text {
			return synErr(localTok, "expected attribute local name after ':'")
		}
		name = localTok.Raw(w.src)
	}
	if err := w.table.AttrKey(name); err != nil {
		return err
	}

	if err := w.skipWS(); err != nil {
		return err
	}
	t, err := w.peek()
	if err != nil {
		return err
	}
	if t.Category != token.Equals {
		return nil // valueless attribute
	}
	eqTok, _ := w.next()
	if err := w.table.Equals(eqTok); err != nil {
		return err
	}
	if err := w.skipWS(); err != nil {
		return err
	}
	return w.parseAttrValue()
}

func (w *walker) parseAttrValue() error {
	t, err := w.peek()
	if err != nil {
		return err
	}
	switch t.Category {
	case token.Text:
		w.next()
		return w.table.AttrValueText(t.Raw(w.src))
	case token.Quote:
		w.next()
		return w.table.AttrValueQuote(t)
	case token.Entity:
		w.next()
		name, err := decodeEntityToken(t, w.src)
		if err != nil {
			return err
		}
		return w.table.AttrValueEntity(name)
	case token.CParenLeft:
		return w.parseCompound(w.table.AttrValueCompoundQuote, w.table.AttrValueCompoundEntity)
	default:
		return synErr(t, "expected an attribute value")
	}
}

func (w *walker) parseElementValue() error {
	t, err := w.peek()
	if err != nil {
		return err
	}
	switch t.Category {
	case token.Text:
		w.next()
		return w.table.ElementValueText(t.Raw(w.src))
	case token.Quote:
		w.next()
		return w.table.ElementValueQuote(t)
	case token.Entity:
		w.next()
		name, err := decodeEntityToken(t, w.src)
		if err != nil {
			return err
		}
		return w.table.ElementValueEntity(name)
	case token.CParenLeft:
		return w.parseCompound(w.table.ElementValueCompoundQuote, w.table.ElementValueCompoundEntity)
	default:
		return synErr(t, "expected an element value")
	}
}

func (w *walker) parseCompound(onQuote func(token.Token) error, onEntity func(string) error) error {
	open, _ := w.next() // CParenLeft
	if err := w.table.CParLeft(open); err != nil {
		return err
	}
	for {
		if err := w.skipWS(); err != nil {
			return err
		}
		t, err := w.peek()
		if err != nil {
			return err
		}
		switch t.Category {
		case token.CParenRight:
			closeTok, _ := w.next()
			return w.table.CParRight(closeTok)
		case token.Quote:
			w.next()
			if err := onQuote(t); err != nil {
				return err
			}
		case token.Entity:
			w.next()
			name, err := decodeEntityToken(t, w.src)
			if err != nil {
				return err
			}
			if err := onEntity(name); err != nil {
				return err
			}
		case token.Text:
			w.next()
			if err := onQuote(t); err != nil { // plain safe text piece, treated like a bare quote body
				return err
			}
		case token.EOF:
			return synErr(open, "unterminated compound value")
		default:
			return synErr(t, "expected a quote, entity or text inside a compound value")
		}
	}
}

func (w *walker) parseBody() error {
	for {
		if err := w.skipWS(); err != nil {
			return err
		}
		t, err := w.peek()
		if err != nil {
			return err
		}
		switch t.Category {
		case token.BraceRight:
			brTok, _ := w.next()
			return w.table.BraceRight(brTok)
		case token.EOF:
			return synErr(t, "unterminated element body")
		case token.Comment:
			w.next()
			if err := w.table.Comment(t); err != nil {
				return err
			}
		case token.Quote:
			w.next()
			if err := w.table.Quote(t); err != nil {
				return err
			}
		case token.Entity:
			w.next()
			name, err := decodeEntityToken(t, w.src)
			if err != nil {
				return err
			}
			if err := w.table.Entity(name); err != nil {
				return err
			}
		case token.Text:
			if err := w.parseElement(); err != nil {
				return err
			}
		default:
			return synErr(t, "expected a comment, quote, entity reference or element")
		}
	}
}
