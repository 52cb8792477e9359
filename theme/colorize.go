package theme

import (
	"strings"

	"github.com/libxmq/xmq/parse"
	"github.com/libxmq/xmq/token"
)

// Colorize renders src styled under th, reusing package parse's grammar
// walker (parse.Walk) instead of building an xmq.Document: every role
// callback writes its span straight to the output buffer, styled per th,
// so the result is byte-for-byte src with Style.Prefix/Suffix spliced in
// around each lexical role's span (§4.5).
func Colorize(src []byte, th Theme) ([]byte, error) {
	var out strings.Builder
	out.Grow(len(src) + len(src)/4)

	wrapTok := func(r Role) func(token.Token) error {
		return func(tok token.Token) error {
			out.WriteString(th.Wrap(r, tok.Raw(src)))
			return nil
		}
	}
	wrapStr := func(r Role) func(string) error {
		return func(s string) error {
			out.WriteString(th.Wrap(r, s))
			return nil
		}
	}
	wrapEntity := func(r Role) func(string) error {
		return func(name string) error {
			out.WriteString(th.Wrap(r, "&"+name+";"))
			return nil
		}
	}

	// attrNS and attrKey special-case the literal name "xmlns": it always
	// marks a namespace declaration rather than an ordinary attribute
	// (§6's reserved-name rule), so it takes the ns-declaration role
	// instead of the generic prefix/name role.
	attrNS := func(name string) error {
		if name == "xmlns" {
			out.WriteString(th.Wrap(NSDeclaration, name))
			return nil
		}
		out.WriteString(th.Wrap(AttrPrefix, name))
		return nil
	}
	attrKey := func(name string) error {
		if name == "xmlns" {
			out.WriteString(th.Wrap(NSDeclaration, name))
			return nil
		}
		out.WriteString(th.Wrap(AttrName, name))
		return nil
	}

	table := parse.RoleTable{
		ElementNS:                  wrapStr(ElementPrefix),
		ElementName:                wrapStr(ElementName),
		ElementKey:                 wrapStr(AttrName),
		NSColon:                    wrapTok(Punctuation),
		Equals:                     wrapTok(Equals),
		BraceLeft:                  wrapTok(Brace),
		BraceRight:                 wrapTok(Brace),
		AParLeft:                   wrapTok(Paren),
		AParRight:                  wrapTok(Paren),
		CParLeft:                   wrapTok(Paren),
		CParRight:                  wrapTok(Paren),
		Quote:                      wrapTok(Quote),
		AttrNS:                     attrNS,
		AttrKey:                    attrKey,
		AttrValueText:              wrapStr(Text),
		AttrValueQuote:             wrapTok(Quote),
		AttrValueEntity:            wrapEntity(Entity),
		AttrValueCompoundQuote:     wrapTok(Quote),
		AttrValueCompoundEntity:    wrapEntity(Entity),
		ElementValueText:           wrapStr(Text),
		ElementValueQuote:          wrapTok(Quote),
		ElementValueEntity:         wrapEntity(Entity),
		ElementValueCompoundQuote:  wrapTok(Quote),
		ElementValueCompoundEntity: wrapEntity(Entity),
		Entity:                     wrapEntity(Entity),
		Comment:                    wrapTok(Comment),
		CommentContinuation:        wrapTok(Comment),
		NSDeclaration:              func(string, string) error { return nil },
		Whitespace:                 wrapTok(Whitespace),
	}

	if err := parse.Walk(src, table); err != nil {
		return nil, err
	}
	return []byte(out.String()), nil
}
