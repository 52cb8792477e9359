// Package parse implements the XMQ parser (§4.3): it drives the
// tokenizer through a table of named callbacks ("roles" in the grammar)
// and assembles an xmq.Document. The same RoleTable shape is reused by
// package theme's token-colouring pass (§4.5), swapping in functions that
// emit themed bytes instead of functions that mutate a tree, matching the
// design note that one callback table should power both consumers.
package parse

import "github.com/libxmq/xmq/token"

// RoleTable is a table of function values, one per grammar role named in
// §4.3. Walk never invokes ElementKey, CommentContinuation or
// NSDeclaration, so those three may be nil; every other field must be
// non-nil. NoOpTable returns one with harmless defaults a caller can
// selectively override.
type RoleTable struct {
	ElementNS   func(name string) error
	ElementName func(name string) error
	ElementKey  func(name string) error // attribute name, when the element itself is being used as a map key in a compound context
	NSColon     func(tok token.Token) error
	Equals      func(tok token.Token) error
	BraceLeft   func(tok token.Token) error
	BraceRight  func(tok token.Token) error
	AParLeft    func(tok token.Token) error
	AParRight   func(tok token.Token) error
	CParLeft    func(tok token.Token) error
	CParRight   func(tok token.Token) error
	Quote       func(tok token.Token) error

	AttrNS                  func(name string) error
	AttrKey                 func(name string) error
	AttrValueText           func(text string) error
	AttrValueQuote          func(tok token.Token) error
	AttrValueEntity         func(name string) error
	AttrValueCompoundQuote  func(tok token.Token) error
	AttrValueCompoundEntity func(name string) error

	ElementValueText           func(text string) error
	ElementValueQuote          func(tok token.Token) error
	ElementValueEntity         func(name string) error
	ElementValueCompoundQuote  func(tok token.Token) error
	ElementValueCompoundEntity func(name string) error

	Entity              func(name string) error
	Comment             func(tok token.Token) error
	CommentContinuation func(tok token.Token) error
	NSDeclaration       func(prefix, uri string) error

	// Whitespace is not part of the grammar's named roles but every
	// categorised token invokes a handler (§4.3); tree construction sets
	// this to a no-op, theme's colourizer sets it to emit the
	// whitespace/indentation-space spans.
	Whitespace func(tok token.Token) error
}

func noopStr(string) error           { return nil }
func noopTok(token.Token) error      { return nil }
func noopStr2(string, string) error  { return nil }

// NoOpTable returns a RoleTable whose every field is a harmless no-op, for
// callers that only care about a handful of roles.
func NoOpTable() RoleTable {
	return RoleTable{
		ElementNS:                  noopStr,
		ElementName:                noopStr,
		ElementKey:                 noopStr,
		NSColon:                    noopTok,
		Equals:                     noopTok,
		BraceLeft:                  noopTok,
		BraceRight:                 noopTok,
		AParLeft:                   noopTok,
		AParRight:                  noopTok,
		CParLeft:                   noopTok,
		CParRight:                  noopTok,
		Quote:                      noopTok,
		AttrNS:                     noopStr,
		AttrKey:                    noopStr,
		AttrValueText:              noopStr,
		AttrValueQuote:             noopTok,
		AttrValueEntity:            noopStr,
		AttrValueCompoundQuote:     noopTok,
		AttrValueCompoundEntity:    noopStr,
		ElementValueText:           noopStr,
		ElementValueQuote:          noopTok,
		ElementValueEntity:         noopStr,
		ElementValueCompoundQuote:  noopTok,
		ElementValueCompoundEntity: noopStr,
		Entity:                     noopStr,
		Comment:                    noopTok,
		CommentContinuation:        noopTok,
		NSDeclaration:              noopStr2,
		Whitespace:                 noopTok,
	}
}
