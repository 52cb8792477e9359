package quoting

import (
	"fmt"
	"strings"
)

// Piece is one element of a compound value (§4.4.3): either a literal text
// span or an entity reference standing in for a single unsafe character.
type Piece struct {
	IsEntity bool
	Text     string // literal span, when !IsEntity
	Entity   string // entity name (without "&"/";"), when IsEntity
}

// SplitCompound splits s into the pieces of a compound value: it cuts at
// every character that must be escaped (newlines in compact mode, any
// character esc flags, and every apostrophe) and emits each unsafe
// character as an entity reference, so that concatenating the decoded
// pieces recovers s exactly (§4.4.3's round-trip guarantee).
func SplitCompound(s string, esc EscapeSet, compact bool) []Piece {
	var pieces []Piece
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			pieces = append(pieces, Piece{Text: buf.String()})
			buf.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '\'':
			flush()
			pieces = append(pieces, Piece{IsEntity: true, Entity: "apos"})
		case compact && r == '\n':
			flush()
			pieces = append(pieces, Piece{IsEntity: true, Entity: entityForRune(r)})
		case r < 0x80 && esc.matches(byte(r)):
			flush()
			pieces = append(pieces, Piece{IsEntity: true, Entity: entityForRune(r)})
		case r >= 0x80 && esc.NonASCII:
			flush()
			pieces = append(pieces, Piece{IsEntity: true, Entity: entityForRune(r)})
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return pieces
}

func entityForRune(r rune) string {
	switch r {
	case '\n':
		return "#10"
	case '\t':
		return "#9"
	case '\r':
		return "#13"
	default:
		return fmt.Sprintf("#x%X", r)
	}
}

// JoinCompound is the inverse of SplitCompound: concatenating the decoded
// content of every piece recovers the original logical string.
func JoinCompound(pieces []Piece, decodeEntity func(name string) (rune, bool)) (string, error) {
	var b strings.Builder
	for _, p := range pieces {
		if !p.IsEntity {
			b.WriteString(p.Text)
			continue
		}
		r, ok := decodeEntity(p.Entity)
		if !ok {
			return "", fmt.Errorf("xmq: unknown entity %q in compound value", p.Entity)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
