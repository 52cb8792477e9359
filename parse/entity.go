package parse

import "github.com/libxmq/xmq/xmq"

// predefinedEntities are the five entities the text-merge pass folds
// directly into a Text node's content instead of leaving standalone,
// mirroring the predefined XML entity set (§4.3).
var predefinedEntities = map[string]rune{
	"amp":  '&',
	"lt":   '<',
	"gt":   '>',
	"apos": '\'',
	"quot": '"',
}

// decodeMergeableEntity reports the rune a predefined or numeric character
// reference decodes to, for folding into an adjacent Text node during
// merge. A name that is neither predefined nor well-formed numeric returns
// ok=false, meaning the caller should keep it as a standalone entity
// reference node instead. A numeric reference whose value is out of range
// or inside the UTF-16 surrogate range is an EncodingError (§7), not merely
// "not mergeable".
func decodeMergeableEntity(name string) (r rune, ok bool, err error) {
	if len(name) > 0 && name[0] == '#' {
		r, ok := decodeNumericEntity(name)
		if !ok {
			return 0, false, &xmq.EncodingError{Reason: "numeric character reference &" + name + "; is out of range"}
		}
		return r, true, nil
	}
	r, ok = predefinedEntities[name]
	return r, ok, nil
}

func decodeNumericEntity(name string) (rune, bool) {
	rest := name[1:]
	base := 10
	if len(rest) > 0 && (rest[0] == 'x' || rest[0] == 'X') {
		base = 16
		rest = rest[1:]
	}
	if rest == "" {
		return 0, false
	}
	var v int64
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		var d int64
		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case base == 16 && c >= 'a' && c <= 'f':
			d = int64(c-'a') + 10
		case base == 16 && c >= 'A' && c <= 'F':
			d = int64(c-'A') + 10
		default:
			return 0, false
		}
		v = v*int64(base) + d
		if v > 0x10FFFF {
			return 0, false
		}
	}
	if v >= 0xD800 && v <= 0xDFFF {
		return 0, false
	}
	return rune(v), true
}
