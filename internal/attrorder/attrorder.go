// Package attrorder gives synthesized namespace-declaration attributes a
// deterministic order. It is adapted from ucarion/c14n's internal/sortattr,
// which orders the attribute axis of a c14n-canonicalized element: default
// namespace first, then namespace declarations by prefix, then ordinary
// attributes by URI/local name. XMQ never needs to reorder attributes that
// came from source text (§3's ordered attribute list is preserved
// verbatim), but the XML bridge does synthesize xmlns/xmlns:prefix
// attributes for bindings that a constructed (non-parsed) Document declares
// without an explicit attribute, and those need a stable, reproducible
// order across runs. This package keeps the teacher's ordering rule for
// exactly that narrower job.
package attrorder

import "sort"

// NSAttr is one namespace declaration to be rendered as an xmlns attribute.
// Prefix == "" denotes the default namespace.
type NSAttr struct {
	Prefix string
	URI    string
}

// byRule implements sort.Interface for a slice of NSAttr using the same
// precedence the teacher used for the namespace axis: the default
// namespace node sorts first (it has no local name and is therefore
// lexicographically least), then prefixed bindings sort by prefix.
type byRule []NSAttr

func (a byRule) Len() int      { return len(a) }
func (a byRule) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byRule) Less(i, j int) bool {
	if a[i].Prefix == "" {
		return true
	}
	if a[j].Prefix == "" {
		return false
	}
	return a[i].Prefix < a[j].Prefix
}

// Sort orders attrs in place: default namespace first, then prefixed
// bindings lexicographically by prefix.
func Sort(attrs []NSAttr) {
	sort.Sort(byRule(attrs))
}
