package xmq

// Logger receives Warning errors produced during serialization.
// It is satisfied by *log.Logger from the standard library as well as by
// structured loggers such as charm.land/log/v2. A nil Logger is valid and
// discards every warning.
type Logger interface {
	Printf(format string, args ...interface{})
}

func warnf(l Logger, w *Warning) {
	if l == nil {
		return
	}
	l.Printf("%s", w.Error())
}

// Warn reports w to l if l is non-nil. Internal packages call this instead
// of returning Warning as an error, matching §7's "never fatal" contract.
func Warn(l Logger, w *Warning) {
	warnf(l, w)
}

// TrimMode selects the incidental-whitespace trimming policy applied to
// multi-line text on ingestion.
type TrimMode int

const (
	// TrimHeuristic strips incidental indentation using the same algorithm
	// the quote normalizer uses on emission (package quoting). It is the
	// zero value, matching typical usage: an Options{} ingests quoted
	// text dedented rather than byte for byte.
	TrimHeuristic TrimMode = iota
	// TrimNone performs no trimming; text is ingested byte for byte.
	TrimNone
	// TrimExact is reserved and always rejected with ErrUnsupportedTrimExact.
	TrimExact
)

func (m TrimMode) String() string {
	switch m {
	case TrimNone:
		return "none"
	case TrimHeuristic:
		return "heuristic"
	case TrimExact:
		return "exact"
	default:
		return "unknown"
	}
}
