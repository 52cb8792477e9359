package quoting

import "strings"

// leadingSpaceWidth counts line's leading run of spaces and tabs, counting
// a tab as eight columns (§4.4.1 step 3).
func leadingSpaceWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 8
		default:
			return w
		}
	}
	return w
}

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t") == ""
}

// stripLeading removes up to n columns worth of leading spaces/tabs from
// line, counting a tab as eight columns; a tab that straddles the boundary
// is simply consumed whole once any of its width has been accounted for.
func stripLeading(line string, n int) string {
	w := 0
	i := 0
	for i < len(line) && w < n {
		switch line[i] {
		case ' ':
			w++
			i++
		case '\t':
			w += 8
			i++
		default:
			return line[i:]
		}
	}
	return line[i:]
}

// Unquote implements §4.4.1: given the raw content inside the delimiting
// quotes, the column k of the opening quote, and a pad character, produce
// the logical string content.
func Unquote(body string, k int, pad byte) string {
	if body == "" {
		return ""
	}
	if !strings.Contains(body, "\n") {
		// Incidental-indentation stripping only has meaning across
		// multiple lines (§4.4.1); a single-line body is never reindented
		// to the column it happens to start at.
		return body
	}

	lines := strings.Split(body, "\n")

	baseline := k
	// While lines[0] is the text right after the opening quote, its indent
	// is k rather than its own leading spaces, so it takes no part in the
	// incidental-indent minimum below.
	firstOnQuoteLine := true
	if len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
		firstOnQuoteLine = false
		if len(lines) > 0 {
			baseline = leadingSpaceWidth(lines[0])
		}
	}

	trailingNewline := false
	if len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		trailingNewline = true
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		if trailingNewline {
			return "\n"
		}
		return ""
	}

	incidental := -1
	for i, line := range lines {
		if isBlank(line) || (i == 0 && firstOnQuoteLine) {
			continue
		}
		w := leadingSpaceWidth(line)
		if incidental == -1 || w < incidental {
			incidental = w
		}
	}
	if incidental == -1 {
		incidental = 0
	}

	stripped := make([]string, len(lines))
	for i, line := range lines {
		if isBlank(line) {
			stripped[i] = ""
			continue
		}
		stripped[i] = stripLeading(line, incidental)
	}

	if baseline > incidental {
		pad := strings.Repeat(string(pad), baseline-incidental)
		stripped[0] = pad + stripped[0]
	}

	result := strings.Join(stripped, "\n")
	if trailingNewline {
		result += "\n"
	}
	return result
}
