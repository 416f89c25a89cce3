package metricdoc

import (
	"regexp"
	"strings"
)

// TruncationMarker is appended whenever content is cut at the character
// ceiling, so downstream consumers can tell a short document from a
// truncated one.
const TruncationMarker = "\n\n[... document truncated ...]"

// Runs of three or more blank lines (four or more newlines once trailing
// whitespace is gone) collapse to a single blank line.
var blankRuns = regexp.MustCompile(`\n{4,}`)

// postProcess normalizes resolved content: per-line trailing whitespace is
// trimmed, runs of three or more blank lines collapse, and anything past
// the character ceiling is cut with an explicit marker.
func postProcess(content string, charLimit int) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	result := strings.TrimSpace(blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))

	if charLimit > 0 && len(result) > charLimit {
		cut := result[:charLimit]
		// Cut on a line boundary when one is close enough.
		if i := strings.LastIndexByte(cut, '\n'); i > charLimit/2 {
			cut = cut[:i]
		}
		result = strings.TrimRight(cut, "\n ") + TruncationMarker
	}
	return result
}
