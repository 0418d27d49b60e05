package patch

import (
	"fmt"
	"strings"
)

// ReverseDiff turns a diff into its inverse: removal lines become
// additions and vice versa (content preserved), and each hunk header's
// old and new fields swap. An absent count defaults to 1 and is
// serialized explicitly when swapped in. Context lines, file headers,
// and everything else pass through unchanged.
//
// Applying the result with Apply is a left inverse of the forward
// apply on the lines the hunks touch.
func ReverseDiff(diffText string) string {
	lines := strings.Split(diffText, "\n")
	out := make([]string, len(lines))

	for i, line := range lines {
		switch {
		case hunkHeader.MatchString(line):
			out[i] = reverseHeader(line)
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			out[i] = line
		case strings.HasPrefix(line, "-"):
			out[i] = "+" + line[1:]
		case strings.HasPrefix(line, "+"):
			out[i] = "-" + line[1:]
		default:
			out[i] = line
		}
	}

	return strings.Join(out, "\n")
}

// reverseHeader swaps the old and new fields of a hunk header,
// preserving any section text after the closing @@.
func reverseHeader(line string) string {
	m := hunkHeader.FindStringSubmatch(line)
	trailer := line[len(m[0]):]

	oldStart := atoiDefault(m[1], 1)
	oldCount := atoiDefault(m[2], 1)
	newStart := atoiDefault(m[3], 1)
	newCount := atoiDefault(m[4], 1)

	return fmt.Sprintf("@@ -%d,%d +%d,%d @@%s", newStart, newCount, oldStart, oldCount, trailer)
}
