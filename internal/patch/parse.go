package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// Hunk is one contiguous change region within a unified diff.
// Hunks are parsed fresh from each diff string and never persisted.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int

	// RemovedLines and AddedLines hold body content without the
	// leading -/+ markers.
	RemovedLines []string
	AddedLines   []string

	// LeadingContext is the contiguous run of context lines
	// immediately after the hunk header, before any removal or
	// addition. It is used only by Validate; context lines appearing
	// later in the hunk body are not stored structurally.
	LeadingContext []string
}

// Hunk header: @@ -<oldStart>[,<oldCount>] +<newStart>[,<newCount>] @@
var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseDiff scans unified-diff text into structured hunks, in file
// order. Lines before the first hunk header (including --- and +++
// file headers) are ignored. A missing count field defaults to 1.
func ParseDiff(diffText string) []Hunk {
	lines := strings.Split(diffText, "\n")
	hunks := make([]Hunk, 0)

	var current *Hunk
	inBody := false // true once the current hunk has a removal/addition

	for _, line := range lines {
		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			if current != nil {
				hunks = append(hunks, *current)
			}
			current = &Hunk{
				OldStart: atoiDefault(m[1], 1),
				OldCount: atoiDefault(m[2], 1),
				NewStart: atoiDefault(m[3], 1),
				NewCount: atoiDefault(m[4], 1),
			}
			inBody = false
			continue
		}

		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			// File headers, not hunk content.
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" markers.
		case strings.HasPrefix(line, "-"):
			current.RemovedLines = append(current.RemovedLines, line[1:])
			inBody = true
		case strings.HasPrefix(line, "+"):
			current.AddedLines = append(current.AddedLines, line[1:])
			inBody = true
		default:
			// Context line. Only the run directly after the header is
			// kept, for validation.
			if !inBody {
				current.LeadingContext = append(current.LeadingContext, strings.TrimPrefix(line, " "))
			}
		}
	}

	if current != nil {
		hunks = append(hunks, *current)
	}

	return hunks
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
