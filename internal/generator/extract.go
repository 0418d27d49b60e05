package generator

import (
	"regexp"
	"strings"
)

// ExtractStatus classifies how a diff was recovered from a model
// response. Extraction is modeled as a typed two-stage parse instead
// of exception-style fallbacks: strict fenced-block extraction first,
// then a documented raw-scan fallback.
type ExtractStatus int

const (
	// ExtractNone means no diff structure was found.
	ExtractNone ExtractStatus = iota
	// ExtractFull means a fenced ```diff block was found.
	ExtractFull
	// ExtractPartial means no fenced block matched but a raw hunk run
	// was recovered by scanning for @@ headers.
	ExtractPartial
)

func (s ExtractStatus) String() string {
	switch s {
	case ExtractFull:
		return "full"
	case ExtractPartial:
		return "partial"
	default:
		return "none"
	}
}

var (
	// ```diff ... ``` or ```patch ... ``` fenced blocks.
	fencedDiff = regexp.MustCompile("(?s)```(?:diff|patch)\\s*\\n(.*?)```")
	// Any fenced block, checked for hunk headers as a second chance.
	fencedAny  = regexp.MustCompile("(?s)```[a-z]*\\s*\\n(.*?)```")
	hunkMarker = regexp.MustCompile(`(?m)^@@ -\d+(?:,\d+)? \+\d+(?:,\d+)? @@`)
)

// ExtractDiff recovers unified-diff text from a model response.
// Handles responses where the model adds preamble text around the
// patch.
//
// Strategy 1: fenced ```diff block. Strategy 2: any fenced block that
// contains a hunk header. Strategy 3 (partial): scan the raw response
// from the first hunk header onward, keeping header/body/context
// lines and stopping at the first line that cannot belong to a diff.
func ExtractDiff(response string) (string, ExtractStatus) {
	if m := fencedDiff.FindStringSubmatch(response); m != nil {
		diff := strings.TrimRight(m[1], "\n") + "\n"
		if hunkMarker.MatchString(diff) {
			return diff, ExtractFull
		}
	}

	for _, m := range fencedAny.FindAllStringSubmatch(response, -1) {
		if hunkMarker.MatchString(m[1]) {
			return strings.TrimRight(m[1], "\n") + "\n", ExtractFull
		}
	}

	if diff := scanRawDiff(response); diff != "" {
		return diff, ExtractPartial
	}

	return "", ExtractNone
}

// scanRawDiff collects diff lines starting at the first hunk header.
func scanRawDiff(response string) string {
	lines := strings.Split(response, "\n")

	start := -1
	for i, line := range lines {
		if hunkMarker.MatchString(line) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}

	var out []string
	for _, line := range lines[start:] {
		if isDiffLine(line) {
			out = append(out, line)
			continue
		}
		break
	}

	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// isDiffLine reports whether a line can belong to a unified diff body.
func isDiffLine(line string) bool {
	if line == "" {
		return true
	}
	switch line[0] {
	case '+', '-', ' ', '@', '\\':
		return true
	default:
		return false
	}
}
