package patch

import (
	"fmt"
	"strings"
)

// Validate checks diff context against the current file content before
// anything is mutated. For each hunk, the contiguous context-line run
// immediately following the header must match the file's lines at the
// 1-indexed positions OldStart+offset exactly. Any mismatch, including
// running past end of file, fails the whole patch.
//
// This is a pessimistic conflict check against file drift. It does not
// re-verify context lines that appear after interior removal/addition
// lines within a hunk, so multi-block hunks with trailing context get
// weaker validation. Hunks with no leading context are treated as
// structurally valid.
func Validate(fileContent, diffText string) error {
	hunks := ParseDiff(diffText)
	if len(hunks) == 0 {
		return fmt.Errorf("%w: %q", ErrNoHunks, firstLine(diffText))
	}

	lines := strings.Split(fileContent, "\n")

	for _, h := range hunks {
		for i, want := range h.LeadingContext {
			pos := h.OldStart + i // 1-indexed
			if pos < 1 || pos > len(lines) {
				return fmt.Errorf("%w: hunk at -%d expects line %d, file has %d lines",
					ErrValidation, h.OldStart, pos, len(lines))
			}
			if lines[pos-1] != want {
				return fmt.Errorf("%w: line %d is %q, patch expects %q",
					ErrValidation, pos, lines[pos-1], want)
			}
		}
	}

	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
