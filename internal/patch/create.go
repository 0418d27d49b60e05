package patch

import (
	"fmt"
	"strings"
)

// Create builds a patch from old and new file content by positional
// line-by-line comparison, emitted as a single hunk covering the whole
// file. Lines at the same index that differ produce a removal and an
// addition; lines present on only one side produce a pure removal or
// addition; equal lines are emitted as context.
//
// This is intentionally a naive aligned diff: it does not detect line
// re-ordering or compute a minimal edit script. A moved line shows up
// as a remove+add pair. Replace with a minimal-diff algorithm only if
// the whole-file hunk shape is preserved.
func Create(filePath, oldContent, newContent, description string) *Patch {
	oldLines := strings.Split(oldContent, "\n")
	newLines := strings.Split(newContent, "\n")

	var body strings.Builder

	n := len(oldLines)
	if len(newLines) > n {
		n = len(newLines)
	}

	for i := 0; i < n; i++ {
		switch {
		case i < len(oldLines) && i < len(newLines):
			if oldLines[i] == newLines[i] {
				body.WriteString(" " + oldLines[i] + "\n")
			} else {
				body.WriteString("-" + oldLines[i] + "\n")
				body.WriteString("+" + newLines[i] + "\n")
			}
		case i < len(oldLines):
			body.WriteString("-" + oldLines[i] + "\n")
		default:
			body.WriteString("+" + newLines[i] + "\n")
		}
	}

	diff := fmt.Sprintf("--- a/%s\n+++ b/%s\n@@ -1,%d +1,%d @@\n%s",
		filePath, filePath, len(oldLines), len(newLines), body.String())

	return &Patch{
		Diff:        diff,
		Description: description,
		FilePath:    filePath,
		Source:      SourceManual,
	}
}
