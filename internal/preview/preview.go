// Package preview renders unified diffs for terminal review: colored
// removal/addition lines with word-level highlights on replaced lines.
package preview

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	headerColor  = color.New(color.FgCyan)
	removedColor = color.New(color.FgRed)
	addedColor   = color.New(color.FgGreen)
	emphasis     = color.New(color.Bold)
)

// Render colorizes unified-diff text. When a removal line is directly
// followed by an addition line, the changed words within the pair are
// emphasized using a word-level diff.
func Render(diffText string) string {
	lines := strings.Split(strings.TrimRight(diffText, "\n"), "\n")
	var b strings.Builder

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		switch {
		case strings.HasPrefix(line, "@@"):
			b.WriteString(headerColor.Sprint(line))
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			b.WriteString(headerColor.Sprint(line))
		case strings.HasPrefix(line, "-"):
			// Replaced-line pair: highlight intra-line changes.
			if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "+") && !strings.HasPrefix(lines[i+1], "+++") {
				oldLine, newLine := line[1:], lines[i+1][1:]
				b.WriteString(removedColor.Sprint("-" + highlight(oldLine, newLine, diffmatchpatch.DiffDelete)))
				b.WriteString("\n")
				b.WriteString(addedColor.Sprint("+" + highlight(oldLine, newLine, diffmatchpatch.DiffInsert)))
				i++
			} else {
				b.WriteString(removedColor.Sprint(line))
			}
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedColor.Sprint(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// highlight renders one side of a replaced-line pair, emphasizing the
// segments that differ.
func highlight(oldLine, newLine string, keep diffmatchpatch.Operation) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case keep:
			b.WriteString(emphasis.Sprint(d.Text))
		}
	}
	return b.String()
}
