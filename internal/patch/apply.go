package patch

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Apply applies unified-diff text to content and returns the patched
// content.
//
// Hunks are applied in reverse order (last hunk first) so line numbers
// of earlier hunks stay valid despite line-count shifts caused by
// later hunks. Each hunk is a splice at OldStart-1: exactly
// len(RemovedLines) lines are removed, then AddedLines are inserted at
// the same position.
func Apply(content, diffText string) (string, error) {
	hunks := ParseDiff(diffText)
	if len(hunks) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoHunks, firstLine(diffText))
	}

	lines := strings.Split(content, "\n")

	for i := len(hunks) - 1; i >= 0; i-- {
		h := hunks[i]

		pos := h.OldStart - 1
		if pos < 0 {
			return "", fmt.Errorf("%w: hunk at -%d yields negative splice position", ErrApply, h.OldStart)
		}
		if pos+len(h.RemovedLines) > len(lines) {
			return "", fmt.Errorf("%w: hunk at -%d removes %d lines past end of content (%d lines)",
				ErrApply, h.OldStart, len(h.RemovedLines), len(lines))
		}

		spliced := make([]string, 0, len(lines)-len(h.RemovedLines)+len(h.AddedLines))
		spliced = append(spliced, lines[:pos]...)
		spliced = append(spliced, h.AddedLines...)
		spliced = append(spliced, lines[pos+len(h.RemovedLines):]...)
		lines = spliced
	}

	return strings.Join(lines, "\n"), nil
}

// ApplyToFile validates and applies a patch to the file on disk.
// The file is left untouched on any failure: missing file, stale
// context, unparseable diff, or invalid splice.
func (e *Engine) ApplyToFile(filePath string, p *Patch) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	content := string(data)

	if err := Validate(content, p.Diff); err != nil {
		return fmt.Errorf("validation failed for %s: %w", filePath, err)
	}

	newContent, err := Apply(content, p.Diff)
	if err != nil {
		return fmt.Errorf("apply failed for %s: %w", filePath, err)
	}

	if err := os.WriteFile(filePath, []byte(newContent), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	e.log.Debug("patch applied",
		zap.String("file", filePath),
		zap.String("source", string(p.Source)),
		zap.String("description", p.Description))

	return nil
}

// RevertFile applies the reverse of a previously-applied patch.
func (e *Engine) RevertFile(filePath string, p *Patch) error {
	reversed := &Patch{
		Diff:        ReverseDiff(p.Diff),
		Description: "revert: " + p.Description,
		FilePath:    p.FilePath,
		Source:      p.Source,
	}
	return e.ApplyToFile(filePath, reversed)
}
