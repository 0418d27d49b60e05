package tsc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/remedykit/remedy-cli/internal/diag"
)

// Regex to match tsc output:
// file.ts(line,col): severity TScode: message
var tscLine = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\):\s+(error|warning|suggestion)\s+TS(\d+):\s+(.+)$`)

// parseOutput parses tsc text output and converts it to diagnostics.
// TSC output format (without --pretty):
//
//	src/main.ts(10,5): error TS2304: Cannot find name 'foo'.
func parseOutput(output string) ([]diag.Diagnostic, error) {
	lines := strings.Split(output, "\n")
	diagnostics := make([]diag.Diagnostic, 0)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := tscLine.FindStringSubmatch(line)
		if len(matches) != 7 {
			continue
		}

		lineNum, _ := strconv.Atoi(matches[2])

		diagnostics = append(diagnostics, diag.Diagnostic{
			File:     matches[1],
			Line:     lineNum,
			Message:  matches[6],
			Severity: mapSeverity(matches[4]),
		})
	}

	return diagnostics, nil
}

// mapSeverity maps tsc severity string to standard severity.
func mapSeverity(severity string) string {
	switch severity {
	case "error":
		return diag.SeverityError
	case "warning":
		return diag.SeverityWarning
	case "suggestion":
		return diag.SeverityInfo
	default:
		return diag.SeverityError
	}
}
