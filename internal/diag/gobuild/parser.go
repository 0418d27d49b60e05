package gobuild

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/remedykit/remedy-cli/internal/diag"
)

// Regex to match go build / go vet output:
// file.go:line:col: message (column optional)
var buildLine = regexp.MustCompile(`^(.+\.go):(\d+)(?::(\d+))?:\s+(.+)$`)

// parseOutput parses `go build` text output.
// Format: ./pkg/store/store.go:42:15: undefined: store.OpenBucket
func parseOutput(output string) ([]diag.Diagnostic, error) {
	lines := strings.Split(output, "\n")
	diagnostics := make([]diag.Diagnostic, 0)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			// "# package/path" group headers carry no position info.
			continue
		}

		matches := buildLine.FindStringSubmatch(line)
		if len(matches) != 5 {
			continue
		}

		lineNum, _ := strconv.Atoi(matches[2])
		message := matches[4]

		severity := diag.SeverityError
		if strings.HasPrefix(message, "warning:") {
			severity = diag.SeverityWarning
			message = strings.TrimSpace(strings.TrimPrefix(message, "warning:"))
		}

		diagnostics = append(diagnostics, diag.Diagnostic{
			File:     strings.TrimPrefix(matches[1], "./"),
			Line:     lineNum,
			Message:  message,
			Severity: severity,
		})
	}

	return diagnostics, nil
}
