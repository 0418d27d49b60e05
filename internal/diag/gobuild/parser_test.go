package gobuild

import (
	"testing"

	"github.com/remedykit/remedy-cli/internal/diag"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{
			name:  "single error with column",
			input: "./pkg/store/store.go:42:15: undefined: store.OpenBucket",
			want:  1,
		},
		{
			name:  "error without column",
			input: "main.go:7: undefined: helper",
			want:  1,
		},
		{
			name: "package header is skipped",
			input: `# example.com/pkg/store
pkg/store/store.go:42:15: undefined: store.OpenBucket`,
			want: 1,
		},
		{
			name:  "vet warning",
			input: "pkg/api/api.go:10:2: warning: unreachable code",
			want:  1,
		},
		{
			name:  "empty output",
			input: "",
			want:  0,
		},
		{
			name:  "non-diagnostic noise",
			input: "go: downloading github.com/spf13/cobra v1.10.1",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOutput(tt.input)
			if err != nil {
				t.Fatalf("parseOutput() unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("parseOutput() returned %d diagnostics, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseOutputDetails(t *testing.T) {
	diagnostics, err := parseOutput("./pkg/store/store.go:42:15: undefined: store.OpenBucket")
	if err != nil {
		t.Fatalf("parseOutput() unexpected error: %v", err)
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diagnostics))
	}

	d := diagnostics[0]
	if d.File != "pkg/store/store.go" {
		t.Errorf("File = %q, want leading ./ stripped", d.File)
	}
	if d.Line != 42 {
		t.Errorf("Line = %d, want 42", d.Line)
	}
	if d.Message != "undefined: store.OpenBucket" {
		t.Errorf("Message = %q", d.Message)
	}
	if d.Severity != diag.SeverityError {
		t.Errorf("Severity = %q", d.Severity)
	}
}

func TestParseOutputWarningPrefix(t *testing.T) {
	diagnostics, err := parseOutput("pkg/api/api.go:10:2: warning: unreachable code")
	if err != nil {
		t.Fatalf("parseOutput() unexpected error: %v", err)
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diagnostics))
	}

	d := diagnostics[0]
	if d.Severity != diag.SeverityWarning {
		t.Errorf("Severity = %q, want warning", d.Severity)
	}
	if d.Message != "unreachable code" {
		t.Errorf("Message = %q, want warning prefix stripped", d.Message)
	}
}
