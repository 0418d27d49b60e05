package generator

import (
	"strings"
	"testing"
)

func TestExtractDiff(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantStatus ExtractStatus
		wantInDiff string
	}{
		{
			name:       "fenced diff block",
			response:   "Here is the fix:\n```diff\n@@ -1,1 +1,1 @@\n-old\n+new\n```\nDone.",
			wantStatus: ExtractFull,
			wantInDiff: "-old",
		},
		{
			name:       "fenced patch block",
			response:   "```patch\n@@ -3,1 +3,1 @@\n-a\n+b\n```",
			wantStatus: ExtractFull,
			wantInDiff: "@@ -3,1 +3,1 @@",
		},
		{
			name:       "unlabeled fence with hunk header",
			response:   "```\n@@ -1,1 +1,1 @@\n-x\n+y\n```",
			wantStatus: ExtractFull,
			wantInDiff: "+y",
		},
		{
			name:       "raw diff without fences",
			response:   "I suggest this change:\n@@ -5,2 +5,2 @@\n context\n-bad\n+good\nThat should fix it.",
			wantStatus: ExtractPartial,
			wantInDiff: "+good",
		},
		{
			name:       "fenced code block without hunks is ignored",
			response:   "```ts\nconst x = 1;\n```",
			wantStatus: ExtractNone,
		},
		{
			name:       "plain prose",
			response:   "You should update your imports manually.",
			wantStatus: ExtractNone,
		},
		{
			name:       "empty response",
			response:   "",
			wantStatus: ExtractNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, status := ExtractDiff(tt.response)
			if status != tt.wantStatus {
				t.Fatalf("ExtractDiff() status = %v, want %v", status, tt.wantStatus)
			}
			if tt.wantStatus == ExtractNone {
				if diff != "" {
					t.Errorf("ExtractDiff() diff = %q, want empty", diff)
				}
				return
			}
			if !strings.Contains(diff, tt.wantInDiff) {
				t.Errorf("ExtractDiff() diff = %q, want it to contain %q", diff, tt.wantInDiff)
			}
		})
	}
}

func TestExtractDiffRawScanStopsAtProse(t *testing.T) {
	response := "@@ -1,1 +1,1 @@\n-a\n+b\nThat concludes the patch."
	diff, status := ExtractDiff(response)

	if status != ExtractPartial {
		t.Fatalf("status = %v, want partial", status)
	}
	if strings.Contains(diff, "concludes") {
		t.Errorf("raw scan leaked prose into the diff: %q", diff)
	}
}

func TestExtractStatusString(t *testing.T) {
	if ExtractFull.String() != "full" || ExtractPartial.String() != "partial" || ExtractNone.String() != "none" {
		t.Error("ExtractStatus.String() labels changed")
	}
}
