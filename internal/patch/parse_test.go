package patch

import "testing"

func TestParseDiff(t *testing.T) {
	diff := `--- a/src/app.ts
+++ b/src/app.ts
@@ -3,2 +3,2 @@
 import { Component } from '@angular/core';
-import { HttpModule } from '@angular/http';
+import { HttpClientModule } from '@angular/common/http';
@@ -10 +10 @@
-old line
+new line
`

	hunks := ParseDiff(diff)
	if len(hunks) != 2 {
		t.Fatalf("ParseDiff() returned %d hunks, want 2", len(hunks))
	}

	h := hunks[0]
	if h.OldStart != 3 || h.OldCount != 2 || h.NewStart != 3 || h.NewCount != 2 {
		t.Errorf("first header parsed as -%d,%d +%d,%d", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
	if len(h.LeadingContext) != 1 || h.LeadingContext[0] != "import { Component } from '@angular/core';" {
		t.Errorf("leading context = %v", h.LeadingContext)
	}
	if len(h.RemovedLines) != 1 || len(h.AddedLines) != 1 {
		t.Errorf("body = %d removed, %d added", len(h.RemovedLines), len(h.AddedLines))
	}

	// Missing count fields default to 1.
	h = hunks[1]
	if h.OldCount != 1 || h.NewCount != 1 {
		t.Errorf("default counts = %d, %d, want 1, 1", h.OldCount, h.NewCount)
	}
}

func TestParseDiffContextAfterBodyNotLeading(t *testing.T) {
	diff := `@@ -1,3 +1,3 @@
 context before
-removed
 context after
`
	hunks := ParseDiff(diff)
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	if len(hunks[0].LeadingContext) != 1 {
		t.Errorf("trailing context must not be recorded as leading, got %v", hunks[0].LeadingContext)
	}
}

func TestParseDiffNoHunks(t *testing.T) {
	if hunks := ParseDiff("just some text\nno markers here\n"); len(hunks) != 0 {
		t.Errorf("ParseDiff() on plain text returned %d hunks", len(hunks))
	}
}

func TestParseDiffSkipsNoNewlineMarker(t *testing.T) {
	diff := "@@ -1,1 +1,1 @@\n-old\n+new\n\\ No newline at end of file\n"
	hunks := ParseDiff(diff)
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	if len(hunks[0].AddedLines) != 1 || hunks[0].AddedLines[0] != "new" {
		t.Errorf("added lines = %v", hunks[0].AddedLines)
	}
}
