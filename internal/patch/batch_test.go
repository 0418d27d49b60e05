package patch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestApplyBatchSuccess(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ts", "one\ntwo")
	b := writeFile(t, dir, "b.ts", "three\nfour")

	engine := NewEngine(nil)
	result := engine.ApplyBatch([]BatchItem{
		{FilePath: a, Patch: &Patch{Diff: "@@ -1,1 +1,1 @@\n-one\n+ONE\n", Source: SourcePattern}},
		{FilePath: b, Patch: &Patch{Diff: "@@ -2,1 +2,1 @@\n-four\n+FOUR\n", Source: SourcePattern}},
	})

	if !result.Success() {
		t.Fatalf("ApplyBatch() failed: %v", result.Err)
	}
	if result.Applied != 2 {
		t.Errorf("Applied = %d, want 2", result.Applied)
	}
	if result.RolledBack {
		t.Error("RolledBack = true on success")
	}
	if got := readFile(t, a); got != "ONE\ntwo" {
		t.Errorf("a.ts = %q", got)
	}
	if got := readFile(t, b); got != "three\nFOUR" {
		t.Errorf("b.ts = %q", got)
	}
}

func TestApplyBatchRollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ts", "one\ntwo")
	b := writeFile(t, dir, "b.ts", "three\nfour")

	engine := NewEngine(nil)
	result := engine.ApplyBatch([]BatchItem{
		{FilePath: a, Patch: &Patch{Diff: "@@ -1,1 +1,1 @@\n-one\n+ONE\n", Source: SourcePattern}},
		// Stale context: validation fails, triggering rollback of a.ts.
		{FilePath: b, Patch: &Patch{Diff: "@@ -1,2 +1,2 @@\n WRONG\n-four\n+FOUR\n", Source: SourcePattern}},
	})

	if result.Success() {
		t.Fatal("ApplyBatch() succeeded, want failure")
	}
	if !result.RolledBack {
		t.Error("RolledBack = false after failure")
	}
	if result.Applied != 0 {
		t.Errorf("Applied = %d after clean rollback, want 0", result.Applied)
	}
	if len(result.RollbackErrors) != 0 {
		t.Errorf("RollbackErrors = %v, want none", result.RollbackErrors)
	}

	// Both files back to their original content.
	if got := readFile(t, a); got != "one\ntwo" {
		t.Errorf("a.ts = %q, want original content restored", got)
	}
	if got := readFile(t, b); got != "three\nfour" {
		t.Errorf("b.ts = %q, want untouched", got)
	}
}

func TestApplyBatchMissingFile(t *testing.T) {
	dir := t.TempDir()

	engine := NewEngine(nil)
	result := engine.ApplyBatch([]BatchItem{
		{FilePath: filepath.Join(dir, "missing.ts"), Patch: &Patch{Diff: "@@ -1,1 +1,1 @@\n-a\n+b\n"}},
	})

	if result.Success() {
		t.Fatal("expected failure on missing file")
	}
	if result.Applied != 0 {
		t.Errorf("Applied = %d, want 0", result.Applied)
	}
}

func TestApplyBatchEmpty(t *testing.T) {
	engine := NewEngine(nil)
	result := engine.ApplyBatch(nil)
	if !result.Success() || result.Applied != 0 {
		t.Errorf("empty batch: Applied = %d, err = %v", result.Applied, result.Err)
	}
}
