package rule

import (
	"strings"
	"testing"

	"github.com/remedykit/remedy-cli/internal/cluster"
	"github.com/remedykit/remedy-cli/internal/diag"
	"github.com/remedykit/remedy-cli/internal/patch"
)

func matchAll(d diag.Diagnostic) bool  { return true }
func matchNone(d diag.Diagnostic) bool { return false }

func genStub(desc string) func(diag.Diagnostic) *patch.Patch {
	return func(d diag.Diagnostic) *patch.Patch {
		return &patch.Patch{Diff: "@@ -1,1 +1,1 @@\n-a\n+b\n", Description: desc, FilePath: d.File, Source: patch.SourcePattern}
	}
}

func testCluster(messages ...string) *cluster.ErrorCluster {
	diags := make([]diag.Diagnostic, len(messages))
	for i, m := range messages {
		diags[i] = diag.Diagnostic{File: "f.ts", Line: i + 1, Message: m, Severity: diag.SeverityError}
	}
	return &cluster.ErrorCluster{
		ID:             "cluster-1",
		Pattern:        "test",
		Representative: diags[0],
		Instances:      diags,
	}
}

func TestRegistryMatchOrder(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&Rule{ID: "first", Match: matchAll, Generate: genStub("first")})
	reg.MustRegister(&Rule{ID: "second", Match: matchAll, Generate: genStub("second")})

	got := reg.Match(testCluster("anything"))
	if got == nil || got.ID != "first" {
		t.Errorf("Match() = %v, want earlier-registered rule to win", got)
	}
}

func TestRegistryNoMatch(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&Rule{ID: "never", Match: matchNone, Generate: genStub("never")})

	if got := reg.Match(testCluster("anything")); got != nil {
		t.Errorf("Match() = %v, want nil", got)
	}
}

func TestRegistryRejectsDuplicateID(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&Rule{ID: "dup", Match: matchAll, Generate: genStub("a")})

	err := reg.Register(&Rule{ID: "dup", Match: matchAll, Generate: genStub("b")})
	if err == nil {
		t.Fatal("Register() accepted a duplicate id")
	}
	if !strings.Contains(err.Error(), "already registered") {
		t.Errorf("error = %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d after rejected duplicate, want 1", reg.Len())
	}
}

func TestRegistryRejectsIncompleteRule(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&Rule{ID: "no-generate", Match: matchAll}); err == nil {
		t.Error("Register() accepted a rule without Generate")
	}
	if err := reg.Register(nil); err == nil {
		t.Error("Register() accepted nil")
	}
}

func TestGenerateFixesSkipsNil(t *testing.T) {
	r := &Rule{
		ID:    "selective",
		Match: matchAll,
		Generate: func(d diag.Diagnostic) *patch.Patch {
			if strings.Contains(d.Message, "skip") {
				return nil
			}
			return &patch.Patch{Diff: "@@ -1,1 +1,1 @@\n-a\n+b\n", FilePath: d.File, Source: patch.SourcePattern}
		},
	}

	c := testCluster("fix me", "skip me", "fix me too")
	patches := GenerateFixes(c, r)

	if len(patches) != 2 {
		t.Errorf("GenerateFixes() = %d patches, want 2 (nil skipped)", len(patches))
	}
}

func TestGenerateFixesInstanceOrder(t *testing.T) {
	r := &Rule{
		ID:    "ordered",
		Match: matchAll,
		Generate: func(d diag.Diagnostic) *patch.Patch {
			return &patch.Patch{Diff: "@@ -1,1 +1,1 @@\n-a\n+b\n", Description: d.Message, Source: patch.SourcePattern}
		},
	}

	c := testCluster("one", "two", "three")
	patches := GenerateFixes(c, r)

	want := []string{"one", "two", "three"}
	for i, p := range patches {
		if p.Description != want[i] {
			t.Errorf("patch %d description = %q, want %q", i, p.Description, want[i])
		}
	}
}
