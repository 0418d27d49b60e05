package cluster

import (
	"testing"

	"github.com/remedykit/remedy-cli/internal/diag"
)

func TestCluster(t *testing.T) {
	diagnostics := []diag.Diagnostic{
		{File: "src/a.ts", Line: 3, Message: "Cannot find name 'HttpModule'.", Severity: diag.SeverityError},
		{File: "src/b.ts", Line: 7, Message: "Cannot find name 'Observable'.", Severity: diag.SeverityError},
		{File: "src/c.ts", Line: 1, Message: "Expected 2 arguments, but got 3.", Severity: diag.SeverityError},
		{File: "src/d.ts", Line: 9, Message: "Cannot find name 'Subject'.", Severity: diag.SeverityError},
	}

	clusters := Cluster(diagnostics)

	if len(clusters) != 2 {
		t.Fatalf("Cluster() returned %d clusters, want 2", len(clusters))
	}

	first := clusters[0]
	if first.ID != "cluster-1" {
		t.Errorf("first cluster ID = %q, want %q", first.ID, "cluster-1")
	}
	if first.Pattern != "Cannot find name <STRING>." {
		t.Errorf("first cluster pattern = %q", first.Pattern)
	}
	if first.Size() != 3 {
		t.Errorf("first cluster size = %d, want 3", first.Size())
	}
	if first.Representative.File != "src/a.ts" {
		t.Errorf("representative = %q, want first-seen diagnostic src/a.ts", first.Representative.File)
	}

	second := clusters[1]
	if second.ID != "cluster-2" {
		t.Errorf("second cluster ID = %q, want %q", second.ID, "cluster-2")
	}
	if second.Size() != 1 {
		t.Errorf("second cluster size = %d, want 1", second.Size())
	}
}

func TestClusterOrderIsFirstSeen(t *testing.T) {
	diagnostics := []diag.Diagnostic{
		{File: "x.ts", Line: 1, Message: "pattern B 1"},
		{File: "x.ts", Line: 2, Message: "pattern A"},
		{File: "x.ts", Line: 3, Message: "pattern B 2"},
	}

	clusters := Cluster(diagnostics)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}
	if clusters[0].Pattern != "pattern B <NUM>" {
		t.Errorf("cluster order should follow first appearance, got %q first", clusters[0].Pattern)
	}
}

func TestClusterEmpty(t *testing.T) {
	if clusters := Cluster(nil); len(clusters) != 0 {
		t.Errorf("Cluster(nil) = %d clusters, want 0", len(clusters))
	}
}
