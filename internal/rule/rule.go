// Package rule holds the deterministic fix rules (tier 1): an ordered
// registry of message predicates paired with patch generators.
package rule

import (
	"github.com/remedykit/remedy-cli/internal/cluster"
	"github.com/remedykit/remedy-cli/internal/diag"
	"github.com/remedykit/remedy-cli/internal/patch"
)

// Rule pairs a predicate over a single diagnostic's message with a
// patch generator for one diagnostic instance.
//
// Predicates must be pure substring/keyword tests on the message text;
// they must not inspect cluster size or sibling instances. Generate
// may return nil when an instance lacks the context to fix safely.
type Rule struct {
	ID          string
	Name        string
	Description string

	Match    func(d diag.Diagnostic) bool
	Generate func(d diag.Diagnostic) *patch.Patch
}

// GenerateFixes invokes the rule's generator for every instance in the
// cluster, in instance order. Instances the rule declines to fix are
// silently skipped, so the result may be shorter than the instance
// list. Pure mapping, no side effects.
func GenerateFixes(c *cluster.ErrorCluster, r *Rule) []patch.Patch {
	patches := make([]patch.Patch, 0, len(c.Instances))

	for _, d := range c.Instances {
		p := r.Generate(d)
		if p == nil {
			continue
		}
		patches = append(patches, *p)
	}

	return patches
}
