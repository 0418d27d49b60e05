package cluster

import (
	"fmt"

	"github.com/remedykit/remedy-cli/internal/diag"
)

// ErrorCluster is a group of diagnostics sharing one pattern key.
//
// Clusters are built once per run and never mutated afterward; a new
// clustering pass produces new clusters.
type ErrorCluster struct {
	// ID is stable and sequential within one run ("cluster-1", ...).
	ID string

	// Pattern is the normalized key shared by all instances.
	Pattern string

	// Representative is the first diagnostic seen for this key.
	Representative diag.Diagnostic

	// Instances holds every diagnostic with this key, in input order.
	Instances []diag.Diagnostic
}

// Size returns the number of diagnostics in the cluster.
func (c *ErrorCluster) Size() int {
	return len(c.Instances)
}

// Cluster partitions diagnostics by pattern key.
//
// Clusters are returned in the order their pattern first appeared;
// within a cluster, instances preserve the original diagnostic order.
// Every diagnostic lands in exactly one cluster: normalization cannot
// fail, a message with no volatile tokens is its own key.
func Cluster(diagnostics []diag.Diagnostic) []*ErrorCluster {
	clusters := make([]*ErrorCluster, 0)
	byKey := make(map[string]*ErrorCluster)

	for _, d := range diagnostics {
		key := PatternKey(d.Message)

		c, ok := byKey[key]
		if !ok {
			c = &ErrorCluster{
				ID:             fmt.Sprintf("cluster-%d", len(clusters)+1),
				Pattern:        key,
				Representative: d,
			}
			byKey[key] = c
			clusters = append(clusters, c)
		}

		c.Instances = append(c.Instances, d)
	}

	return clusters
}
