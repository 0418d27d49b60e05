package rule

import (
	"fmt"
	"sync"

	"github.com/remedykit/remedy-cli/internal/cluster"
)

// Registry holds rules in registration order. Order is a deliberate
// priority: when two rules both match a representative, the
// earlier-registered rule wins, deterministically.
type Registry struct {
	mu    sync.RWMutex
	rules []*Rule
	byID  map[string]*Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Rule)}
}

var (
	globalRegistry *Registry
	once           sync.Once
)

// Global returns the singleton registry instance. Built-in rules
// register here from init() via the bootstrap package.
func Global() *Registry {
	once.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Register appends a rule. Duplicate ids are rejected so priority
// order stays unambiguous.
func (r *Registry) Register(rule *Rule) error {
	if rule == nil || rule.Match == nil || rule.Generate == nil {
		return fmt.Errorf("cannot register incomplete rule")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rule.ID]; exists {
		return fmt.Errorf("rule %q already registered", rule.ID)
	}

	r.rules = append(r.rules, rule)
	r.byID[rule.ID] = rule
	return nil
}

// MustRegister registers a rule and panics on error. Useful in init().
func (r *Registry) MustRegister(rule *Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Match returns the first registered rule whose predicate matches the
// cluster's representative, or nil when no rule matches. No match is
// not an error: it routes the cluster to tier 2.
func (r *Registry) Match(c *cluster.ErrorCluster) *Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.rules {
		if rule.Match(c.Representative) {
			return rule
		}
	}
	return nil
}

// Rules returns the rules in registration order.
func (r *Registry) Rules() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
