package diag

import (
	"fmt"
	"log"
	"sync"
)

// ===== Errors =====

// errAdapterNotFound is returned when no adapter is found for the given tool name.
type errAdapterNotFound struct {
	ToolName string
}

func (e *errAdapterNotFound) Error() string {
	return fmt.Sprintf("adapter not found: %s", e.ToolName)
}

// errNilAdapter is returned when trying to register a nil adapter.
var errNilAdapter = fmt.Errorf("cannot register nil adapter")

// ===== Registry =====

// Registry manages analyzer adapter registrations.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

var (
	globalRegistry *Registry
	once           sync.Once
)

// Global returns the singleton registry instance.
func Global() *Registry {
	once.Do(func() {
		globalRegistry = &Registry{
			adapters: make(map[string]Adapter),
		}
	})
	return globalRegistry
}

// Register registers an adapter under its own name.
func (r *Registry) Register(a Adapter) error {
	if a == nil {
		return errNilAdapter
	}

	name := a.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Warn on duplicate registration (init order issues)
	if _, exists := r.adapters[name]; exists {
		log.Printf("warning: adapter already registered: %s (ignoring duplicate)", name)
		return nil
	}

	r.adapters[name] = a
	return nil
}

// Get finds an adapter by tool name (e.g., "tsc", "gobuild").
func (r *Registry) Get(toolName string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.adapters[toolName]; ok {
		return a, nil
	}

	return nil, &errAdapterNotFound{ToolName: toolName}
}

// Names returns all registered adapter names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	return names
}
