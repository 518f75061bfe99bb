package harness

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is the set of known test units
type Registry struct {
	mu    sync.RWMutex
	units map[string]TestUnit
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]TestUnit)}
}

// Register adds a unit. Names must be unique and the unit must be callable.
func (r *Registry) Register(unit TestUnit) error {
	if strings.TrimSpace(unit.Name) == "" {
		return fmt.Errorf("test unit name cannot be empty")
	}
	if unit.Run == nil {
		return fmt.Errorf("test unit %s has no run function", unit.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.units[unit.Name]; exists {
		return fmt.Errorf("test unit %s already registered", unit.Name)
	}
	r.units[unit.Name] = unit
	return nil
}

// MustRegister is Register for static registration; it panics on error.
func (r *Registry) MustRegister(units ...TestUnit) {
	for _, u := range units {
		if err := r.Register(u); err != nil {
			panic(err)
		}
	}
}

// Discover returns the registered units whose names carry UnitPrefix and
// contain filter, sorted by name.
func (r *Registry) Discover(filter string) []TestUnit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []TestUnit
	for name, unit := range r.units {
		if !strings.HasPrefix(name, UnitPrefix) {
			continue
		}
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		out = append(out, unit)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultRegistry returns a registry holding the built-in units.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(BuiltinUnits()...)
	return r
}
