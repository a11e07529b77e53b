package lint

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrInvalidRule is returned when a rule cannot be registered.
var ErrInvalidRule = errors.New("invalid rule")

// Registry holds the built-in rules, keyed by name.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Rule
	aliases map[string]string // alias -> canonical name
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry. A rule that claims type
// information must implement TypedRule. Registering a name twice
// replaces the earlier rule.
func (r *Registry) Register(rule Rule) error {
	meta := rule.Metadata()
	if meta.Name == "" {
		return fmt.Errorf("%w: empty name (%T)", ErrInvalidRule, rule)
	}
	if meta.RequiresTypeInfo {
		if _, ok := rule.(TypedRule); !ok {
			return fmt.Errorf("%w: %s requires type info but does not implement ApplyWithProgram", ErrInvalidRule, meta.Name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[meta.Name] = rule
	return nil
}

// MustRegister is Register for init-time registration of built-in rules.
func (r *Registry) MustRegister(rules ...Rule) {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
}

// RegisterAlias maps an alternative name to a canonical rule name.
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = name
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Resolve returns the canonical name and rule for a name or alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byName[key]; ok {
		return key, rule, true
	}
	if target, ok := r.aliases[key]; ok {
		if rule, ok := r.byName[target]; ok {
			return target, rule, true
		}
	}
	return "", nil, false
}

// Rules returns all registered rules sorted by name.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)

	result := make([]Rule, 0, len(names))
	for _, name := range names {
		result = append(result, r.byName[name])
	}
	return result
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byName))
	for name := range r.byName {
		result = append(result, name)
	}
	slices.Sort(result)
	return result
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
