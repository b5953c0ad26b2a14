package tplcmp

import (
	"fmt"
	"sync"

	"github.com/pthm/tplcmp/lib/exprval"
)

// Registry maps component names to definitions and carries the host
// collaborators a render needs: the expression evaluator, foreign tag
// handlers, and the extension list. Registration happens at startup; the
// registry is read-only during renders and safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*Definition
	tags       map[string]TagHandler
	evaluator  Evaluator
	extensions []Extension
}

// NewRegistry creates a registry with the default evaluator and the
// built-in for/if/with tag handlers.
func NewRegistry() *Registry {
	r := &Registry{
		components: make(map[string]*Definition),
		tags:       make(map[string]TagHandler),
		evaluator:  defaultEvaluator(),
	}
	registerBuiltinTags(r)
	return r
}

// Add registers component definitions. Panics on a name collision or a
// definition without a template - both are programming errors that should
// surface at startup, not during requests.
func (r *Registry) Add(defs ...*Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range defs {
		if def.Template == nil {
			panic(fmt.Sprintf("tplcmp: component %q has no template", def.Name))
		}
		if _, exists := r.components[def.Name]; exists {
			panic(fmt.Sprintf("tplcmp: component name collision for %q", def.Name))
		}
		r.components[def.Name] = def
	}
}

// Lookup resolves a component name to its definition.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.components[name]
	return def, ok
}

// Names returns the registered component names, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	return names
}

// RegisterTag installs or replaces the handler for a foreign tag name.
func (r *Registry) RegisterTag(name string, h TagHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[name] = h
}

func (r *Registry) tagHandler(name string) (TagHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.tags[name]
	return h, ok
}

// SetEvaluator replaces the expression evaluator, letting a host
// templating language own expression semantics.
func (r *Registry) SetEvaluator(e Evaluator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evaluator = e
}

// Use appends an extension. Extensions are notified in registration
// order at every lifecycle point.
func (r *Registry) Use(ext Extension) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions = append(r.extensions, ext)
}

func defaultEvaluator() Evaluator {
	inner := exprval.New()
	return EvaluatorFunc(func(expr string, scope *Scope) (any, error) {
		return inner.Eval(expr, scope)
	})
}
