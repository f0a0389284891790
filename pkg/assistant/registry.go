package assistant

import (
	"strings"
	"sync"
)

// Registry is the in-memory tool registry. Tools are keyed by lower-cased
// name and enumerated in first-registration order. Re-registering an existing
// name overwrites the descriptor in place, keeping its original position, so
// enumeration stays deterministic across overwrites.
//
// Mutation is expected to happen during setup, before any detection or
// invocation runs. The mutex guards the maps for callers that cannot honour
// that contract, but no ordering guarantees are made for concurrent mutation.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry constructs a registry seeded with the provided tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, tool := range tools {
		r.Register(tool)
	}
	return r
}

// Register stores a tool under its spec name, overwriting any previous entry
// with the same name. Nil tools and empty names are ignored. No validation of
// the parameter shape happens here; a tool is trusted to describe itself.
func (r *Registry) Register(tool Tool) {
	if tool == nil {
		return
	}
	key := registryKey(tool.Spec().Name)
	if key == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[key]; !exists {
		r.order = append(r.order, key)
	}
	r.tools[key] = tool
}

// Unregister removes the named tool and reports whether an entry existed.
func (r *Registry) Unregister(name string) bool {
	key := registryKey(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[key]; !ok {
		return false
	}
	delete(r.tools, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Lookup returns the tool registered under name, if any.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[registryKey(name)]
	return tool, ok
}

// List returns all tools in registration order. When a category is given,
// only tools whose spec category matches exactly are returned.
func (r *Registry) List(category ...string) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filter string
	if len(category) > 0 {
		filter = category[0]
	}

	tools := make([]Tool, 0, len(r.order))
	for _, key := range r.order {
		tool := r.tools[key]
		if filter != "" && tool.Spec().Category != filter {
			continue
		}
		tools = append(tools, tool)
	}
	return tools
}

// Specs returns a snapshot of every registered tool spec in registration order.
func (r *Registry) Specs() []ToolSpec {
	tools := r.List()
	specs := make([]ToolSpec, 0, len(tools))
	for _, tool := range tools {
		specs = append(specs, tool.Spec())
	}
	return specs
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, key := range r.order {
		names = append(names, r.tools[key].Spec().Name)
	}
	return names
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
