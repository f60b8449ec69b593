// In file: internal/tools/manager.go
package tools

import "fmt"

type entry struct {
	desc    ToolDescriptor
	handler Handler
}

// Registry holds the tools of one domain. It is filled at startup and only read
// afterwards, so lookups need no locking.
type Registry struct {
	domain string
	mode   Mode
	order  []string
	tools  map[string]entry
}

func NewRegistry(domain string, mode Mode) *Registry {
	return &Registry{
		domain: domain,
		mode:   mode,
		tools:  make(map[string]entry),
	}
}

func (r *Registry) Domain() string { return r.domain }

func (r *Registry) Mode() Mode { return r.mode }

// Register adds a tool. Names must be unique within the registry, and parameter
// names unique within the descriptor.
func (r *Registry) Register(desc ToolDescriptor, h Handler) error {
	if desc.Name == "" {
		return fmt.Errorf("%s: tool name is empty", r.domain)
	}
	if h == nil {
		return fmt.Errorf("%s.%s: handler is nil", r.domain, desc.Name)
	}
	if _, dup := r.tools[desc.Name]; dup {
		return fmt.Errorf("%s.%s: already registered", r.domain, desc.Name)
	}
	seen := make(map[string]struct{}, len(desc.Params))
	for _, p := range desc.Params {
		if p.Name == "" {
			return fmt.Errorf("%s.%s: parameter with empty name", r.domain, desc.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%s.%s: duplicate parameter %q", r.domain, desc.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	r.tools[desc.Name] = entry{desc: desc, handler: h}
	r.order = append(r.order, desc.Name)
	return nil
}

func (r *Registry) mustRegister(desc ToolDescriptor, h Handler) {
	if err := r.Register(desc, h); err != nil {
		panic(err)
	}
}

// Descriptors returns the tool descriptors in registration order.
func (r *Registry) Descriptors() []ToolDescriptor {
	defs := make([]ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].desc)
	}
	return defs
}

func (r *Registry) lookup(name string) (entry, bool) {
	e, ok := r.tools[name]
	return e, ok
}

// ToolCount returns the number of registered tools.
func (r *Registry) ToolCount() int {
	return len(r.tools)
}
