package module

import "sync"

// Registry maps module names to their port bundles so modules mounted later
// in bootstrap can reach the ones mounted earlier
type Registry struct {
	mu    sync.RWMutex
	ports map[string]any
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry { return &Registry{ports: map[string]any{}} }

// Register stores m's ports under its name, replacing any earlier entry
func (g *Registry) Register(m Module) {
	g.Put(m.Name(), m.Ports())
}

// Put stores a port bundle under name
func (g *Registry) Put(name string, ports any) {
	g.mu.Lock()
	g.ports[name] = ports
	g.mu.Unlock()
}

// Names lists registered names in no particular order
func (g *Registry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.ports))
	for k := range g.ports {
		out = append(out, k)
	}
	return out
}

// PortsAs fetches the bundle for name and asserts it to T
func PortsAs[T any](g *Registry, name string) (T, bool) {
	g.mu.RLock()
	v, ok := g.ports[name]
	g.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}
