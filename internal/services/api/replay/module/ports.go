package module

import "rdtlog/internal/services/api/replay/domain"

// Ports is what the replay module exposes to other modules
type Ports struct {
	Replay domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Replay: m.svc} }
