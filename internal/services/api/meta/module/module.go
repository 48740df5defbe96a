// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"rdtlog/internal/core/station"
	modkit "rdtlog/internal/modkit"
	"rdtlog/internal/modkit/httpkit"
	"rdtlog/internal/modkit/module"
	perr "rdtlog/internal/platform/errors"
	str "rdtlog/internal/platform/strings"
	metahttp "rdtlog/internal/services/api/meta/http"
	replaymod "rdtlog/internal/services/api/replay/module"
)

// ServiceName is reported by health, version and service
const ServiceName = "rdtlog-api"

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	ports     *module.Registry
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{b: b, ports: deps.Registry(), startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Checks: []metahttp.Check{
				{Name: "stations", Probe: func() error { _, err := station.Load(); return err }},
				{Name: "replay", Probe: m.replayReady},
			},
		})
	})
}

// replayReady looks the replay port up lazily since replay may mount after meta
func (m *Module) replayReady() error {
	p, ok := module.PortsAs[replaymod.Ports](m.ports, "replay")
	if !ok || p.Replay == nil {
		return perr.Unavailablef("replay module not registered")
	}
	if len(p.Replay.Stations()) == 0 {
		return perr.Unavailablef("replay module has no stations")
	}
	return nil
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
