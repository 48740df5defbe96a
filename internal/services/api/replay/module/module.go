// Package module wires replay into the API using modkit
package module

import (
	"rdtlog/internal/core/station"
	modkit "rdtlog/internal/modkit"
	"rdtlog/internal/modkit/httpkit"
	str "rdtlog/internal/platform/strings"
	replayhttp "rdtlog/internal/services/api/replay/http"
	replaysvc "rdtlog/internal/services/api/replay/service"

	"github.com/prometheus/client_golang/prometheus"
)

// Options are the replay module settings beyond the shared ones
type Options struct {
	Service replaysvc.Options
	// Registerer receives the replay metrics; nil uses the default registerer
	Registerer prometheus.Registerer
}

// FromConfig reads CORE_REPLAY_* keys from deps.Cfg
func FromConfig(deps modkit.Deps) Options {
	return Options{Service: replaysvc.OptionsFromConfig(deps.Cfg)}
}

// Module implements the replay module
type Module struct {
	b   modkit.Built
	svc *replaysvc.Svc
}

// New constructs the replay module
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("replay"), modkit.WithPrefix("/replay")}, opts...)...)

	svc := replaysvc.New(o.Service, station.MustLoad(), nil, replaysvc.NewMetrics(o.Registerer))
	deps.Logger().Debug().
		Str("module", b.Name).
		Str("default_station", o.Service.DefaultStation).
		Int64("max_log_bytes", svc.MaxLogBytes()).
		Bool("allow_remote", o.Service.AllowRemote).
		Msg("replay: module ready")

	return &Module{b: b, svc: svc}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		replayhttp.Register(rr, m.svc, m.svc.MaxLogBytes())
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
