// Package api provides the HTTP API for rdtlog
package api

import (
	"net/http"

	"rdtlog/internal/modkit"
	"rdtlog/internal/modkit/httpkit"
	"rdtlog/internal/modkit/module"
	"rdtlog/internal/modkit/swaggerkit"
	"rdtlog/internal/platform/config"
	"rdtlog/internal/platform/logger"
	phttp "rdtlog/internal/platform/net/http"

	metamod "rdtlog/internal/services/api/meta/module"
	replaymod "rdtlog/internal/services/api/replay/module"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BasePath is where versioned routes live
const BasePath = "/api/v1"

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	// Metrics backs /metrics and the replay collectors; nil uses the prometheus defaults
	Metrics *prometheus.Registry
}

// OptionsFromConfig reads the API_ENABLE_* switches
func OptionsFromConfig(cfg config.Conf) Options {
	api := cfg.Prefix("API_")
	return Options{
		Config:         cfg,
		EnableSwagger:  api.MayBool("ENABLE_SWAGGER", false),
		EnableProfiler: api.MayBool("ENABLE_PPROF", false),
		EnableMetrics:  api.MayBool("ENABLE_METRICS", true),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *module.Registry {
	deps := modkit.Deps{
		Log:   opt.Logger,
		Cfg:   opt.Config,
		Ports: module.NewRegistry(),
	}

	var reg prometheus.Registerer
	if opt.Metrics != nil {
		reg = opt.Metrics
	}
	replayOpts := replaymod.FromConfig(deps)
	replayOpts.Registerer = reg

	mods := []module.Module{
		metamod.New(deps),
		replaymod.New(deps, replayOpts),
	}

	swaggerkit.Mount(r, "/docs", BasePath, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metricsHandler(opt.Metrics))
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config.Prefix("API_")), func(api httpkit.Router) {
		for _, m := range mods {
			deps.Ports.Register(m)
			m.MountRoutes(api)
		}
	})

	l := deps.Logger()
	l.Info().
		Strs("modules", deps.Ports.Names()).
		Bool("swagger", opt.EnableSwagger).
		Bool("pprof", opt.EnableProfiler).
		Bool("metrics", opt.EnableMetrics).
		Msg("api: mounted")
	return deps.Ports
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
