package modkit

import (
	"rdtlog/internal/modkit/module"
	"rdtlog/internal/platform/config"
	"rdtlog/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	// Ports is filled by the api package as modules are mounted
	Ports *module.Registry
}

// Logger returns Log, or the root logger when Log is unset
func (d Deps) Logger() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Get()
}

// Registry returns Ports, or an empty registry when Ports is unset
func (d Deps) Registry() *module.Registry {
	if d.Ports != nil {
		return d.Ports
	}
	return module.NewRegistry()
}
