// Package module defines the minimal module contract and the port registry
// modules use to find each other during bootstrap
package module

import phttp "rdtlog/internal/platform/net/http"

// Module is mounted by the api package; Ports exposes what other modules may call
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
