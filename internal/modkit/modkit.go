// Package modkit wires API modules: shared deps, build options and the
// module contract the api package mounts
package modkit

import "rdtlog/internal/modkit/module"

// Module is the common surface for API modules that mount routes and expose ports
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
