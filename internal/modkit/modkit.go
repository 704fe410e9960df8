// Package modkit assembles API modules: shared deps, build options and mounting
package modkit

import (
	"namematch/internal/core/pipeline"
	"namematch/internal/modkit/httpkit"
	"namematch/internal/modkit/module"
	"namematch/internal/platform/config"
	"namematch/internal/platform/logger"
	"namematch/internal/platform/metrics"
)

// Deps is what every module may need. Only Pipeline is required by reconcile
type Deps struct {
	Log      *logger.Logger
	Cfg      config.Conf
	Metrics  *metrics.Metrics
	Pipeline *pipeline.Pipeline
	Registry *module.Registry
}

// Logger returns Log or the named process logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(component)
}

// Mount adds each module's ports to reg and mounts its routes on r, in order.
// A duplicate module name is a wiring bug and panics
func Mount(r httpkit.Router, reg *module.Registry, mods ...module.Module) {
	for _, m := range mods {
		if err := reg.Add(m); err != nil {
			panic(err)
		}
		m.MountRoutes(r)
	}
}
