// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	"namematch/internal/core/stoplist"
	"namematch/internal/core/version"
	modkit "namematch/internal/modkit"
	"namematch/internal/modkit/httpkit"
	"namematch/internal/modkit/module"
	perr "namematch/internal/platform/errors"
	str "namematch/internal/platform/strings"

	metahttp "namematch/internal/services/api/meta/http"
	recondom "namematch/internal/services/api/reconcile/domain"
	reconmod "namematch/internal/services/api/reconcile/module"
)

// SettingsPort reports the effective matching configuration
type SettingsPort interface {
	Settings() recondom.Settings
}

// Ports are the cross-module ports meta consumes, injected with modkit.WithPorts
type Ports struct {
	Settings SettingsPort
}

// Module serves health, readiness, build and settings endpoints
type Module struct {
	deps      modkit.Deps
	b         modkit.Built
	startedAt time.Time
	settings  SettingsPort
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	m := &Module{
		deps:      deps,
		b:         modkit.Build(modkit.Built{Name: "meta", Prefix: "/meta"}, opts...),
		startedAt: time.Now(),
	}
	if p, ok := m.b.Ports.(Ports); ok {
		m.settings = p.Settings
	}
	return m
}

func (m *Module) checks() []metahttp.Check {
	return []metahttp.Check{
		{Name: "stoplist", Probe: func(context.Context) error {
			_, err := stoplist.Load()
			return err
		}},
		{Name: "pipeline", Probe: func(context.Context) error {
			if m.deps.Pipeline == nil {
				return perr.Unavailablef("pipeline not configured")
			}
			return nil
		}},
	}
}

// currentSettings prefers injected ports, then the registry at request time since
// reconcile may register after meta
func (m *Module) currentSettings() (any, bool) {
	if m.settings != nil {
		return m.settings.Settings(), true
	}
	p, ok := module.PortsAs[reconmod.Ports](m.deps.Registry, reconmod.Name)
	if !ok || p.Reconciler == nil {
		return nil, false
	}
	return p.Reconciler.Settings(), true
}

// MountRoutes mounts the meta handlers under Prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: str.Or(m.deps.Cfg.MayString("SERVICE_NAME", ""), version.Service+"-api"),
			StartedAt:   m.startedAt,
			Checks:      m.checks(),
			Settings:    m.currentSettings,
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.Or(m.b.Name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports is nil; meta provides nothing to other modules
func (m *Module) Ports() any { return nil }
