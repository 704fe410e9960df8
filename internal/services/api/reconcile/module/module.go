// Package module wires reconcile into the API using modkit
package module

import (
	modkit "namematch/internal/modkit"
	"namematch/internal/modkit/httpkit"
	str "namematch/internal/platform/strings"
	reconhttp "namematch/internal/services/api/reconcile/http"
	reconsvc "namematch/internal/services/api/reconcile/service"
)

// Name is the registry key for the reconcile port set
const Name = "reconcile"

// Module serves the upload, text and sample reconciliation routes
type Module struct {
	b     modkit.Built
	svc   reconsvc.Service
	ports Ports
}

// New constructs a reconcile module; deps.Pipeline must be set
func New(deps modkit.Deps, maxUploadBytes int64, opts ...modkit.Option) *Module {
	svc := reconsvc.New(deps.Pipeline, maxUploadBytes)
	return &Module{
		b:     modkit.Build(modkit.Built{Name: Name, Prefix: "/reconcile"}, opts...),
		svc:   svc,
		ports: Ports{Reconciler: adaptPort{svc: svc}},
	}
}

// MountRoutes mounts the reconcile handlers under Prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { reconhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.Or(m.b.Name, Name) }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
