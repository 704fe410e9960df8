package module

import (
	"context"

	"namematch/internal/core/pipeline"
	"namematch/internal/services/api/reconcile/domain"
	reconsvc "namematch/internal/services/api/reconcile/service"
)

// Ports is the port set other modules can look up by Name
type Ports struct {
	Reconciler domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptPort adapts the reconcile service to the domain port interface
type adaptPort struct{ svc reconsvc.Service }

// Reconcile implements the domain ServicePort interface
func (a adaptPort) Reconcile(ctx context.Context, in domain.Upload) (*pipeline.Result, error) {
	return a.svc.Reconcile(ctx, in)
}

// ReconcileText implements the domain ServicePort interface
func (a adaptPort) ReconcileText(ctx context.Context, in domain.TextInput) (*pipeline.Result, error) {
	return a.svc.ReconcileText(ctx, in)
}

// Sample implements the domain ServicePort interface
func (a adaptPort) Sample(ctx context.Context, threshold *int, showFiles bool) (*pipeline.Result, error) {
	return a.svc.Sample(ctx, threshold, showFiles)
}

// Settings implements the domain ServicePort interface
func (a adaptPort) Settings() domain.Settings { return a.svc.Settings() }
