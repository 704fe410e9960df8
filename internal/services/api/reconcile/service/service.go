// Package service runs reconciliations for the API
package service

import (
	"context"

	"namematch/internal/core/pipeline"
	"namematch/internal/core/registry"
	"namematch/internal/platform/logger"
	"namematch/internal/sampledata"
	"namematch/internal/services/api/reconcile/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the service port on top of a shared pipeline
type Svc struct {
	p        *pipeline.Pipeline
	maxBytes int64
}

// New constructs the service
func New(p *pipeline.Pipeline, maxUploadBytes int64) *Svc {
	if p == nil {
		panic("reconcile.Service requires a non nil pipeline")
	}
	return &Svc{p: p, maxBytes: maxUploadBytes}
}

func (s *Svc) threshold(t *int) int {
	if t == nil {
		return s.p.Options().Threshold
	}
	return *t
}

// Reconcile runs the full pipeline on uploaded files
func (s *Svc) Reconcile(ctx context.Context, in domain.Upload) (*pipeline.Result, error) {
	res, err := s.p.Run(ctx, pipeline.Input{
		Document:     in.Document,
		DocumentName: in.DocumentName,
		Names:        in.Names,
		Details:      in.Details,
		Threshold:    s.threshold(in.Threshold),
		ShowFiles:    in.ShowFiles,
	})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("document", in.DocumentName).Msg("reconcile failed")
		return nil, err
	}
	return res, nil
}

// ReconcileText runs the pipeline on JSON input without file decoding
func (s *Svc) ReconcileText(ctx context.Context, in domain.TextInput) (*pipeline.Result, error) {
	var details *registry.DetailTable
	if in.Details != nil {
		key := in.Details.KeyColumn
		if key == "" {
			key = s.p.Options().KeyColumn
		}
		var err error
		if details, err = registry.BuildDetails(key, in.Details.Columns, in.Details.Rows); err != nil {
			return nil, err
		}
	}
	return s.p.RunText(ctx, in.Pages, in.Names, details, s.threshold(in.Threshold))
}

// Sample reconciles the bundled demo files
func (s *Svc) Sample(ctx context.Context, threshold *int, showFiles bool) (*pipeline.Result, error) {
	return s.Reconcile(ctx, domain.Upload{
		Document:     sampledata.Statement(),
		DocumentName: sampledata.StatementFile,
		Names:        sampledata.Names(),
		Details:      sampledata.Details(),
		Threshold:    threshold,
		ShowFiles:    showFiles,
	})
}

// Settings reports the effective configuration
func (s *Svc) Settings() domain.Settings {
	o := s.p.Options()
	return domain.Settings{
		Threshold:      o.Threshold,
		Scorer:         o.Scorer,
		Workers:        o.Workers,
		NameColumn:     o.NameColumn,
		KeyColumn:      o.KeyColumn,
		OnePerCustomer: o.OnePerCustomer,
		MaxUploadBytes: s.maxBytes,
	}
}
