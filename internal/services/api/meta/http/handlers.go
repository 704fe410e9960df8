// Package http serves the meta endpoints: liveness, readiness, build info and
// the effective matching settings
package http

import (
	"context"
	"net/http"
	"time"

	"namematch/internal/core/version"
	"namematch/internal/modkit/httpkit"
	perr "namematch/internal/platform/errors"

	"golang.org/x/sync/errgroup"
)

// ReadyTimeout bounds all readiness probes together
const ReadyTimeout = 2 * time.Second

// Check is a named readiness probe
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Deps are what the meta handlers report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	// Settings is nil, or reports false, when no reconcile module is mounted
	Settings func() (any, bool)
	// Now defaults to time.Now
	Now func() time.Time
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := handlers{d}
	httpkit.GetJSON(r, "/health", h.health)
	httpkit.GetJSON(r, "/ready", h.ready)
	httpkit.GetJSON(r, "/version", h.version)
	httpkit.GetJSON(r, "/service", h.service)
	httpkit.GetJSON(r, "/config", h.config)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"namematch-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Now     string `json:"now"     example:"2026-10-19T13:05:00Z"`
}

// ReadyCheck is one probe outcome, ok or fail
type ReadyCheck struct {
	Name   string `json:"name"   example:"stoplist"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse is fail when any probe fails
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-19T13:05:00Z"`
}

// ServiceResponse carries uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"namematch-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: stamp(h.StartedAt),
		Now:     stamp(h.Now()),
	}, nil
}

// @Summary Readiness probes
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	checks := make([]ReadyCheck, len(h.Checks))
	var g errgroup.Group
	for i, c := range h.Checks {
		g.Go(func() error {
			checks[i] = ReadyCheck{Name: c.Name, Status: "ok"}
			if err := c.Probe(ctx); err != nil {
				checks[i].Status, checks[i].Error = "fail", err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: "ok", Checks: checks, Now: stamp(h.Now())}
	for _, c := range checks {
		if c.Status != "ok" {
			out.Status = "fail"
		}
	}
	return out, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Effective matching settings
// @Tags Meta
// @Produce json
// @Success 200 {object} domain.Settings
// @Failure 404 {object} httpkit.Envelope
// @Router /meta/config [get]
func (h handlers) config(*http.Request) (any, error) {
	if h.Settings != nil {
		if s, ok := h.Settings(); ok {
			return s, nil
		}
	}
	return nil, perr.NotFoundf("no reconcile module mounted")
}
