package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "namematch/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)

func serve(t *testing.T, d Deps, path string, data any) int {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return rec.Code
}

func fixedClock() time.Time { return started.Add(5 * time.Minute) }

func TestService_Uptime(t *testing.T) {
	var out ServiceResponse
	code := serve(t, Deps{ServiceName: "namematch-api", StartedAt: started, Now: fixedClock}, "/service", &out)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, ServiceResponse{Name: "namematch-api", Started: "2026-10-19T13:00:00Z", Uptime: 300}, out)
}

func TestHealth(t *testing.T) {
	var out HealthResponse
	serve(t, Deps{ServiceName: "svc", StartedAt: started, Now: fixedClock}, "/health", &out)
	assert.True(t, out.OK)
	assert.Equal(t, "2026-10-19T13:05:00Z", out.Now)
}

func TestReady(t *testing.T) {
	ok := Check{Name: "stoplist", Probe: func(context.Context) error { return nil }}
	bad := Check{Name: "pipeline", Probe: func(context.Context) error { return errors.New("pipeline not configured") }}

	cases := []struct {
		name   string
		checks []Check
		status string
	}{
		{"none", nil, "ok"},
		{"all ok", []Check{ok}, "ok"},
		{"one fails", []Check{ok, bad}, "fail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out ReadyResponse
			serve(t, Deps{Checks: tc.checks, Now: fixedClock}, "/ready", &out)
			assert.Equal(t, tc.status, out.Status)
			require.Len(t, out.Checks, len(tc.checks))
			for i, c := range tc.checks {
				assert.Equal(t, c.Name, out.Checks[i].Name, "checks keep their order")
			}
		})
	}
}

func TestReady_ProbeSeesDeadline(t *testing.T) {
	var has bool
	c := Check{Name: "deadline", Probe: func(ctx context.Context) error {
		_, has = ctx.Deadline()
		return nil
	}}
	serve(t, Deps{Checks: []Check{c}}, "/ready", nil)
	assert.True(t, has)
}

func TestConfig(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(t, Deps{}, "/config", nil))
	assert.Equal(t, http.StatusNotFound, serve(t, Deps{Settings: func() (any, bool) { return nil, false }}, "/config", nil))

	var out map[string]int
	code := serve(t, Deps{Settings: func() (any, bool) { return map[string]int{"threshold": 85}, true }}, "/config", &out)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 85, out["threshold"])
}
