package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"namematch/internal/core/pipeline"
	modkit "namematch/internal/modkit"
	"namematch/internal/modkit/module"
	phttp "namematch/internal/platform/net/http"
	recondom "namematch/internal/services/api/reconcile/domain"
	reconmod "namematch/internal/services/api/reconcile/module"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int            `json:"status_code"`
	Data       map[string]any `json:"data"`
}

func get(t *testing.T, mux *chi.Mux, path string) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestMeta_Endpoints(t *testing.T) {
	opt := pipeline.DefaultOptions()
	opt.Threshold = 80
	p, err := pipeline.New(opt, nil)
	require.NoError(t, err)
	deps := modkit.Deps{Pipeline: p, Registry: module.NewRegistry()}

	mux := chi.NewRouter()
	modkit.Mount(phttp.AdaptChi(mux), deps.Registry, New(deps), reconmod.New(deps, 1024))

	code, env := get(t, mux, "/meta/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "namematch-api", env.Data["service"])
	assert.Equal(t, true, env.Data["ok"])

	code, env = get(t, mux, "/meta/ready")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.Data["status"])
	assert.Len(t, env.Data["checks"], 2)

	code, env = get(t, mux, "/meta/version")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "namematch", env.Data["service"])

	code, env = get(t, mux, "/meta/service")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "namematch-api", env.Data["name"])

	code, env = get(t, mux, "/meta/config")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(80), env.Data["threshold"])
	assert.Equal(t, "token_sort", env.Data["scorer"])
	assert.Equal(t, float64(1024), env.Data["max_upload_bytes"])
}

func TestMeta_NotReadyWithoutPipeline(t *testing.T) {
	mux := chi.NewRouter()
	New(modkit.Deps{}).MountRoutes(phttp.AdaptChi(mux))

	_, env := get(t, mux, "/meta/ready")
	assert.Equal(t, "fail", env.Data["status"])

	code, _ := get(t, mux, "/meta/config")
	assert.Equal(t, http.StatusNotFound, code, "config needs a reconcile module")
}

func TestMeta_ServiceNameFromConfig(t *testing.T) {
	t.Setenv("METATEST_SERVICE_NAME", "recon-edge")
	mux := chi.NewRouter()
	deps := modkit.Deps{}
	deps.Cfg = deps.Cfg.Prefix("METATEST_")
	New(deps, modkit.WithPrefix("/m")).MountRoutes(phttp.AdaptChi(mux))

	_, env := get(t, mux, "/m/health")
	assert.Equal(t, "recon-edge", env.Data["service"])
}

type fixedSettings struct{}

func (fixedSettings) Settings() recondom.Settings {
	return recondom.Settings{Threshold: 70, Scorer: "weighted"}
}

func TestMeta_InjectedPorts(t *testing.T) {
	mux := chi.NewRouter()
	New(modkit.Deps{}, modkit.WithPorts(Ports{Settings: fixedSettings{}})).MountRoutes(phttp.AdaptChi(mux))

	code, env := get(t, mux, "/meta/config")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(70), env.Data["threshold"])
	assert.Equal(t, "weighted", env.Data["scorer"])
}
