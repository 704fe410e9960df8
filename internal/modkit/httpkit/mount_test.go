package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "namematch/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func tagMW(tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Tag", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func okAt(path string) func(Router) {
	return func(r Router) {
		r.Get(path, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	}
}

func serve(mux http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMountUnder(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	MountUnder(r, "/reconcile", []func(http.Handler) http.Handler{tagMW("a"), tagMW("b")}, okAt("/sample"))
	MountUnder(r, "/meta", nil, okAt("/health"))

	rec := serve(mux, "/reconcile/sample")
	if rec.Code != http.StatusOK || strings.Join(rec.Header().Values("X-Tag"), ",") != "a,b" {
		t.Fatalf("reconcile: status=%d tags=%v", rec.Code, rec.Header().Values("X-Tag"))
	}

	// middleware stays inside its scope
	rec = serve(mux, "/meta/health")
	if rec.Code != http.StatusOK || rec.Header().Get("X-Tag") != "" {
		t.Fatalf("meta: status=%d tags=%v", rec.Code, rec.Header().Values("X-Tag"))
	}
}

func TestMountAPI(t *testing.T) {
	for _, version := range []string{"v1", "/v1", "v1/"} {
		mux := chi.NewRouter()
		MountAPI(phttp.AdaptChi(mux), version, []func(http.Handler) http.Handler{tagMW("api")}, okAt("/ping"))
		rec := serve(mux, "/api/v1/ping")
		if rec.Code != http.StatusOK || rec.Header().Get("X-Tag") != "api" {
			t.Fatalf("%q: status=%d tag=%q", version, rec.Code, rec.Header().Get("X-Tag"))
		}
	}
}
