package modkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"namematch/internal/modkit/httpkit"
	"namematch/internal/modkit/module"
	phttp "namematch/internal/platform/net/http"
	"namematch/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func stamp(tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Stage", tag)
			next.ServeHTTP(w, r)
		})
	}
}

type settingsPorts struct{ Threshold int }

func TestBuild_DefaultsAndOverrides(t *testing.T) {
	defaults := Built{Name: "reconcile", Prefix: "/reconcile", Mw: []func(http.Handler) http.Handler{stamp("base")}}

	b := Build(defaults)
	if b.Name != "reconcile" || b.Prefix != "/reconcile" || b.Ports != nil || len(b.Mw) != 1 {
		t.Fatalf("defaults not kept: %+v", b)
	}
	var r httpkit.Router
	if b.Subrouter(r) != r {
		t.Fatal("default Subrouter should pass the router through")
	}

	b = Build(defaults,
		WithName("recon"),
		WithPrefix("/r"),
		WithMiddlewares(stamp("throttle")),
		WithPorts(settingsPorts{Threshold: 85}),
	)
	if b.Name != "recon" || b.Prefix != "/r" || len(b.Mw) != 2 {
		t.Fatalf("overrides not applied: %+v", b)
	}
	if p, ok := b.Ports.(settingsPorts); !ok || p.Threshold != 85 {
		t.Fatalf("ports = %#v", b.Ports)
	}
	if len(defaults.Mw) != 1 {
		t.Fatal("Build must not grow the defaults slice")
	}
}

func TestBuilt_Mount(t *testing.T) {
	b := Build(Built{Prefix: "/reconcile"},
		WithMiddlewares(stamp("a"), stamp("b")),
		WithSubrouter(func(r httpkit.Router) httpkit.Router { return r.With(stamp("sub")) }),
	)

	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		r.Get("/sample", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reconcile/sample", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.Join(rec.Header().Values("X-Stage"), ","); got != "a,b,sub" {
		t.Fatalf("middleware order = %s", got)
	}
}

type stubModule struct {
	name    string
	mounted *[]string
}

func (m stubModule) Name() string   { return m.name }
func (m stubModule) Prefix() string { return "/" + m.name }
func (m stubModule) Ports() any     { return settingsPorts{Threshold: len(m.name)} }
func (m stubModule) MountRoutes(phttp.Router) {
	*m.mounted = append(*m.mounted, m.name)
}

func TestMount_RegistersInOrder(t *testing.T) {
	var mounted []string
	reg := module.NewRegistry()
	Mount(phttp.AdaptChi(chi.NewRouter()), reg,
		stubModule{name: "meta", mounted: &mounted},
		stubModule{name: "reconcile", mounted: &mounted},
	)

	if strings.Join(mounted, ",") != "meta,reconcile" {
		t.Fatalf("mounted = %v", mounted)
	}
	if p, ok := module.PortsAs[settingsPorts](reg, "reconcile"); !ok || p.Threshold != 9 {
		t.Fatalf("reconcile ports = %v %v", p, ok)
	}

	testkit.MustPanic(t, func() {
		Mount(phttp.AdaptChi(chi.NewRouter()), reg, stubModule{name: "meta", mounted: &mounted})
	})
}

func TestDeps_Logger(t *testing.T) {
	var d Deps
	if d.Logger("reconcile") == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestBuilt_MountNeedsPrefix(t *testing.T) {
	testkit.MustPanic(t, func() {
		Build(Built{}).Mount(phttp.AdaptChi(chi.NewRouter()), func(httpkit.Router) {})
	})
}
