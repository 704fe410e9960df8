// Package api provides the HTTP API for the application
package api

import (
	"namematch/internal/core/pipeline"
	"namematch/internal/core/version"
	"namematch/internal/platform/config"
	"namematch/internal/platform/logger"
	"namematch/internal/platform/metrics"
	phttp "namematch/internal/platform/net/http"
	"namematch/internal/platform/net/middleware"

	"namematch/internal/modkit"
	"namematch/internal/modkit/httpkit"
	"namematch/internal/modkit/module"
	"namematch/internal/modkit/swaggerkit"

	metamod "namematch/internal/services/api/meta/module"
	recondom "namematch/internal/services/api/reconcile/domain"
	reconmod "namematch/internal/services/api/reconcile/module"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Defaults for the upload surface
const (
	// DefaultMaxUploadBytes bounds a whole multipart request
	DefaultMaxUploadBytes = 32 << 20
	// DefaultMaxInflight bounds concurrent reconciliations; each holds a statement in memory
	DefaultMaxInflight = 8
)

// Options are the API options
type Options struct {
	Config   config.Conf
	Logger   *logger.Logger
	Pipeline *pipeline.Pipeline
	Metrics  *metrics.Metrics
	// Gatherer backs /metrics; nil means the default prometheus registry
	Gatherer       prometheus.Gatherer
	MaxUploadBytes int64
	MaxInflight    int
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// OptionsFromConfig reads the api toggles (SWAGGER, PROFILER, METRICS, MAX_UPLOAD_MB, MAX_INFLIGHT)
func OptionsFromConfig(conf config.Conf) Options {
	return Options{
		Config:         conf,
		MaxUploadBytes: int64(conf.MayIntRange("MAX_UPLOAD_MB", DefaultMaxUploadBytes>>20, 1, 1024)) << 20,
		MaxInflight:    conf.MayIntRange("MAX_INFLIGHT", DefaultMaxInflight, 1, 1024),
		EnableSwagger:  conf.MayBool("SWAGGER", true),
		EnableProfiler: conf.MayBool("PROFILER", false),
		EnableMetrics:  conf.MayBool("METRICS", true),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	if opt.Pipeline == nil {
		panic("api.Mount requires a pipeline")
	}
	if opt.MaxUploadBytes <= 0 {
		opt.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opt.MaxInflight <= 0 {
		opt.MaxInflight = DefaultMaxInflight
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:      opt.Logger,
		Cfg:      opt.Config,
		Metrics:  opt.Metrics,
		Pipeline: opt.Pipeline,
		Registry: module.NewRegistry(),
	}

	// reconcile owns the settings port that meta reports
	recon := reconmod.New(deps, opt.MaxUploadBytes,
		modkit.WithMiddlewares(
			middleware.AllowContentType("multipart/form-data", "application/json"),
			middleware.Throttle(opt.MaxInflight),
		),
	)
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Settings: module.MustPortsOf[recondom.ServicePort](recon),
	}))

	// versioned API with a common middleware stack
	httpkit.MountAPI(r, "v1", httpkit.CommonStack(httpkit.StackOptions{MaxBodyBytes: opt.MaxUploadBytes}), func(api httpkit.Router) {
		modkit.Mount(api, deps.Registry, meta, recon)
	})

	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled: opt.EnableSwagger,
		Server:  "/api/v1",
		Patches: []swaggerkit.Patch{stampVersion},
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		g := opt.Gatherer
		if g == nil {
			g = prometheus.DefaultGatherer
		}
		r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}

	deps.Logger("api").Debug().
		Strs("modules", deps.Registry.Names()).
		Int64("max_upload_bytes", opt.MaxUploadBytes).
		Bool("swagger", opt.EnableSwagger).
		Bool("profiler", opt.EnableProfiler).
		Bool("metrics", opt.EnableMetrics).
		Msg("api mounted")
}

// stampVersion reports the build version in the served OpenAPI document
func stampVersion(doc map[string]any) {
	if info, ok := doc["info"].(map[string]any); ok {
		info["version"] = version.Info().Version
	}
}
