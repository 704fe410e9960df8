// @title         namematch API
// @version       0.1.0
// @description   Statement name extraction and customer reconciliation

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"namematch/internal/core/pipeline"
	"namematch/internal/core/version"
	"namematch/internal/platform/config"
	"namematch/internal/platform/logger"
	"namematch/internal/platform/metrics"
	phttp "namematch/internal/platform/net/http"

	"namematch/internal/services/api"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	m := metrics.New(prometheus.DefaultRegisterer)
	opt := pipeline.OptionsFromConfig(root)
	p, err := pipeline.New(opt, m)
	if err != nil {
		l.Panic().Err(err).Msg("pipeline.New failed")
	}

	// http server (reads CORE_API_ADDR and the timeouts)
	srv := phttp.NewServer(apiCfg)

	apiOpt := api.OptionsFromConfig(apiCfg)
	apiOpt.Logger = l
	apiOpt.Pipeline = p
	apiOpt.Metrics = m
	api.Mount(srv.Router(), apiOpt)

	l.Info().
		Str("version", version.Info().Version).
		Int("threshold", opt.Threshold).
		Str("scorer", opt.Scorer).
		Int("workers", opt.Workers).
		Msg("namematch-api starting")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
