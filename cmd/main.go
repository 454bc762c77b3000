package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/medwatch/triage/internal/adapters/api"
	app "github.com/medwatch/triage/internal/app"
	"github.com/medwatch/triage/internal/config"
	"github.com/medwatch/triage/pkg/logger"
	"github.com/medwatch/triage/pkg/metrics"
)

// Metrics listener timeout constants.
const (
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	os.Exit(run())
}

// run executes one assessment and reports the process exit code: 0 after
// printing the payload and submission response, 1 on any unretryable or
// exhausted-retry failure.
func run() int {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	log := logger.Get()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	client := api.New(cfg.BaseURL, cfg.APIKey,
		api.WithMaxAttempts(cfg.MaxRetries),
		api.WithPageSize(cfg.PageSize),
		api.WithPageDelay(time.Duration(cfg.PageDelayMS)*time.Millisecond),
		api.WithLogger(log.Named("api")),
	)
	svc := app.New(
		app.WithClient(client),
		app.WithLogger(log),
	)

	payload, resp, err := svc.Run(ctx)
	if err != nil {
		os.Stderr.WriteString("assessment run failed: " + err.Error() + "\n")
		return 1
	}

	payloadJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		os.Stderr.WriteString("failed to render payload: " + err.Error() + "\n")
		return 1
	}

	fmt.Println(string(payloadJSON))
	fmt.Println(string(resp))
	return 0
}

// serveMetrics exposes the Prometheus registry for scraping while the
// run is in flight.
func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	log.Info(ctx, "starting metrics listener", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics listener failed", logger.Error(err))
	}
}
