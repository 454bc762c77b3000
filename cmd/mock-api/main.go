// Command mock-api runs a local stand-in for the assessment API so the
// triage pipeline can be exercised without network access or rate limits.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/medwatch/triage/internal/mockapi"
	"github.com/medwatch/triage/pkg/logger"
)

const readHeaderTimeout = 5 * time.Second

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	patients := flag.Int("patients", 47, "number of synthetic patients")
	seed := flag.Int64("seed", 1, "roster rng seed")
	malformed := flag.Float64("malformed", 0.2, "fraction of records with a corrupted field")
	faults := flag.Float64("faults", 0.15, "fraction of requests answered with 429/500/503")
	rotate := flag.Bool("rotate-shapes", false, "cycle response envelope shapes per page")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	ctx := context.Background()

	cfg := mockapi.Config{
		NumPatients:   *patients,
		Seed:          *seed,
		MalformedRate: *malformed,
		FaultRate:     *faults,
		RotateShapes:  *rotate,
	}
	server := mockapi.New(cfg, log.Named("mockapi"))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info(ctx, "starting mock assessment API",
		logger.String("addr", *addr),
		logger.Int("patients", server.RosterSize()),
		logger.Float64("malformed_rate", *malformed),
		logger.Float64("fault_rate", *faults),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		os.Stderr.WriteString("mock API failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
