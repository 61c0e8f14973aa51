// Frame stream server - renders the ambient field and pushes PNG frames to
// browsers over a websocket.
//
// Usage: go run ./cmd/auroraserve [-config path] [-addr :8080]
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/stream"
	"github.com/pthm-cable/aurora/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	addr := flag.String("addr", "", "Listen address (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPerf := flag.Bool("log-perf", false, "Collect and log per-phase frame timings")
	flag.Parse()

	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *addr != "" {
		cfg.Stream.Address = *addr
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	var perf *telemetry.PerfCollector
	if *logPerf {
		perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := stream.NewServer(cfg,
		loop.WithRand(rand.New(rand.NewSource(rngSeed))),
		loop.WithTelemetry(perf, nil),
	)
	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("stream server failed", "error", err)
		os.Exit(1)
	}
}
