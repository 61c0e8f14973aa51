// Ebiten build of the ambient field. Kept apart from the main binary so
// ebiten and raylib never link into one executable.
//
// Usage: go run ./cmd/auroraebiten [-config path] [-seed n]
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
	"github.com/pthm-cable/aurora/host/ebitenhost"
	"github.com/pthm-cable/aurora/loop"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
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

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := ebitenhost.New(cfg, "Aurora")
	a := loop.New(cfg, h.Scheduler(), h.Viewport(), loop.WithRand(rand.New(rand.NewSource(rngSeed))))
	if err := h.Run(ctx, a); err != nil {
		slog.Error("aurora stopped", "error", err)
		os.Exit(1)
	}
}
