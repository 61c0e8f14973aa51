package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/host/headless"
	"github.com/pthm-cable/aurora/host/raylibhost"
	"github.com/pthm-cable/aurora/host/termhost"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/systems"
	"github.com/pthm-cable/aurora/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	hostName := flag.String("host", "raylib", "Display host: raylib, term or headless")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	frames := flag.Int("frames", 0, "Stop after N frames (0 = unlimited, headless only)")
	snapshot := flag.String("snapshot", "", "Write the last frame to this PNG (headless only)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logPerf := flag.Bool("log-perf", false, "Collect and log per-phase frame timings")
	restorePath := flag.String("restore", "", "Start from a saved field state (JSON)")
	stateDir := flag.String("save-state", "", "Directory to save the final field state to")

	flag.Parse()

	opts := runOptions{
		configPath:  *configPath,
		hostName:    *hostName,
		seed:        *seed,
		frames:      *frames,
		snapshot:    *snapshot,
		outputDir:   *outputDir,
		logPerf:     *logPerf,
		restorePath: *restorePath,
		stateDir:    *stateDir,
	}
	if err := run(opts); err != nil {
		slog.Error("aurora failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath  string
	hostName    string
	seed        int64
	frames      int
	snapshot    string
	outputDir   string
	logPerf     bool
	restorePath string
	stateDir    string
}

func run(opts runOptions) error {
	// Initialize config before anything else
	if err := config.Init(opts.configPath); err != nil {
		return err
	}
	cfg := config.Cfg()

	// The terminal host owns stdout, so logs go to stderr; JSON unless a
	// human is watching.
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) && opts.hostName != "term" {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))

	seed := opts.seed
	var restored []systems.Particle
	if opts.restorePath != "" {
		snap, err := telemetry.LoadSnapshot(opts.restorePath)
		if err != nil {
			return err
		}
		restored = snap.ToParticles()
		if seed == 0 {
			seed = snap.RNGSeed
		}
		slog.Info("restoring field", "path", opts.restorePath, "particles", len(restored), "frame", snap.Frame)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return err
	}
	var perf *telemetry.PerfCollector
	if opts.logPerf {
		perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	}

	host, err := newHost(cfg, opts.hostName, headless.Options{Frames: opts.frames, Snapshot: opts.snapshot})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ambientOpts := []loop.Option{
		loop.WithRand(rand.New(rand.NewSource(seed))),
		loop.WithTelemetry(perf, out),
	}
	if restored != nil {
		ambientOpts = append(ambientOpts, loop.WithRestore(restored))
	}
	a := loop.New(cfg, host.Scheduler(), host.Viewport(), ambientOpts...)

	slog.Info("starting aurora",
		"host", opts.hostName,
		"seed", seed,
		"screen", fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height),
		"output_dir", opts.outputDir,
	)
	if err := host.Run(ctx, a); err != nil {
		return err
	}

	if opts.stateDir != "" {
		path, err := telemetry.SaveSnapshot(telemetry.NewSnapshot(seed, a.Frames(), a.Field()), opts.stateDir)
		if err != nil {
			return err
		}
		slog.Info("field state saved", "path", path)
	}
	return nil
}

func newHost(cfg *config.Config, name string, opts headless.Options) (loop.Host, error) {
	switch name {
	case "raylib":
		return raylibhost.New(cfg, "Aurora"), nil
	case "term":
		h, err := termhost.New(cfg, nil)
		if err != nil {
			return nil, err
		}
		return h, nil
	case "headless":
		return headless.New(cfg, opts), nil
	default:
		return nil, fmt.Errorf("unknown host %q", name)
	}
}
