//go:build js && wasm

// Browser build of the ambient field. Draws behind page content on the
// canvas with id "aurora".
//
// Build: GOOS=js GOARCH=wasm go build -o aurora.wasm ./cmd/aurorawasm
package main

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/host/webhost"
	"github.com/pthm-cable/aurora/loop"
)

func main() {
	config.MustInit("")
	cfg := config.Cfg()

	h := webhost.New("aurora")
	a := loop.New(cfg, h.Scheduler(), h.Viewport())
	if err := h.Run(context.Background(), a); err != nil {
		slog.Error("aurora stopped", "error", err)
	}
}
