// Command pendulums animates a sweep of double pendulums, live in a window or
// exported to PNG frames stitched into a video by ffmpeg.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/pendulums/internal/app"
	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/engine"
	"github.com/talgya/pendulums/internal/export"
	"github.com/talgya/pendulums/internal/live"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, unknown, err := config.Parse(os.Args[1:])
	for _, arg := range unknown {
		slog.Warn("unknown argument", "arg", arg)
	}
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(1)
	}
	if cfg.Help {
		config.Usage(os.Stdout, os.Args[0], cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app.App{
		Encoder: export.NewEncoder(cfg.Output),
		Window:  openWindow,
	}
	if err := a.Run(ctx, cfg); err != nil {
		stop()
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func openWindow(ctx context.Context, sim *engine.Simulation, cfg config.Config) (uint64, error) {
	return live.Run(ctx, sim, live.Options{
		Size:  cfg.WindowSize,
		TPS:   cfg.TPS,
		Title: live.Title(cfg.Count, cfg.Separation),
	})
}
