// Package app wires a parsed Config to the run store, the pendulum sweep and
// one of the two render modes.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/engine"
	"github.com/talgya/pendulums/internal/export"
	"github.com/talgya/pendulums/internal/pendulum"
	"github.com/talgya/pendulums/internal/persistence"
)

// Mode names recorded with a run.
const (
	ModeLive   = "live"
	ModeExport = "export"
)

// ErrResumeWithoutRecord is returned when --resume has no database to read.
var ErrResumeWithoutRecord = errors.New("--resume needs --record to name the database")

// recentOnMiss is how many recorded runs are listed when a resume id is unknown.
const recentOnMiss = 5

// Window shows sim interactively until the user or ctx ends it and returns
// the number of ticks simulated.
type Window func(ctx context.Context, sim *engine.Simulation, cfg config.Config) (uint64, error)

// App runs one session.
type App struct {
	Encoder export.FrameEncoder // stitches exported frames
	Window  Window
}

// Run executes the session described by cfg.
func (a *App) Run(ctx context.Context, cfg config.Config) error {
	// ── Run store ─────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Record != "" {
		var err error
		db, err = persistence.Open(cfg.Record)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.Record)
	} else if cfg.Resume != "" {
		return ErrResumeWithoutRecord
	}

	// ── Pendulums ─────────────────────────────────────────────────────
	var pends []pendulum.Pendulum
	if cfg.Resume != "" {
		stored, err := restore(db, cfg.Resume)
		if err != nil {
			return err
		}
		pends = stored
		cfg.Count = len(stored)
	} else {
		pends = pendulum.Sweep(cfg)
		pendulum.Jitter(pends, cfg.Jitter, cfg.Seed)
	}

	slog.Info("pendulums ready",
		"count", humanize.Comma(int64(len(pends))),
		"vary", cfg.Settings.Varying,
		"separation", cfg.Separation,
		"quality", cfg.Settings.Quality,
	)
	sim := engine.NewSimulation(pends, cfg.Settings)

	// ── Render ────────────────────────────────────────────────────────
	mode := ModeLive
	var frames uint64
	if cfg.Compile {
		mode = ModeExport
		x := &export.Exporter{
			Dir:     cfg.FramesDir,
			Size:    cfg.ImageSize,
			Encoder: a.Encoder,
		}
		if err := x.Run(ctx, sim, cfg.Frames); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		frames = uint64(cfg.Frames)
	} else {
		if a.Window == nil {
			return errors.New("no window available for live mode")
		}
		var err error
		frames, err = a.Window(ctx, sim, cfg)
		if err != nil {
			return err
		}
	}

	if db == nil {
		return nil
	}
	_, err := db.SaveRun(persistence.Run{
		Mode:     mode,
		Frames:   frames,
		Settings: cfg.Settings,
	}, sim.Pendulums)
	return err
}

// restore loads the pendulums of a recorded run. An unknown id lists the
// most recent runs before failing.
func restore(db *persistence.DB, id string) ([]pendulum.Pendulum, error) {
	prev, stored, err := db.LoadRun(id)
	if errors.Is(err, persistence.ErrNoRun) {
		if recent, rerr := db.RecentRuns(recentOnMiss); rerr == nil {
			for _, r := range recent {
				slog.Info("recorded run", "id", r.ID, "mode", r.Mode, "pendulums", r.Count, "started", r.StartedAt)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	slog.Info("run restored",
		"id", prev.ID,
		"mode", prev.Mode,
		"pendulums", humanize.Comma(int64(len(stored))),
		"frames", prev.Frames,
	)
	return stored, nil
}
