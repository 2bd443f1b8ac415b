// Package engine provides the frame loop and the pendulum simulation it drives.
package engine

import (
	"context"
	"log/slog"
	"time"
)

// ReportEvery is how many ticks pass between frame-rate reports.
const ReportEvery = 10

// Engine counts frames and dispatches the per-frame callback.
type Engine struct {
	Tick uint64 // Frames completed so far (monotonic, never resets)

	// OnTick runs once per frame with the index of the frame being produced.
	// A non-nil error stops RunFrames.
	OnTick func(tick uint64) error

	// OnReport receives the measured frames per second every ReportEvery ticks.
	OnReport func(tick uint64, fps float64)

	now        func() time.Time
	lastReport time.Time
}

// NewEngine creates an engine that logs its frame rate.
func NewEngine() *Engine {
	e := &Engine{now: time.Now}
	e.OnReport = func(tick uint64, fps float64) {
		slog.Info("fps", "tick", tick, "fps", fps)
	}
	e.lastReport = e.now()
	return e
}

// Step produces one frame.
func (e *Engine) Step() error {
	if e.Tick%ReportEvery == 0 {
		e.report()
	}

	if e.OnTick != nil {
		if err := e.OnTick(e.Tick); err != nil {
			return err
		}
	}
	e.Tick++
	return nil
}

func (e *Engine) report() {
	if e.now == nil {
		e.now = time.Now
		e.lastReport = e.now()
	}
	now := e.now()
	elapsed := now.Sub(e.lastReport)
	e.lastReport = now

	// Tick 0 only starts the clock.
	if e.Tick == 0 || e.OnReport == nil || elapsed <= 0 {
		return
	}
	e.OnReport(e.Tick, ReportEvery/elapsed.Seconds())
}

// RunFrames steps n times as fast as the callback allows. It stops early when
// ctx is cancelled or a step fails.
func (e *Engine) RunFrames(ctx context.Context, n int) error {
	slog.Info("frame engine started", "tick", e.Tick, "frames", n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
	}

	slog.Info("frame engine stopped", "tick", e.Tick)
	return nil
}
