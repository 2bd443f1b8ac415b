// Package live shows a run in a window, redrawing every pendulum each tick.
package live

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/talgya/pendulums/internal/engine"
	"github.com/talgya/pendulums/internal/pendulum"
	"github.com/talgya/pendulums/internal/render"
)

// Game adapts a Simulation to ebiten's update/draw loop.
type Game struct {
	ctx context.Context
	sim *engine.Simulation
	eng *engine.Engine
}

// NewGame wires sim to a frame engine that advances it once per update.
// Cancelling ctx ends the game at the next update.
func NewGame(ctx context.Context, sim *engine.Simulation) *Game {
	g := &Game{ctx: ctx, sim: sim, eng: engine.NewEngine()}
	g.eng.OnTick = func(uint64) error {
		sim.Advance()
		return nil
	}
	return g
}

// Update advances the pendulums. Escape or a cancelled context ends the run.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return g.eng.Step()
}

// Draw renders every pendulum with its pivot at the window centre.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	b := screen.Bounds()
	origin := pendulum.Point{X: float64(b.Dx()) / 2, Y: float64(b.Dy()) / 2}
	g.sim.Draw(screenCanvas{screen}, origin)
}

// Layout follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Title is the window caption for a run.
func Title(count int, separation float64) string {
	return fmt.Sprintf("Double Pendulum Simulator! [%d pends, %g deg]", count, separation)
}

// Options configures the window.
type Options struct {
	Size  int // window side in pixels
	TPS   int
	Title string
}

// Run opens the window and blocks until it is closed, Escape is pressed or
// ctx is cancelled. It returns the number of ticks simulated.
func Run(ctx context.Context, sim *engine.Simulation, opts Options) (uint64, error) {
	ebiten.SetWindowSize(opts.Size, opts.Size)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.TPS)

	slog.Info("opening window", "size", opts.Size, "tps", opts.TPS, "pendulums", len(sim.Pendulums))
	g := NewGame(ctx, sim)
	err := ebiten.RunGame(g)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return g.eng.Tick, fmt.Errorf("run window: %w", err)
	}
	slog.Info("window closed", "ticks", g.eng.Tick, "interrupted", ctx.Err() != nil)
	return g.eng.Tick, nil
}

// screenCanvas draws onto an ebiten image with vector paths.
type screenCanvas struct {
	dst *ebiten.Image
}

func (c screenCanvas) Line(x0, y0, x1, y1, width float64, col color.NRGBA) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col, true)
}

func (c screenCanvas) Disc(cx, cy, r float64, col color.NRGBA) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col, true)
}

func (c screenCanvas) Ring(cx, cy, r, width float64, col color.NRGBA) {
	vector.StrokeCircle(c.dst, float32(cx), float32(cy), float32(r), float32(width), col, true)
}
