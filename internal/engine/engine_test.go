package engine

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/pendulum"
)

func TestEngine(t *testing.T) {
	t.Run("Ticks are zero based", func(t *testing.T) {
		e := NewEngine()
		var seen []uint64
		e.OnTick = func(tick uint64) error {
			seen = append(seen, tick)
			return nil
		}
		require.NoError(t, e.RunFrames(context.Background(), 3))
		require.Equal(t, []uint64{0, 1, 2}, seen)
		require.Equal(t, uint64(3), e.Tick)
	})

	t.Run("Reports every ten ticks", func(t *testing.T) {
		clock := time.Unix(0, 0)
		e := NewEngine()
		e.now = func() time.Time {
			clock = clock.Add(100 * time.Millisecond)
			return clock
		}

		var ticks []uint64
		var rates []float64
		e.OnReport = func(tick uint64, fps float64) {
			ticks = append(ticks, tick)
			rates = append(rates, fps)
		}
		require.NoError(t, e.RunFrames(context.Background(), 25))

		// Each report reads the clock once, so ten ticks span 100ms.
		require.Equal(t, []uint64{10, 20}, ticks)
		for _, r := range rates {
			require.InDelta(t, 100.0, r, 1e-9)
		}
	})

	t.Run("Callback error stops the run", func(t *testing.T) {
		boom := errors.New("disk full")
		e := NewEngine()
		e.OnTick = func(tick uint64) error {
			if tick == 2 {
				return boom
			}
			return nil
		}
		err := e.RunFrames(context.Background(), 10)
		require.ErrorIs(t, err, boom)
		require.Equal(t, uint64(2), e.Tick)
	})

	t.Run("Cancelled context stops the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		e := NewEngine()
		e.OnTick = func(tick uint64) error {
			if tick == 4 {
				cancel()
			}
			return nil
		}
		err := e.RunFrames(ctx, 100)
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, uint64(5), e.Tick)
	})

	t.Run("Zero value engine steps", func(t *testing.T) {
		var e Engine
		require.NoError(t, e.Step())
		require.NoError(t, e.Step())
		require.Equal(t, uint64(2), e.Tick)
	})
}

type countingCanvas struct {
	lines, discs, rings int
}

func (c *countingCanvas) Line(_, _, _, _, _ float64, _ color.NRGBA) { c.lines++ }
func (c *countingCanvas) Disc(_, _, _ float64, _ color.NRGBA)       { c.discs++ }
func (c *countingCanvas) Ring(_, _, _, _ float64, _ color.NRGBA)    { c.rings++ }

func TestSimulation(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 5

	t.Run("Advance matches stepping each pendulum", func(t *testing.T) {
		sim := NewSimulation(pendulum.Sweep(cfg), cfg.Settings)
		want := pendulum.Sweep(cfg)
		for i := range want {
			want[i].Step(cfg.Settings)
		}
		sim.Advance()
		require.Equal(t, want, sim.Pendulums)
	})

	t.Run("Frame draws before advancing", func(t *testing.T) {
		sim := NewSimulation(pendulum.Sweep(cfg), cfg.Settings)
		before := sim.Commands(pendulum.Point{X: 50, Y: 50})
		first := append(before[:0:0], before...)

		c := &countingCanvas{}
		sim.Frame(c, pendulum.Point{X: 50, Y: 50})
		require.Equal(t, 10, c.lines)
		require.Zero(t, c.discs)

		// The frame showed the pre-step state.
		fresh := NewSimulation(pendulum.Sweep(cfg), cfg.Settings)
		require.Equal(t, first, fresh.Commands(pendulum.Point{X: 50, Y: 50}))
		require.NotEqual(t, first, sim.Commands(pendulum.Point{X: 50, Y: 50}))
	})

	t.Run("Quality controls primitives", func(t *testing.T) {
		s := cfg.Settings
		s.Quality = config.QualityHigh
		sim := NewSimulation(pendulum.Sweep(cfg), s)
		c := &countingCanvas{}
		sim.Draw(c, pendulum.Point{})
		require.Equal(t, 10, c.lines)
		require.Equal(t, 10, c.discs)
		require.Equal(t, 10, c.rings)
	})
}
