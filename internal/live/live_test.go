package live

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/engine"
	"github.com/talgya/pendulums/internal/pendulum"
)

func smallSim() *engine.Simulation {
	cfg := config.Default()
	cfg.Count = 4
	return engine.NewSimulation(pendulum.Sweep(cfg), cfg.Settings)
}

func TestGameUpdate(t *testing.T) {
	t.Run("Cancelled context terminates", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sim := smallSim()
		before := append([]pendulum.Pendulum(nil), sim.Pendulums...)

		g := NewGame(ctx, sim)
		require.ErrorIs(t, g.Update(), ebiten.Termination)
		require.Zero(t, g.eng.Tick)
		require.Equal(t, before, sim.Pendulums)
	})

	t.Run("Live context advances", func(t *testing.T) {
		sim := smallSim()
		before := append([]pendulum.Pendulum(nil), sim.Pendulums...)

		g := NewGame(context.Background(), sim)
		require.NoError(t, g.Update())
		require.NoError(t, g.Update())
		require.Equal(t, uint64(2), g.eng.Tick)
		require.NotEqual(t, before, sim.Pendulums)
	})
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Double Pendulum Simulator! [50000 pends, 0.1 deg]", Title(50000, 0.1))
}
