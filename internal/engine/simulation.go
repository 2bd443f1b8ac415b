package engine

import (
	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/pendulum"
	"github.com/talgya/pendulums/internal/render"
)

// Simulation owns the pendulums of one run and the settings they share.
type Simulation struct {
	Pendulums []pendulum.Pendulum
	Settings  config.Settings

	cmds []render.Command // reused between frames
}

// NewSimulation wraps pends. The slice is owned by the simulation afterwards.
func NewSimulation(pends []pendulum.Pendulum, s config.Settings) *Simulation {
	return &Simulation{Pendulums: pends, Settings: s}
}

// Advance steps every pendulum once, in order.
func (s *Simulation) Advance() {
	for i := range s.Pendulums {
		s.Pendulums[i].Step(s.Settings)
	}
}

// Commands returns the draw commands for the current state with every pivot
// at origin. The returned slice is only valid until the next call.
func (s *Simulation) Commands(origin pendulum.Point) []render.Command {
	cmds := s.cmds[:0]
	for _, p := range s.Pendulums {
		cmds = render.Append(cmds, p, s.Settings, origin)
	}
	s.cmds = cmds
	return cmds
}

// Draw renders the current state onto c.
func (s *Simulation) Draw(c render.Canvas, origin pendulum.Point) {
	render.Replay(c, s.Commands(origin))
}

// Frame draws the current state and then advances it.
func (s *Simulation) Frame(c render.Canvas, origin pendulum.Point) {
	s.Draw(c, origin)
	s.Advance()
}
