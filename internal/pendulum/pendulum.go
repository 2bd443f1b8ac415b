// Package pendulum implements the double-pendulum state record, its
// closed-form equations of motion and the parameter sweep that seeds a run.
package pendulum

import (
	"image/color"
	"math"

	"github.com/talgya/pendulums/internal/config"
)

// Pendulum is one double pendulum. Angles are radians measured from straight
// down and are never wrapped; only their sine and cosine are used.
type Pendulum struct {
	R1, R2   float64 // link lengths
	M1, M2   float64 // bob masses
	A1, A2   float64 // angles
	A1V, A2V float64 // angular velocities
	Color    color.NRGBA
}

// Point is a position in drawing coordinates (y grows downward).
type Point struct {
	X, Y float64
}

// Accelerations evaluates the Lagrangian equations of motion for p under
// gravity g. A degenerate configuration (zero denominator) yields Inf or NaN.
func Accelerations(p Pendulum, g float64) (a1a, a2a float64) {
	m1, m2 := p.M1, p.M2
	d := p.A1 - p.A2
	den := 2*m1 + m2 - m2*math.Cos(2*p.A1-2*p.A2)

	// sin(a1), not the small-angle a1: trajectories drift from a1-based renderers.
	num1 := -g * (2*m1 + m2) * math.Sin(p.A1)
	num2 := -m2 * g * math.Sin(p.A1-2*p.A2)
	num3 := -2 * math.Sin(d) * m2
	num4 := p.A2V*p.A2V*p.R2 + p.A1V*p.A1V*p.R1*math.Cos(d)
	a1a = (num1 + num2 + num3*num4) / (p.R1 * den)

	num1 = 2 * math.Sin(d)
	num2 = p.A1V * p.A1V * p.R1 * (m1 + m2)
	num3 = g * (m1 + m2) * math.Cos(p.A1)
	num4 = p.A2V * p.A2V * p.R2 * m2 * math.Cos(d)
	a2a = num1 * (num2 + num3 + num4) / (p.R2 * den)

	return a1a, a2a
}

// Step advances p by one frame. Velocities are updated first and the angles
// then move by the updated velocities, both scaled by s.Speed.
func (p *Pendulum) Step(s config.Settings) {
	a1a, a2a := Accelerations(*p, s.G)

	p.A1V += a1a * s.Speed
	p.A2V += a2a * s.Speed
	p.A1 += p.A1V * s.Speed
	p.A2 += p.A2V * s.Speed
}

// Project returns the two bob positions for p, magnified by mag and offset
// from the pivot at origin.
func Project(p Pendulum, mag float64, origin Point) (bob1, bob2 Point) {
	x1 := p.R1 * math.Sin(p.A1)
	y1 := p.R1 * math.Cos(p.A1)
	x2 := x1 + p.R2*math.Sin(p.A2)
	y2 := y1 + p.R2*math.Cos(p.A2)

	bob1 = Point{X: origin.X + x1*mag, Y: origin.Y + y1*mag}
	bob2 = Point{X: origin.X + x2*mag, Y: origin.Y + y2*mag}
	return bob1, bob2
}
