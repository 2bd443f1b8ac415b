// Package render turns pendulum state into a flat list of draw commands that
// any backend can replay. Backends only implement Canvas.
package render

import (
	"image/color"

	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/pendulum"
)

// Kind identifies a draw primitive.
type Kind uint8

const (
	Line Kind = iota // segment from (X0, Y0) to (X1, Y1)
	Disc             // filled circle at (X0, Y0)
	Ring             // hollow circle at (X0, Y0)
)

// Command is one primitive in canvas coordinates.
type Command struct {
	Kind   Kind
	X0, Y0 float64
	X1, Y1 float64
	Radius float64
	Width  float64
	Color  color.NRGBA
}

// Canvas is a drawing backend.
type Canvas interface {
	Line(x0, y0, x1, y1, width float64, c color.NRGBA)
	Disc(cx, cy, r float64, c color.NRGBA)
	Ring(cx, cy, r, width float64, c color.NRGBA)
}

// Background is the clear colour shared by every backend.
var Background = color.NRGBA{R: 51, G: 51, B: 51, A: 255}

// RingWidth is the stroke width of the High quality bob outline.
const RingWidth = 1.0

// Alpha converts a [0, 1] transparency setting to an 8-bit alpha.
func Alpha(transparency float64) uint8 {
	switch {
	case transparency <= 0:
		return 0
	case transparency >= 1:
		return 255
	}
	return uint8(transparency * 255)
}

// Append adds the commands that draw p to dst and returns the extended slice.
// The pivot sits at origin.
func Append(dst []Command, p pendulum.Pendulum, s config.Settings, origin pendulum.Point) []Command {
	b1, b2 := pendulum.Project(p, s.Magnification, origin)

	c := p.Color
	c.A = Alpha(s.Transparency)

	dst = append(dst,
		Command{Kind: Line, X0: origin.X, Y0: origin.Y, X1: b1.X, Y1: b1.Y, Width: s.Width, Color: c},
		Command{Kind: Line, X0: b1.X, Y0: b1.Y, X1: b2.X, Y1: b2.Y, Width: s.Width, Color: c},
	)

	if s.Quality < config.QualityMedium {
		return dst
	}

	// Bob discs are as wide as the bob is heavy.
	r1, r2 := p.M1/2, p.M2/2
	dst = append(dst,
		Command{Kind: Disc, X0: b1.X, Y0: b1.Y, Radius: r1, Color: c},
		Command{Kind: Disc, X0: b2.X, Y0: b2.Y, Radius: r2, Color: c},
	)

	if s.Quality < config.QualityHigh {
		return dst
	}

	outline := color.NRGBA{A: c.A}
	return append(dst,
		Command{Kind: Ring, X0: b1.X, Y0: b1.Y, Radius: r1, Width: RingWidth, Color: outline},
		Command{Kind: Ring, X0: b2.X, Y0: b2.Y, Radius: r2, Width: RingWidth, Color: outline},
	)
}

// Replay issues every command to c in order.
func Replay(c Canvas, cmds []Command) {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case Line:
			c.Line(cmd.X0, cmd.Y0, cmd.X1, cmd.Y1, cmd.Width, cmd.Color)
		case Disc:
			c.Disc(cmd.X0, cmd.Y0, cmd.Radius, cmd.Color)
		case Ring:
			c.Ring(cmd.X0, cmd.Y0, cmd.Radius, cmd.Width, cmd.Color)
		}
	}
}
