package render

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/pendulums/internal/config"
	"github.com/talgya/pendulums/internal/pendulum"
)

type recorder struct {
	calls []string
}

func (r *recorder) Line(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.calls = append(r.calls, fmt.Sprintf("line %.0f,%.0f-%.0f,%.0f w%.1f a%d", x0, y0, x1, y1, width, c.A))
}

func (r *recorder) Disc(cx, cy, rad float64, c color.NRGBA) {
	r.calls = append(r.calls, fmt.Sprintf("disc %.0f,%.0f r%.1f a%d", cx, cy, rad, c.A))
}

func (r *recorder) Ring(cx, cy, rad, width float64, c color.NRGBA) {
	r.calls = append(r.calls, fmt.Sprintf("ring %.0f,%.0f r%.1f w%.1f rgb%d%d%d a%d", cx, cy, rad, width, c.R, c.G, c.B, c.A))
}

func hanging() pendulum.Pendulum {
	return pendulum.Pendulum{R1: 100, R2: 50, M1: 10, M2: 4, Color: color.NRGBA{R: 255, A: 255}}
}

func settings(q config.Quality) config.Settings {
	s := config.Default().Settings
	s.Magnification = 1
	s.Transparency = 0.5
	s.Width = 2
	s.Quality = q
	return s
}

func TestAppend(t *testing.T) {
	origin := pendulum.Point{X: 10, Y: 20}

	t.Run("Low draws the two links", func(t *testing.T) {
		cmds := Append(nil, hanging(), settings(config.QualityLow), origin)
		require.Len(t, cmds, 2)

		require.Equal(t, Line, cmds[0].Kind)
		require.Equal(t, origin.X, cmds[0].X0)
		require.Equal(t, origin.Y, cmds[0].Y0)
		require.Equal(t, 120.0, cmds[0].Y1)
		require.Equal(t, cmds[0].X1, cmds[1].X0)
		require.Equal(t, cmds[0].Y1, cmds[1].Y0)
		require.Equal(t, 170.0, cmds[1].Y1)

		for _, c := range cmds {
			require.Equal(t, 2.0, c.Width)
			require.Equal(t, color.NRGBA{R: 255, A: 127}, c.Color)
		}
	})

	t.Run("Medium adds mass-sized discs", func(t *testing.T) {
		cmds := Append(nil, hanging(), settings(config.QualityMedium), origin)
		require.Len(t, cmds, 4)
		require.Equal(t, Disc, cmds[2].Kind)
		require.Equal(t, 5.0, cmds[2].Radius)
		require.Equal(t, 120.0, cmds[2].Y0)
		require.Equal(t, 2.0, cmds[3].Radius)
		require.Equal(t, 170.0, cmds[3].Y0)
	})

	t.Run("High adds black outlines", func(t *testing.T) {
		cmds := Append(nil, hanging(), settings(config.QualityHigh), origin)
		require.Len(t, cmds, 6)
		for _, c := range cmds[4:] {
			require.Equal(t, Ring, c.Kind)
			require.Equal(t, RingWidth, c.Width)
			require.Equal(t, color.NRGBA{A: 127}, c.Color)
		}
	})

	t.Run("Appends to an existing buffer", func(t *testing.T) {
		buf := Append(nil, hanging(), settings(config.QualityLow), origin)
		buf = Append(buf, hanging(), settings(config.QualityLow), origin)
		require.Len(t, buf, 4)
	})
}

func TestAlpha(t *testing.T) {
	require.Equal(t, uint8(0), Alpha(-1))
	require.Equal(t, uint8(12), Alpha(0.05))
	require.Equal(t, uint8(255), Alpha(1))
	require.Equal(t, uint8(255), Alpha(3))
}

func TestReplay(t *testing.T) {
	rec := &recorder{}
	Replay(rec, Append(nil, hanging(), settings(config.QualityHigh), pendulum.Point{}))
	require.Equal(t, []string{
		"line 0,0-0,100 w2.0 a127",
		"line 0,100-0,150 w2.0 a127",
		"disc 0,100 r5.0 a127",
		"disc 0,150 r2.0 a127",
		"ring 0,100 r5.0 w1.0 rgb000 a127",
		"ring 0,150 r2.0 w1.0 rgb000 a127",
	}, rec.calls)
}
