package pendulum

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/pendulums/internal/config"
)

// BaseAngle is the starting angle of every link when the angle is not swept.
const BaseAngle = -2.0

// Sweep creates cfg.Count pendulums, spreading the parameter selected by
// cfg.Settings.Varying across them and giving each an evenly spaced hue.
func Sweep(cfg config.Config) []Pendulum {
	s := cfg.Settings
	n := cfg.Count
	if n <= 0 {
		return nil
	}
	fn := float64(n)

	pends := make([]Pendulum, n)
	for i := range pends {
		fi := float64(i)
		p := Pendulum{
			R1:    s.Length1,
			R2:    s.Length2,
			M1:    s.Mass1,
			M2:    s.Mass2,
			A1:    BaseAngle,
			A2:    BaseAngle,
			Color: Hue(fi * (360 / fn)),
		}

		switch s.Varying {
		case config.VaryAngle:
			p.A1 = BaseAngle + fi*(cfg.Separation/fn)
			p.A2 = p.A1
		case config.VaryLength1:
			p.R1 = s.Length1 + fi*(s.Mass1/fn)
		case config.VaryLength2:
			p.R2 = s.Length2 + fi*(s.Mass2/fn)
		case config.VaryMass1:
			p.M1 = fi * (s.Mass1 / fn)
		case config.VaryMass2:
			p.M2 = fi * (s.Mass2 / fn)
		}

		pends[i] = p
	}
	return pends
}

// Hue converts a hue in degrees at full saturation and half lightness to an
// opaque colour.
func Hue(deg float64) color.NRGBA {
	r, g, b := colorful.Hsl(deg, 1, 0.5).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// jitterFreq spaces neighbouring pendulums along the noise field so adjacent
// ones get correlated but distinct kicks.
const jitterFreq = 0.05

// Jitter adds seeded OpenSimplex noise of the given amplitude to the initial
// angular velocities. The same seed always produces the same kicks.
func Jitter(pends []Pendulum, amount float64, seed int64) {
	if amount == 0 {
		return
	}
	noise := opensimplex.New(seed)
	for i := range pends {
		x := float64(i) * jitterFreq
		pends[i].A1V += amount * noise.Eval2(x, 0)
		pends[i].A2V += amount * noise.Eval2(x, 1)
	}
}
