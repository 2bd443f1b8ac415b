package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// valueFlags maps every alias that takes a value to the setter it drives.
var valueFlags = map[string]func(c *Config, v string) error{
	"-p":              intVal(func(c *Config) *int { return &c.Count }),
	"--pendulums":     intVal(func(c *Config) *int { return &c.Count }),
	"-n":              intVal(func(c *Config) *int { return &c.Count }),
	"-v":              varyVal,
	"--vary":          varyVal,
	"-s":              floatVal(func(c *Config) *float64 { return &c.Separation }),
	"--separation":    floatVal(func(c *Config) *float64 { return &c.Separation }),
	"-m1":             floatVal(func(c *Config) *float64 { return &c.Settings.Mass1 }),
	"--mass1":         floatVal(func(c *Config) *float64 { return &c.Settings.Mass1 }),
	"-m2":             floatVal(func(c *Config) *float64 { return &c.Settings.Mass2 }),
	"--mass2":         floatVal(func(c *Config) *float64 { return &c.Settings.Mass2 }),
	"-r1":             floatVal(func(c *Config) *float64 { return &c.Settings.Length1 }),
	"--radius1":       floatVal(func(c *Config) *float64 { return &c.Settings.Length1 }),
	"-r2":             floatVal(func(c *Config) *float64 { return &c.Settings.Length2 }),
	"--radius2":       floatVal(func(c *Config) *float64 { return &c.Settings.Length2 }),
	"-mag":            floatVal(func(c *Config) *float64 { return &c.Settings.Magnification }),
	"--magnification": floatVal(func(c *Config) *float64 { return &c.Settings.Magnification }),
	"-g":              floatVal(func(c *Config) *float64 { return &c.Settings.G }),
	"--gravity":       floatVal(func(c *Config) *float64 { return &c.Settings.G }),
	"-pt":             floatVal(func(c *Config) *float64 { return &c.Settings.Transparency }),
	"--transparency":  floatVal(func(c *Config) *float64 { return &c.Settings.Transparency }),
	"-pw":             floatVal(func(c *Config) *float64 { return &c.Settings.Width }),
	"--width":         floatVal(func(c *Config) *float64 { return &c.Settings.Width }),
	"-speed":          floatVal(func(c *Config) *float64 { return &c.Settings.Speed }),
	"--speed":         floatVal(func(c *Config) *float64 { return &c.Settings.Speed }),
	"-q":              qualityVal,
	"--quality":       qualityVal,
	"-f":              intVal(func(c *Config) *int { return &c.Frames }),
	"--frames":        intVal(func(c *Config) *int { return &c.Frames }),
	"--frames-dir":    strVal(func(c *Config) *string { return &c.FramesDir }),
	"-o":              strVal(func(c *Config) *string { return &c.Output }),
	"--output":        strVal(func(c *Config) *string { return &c.Output }),
	"--record":        strVal(func(c *Config) *string { return &c.Record }),
	"--resume":        strVal(func(c *Config) *string { return &c.Resume }),
	"--jitter":        floatVal(func(c *Config) *float64 { return &c.Jitter }),
	"--seed":          int64Val(func(c *Config) *int64 { return &c.Seed }),
	"--config":        strVal(func(c *Config) *string { return &c.ConfigFile }),
}

func intVal(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func int64Val(field func(*Config) *int64) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func floatVal(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func strVal(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func varyVal(c *Config, v string) error {
	c.Settings.Varying = ParseVarying(v)
	return nil
}

func qualityVal(c *Config, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	c.Settings.Quality = QualityFromInt(n)
	return nil
}

// Parse builds a Config from command-line arguments (program name excluded).
// It returns the unknown dash-prefixed arguments so the caller can warn about
// them. A missing or malformed value is an error.
func Parse(args []string) (Config, []string, error) {
	cfg := Default()

	// The config file is the base layer; flags override it wherever they appear.
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "--config" {
			cfg.ConfigFile = args[i+1]
		}
	}
	if cfg.ConfigFile != "" {
		if err := loadFile(cfg.ConfigFile, &cfg); err != nil {
			return cfg, nil, err
		}
	}

	var unknown []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help":
			cfg.Help = true
			continue
		case "-c", "--compile":
			cfg.Compile = true
			continue
		}

		set, ok := valueFlags[arg]
		if !ok {
			if strings.HasPrefix(arg, "-") {
				unknown = append(unknown, arg)
			}
			continue
		}
		if i+1 >= len(args) {
			return cfg, unknown, fmt.Errorf("flag %s: missing value", arg)
		}
		i++
		if err := set(&cfg, args[i]); err != nil {
			return cfg, unknown, fmt.Errorf("flag %s: invalid value %q: %w", arg, args[i], err)
		}
	}

	return cfg, unknown, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f, cfg)
}

// Usage prints the help text with the defaults taken from cfg.
func Usage(w io.Writer, program string, cfg Config) {
	s := cfg.Settings
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n\n\nOptions:\n", program)
	fmt.Fprintf(w, "  -h, --help\t\t\tPrint this help message.\n")
	fmt.Fprintf(w, "  -p, --pendulums\t\tNumber of pendulums to simulate. [%d]\n", cfg.Count)
	fmt.Fprintf(w, "  -n\t\t\t\tAlias for -p.\n")
	fmt.Fprintf(w, "  -v, --vary\t\t\tVary the angle, length1, length2, mass1, or mass2. [%s]\n", s.Varying)
	fmt.Fprintf(w, "  -s, --separation\t\tSeparation between pendulums. [%g] (used only when varying angle)\n", cfg.Separation)
	fmt.Fprintf(w, "  -m1, --mass1\t\t\tMass of pendulum part 1. [%g] (used as max mass1 when varying mass1)\n", s.Mass1)
	fmt.Fprintf(w, "  -m2, --mass2\t\t\tMass of pendulum part 2. [%g] (used as max mass2 when varying mass2)\n", s.Mass2)
	fmt.Fprintf(w, "  -r1, --radius1\t\tLength of pendulum part 1. [%g]\n", s.Length1)
	fmt.Fprintf(w, "  -r2, --radius2\t\tLength of pendulum part 2. [%g]\n", s.Length2)
	fmt.Fprintf(w, "  -mag, --magnification\t\tPosition multiplier. [%g]\n", s.Magnification)
	fmt.Fprintf(w, "  -g, --gravity\t\t\tGravity/Speed[ish]. [%g]\n", s.G)
	fmt.Fprintf(w, "  -pt, --transparency\t\tTransparency of each pendulum. [%g]\n", s.Transparency)
	fmt.Fprintf(w, "  -pw, --width\t\t\tLine width of pendulums. [%g]\n", s.Width)
	fmt.Fprintf(w, "  -speed, --speed\t\tSpeed of the simulation. [%g]\n", s.Speed)
	fmt.Fprintf(w, "  -q, --quality\t\t\tQuality of the pendulums. (1-3) [%d]\n", s.Quality)
	fmt.Fprintf(w, "  -c, --compile\t\t\tCompile the frames into a video, suitable for large amounts of pendulums. [%t]\n", cfg.Compile)
	fmt.Fprintf(w, "  -f, --frames\t\t\tNumber of frames to compile. [%d]\n", cfg.Frames)
	fmt.Fprintf(w, "      --frames-dir\t\tDirectory the frames are written to. [%s]\n", cfg.FramesDir)
	fmt.Fprintf(w, "  -o, --output\t\t\tVideo file produced by ffmpeg. [%s]\n", cfg.Output)
	fmt.Fprintf(w, "      --config\t\t\tYAML file read before the command line.\n")
	fmt.Fprintf(w, "      --record\t\t\tSQLite file the finished run is saved to.\n")
	fmt.Fprintf(w, "      --resume\t\t\tRun id (or \"latest\") in --record to continue from.\n")
	fmt.Fprintf(w, "      --jitter\t\t\tInitial angular velocity noise amplitude. [%g]\n", cfg.Jitter)
	fmt.Fprintf(w, "      --seed\t\t\tNoise seed for --jitter. [%d]\n", cfg.Seed)
}
