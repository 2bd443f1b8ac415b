// Package export renders a run to numbered PNG frames and hands them to an
// external video encoder.
package export

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/talgya/pendulums/internal/engine"
	"github.com/talgya/pendulums/internal/pendulum"
	"github.com/talgya/pendulums/internal/render"
)

// Exporter writes frames into Dir and then runs Encoder over them.
type Exporter struct {
	Dir        string
	Size       int          // frame side in pixels
	Background color.Color  // defaults to render.Background
	Encoder    FrameEncoder // nil skips stitching
}

// FrameEncoder turns the numbered frames in a directory into a video.
type FrameEncoder interface {
	Encode(ctx context.Context, dir string) error
}

// FramePath returns the file frame k is written to.
func FramePath(dir string, k uint64) string {
	return filepath.Join(dir, strconv.FormatUint(k, 10)+".png")
}

// Run renders frames frames of sim, one image per frame, then encodes them.
// Any I/O or encoder failure aborts the export.
func (x *Exporter) Run(ctx context.Context, sim *engine.Simulation, frames int) error {
	if err := os.MkdirAll(x.Dir, 0o755); err != nil {
		return fmt.Errorf("create frames dir: %w", err)
	}

	bg := x.Background
	if bg == nil {
		bg = render.Background
	}
	mid := float64(x.Size / 2)
	origin := pendulum.Point{X: mid, Y: mid}

	var written uint64
	eng := engine.NewEngine()
	eng.OnReport = func(tick uint64, fps float64) {
		slog.Debug("export rate", "frame", tick, "fps", fps)
	}
	eng.OnTick = func(frame uint64) error {
		canvas := NewImageCanvas(x.Size, bg)
		sim.Frame(canvas, origin)

		path := FramePath(x.Dir, frame)
		n, err := writePNG(canvas, path)
		if err != nil {
			return fmt.Errorf("save frame %d: %w", frame, err)
		}
		written += n
		slog.Info("saved frame", "frame", frame, "path", path, "size", humanize.Bytes(n))
		return nil
	}

	if err := eng.RunFrames(ctx, frames); err != nil {
		return err
	}
	slog.Info("done saving frames",
		"frames", humanize.Comma(int64(frames)),
		"pendulums", humanize.Comma(int64(len(sim.Pendulums))),
		"total", humanize.Bytes(written),
	)

	if x.Encoder == nil {
		return nil
	}
	return x.Encoder.Encode(ctx, x.Dir)
}

func writePNG(c *ImageCanvas, path string) (n uint64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := c.Context().EncodePNG(f); err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return uint64(info.Size()), nil
}
