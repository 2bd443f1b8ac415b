package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Encoder stitches numbered PNG frames into a video with an external ffmpeg.
type Encoder struct {
	Binary      string
	InputRate   int // frames per second read from the image sequence
	OutputRate  int // frames per second of the video
	Codec       string
	PixelFormat string
	Output      string

	// run executes the process; swapped out in tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewEncoder returns the fixed ffmpeg configuration writing to output.
func NewEncoder(output string) *Encoder {
	return &Encoder{
		Binary:      "ffmpeg",
		InputRate:   10,
		OutputRate:  60,
		Codec:       "libx264",
		PixelFormat: "yuv420p",
		Output:      output,
	}
}

// Args returns the ffmpeg command line for frames in dir.
func (e *Encoder) Args(dir string) []string {
	return []string{
		"-y",
		"-framerate", strconv.Itoa(e.InputRate),
		"-i", filepath.Join(dir, "%d.png"),
		"-c:v", e.Codec,
		"-r", strconv.Itoa(e.OutputRate),
		"-pix_fmt", e.PixelFormat,
		e.Output,
	}
}

// Encode runs ffmpeg over the frames in dir and waits for it to finish.
func (e *Encoder) Encode(ctx context.Context, dir string) error {
	run := e.run
	if run == nil {
		run = runCommand
	}

	args := e.Args(dir)
	slog.Info("stitching frames", "encoder", e.Binary, "dir", dir, "output", e.Output)
	out, err := run(ctx, e.Binary, args...)
	if err != nil {
		return fmt.Errorf("%s: %w: %s", e.Binary, err, bytes.TrimSpace(out))
	}
	slog.Info("done stitching frames", "output", e.Output)
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
