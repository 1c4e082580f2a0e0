package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/simonhull/audiometa"
)

// ProbeDuration returns the total duration of an audio file. Formats that the
// native tag parser understands are probed without spawning a process; every
// other format goes through ffprobe.
func (d *Driver) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	if dur, err := probeNative(ctx, path); err == nil && dur > 0 {
		return dur, nil
	}
	return d.probeFFprobe(ctx, path)
}

// probeNative reads the duration from the file's own metadata.
func probeNative(ctx context.Context, path string) (time.Duration, error) {
	f, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Audio.Duration, nil
}

// probeFFprobe asks ffprobe for the container-level duration.
func (d *Driver) probeFFprobe(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, d.ffprobePath,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe on %s: %w", path, err)
	}

	durationStr := strings.TrimSpace(string(output))
	seconds, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe duration %q: %w", durationStr, err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
