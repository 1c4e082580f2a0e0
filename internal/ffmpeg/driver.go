package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/mixsplit/mixsplit/internal/model"
)

// Executable and argument constants
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	FFmpegLogLevel      = "error"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"

	CodecCopy = "copy"
)

// Metadata tag keys passed to ffmpeg
const (
	TagTitle  = "title"
	TagArtist = "artist"
	TagAlbum  = "album"
	TagTrack  = "track"
)

// ExtractionError reports a failed cut for one segment. Extraction errors are
// isolated per segment and never invalidate the rest of the plan.
type ExtractionError struct {
	Index  int    // 0-based segment index
	Dest   string // output path the cut was writing
	Stderr string // captured ffmpeg stderr
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extracting segment %d to %s: %v", e.Index, e.Dest, e.Err)
	if e.Stderr != "" {
		msg += "\nffmpeg stderr:\n" + e.Stderr
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Request describes one extraction invocation.
type Request struct {
	Segment      model.Segment
	DestPath     string
	Album        string // album tag, usually the source file name
	TrackCount   int    // total tracks, for the track=N/M tag
	ToEOF        bool   // read to end of source instead of passing an end time
	WithMetadata bool   // write title/artist/album/track tags
}

// Driver invokes ffmpeg and ffprobe as external processes.
type Driver struct {
	ffmpegPath  string
	ffprobePath string
}

// NewDriver creates a driver. Empty path arguments fall back to the standard
// command names resolved via PATH.
func NewDriver(ffmpegPath, ffprobePath string) *Driver {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegCommand
	}
	if ffprobePath == "" {
		ffprobePath = FFprobeCommand
	}
	return &Driver{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
	}
}

// CheckAvailable verifies that ffmpeg can be executed. Called once at startup
// so a missing install fails fast instead of on the first segment.
func (d *Driver) CheckAvailable(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, d.ffmpegPath, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg is not available on this machine (looked for %q): %w", d.ffmpegPath, err)
	}
	return nil
}

// Extract performs the time-range cut for one segment. The stream is copied,
// never re-encoded. When metadata was requested and stderr points at the
// metadata pass, the run is retried once without tags: some containers accept
// no metadata at all and the cut itself is still worth having.
func (d *Driver) Extract(ctx context.Context, req Request) error {
	stderr, err := d.run(ctx, BuildExtractArgs(req))
	if err == nil {
		return nil
	}

	if req.WithMetadata && metadataFailure(stderr) && ctx.Err() == nil {
		log.Printf("Extraction with metadata failed for %s, retrying without tags", req.DestPath)
		req.WithMetadata = false
		if retryStderr, retryErr := d.run(ctx, BuildExtractArgs(req)); retryErr == nil {
			return nil
		} else {
			stderr, err = retryStderr, retryErr
		}
	}

	return &ExtractionError{
		Index:  req.Segment.Index,
		Dest:   req.DestPath,
		Stderr: stderr,
		Err:    err,
	}
}

// metadataFailure reports whether ffmpeg's stderr blames the metadata pass
// rather than the cut itself. A cut failure is never retried: running the
// same cut twice cannot succeed and would hide the original stderr.
func metadataFailure(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "metadata") || strings.Contains(s, "tag")
}

// run executes ffmpeg, returning captured stderr alongside any error.
func (d *Driver) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

// BuildExtractArgs builds the ffmpeg argument list for one extraction.
// -ss and -to are input options, so seeking happens before the demuxer and
// the copy codec cuts on the nearest preceding keyframe.
func BuildExtractArgs(req Request) []string {
	args := []string{
		"-nostdin",
		"-y", // overwrite output file
		"-loglevel", FFmpegLogLevel,
		"-ss", formatSeconds(req.Segment.Start),
	}
	if !req.ToEOF {
		args = append(args, "-to", formatSeconds(req.Segment.End))
	}

	args = append(args,
		"-i", req.Segment.Source,
		"-vn",
		"-c", CodecCopy,
	)

	if req.WithMetadata {
		args = append(args,
			"-metadata", fmt.Sprintf("%s=%s", TagTitle, req.Segment.Title),
			"-metadata", fmt.Sprintf("%s=%s", TagArtist, req.Segment.Artist),
		)
		if req.Album != "" {
			args = append(args, "-metadata", fmt.Sprintf("%s=%s", TagAlbum, req.Album))
		}
		if req.TrackCount > 0 {
			args = append(args, "-metadata",
				fmt.Sprintf("%s=%d/%d", TagTrack, req.Segment.TrackNumber(), req.TrackCount))
		}
	}

	return append(args, req.DestPath)
}

// formatSeconds renders an offset as fractional seconds for ffmpeg.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}
