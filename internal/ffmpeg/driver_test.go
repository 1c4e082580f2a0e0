package ffmpeg

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mixsplit/mixsplit/internal/model"
)

func TestBuildExtractArgs(t *testing.T) {
	req := Request{
		Segment: model.Segment{
			Index:  1,
			Start:  90 * time.Second,
			End:    240 * time.Second,
			Title:  "Strobe",
			Artist: "deadmau5",
			Source: "/music/mix.mp3",
		},
		DestPath:     "/music/mix/02 - deadmau5 - Strobe.mp3",
		Album:        "mix",
		TrackCount:   3,
		WithMetadata: true,
	}

	expected := []string{
		"-nostdin",
		"-y",
		"-loglevel", "error",
		"-ss", "90.000",
		"-to", "240.000",
		"-i", "/music/mix.mp3",
		"-vn",
		"-c", "copy",
		"-metadata", "title=Strobe",
		"-metadata", "artist=deadmau5",
		"-metadata", "album=mix",
		"-metadata", "track=2/3",
		"/music/mix/02 - deadmau5 - Strobe.mp3",
	}

	args := BuildExtractArgs(req)
	if !reflect.DeepEqual(args, expected) {
		t.Errorf("BuildExtractArgs() = %v, expected %v", args, expected)
	}
}

func TestBuildExtractArgs_LastSegmentReadsToEOF(t *testing.T) {
	req := Request{
		Segment: model.Segment{
			Index:  2,
			Start:  240 * time.Second,
			End:    360 * time.Second,
			Source: "/music/mix.mp3",
		},
		DestPath: "/music/mix/out.mp3",
		ToEOF:    true,
	}

	args := BuildExtractArgs(req)
	for _, arg := range args {
		if arg == "-to" {
			t.Errorf("args %v contain -to, expected read to EOF", args)
		}
	}
}

func TestBuildExtractArgs_NoMetadata(t *testing.T) {
	req := Request{
		Segment:  model.Segment{Source: "in.mp3"},
		DestPath: "out.mp3",
	}

	for _, arg := range BuildExtractArgs(req) {
		if arg == "-metadata" {
			t.Errorf("metadata flag present without WithMetadata")
		}
	}
}

func TestBuildExtractArgs_FractionalStart(t *testing.T) {
	req := Request{
		Segment: model.Segment{
			Start:  90*time.Second + 250*time.Millisecond,
			End:    240 * time.Second,
			Source: "in.mp3",
		},
		DestPath: "out.mp3",
	}

	args := BuildExtractArgs(req)
	found := false
	for i, arg := range args {
		if arg == "-ss" && i+1 < len(args) {
			found = args[i+1] == "90.250"
		}
	}
	if !found {
		t.Errorf("args %v do not carry a fractional -ss of 90.250", args)
	}
}

func TestMetadataFailure(t *testing.T) {
	tests := []struct {
		stderr   string
		expected bool
	}{
		{"Error writing trailer: metadata not supported", true},
		{"Invalid metadata key 'track'", true},
		{"Tag mp3 incompatible with output codec", true},
		{"in.mp3: No such file or directory", false},
		{"Invalid data found when processing input", false},
		{"", false},
	}

	for _, test := range tests {
		if got := metadataFailure(test.stderr); got != test.expected {
			t.Errorf("metadataFailure(%q) = %v, expected %v", test.stderr, got, test.expected)
		}
	}
}

func TestExtractionError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &ExtractionError{
		Index:  4,
		Dest:   "/out/05 - track.mp3",
		Stderr: "Invalid data found",
		Err:    cause,
	}

	if !errors.Is(err, cause) {
		t.Error("ExtractionError does not unwrap to its cause")
	}

	msg := err.Error()
	for _, want := range []string{"segment 4", "/out/05 - track.mp3", "Invalid data found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestNewDriver_Defaults(t *testing.T) {
	d := NewDriver("", "")
	if d.ffmpegPath != FFmpegCommand || d.ffprobePath != FFprobeCommand {
		t.Errorf("NewDriver defaults = (%q, %q)", d.ffmpegPath, d.ffprobePath)
	}

	custom := NewDriver("/opt/ffmpeg/bin/ffmpeg", "/opt/ffmpeg/bin/ffprobe")
	if custom.ffmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("custom ffmpeg path = %q", custom.ffmpegPath)
	}
}
