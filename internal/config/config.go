// Package config holds the CLI configuration, loaded from command-line flags
// with environment variable defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvOutputDir   = "MIXSPLIT_OUTPUT_DIR"
	EnvWorkers     = "MIXSPLIT_WORKERS"
	EnvFFmpegPath  = "MIXSPLIT_FFMPEG"
	EnvFFprobePath = "MIXSPLIT_FFPROBE"
)

// Default values
const (
	DefaultWorkers = 1
)

// Config holds one invocation's settings.
type Config struct {
	TimingFiles  []string // positional arguments, at least one
	Source       string   // audio path or URL; overrides timing file headers
	OutputDir    string   // empty means "next to the source"
	Workers      int
	BestEffort   bool
	DryRun       bool
	NumberTracks bool
	WriteTags    bool
	FFmpegPath   string
	FFprobePath  string
}

// Load parses configuration from the given argument list (without the program
// name). Flags take precedence over environment variables.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("mixsplit", flag.ContinueOnError)
	fs.StringVar(&cfg.Source, "source", "", "source audio file or URL (overrides the timing file header)")
	fs.StringVar(&cfg.OutputDir, "out", envString(EnvOutputDir, ""), "output directory (default: next to the source, named after it)")
	fs.IntVar(&cfg.Workers, "workers", envInt(EnvWorkers, DefaultWorkers), "parallel extractions (1 keeps strict track order)")
	fs.BoolVar(&cfg.BestEffort, "best-effort", false, "keep going after a failed track and report all failures at the end")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "print the validated plan without extracting anything")
	numberTracks := fs.Bool("track-numbers", true, "prefix output names with the track number")
	writeTags := fs.Bool("tags", true, "write title/artist/album tags into the extracted files")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", envString(EnvFFmpegPath, ""), "path to the ffmpeg binary (default: found on PATH)")
	fs.StringVar(&cfg.FFprobePath, "ffprobe", envString(EnvFFprobePath, ""), "path to the ffprobe binary (default: found on PATH)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: mixsplit [flags] <timing file> [<timing file>...]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.NumberTracks = *numberTracks
	cfg.WriteTags = *writeTags

	cfg.TimingFiles = fs.Args()
	if len(cfg.TimingFiles) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("at least one timing file is required")
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
