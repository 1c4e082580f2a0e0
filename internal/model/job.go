package model

import (
	"path/filepath"
	"strings"
	"time"
)

// SplitJob tracks the state of splitting one source file.
type SplitJob struct {
	ID         string
	TimingPath string // timing file that drives the job
	Source     string // audio path or URL the job operates on
	OutputDir  string // directory the track files are written into
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Done       int     // segments extracted so far
	Total      int     // segments in the plan
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayName returns the source file name without its extension, falling
// back to the timing file name for jobs that have not resolved a source yet.
func (j *SplitJob) GetDisplayName() string {
	path := j.Source
	if path == "" {
		path = j.TimingPath
	}
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
