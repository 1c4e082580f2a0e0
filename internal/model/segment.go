package model

import (
	"fmt"
	"time"
)

// Segment is a validated time range ready for extraction. Segments are created
// exclusively by the planner and never mutated afterwards.
type Segment struct {
	Index  int // 0-based position in the plan
	Start  time.Duration
	End    time.Duration
	Title  string
	Artist string
	Source string // path of the audio file the segment is cut from
}

// Duration returns the segment length.
func (s Segment) Duration() time.Duration {
	return s.End - s.Start
}

// TrackNumber returns the 1-based track number of the segment.
func (s Segment) TrackNumber() int {
	return s.Index + 1
}

// GetDisplayTitle returns "Artist - Title", or just the title when the artist
// matches the title (some tracklists repeat the field).
func (s Segment) GetDisplayTitle() string {
	if s.Artist == "" || s.Artist == s.Title {
		return s.Title
	}
	return s.Artist + " - " + s.Title
}

// FormatOffset formats an offset as hh:mm:ss or mm:ss for display.
func FormatOffset(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
