package model

import (
	"iter"
	"time"
)

// RawEntry is one parsed record from a timing file. It is unvalidated with
// respect to its neighbours: ordering and range checks happen in the planner.
type RawEntry struct {
	Start  time.Duration
	End    time.Duration // zero means "derive from the next entry / total duration"
	Title  string
	Artist string
	Line   int // 1-based line number in the timing file, for diagnostics
}

// HasEnd reports whether the entry carried an explicit end time.
func (e RawEntry) HasEnd() bool {
	return e.End > 0
}

// Tracklist is the ordered sequence of entries from one timing file.
// Insertion order is file order and is treated as chronological order.
type Tracklist struct {
	// Source is the audio file path or URL named by the timing file header
	// line. Empty when the timing file contains entries only.
	Source  string
	Entries []RawEntry
}

// Len returns the number of entries.
func (t *Tracklist) Len() int {
	return len(t.Entries)
}

// All returns a restartable iterator over the entries in file order.
func (t *Tracklist) All() iter.Seq2[int, RawEntry] {
	return func(yield func(int, RawEntry) bool) {
		for i, e := range t.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
