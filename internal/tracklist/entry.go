package tracklist

import (
	"fmt"
	"strings"

	"github.com/mixsplit/mixsplit/internal/model"
)

// Record separators
const (
	PipeSeparator = "|"
	DashSeparator = " - "
	CommentMarker = "#"
)

// Field counts for the pipe layout
const (
	MinPipeFields = 3 // start|title|artist
	MaxPipeFields = 4 // start|end|title|artist
)

// ParseEntry parses one timing file record into a RawEntry. Two layouts are
// recognized, detected per line:
//
//	start|title|artist
//	start|end|title|artist
//	<timestamp> <artist> - <title>
//
// Title and artist must be non-empty after trimming. The returned error wraps
// ErrMalformedEntry and carries the 1-based line number.
func ParseEntry(line string, lineNum int) (model.RawEntry, error) {
	line = strings.TrimSpace(line)

	var entry model.RawEntry
	var err error
	if strings.Contains(line, PipeSeparator) {
		entry, err = parsePipeRecord(line)
	} else {
		entry, err = parseDashRecord(line)
	}
	if err != nil {
		return model.RawEntry{}, fmt.Errorf("%w at line %d: %w", ErrMalformedEntry, lineNum, err)
	}

	entry.Line = lineNum
	return entry, nil
}

// parsePipeRecord handles start[|end]|title|artist records. Field meaning is
// positional: three fields never carry an end time, four fields always do.
func parsePipeRecord(line string) (model.RawEntry, error) {
	parts := strings.Split(line, PipeSeparator)
	if len(parts) < MinPipeFields {
		return model.RawEntry{}, fmt.Errorf("record needs a start time, title and artist, got %d fields", len(parts))
	}
	if len(parts) > MaxPipeFields {
		return model.RawEntry{}, fmt.Errorf("record has %d fields, at most %d allowed", len(parts), MaxPipeFields)
	}

	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return model.RawEntry{}, fmt.Errorf("start time: %w", err)
	}

	entry := model.RawEntry{Start: start}
	nameIndex := 1
	if len(parts) == MaxPipeFields {
		end, err := ParseTimestamp(parts[1])
		if err != nil {
			return model.RawEntry{}, fmt.Errorf("end time: %w", err)
		}
		entry.End = end
		nameIndex = 2
	}
	if len(parts)-nameIndex != 2 {
		return model.RawEntry{}, fmt.Errorf("record needs both a title and an artist")
	}

	entry.Title = strings.TrimSpace(parts[nameIndex])
	entry.Artist = strings.TrimSpace(parts[nameIndex+1])
	return entry, validateNames(entry)
}

// parseDashRecord handles "<timestamp> <artist> - <title>" records.
func parseDashRecord(line string) (model.RawEntry, error) {
	timeField, rest, found := strings.Cut(line, " ")
	if !found {
		return model.RawEntry{}, fmt.Errorf("record needs a time field followed by artist and title")
	}

	start, err := ParseTimestamp(timeField)
	if err != nil {
		return model.RawEntry{}, fmt.Errorf("start time: %w", err)
	}

	artist, title, found := strings.Cut(rest, DashSeparator)
	if !found {
		return model.RawEntry{}, fmt.Errorf("record needs %q between artist and title", DashSeparator)
	}

	entry := model.RawEntry{
		Start:  start,
		Title:  strings.TrimSpace(title),
		Artist: strings.TrimSpace(artist),
	}
	return entry, validateNames(entry)
}

func validateNames(entry model.RawEntry) error {
	if entry.Title == "" {
		return fmt.Errorf("title is empty")
	}
	if entry.Artist == "" {
		return fmt.Errorf("artist is empty")
	}
	return nil
}

// IsSkippable reports whether a line is blank or a comment and should not be
// parsed as a record.
func IsSkippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, CommentMarker)
}
