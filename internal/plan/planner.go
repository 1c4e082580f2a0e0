// Package plan turns an ordered tracklist plus the source duration into a
// validated list of segments ready for extraction.
package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/mixsplit/mixsplit/internal/model"
)

// Sentinel errors raised during planning. Planning errors are fatal for the
// run; no extraction happens after one.
var (
	// ErrUnorderedEntries means an entry's start is not after the previous
	// entry's start. Timing file order is authoritative; entries are checked,
	// never re-sorted.
	ErrUnorderedEntries = errors.New("entries out of order")

	// ErrStartOutOfRange means an entry starts outside [0, total duration).
	ErrStartOutOfRange = errors.New("start time out of range")

	// ErrEndOutOfRange means an explicit end time does not fit between its
	// own start and the next entry's start (or the total duration).
	ErrEndOutOfRange = errors.New("end time out of range")
)

// Plan validates the tracklist against the source's total duration and derives
// one segment per entry. An entry's end is its explicit end time when the
// record carried one, otherwise the next entry's start, and the total duration
// for the last entry. The returned segments tile the source without overlaps.
func Plan(tl *model.Tracklist, total time.Duration, source string) ([]model.Segment, error) {
	if total <= 0 {
		return nil, fmt.Errorf("source duration must be positive, got %v", total)
	}
	entries := tl.Entries
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries to plan")
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Start <= entries[i-1].Start {
			return nil, fmt.Errorf("%w: entry %d (line %d) starts at %v, not after %v",
				ErrUnorderedEntries, i, entries[i].Line,
				entries[i].Start, entries[i-1].Start)
		}
	}
	if first := entries[0].Start; first < 0 || first >= total {
		return nil, fmt.Errorf("%w: first entry starts at %v, source is %v long",
			ErrStartOutOfRange, first, total)
	}
	if last := entries[len(entries)-1].Start; last >= total {
		return nil, fmt.Errorf("%w: last entry starts at %v, source is %v long",
			ErrStartOutOfRange, last, total)
	}

	segments := make([]model.Segment, 0, len(entries))
	for i, entry := range entries {
		end := total
		if i < len(entries)-1 {
			end = entries[i+1].Start
		}
		if entry.HasEnd() {
			if entry.End <= entry.Start || entry.End > end {
				return nil, fmt.Errorf("%w: entry %d (line %d) ends at %v, must be inside (%v, %v]",
					ErrEndOutOfRange, i, entry.Line, entry.End, entry.Start, end)
			}
			end = entry.End
		}

		seg := model.Segment{
			Index:  i,
			Start:  entry.Start,
			End:    end,
			Title:  entry.Title,
			Artist: entry.Artist,
			Source: source,
		}
		// Guaranteed by the checks above; kept as a tripwire.
		if seg.End <= seg.Start {
			return nil, fmt.Errorf("internal: segment %d has non-positive duration", i)
		}
		segments = append(segments, seg)
	}

	return segments, nil
}
