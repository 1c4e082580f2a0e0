package tracklist

import "errors"

// Sentinel errors for timing file parsing. All wrapped errors remain
// checkable with errors.Is.
var (
	// ErrMalformedTimestamp means a time field did not match any recognized
	// format, or a component was out of range.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrMalformedEntry means a record could not be parsed into a track entry.
	ErrMalformedEntry = errors.New("malformed entry")

	// ErrEmptyTracklist means the timing file contained no track entries after
	// stripping comments and blank lines.
	ErrEmptyTracklist = errors.New("empty tracklist")
)
