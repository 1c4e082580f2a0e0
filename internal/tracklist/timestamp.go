package tracklist

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp component limits
const (
	MaxMinutes          = 59
	MaxSeconds          = 59
	MaxColonFields      = 3
	MaxFieldDigits      = 6 // bounds hours and bare seconds well inside a Duration
	TrailingFieldDigits = 2
	FractionDigits      = 9 // nanosecond precision
	SecondsPerHour      = 3600
	SecondsPerMinute    = 60
)

// ParseTimestamp converts a textual timestamp into an offset from the start of
// the source file. Recognized formats are H:MM:SS, MM:SS, and a bare number of
// seconds, each with an optional fractional part (e.g. "1:02:03.5", "90.250").
// Minute and second fields after a colon are exactly two digits and must not
// exceed 59.
func ParseTimestamp(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty time field", ErrMalformedTimestamp)
	}

	base := s
	frac := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		base, frac = s[:dot], s[dot+1:]
		if frac == "" {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
	}

	fields := strings.Split(base, ":")
	if len(fields) > MaxColonFields {
		return 0, fmt.Errorf("%w: %q has too many fields", ErrMalformedTimestamp, s)
	}

	values := make([]int, 0, len(fields))
	for i, field := range fields {
		if len(field) > MaxFieldDigits {
			return 0, fmt.Errorf("%w: %q has a field that is too long", ErrMalformedTimestamp, s)
		}
		if i > 0 && len(field) != TrailingFieldDigits {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
		v, err := parseDigits(field)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
		values = append(values, v)
	}

	var seconds int
	switch len(values) {
	case 1:
		seconds = values[0]
	case 2:
		if values[0] > MaxMinutes || values[1] > MaxSeconds {
			return 0, fmt.Errorf("%w: %q has a field above 59", ErrMalformedTimestamp, s)
		}
		seconds = values[0]*SecondsPerMinute + values[1]
	case 3:
		if values[1] > MaxMinutes || values[2] > MaxSeconds {
			return 0, fmt.Errorf("%w: %q has a field above 59", ErrMalformedTimestamp, s)
		}
		seconds = values[0]*SecondsPerHour + values[1]*SecondsPerMinute + values[2]
	}

	d := time.Duration(seconds) * time.Second
	if frac != "" {
		ns, err := parseFraction(frac)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
		}
		d += ns
	}
	return d, nil
}

// parseDigits parses a non-empty field of ASCII digits. Unlike strconv.Atoi it
// rejects signs, so negative components never parse.
func parseDigits(field string) (int, error) {
	if field == "" {
		return 0, fmt.Errorf("empty field")
	}
	n := 0
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit character %q", r)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// parseFraction converts the digits after the decimal point to nanoseconds.
func parseFraction(frac string) (time.Duration, error) {
	if len(frac) > FractionDigits {
		frac = frac[:FractionDigits]
	}
	n, err := parseDigits(frac)
	if err != nil {
		return 0, err
	}
	for i := len(frac); i < FractionDigits; i++ {
		n *= 10
	}
	return time.Duration(n) * time.Nanosecond, nil
}
