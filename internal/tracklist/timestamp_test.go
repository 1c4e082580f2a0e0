package tracklist

import (
	"errors"
	"testing"
	"time"

	"github.com/mixsplit/mixsplit/internal/model"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{"0", 0},
		{"90", 90 * time.Second},
		{"0:00", 0},
		{"1:30", 90 * time.Second},
		{"01:30", 90 * time.Second},
		{"59:59", 3599 * time.Second},
		{"1:00:00", 3600 * time.Second},
		{"02:02:03", 7323 * time.Second},
		{"10:00:00", 36000 * time.Second},
		{"90.5", 90*time.Second + 500*time.Millisecond},
		{"01:30.250", 90*time.Second + 250*time.Millisecond},
		{" 1:30 ", 90 * time.Second},
	}

	for _, test := range tests {
		result, err := ParseTimestamp(test.input)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) returned error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseTimestamp(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"-5",
		"-1:30",
		"1:-30",
		"1:60",
		"60:00",
		"1:00:60",
		"1:60:00",
		"1:2:3:4",
		"1:3", // seconds after a colon are two digits
		"1:2:03",
		"9999999", // more digits than any plausible offset
		"9999999:00:00",
		"1:30.",
		"1..5",
		"1:3O", // letter O, not zero
		"+90",
	}

	for _, input := range inputs {
		_, err := ParseTimestamp(input)
		if err == nil {
			t.Errorf("ParseTimestamp(%q) succeeded, expected error", input)
			continue
		}
		if !errors.Is(err, ErrMalformedTimestamp) {
			t.Errorf("ParseTimestamp(%q) error = %v, expected ErrMalformedTimestamp", input, err)
		}
	}
}

func TestParseTimestamp_RoundTrip(t *testing.T) {
	// Parsing a formatted offset must yield the same duration back, for all
	// recognized formats.
	offsets := []time.Duration{
		0,
		30 * time.Second,
		90 * time.Second,
		3599 * time.Second,
		3600 * time.Second,
		7323 * time.Second,
	}

	for _, offset := range offsets {
		formatted := model.FormatOffset(offset)
		result, err := ParseTimestamp(formatted)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) returned error: %v", formatted, err)
			continue
		}
		if result != offset {
			t.Errorf("round trip of %v via %q = %v", offset, formatted, result)
		}
	}
}
