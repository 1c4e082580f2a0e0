// Package naming derives filesystem-safe output filenames for segments.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mixsplit/mixsplit/internal/model"
)

// Name length limits
const (
	// MaxBaseLength is the longest name emitted (without the extension), in
	// runes, including any track number prefix and collision suffix. Long
	// enough to keep a distinguishing prefix, short enough to leave room for
	// the directory and extension on common filesystems.
	MaxBaseLength = 120
)

// Track number prefix
const (
	TrackPrefixFormat      = "%02d - "
	TrackPrefixWideFormat  = "%03d - "
	TrackPrefixWideMinimum = 100
)

// FallbackName is used when sanitizing removes every character.
const FallbackName = "Track"

// replacer maps characters that are illegal or troublesome in file names on
// common platforms to safe substitutes.
var replacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"|", "-",
	"\"", "'",
	"*", "",
	"?", "",
	"<", "",
	">", "",
)

// Namer derives output base names and remembers every name it has emitted so
// two segments with identical artist and title never collide. One Namer
// serves one run; it performs no I/O.
type Namer struct {
	used       map[string]bool
	numbered   bool
	trackCount int
}

// NewNamer creates a namer. When numbered is true, names get a zero-padded
// "NN - " track number prefix; trackCount widens the padding past 99 tracks.
func NewNamer(numbered bool, trackCount int) *Namer {
	return &Namer{
		used:       make(map[string]bool),
		numbered:   numbered,
		trackCount: trackCount,
	}
}

// Name returns the base filename (no directory, no extension) for a segment.
func (n *Namer) Name(seg model.Segment) string {
	base := Sanitize(seg.GetDisplayTitle())
	if base == "" || base == "-" {
		base = FallbackName
	}
	if n.numbered {
		format := TrackPrefixFormat
		if n.trackCount >= TrackPrefixWideMinimum {
			format = TrackPrefixWideFormat
		}
		base = fmt.Sprintf(format, seg.TrackNumber()) + base
	}
	base = truncate(base, MaxBaseLength)

	name := base
	if n.used[name] {
		// First disambiguator is the segment's 1-based track number; keep
		// counting up if even that is taken (a title may itself end in "(2)").
		name = disambiguate(base, seg.TrackNumber())
		for k := seg.TrackNumber() + 1; n.used[name]; k++ {
			name = disambiguate(base, k)
		}
	}

	n.used[name] = true
	return name
}

// Sanitize replaces path separators and reserved punctuation, drops control
// characters, collapses runs of whitespace, and trims leading/trailing dots
// and spaces.
func Sanitize(s string) string {
	s = replacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), " .")
}

// disambiguate appends a " (k)" suffix, shortening the base as needed so the
// whole name stays within MaxBaseLength.
func disambiguate(base string, k int) string {
	suffix := fmt.Sprintf(" (%d)", k)
	return truncate(base, MaxBaseLength-len([]rune(suffix))) + suffix
}

// truncate cuts s to at most max runes, never splitting a rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimRight(string(runes[:max]), " .")
}
