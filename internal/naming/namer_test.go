package naming

import (
	"strings"
	"testing"

	"github.com/mixsplit/mixsplit/internal/model"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Around the World", "Around the World"},
		{"AC/DC - Back in Black", "AC-DC - Back in Black"},
		{"What? Where: When*", "What Where- When"},
		{`He said "hi"`, "He said 'hi'"},
		{"a\\b|c", "a-b-c"},
		{"  spaced   out  ", "spaced out"},
		{"tab\there", "tab here"},
		{"bell\x07char", "bellchar"},
		{"trailing dots...", "trailing dots"},
		{"<angles>", "angles"},
	}

	for _, test := range tests {
		result := Sanitize(test.input)
		if result != test.expected {
			t.Errorf("Sanitize(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestNamer_Name(t *testing.T) {
	namer := NewNamer(false, 2)

	seg := model.Segment{Index: 0, Artist: "Daft Punk", Title: "Around the World"}
	if name := namer.Name(seg); name != "Daft Punk - Around the World" {
		t.Errorf("Name() = %q", name)
	}
}

func TestNamer_Collision(t *testing.T) {
	namer := NewNamer(false, 2)

	first := namer.Name(model.Segment{Index: 0, Artist: "X", Title: "Y"})
	second := namer.Name(model.Segment{Index: 1, Artist: "X", Title: "Y"})

	if first != "X - Y" {
		t.Errorf("first name = %q, expected %q", first, "X - Y")
	}
	if second != "X - Y (2)" {
		t.Errorf("second name = %q, expected %q", second, "X - Y (2)")
	}
	if first == second {
		t.Error("duplicate entries produced the same name")
	}
}

func TestNamer_CollisionWithTakenDisambiguator(t *testing.T) {
	namer := NewNamer(false, 3)

	names := map[string]bool{}
	segments := []model.Segment{
		{Index: 0, Artist: "X", Title: "Y"},
		{Index: 1, Artist: "X", Title: "Y (2)"}, // occupies the first disambiguated form
		{Index: 2, Artist: "X", Title: "Y"},
	}
	for _, seg := range segments {
		name := namer.Name(seg)
		if names[name] {
			t.Fatalf("name %q emitted twice", name)
		}
		names[name] = true
	}
}

func TestNamer_TrackNumberPrefix(t *testing.T) {
	namer := NewNamer(true, 12)

	name := namer.Name(model.Segment{Index: 0, Artist: "Daft Punk", Title: "Da Funk"})
	if name != "01 - Daft Punk - Da Funk" {
		t.Errorf("Name() = %q", name)
	}

	wide := NewNamer(true, 150)
	name = wide.Name(model.Segment{Index: 7, Artist: "Daft Punk", Title: "Da Funk"})
	if name != "008 - Daft Punk - Da Funk" {
		t.Errorf("Name() = %q", name)
	}
}

func TestNamer_Truncation(t *testing.T) {
	namer := NewNamer(false, 1)

	long := strings.Repeat("a", 300)
	name := namer.Name(model.Segment{Index: 0, Artist: "Artist", Title: long})

	if len([]rune(name)) > MaxBaseLength {
		t.Errorf("name has %d runes, expected at most %d", len([]rune(name)), MaxBaseLength)
	}
	if !strings.HasPrefix(name, "Artist - aaa") {
		t.Errorf("truncated name %q lost its prefix", name)
	}
}

func TestNamer_TruncationIncludesTrackPrefix(t *testing.T) {
	namer := NewNamer(true, 12)

	long := strings.Repeat("a", 300)
	name := namer.Name(model.Segment{Index: 0, Artist: "Artist", Title: long})

	if n := len([]rune(name)); n > MaxBaseLength {
		t.Errorf("name has %d runes, expected at most %d", n, MaxBaseLength)
	}
	if !strings.HasPrefix(name, "01 - Artist - aaa") {
		t.Errorf("truncated name %q lost its prefix", name)
	}
}

func TestNamer_TruncationIncludesDisambiguator(t *testing.T) {
	namer := NewNamer(false, 2)

	long := strings.Repeat("a", 300)
	first := namer.Name(model.Segment{Index: 0, Artist: "X", Title: long})
	second := namer.Name(model.Segment{Index: 1, Artist: "X", Title: long})

	if first == second {
		t.Error("duplicate long entries produced the same name")
	}
	if !strings.HasSuffix(second, " (2)") {
		t.Errorf("second name %q is not disambiguated", second)
	}
	if n := len([]rune(second)); n > MaxBaseLength {
		t.Errorf("disambiguated name has %d runes, expected at most %d", n, MaxBaseLength)
	}
}

func TestNamer_EmptyAfterSanitize(t *testing.T) {
	namer := NewNamer(false, 1)

	name := namer.Name(model.Segment{Index: 0, Artist: "***", Title: "???"})
	if name != FallbackName {
		t.Errorf("Name() = %q, expected %q", name, FallbackName)
	}
}
