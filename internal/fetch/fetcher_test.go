package fetch

import "testing"

func TestIsURL(t *testing.T) {
	tests := []struct {
		source   string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=abc123", true},
		{"http://example.com/mix.mp3", true},
		{"/music/essential-mix.mp3", false},
		{"essential-mix.mp3", false},
		{"httpdocs/mix.mp3", false},
		{"", false},
	}

	for _, test := range tests {
		if IsURL(test.source) != test.expected {
			t.Errorf("IsURL(%q) = %v, expected %v", test.source, !test.expected, test.expected)
		}
	}
}
