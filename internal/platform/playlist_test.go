package platform

import (
	"testing"
)

func TestIsPlaylistURL(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/playlist?list=PLrSOXFDHBtfH", true},
		{"https://www.youtube.com/watch?v=abc&list=PL123", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsPlaylistURL(c.url); got != c.want {
			t.Errorf("IsPlaylistURL(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestExtractPlaylistID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/playlist?list=PLrSOXFDHBtfH", "PLrSOXFDHBtfH"},
		{"https://www.youtube.com/watch?v=abc&list=PL123&index=2", "PL123"},
		{"https://www.youtube.com/watch?v=abc", ""},
	}

	for _, c := range cases {
		if got := ExtractPlaylistID(c.url); got != c.want {
			t.Errorf("ExtractPlaylistID(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
