package encoder

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/quick"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
		want   string
	}{
		{"movie.mov", "_small", "movie_small.mp4"},
		{"clip.mkv", "_x", "clip_x.mp4"},
		{"video.mp4", "_compressed", "video_compressed.mp4"},
		// Only the final dot segment is dropped.
		{"archive.tar.gz", "_s", "archive.tar_s.mp4"},
		{"my.holiday.video.webm", "_small", "my.holiday.video_small.mp4"},
		// No dot: the whole name counts as the final segment and is dropped.
		{"movie", "_s", "_s.mp4"},
		// Suffix is taken as-is, no validation.
		{"clip.avi", "", "clip.mp4"},
		{"clip.avi", " spaced ", "clip spaced .mp4"},
	}

	for _, tc := range tests {
		got := OutputName(tc.name, tc.suffix)
		if got != tc.want {
			t.Errorf("OutputName(%q, %q) = %q, want %q", tc.name, tc.suffix, got, tc.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		suffix string
		want   string
	}{
		{"movie.mov", "_small", "movie_small.mp4"},
		{filepath.Join("videos", "movie.mov"), "_small", filepath.Join("videos", "movie_small.mp4")},
		{filepath.Join("a", "b", "clip.mkv"), "_x", filepath.Join("a", "b", "clip_x.mp4")},
	}

	for _, tc := range tests {
		got := OutputPath(tc.input, tc.suffix)
		if got != tc.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tc.input, tc.suffix, got, tc.want)
		}
	}
}

// Every derived name ends in ".mp4" with the suffix directly before it,
// regardless of the input name's shape.
func TestOutputName_Property(t *testing.T) {
	f := func(stem, suffix string) bool {
		// Path separators in random stems change the shape legitimately.
		if strings.ContainsAny(stem, "/\\") || strings.ContainsAny(suffix, "/\\") {
			return true
		}
		got := OutputName(stem+".mov", suffix)
		return strings.HasSuffix(got, suffix+".mp4") && strings.HasPrefix(got, stem)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 1000}); err != nil {
		t.Error(err)
	}
}
