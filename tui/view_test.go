package tui

import (
	"strings"
	"testing"
	"testing/quick"
	"time"
)

// For any non-negative file size, formatBytes returns a string with binary units.
func TestFormatBytes_Property(t *testing.T) {
	f := func(size uint64) bool {
		result := formatBytes(int64(size))

		if result == "" {
			return false
		}

		validUnits := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
		for _, unit := range validUnits {
			if strings.Contains(result, unit) {
				return true
			}
		}
		return false
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 1000}); err != nil {
		t.Error(err)
	}
}

func TestFormatBytes_EdgeCases(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{157286400, "150.0 MiB"},
		{1024 * 1024 * 1024, "1.0 GiB"},
	}

	for _, tc := range tests {
		result := formatBytes(tc.input)
		if result != tc.expected {
			t.Errorf("formatBytes(%d) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestFormatDuration_EdgeCases(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{-1, "—"},
		{0, "0:00"},
		{30 * time.Second, "0:30"},
		{time.Minute, "1:00"},
		{90 * time.Second, "1:30"},
		{time.Hour, "1:00:00"},
		{time.Hour + 30*time.Minute + 45*time.Second, "1:30:45"},
	}

	for _, tc := range tests {
		result := formatDuration(tc.input)
		if result != tc.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{30, "0:30"},
		{90, "1:30"},
		{89.6, "1:30"},
		{3725, "1:02:05"},
	}

	for _, tc := range tests {
		result := formatClock(tc.input)
		if result != tc.expected {
			t.Errorf("formatClock(%v) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		speed    string
		expected string
	}{
		{"", "—"},
		{"0x", "—"},
		{"N/A", "N/A"},
		{"1.5x", "1.5x"},
		{"2x", "2x"},
	}

	for _, tc := range tests {
		result := formatSpeed(tc.speed)
		if result != tc.expected {
			t.Errorf("formatSpeed(%q) = %q, want %q", tc.speed, result, tc.expected)
		}
	}
}

func TestFormatSizeDisplay(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "—"},
		{-1, "—"},
		{1024, "1.0 KiB"},
		{1024 * 1024, "1.0 MiB"},
	}

	for _, tc := range tests {
		result := formatSizeDisplay(tc.size)
		if result != tc.expected {
			t.Errorf("formatSizeDisplay(%d) = %q, want %q", tc.size, result, tc.expected)
		}
	}
}

func TestGetPercentageStyle(t *testing.T) {
	if got := getPercentageStyle(10).GetForeground(); got != colorWarning {
		t.Errorf("style below 33%% = %v, want warning color", got)
	}
	if got := getPercentageStyle(50).GetForeground(); got != colorSecondary {
		t.Errorf("style below 66%% = %v, want secondary color", got)
	}
	if got := getPercentageStyle(90).GetForeground(); got != colorSuccess {
		t.Errorf("style above 66%% = %v, want success color", got)
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		path     string
		maxLen   int
		expected string
	}{
		{"/short/path", 50, "/short/path"},
		{"/path", 10, "/path"},
		{
			"/home/user/videos/vacation/day-one/beach-sunset-panorama.mp4",
			40,
			"/home/user/videos ... nset-panorama.mp4",
		},
	}

	for _, tc := range tests {
		result := truncatePath(tc.path, tc.maxLen)
		if result != tc.expected {
			t.Errorf("truncatePath(%q, %d) = %q, want %q", tc.path, tc.maxLen, result, tc.expected)
		}
	}
}

// Long paths keep their head and tail around the elision marker.
func TestTruncatePath_Property(t *testing.T) {
	f := func(raw string, n uint8) bool {
		maxLen := int(n%60) + 20
		result := truncatePath(raw, maxLen)
		if len(raw) <= maxLen {
			return result == raw
		}
		half := (maxLen - 5) / 2
		return strings.HasPrefix(raw, result[:half]) &&
			strings.HasSuffix(raw, result[len(result)-half:])
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 1000}); err != nil {
		t.Error(err)
	}
}
