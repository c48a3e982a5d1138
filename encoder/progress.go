package encoder

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatLabel renders the remaining time and completion percentage for a
// position within a known total duration, e.g. "1m:30s | 25.00%". Minutes
// and seconds are not zero-padded. When the position overruns the reported
// total the remaining values render negative; the label is display-only, so
// the overshoot is shown rather than hidden.
func FormatLabel(totalSec, positionSec float64) string {
	remaining := int(totalSec - positionSec)
	pct := 0.0
	if totalSec > 0 {
		pct = positionSec / totalSec * 100
	}
	return fmt.Sprintf("%dm:%ds | %.2f%%", remaining/60, remaining%60, pct)
}

// clampPercent bounds a percentage to the displayable [0, 100] range.
func clampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// parseClock parses a colon-separated "HH:MM:SS[.frac]" clock value into
// seconds. Each field carries real positional weight, so durations past an
// hour or with unusual field widths come out right.
func parseClock(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}

	hours, err1 := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	mins, err2 := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	secs, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}

	return float64(hours)*3600 + float64(mins)*60 + secs, true
}

// parseOutTime parses ffmpeg's out_time format "HH:MM:SS.microseconds"
// into microseconds. Integer arithmetic throughout, so the value agrees
// exactly with the out_time_us field of the same batch. Returns -1 when
// the value is absent or malformed.
func parseOutTime(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return -1
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return -1
	}

	hours, err1 := strconv.ParseInt(parts[0], 10, 64)
	mins, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil || hours < 0 || mins < 0 {
		return -1
	}

	secParts := strings.SplitN(parts[2], ".", 2)
	secs, err := strconv.ParseInt(secParts[0], 10, 64)
	if err != nil || secs < 0 {
		return -1
	}

	var micros int64
	if len(secParts) == 2 {
		// Pad or truncate the fraction to exactly six digits.
		frac := secParts[1]
		for len(frac) < 6 {
			frac += "0"
		}
		micros, err = strconv.ParseInt(frac[:6], 10, 64)
		if err != nil {
			return -1
		}
	}

	return hours*3600*1e6 + mins*60*1e6 + secs*1e6 + micros
}
