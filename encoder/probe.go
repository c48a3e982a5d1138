package encoder

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// probeTimeout bounds the ffprobe call. Probing a local file is near
// instant, so a stall means the tool itself is wedged.
const probeTimeout = 10 * time.Second

// ProbeDuration asks ffprobe for the container duration of path, in
// seconds. Returns 0 when the duration cannot be determined; the encode
// still runs, it just starts without a known total until the encoder's
// stderr header supplies one.
func ProbeDuration(ffprobeBin, path string) float64 {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffprobeBin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil || duration <= 0 {
		return 0
	}
	return duration
}
