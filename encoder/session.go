package encoder

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"vidsqueeze/config"
)

// Scanner buffer limit. The default 64KB can be exceeded by ffmpeg
// metadata dumps on files with large embedded tags.
const maxScanBuffer = 1024 * 1024

var durationRe = regexp.MustCompile(`Duration:\s*(\d+:\d+:\d+(?:\.\d+)?)`)

// Session is one live ffmpeg process. It implements Runner: the progress
// stream on stdout and the log stream on stderr are folded into a single
// ordered event channel, closed when both pipes are exhausted.
type Session struct {
	cmd    *exec.Cmd
	events chan Event
	scanWG sync.WaitGroup
}

// StartSession spawns ffmpeg for one encode and begins scanning its
// output. The returned session is already running; consume Events until
// the channel closes, then call Wait for the process result.
func StartSession(rt config.Runtime, set config.Settings, inputPath, outputPath string) (*Session, error) {
	args := buildArgs(set, inputPath, outputPath)
	cmd := exec.Command(rt.FFmpegBin, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", rt.FFmpegBin, err)
	}

	s := &Session{
		cmd:    cmd,
		events: make(chan Event, 8),
	}
	s.events <- Event{Kind: EventLog, Line: "$ " + rt.FFmpegBin + " " + strings.Join(args, " ")}

	s.scanWG.Add(2)
	go s.scanProgress(stdout)
	go s.scanStderr(stderr)
	go func() {
		s.scanWG.Wait()
		close(s.events)
	}()

	return s, nil
}

// buildArgs constructs the ffmpeg command arguments: the fixed compression
// preset between the input and the computed output path, with machine
// readable progress on stdout.
func buildArgs(set config.Settings, inputPath, outputPath string) []string {
	args := []string{
		"-hide_banner",
		"-nostats",
		"-progress", "pipe:1",
		"-i", inputPath,
		"-c:v", set.VideoCodec,
		"-crf", strconv.Itoa(set.CRF),
		"-preset", set.SpeedPreset,
		"-c:a", set.AudioCodec,
		"-b:a", set.AudioBitrate,
	}
	if set.FastStart {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, "-y", outputPath)
}

// Events returns the session's ordered event stream.
func (s *Session) Events() <-chan Event { return s.events }

// Wait blocks until both pipe scanners finish and the process exits, then
// reports the process result. Call after the event channel has closed.
func (s *Session) Wait() error {
	s.scanWG.Wait()
	return s.cmd.Wait()
}

// Stop kills the encode process. The pipes close, the event stream drains
// and closes, and Wait reports the kill.
func (s *Session) Stop() {
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
}

// scanProgress reads the -progress pipe:1 stream: key=value lines batched
// by "progress=continue" / "progress=end" markers. Each completed batch
// becomes one EventProgress; the end marker adds an EventEnd.
func (s *Session) scanProgress(r io.Reader) {
	defer s.scanWG.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanBuffer)

	batch := Event{Kind: EventProgress, Seconds: -1}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "progress=") {
			if batch.Seconds >= 0 {
				s.events <- batch
			}
			if line == "progress=end" {
				s.events <- Event{Kind: EventEnd}
			}
			batch = Event{Kind: EventProgress, Seconds: -1}
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "out_time_us", "out_time_ms":
			// ffmpeg emits both keys with the same microsecond value.
			if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
				batch.Seconds = float64(us) / 1e6
			}

		case "out_time":
			if us := parseOutTime(value); us >= 0 {
				batch.Seconds = float64(us) / 1e6
			}

		case "fps":
			if fps, err := strconv.ParseFloat(value, 64); err == nil && fps >= 0 {
				batch.FPS = fps
			}

		case "speed":
			batch.Speed = value

		case "total_size":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
				batch.OutputBytes = n
			}
		}
	}

	// Stream ended without a final marker; flush what we have.
	if batch.Seconds >= 0 {
		s.events <- batch
	}
}

// scanStderr reads ffmpeg's human-readable output: the first
// "Duration: HH:MM:SS.cc" header becomes an EventDuration, every
// non-empty line becomes an EventLog.
func (s *Session) scanStderr(r io.Reader) {
	defer s.scanWG.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanBuffer)

	durationSeen := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !durationSeen {
			if m := durationRe.FindStringSubmatch(line); len(m) == 2 {
				if sec, ok := parseClock(m[1]); ok && sec > 0 {
					durationSeen = true
					s.events <- Event{Kind: EventDuration, Seconds: sec}
				}
			}
		}

		s.events <- Event{Kind: EventLog, Line: line}
	}
}
