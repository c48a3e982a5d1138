// Package encoder drives one external ffmpeg compression at a time: it
// spawns the process, consumes its streaming status output as an ordered
// event sequence, and resolves with size statistics or a typed error.
package encoder

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Request is one user-confirmed encode: a chosen input file and the
// suffix for the output name. Immutable once created.
type Request struct {
	ID     string
	Input  string
	Suffix string
}

// NewRequest stamps a request with a fresh ID for log correlation.
func NewRequest(input, suffix string) Request {
	return Request{ID: uuid.NewString(), Input: input, Suffix: suffix}
}

// EventKind discriminates the encoder's status events.
type EventKind int

const (
	// EventDuration carries the total source duration, discovered from
	// the encoder's stream header. Emitted at most once per session.
	EventDuration EventKind = iota
	// EventProgress carries the current encode position and rates.
	EventProgress
	// EventLog carries one log line from the encoder.
	EventLog
	// EventEnd signals that the encoder reported a clean end of stream.
	EventEnd
)

// Event is one parsed status update from the encode process.
type Event struct {
	Kind EventKind
	// Seconds is the total duration (EventDuration) or the current
	// position (EventProgress).
	Seconds float64
	// Line is the log text (EventLog).
	Line string
	// FPS, Speed and OutputBytes ride along on EventProgress when the
	// encoder reported them; zero values mean "not in this batch".
	FPS         float64
	Speed       string
	OutputBytes int64
}

// Runner is the encode process as the orchestrator sees it: an ordered
// event stream and a final result. Session implements it against a real
// ffmpeg; tests script it.
type Runner interface {
	// Events returns the stream of status events. The channel closes
	// when the process's output is exhausted.
	Events() <-chan Event
	// Wait blocks until the process has exited and reports its result.
	// Call only after the event channel has closed.
	Wait() error
}

// Snapshot is the displayable progress state, rebuilt from the latest
// events. Last write wins; no history is kept.
type Snapshot struct {
	TotalSec    float64
	PositionSec float64
	Percent     float64
	Label       string
	FPS         float64
	Speed       string
	OutputBytes int64
	Elapsed     time.Duration
}

// Result is the terminal artifact of a successful encode.
type Result struct {
	Input            string
	Output           string
	InputMB          float64
	OutputMB         float64
	ReductionPercent float64
	Elapsed          time.Duration
}

// EncodeError reports a failed encode process, with the tail of the
// encoder's log for context. The partial output file is left in place.
type EncodeError struct {
	Input string
	Err   error
	Tail  []string
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("encoding %s: %v", e.Input, e.Err)
	if len(e.Tail) > 0 {
		msg += "\n" + strings.Join(e.Tail, "\n")
	}
	return msg
}

func (e *EncodeError) Unwrap() error { return e.Err }

const maxLogs = 100

// Orchestrator coordinates one encode run: a single loop consumes the
// runner's events in emission order and folds them into a mutex-guarded
// snapshot that the UI polls. On a clean end it computes size statistics
// and produces the Result.
type Orchestrator struct {
	req    Request
	output string
	log    *slog.Logger

	mu       sync.Mutex
	snap     Snapshot
	logLines []string
	started  time.Time
	elapsed  time.Duration
	done     bool
	err      error
	result   *Result
}

// New prepares an orchestrator for one request, deriving the output path
// from the request's input and suffix.
func New(req Request, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		req:    req,
		output: OutputPath(req.Input, req.Suffix),
		log:    logger.With("request", req.ID),
	}
}

// OutputPath returns the derived destination path for this run.
func (o *Orchestrator) OutputPath() string { return o.output }

// SetTotal seeds the total duration before the run starts, typically from
// a probe. The encoder's own duration header only fills in when no total
// is known yet.
func (o *Orchestrator) SetTotal(seconds float64) {
	if seconds <= 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snap.TotalSec = seconds
	o.snap.Label = FormatLabel(o.snap.TotalSec, o.snap.PositionSec)
}

// Run consumes the runner's events until the stream closes, then settles
// the run: on process success it computes size statistics and returns the
// Result; on failure it returns an *EncodeError (or *StatsError when only
// the post-encode size read failed). Blocks until terminal.
func (o *Orchestrator) Run(runner Runner) (Result, error) {
	o.mu.Lock()
	o.started = time.Now()
	o.mu.Unlock()

	o.log.Info("encode started", "input", o.req.Input, "output", o.output)
	o.addLog("Input: " + o.req.Input)
	o.addLog("Output: " + o.output)

	for ev := range runner.Events() {
		switch ev.Kind {
		case EventDuration:
			o.applyDuration(ev.Seconds)
		case EventProgress:
			o.applyProgress(ev)
		case EventLog:
			o.addLog(ev.Line)
		case EventEnd:
			o.finalize()
		}
	}

	if err := runner.Wait(); err != nil {
		encErr := &EncodeError{Input: o.req.Input, Err: err, Tail: o.tail(8)}
		o.log.Error("encode failed", "error", err)
		o.addLog("Encode failed: " + err.Error())
		o.addLog("Partial output left at: " + o.output)
		o.settle(nil, encErr)
		return Result{}, encErr
	}

	stats, err := Stats(o.req.Input, o.output)
	if err != nil {
		o.log.Error("size statistics failed", "error", err)
		o.settle(nil, err)
		return Result{}, err
	}

	res := Result{
		Input:            o.req.Input,
		Output:           o.output,
		InputMB:          stats.InputMB,
		OutputMB:         stats.OutputMB,
		ReductionPercent: stats.ReductionPercent,
	}
	o.settle(&res, nil)

	o.log.Info("encode completed",
		"input_mb", fmt.Sprintf("%.2f", res.InputMB),
		"output_mb", fmt.Sprintf("%.2f", res.OutputMB),
		"reduction_percent", fmt.Sprintf("%.2f", res.ReductionPercent),
		"elapsed", res.Elapsed.Round(time.Second),
	)
	return res, nil
}

// State returns a consistent snapshot of the run for display: progress,
// a copy of the recent log lines, whether the run has settled, and the
// terminal error if any.
func (o *Orchestrator) State() (Snapshot, []string, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := o.snap
	if !o.started.IsZero() {
		if o.done {
			snap.Elapsed = o.elapsed
		} else {
			snap.Elapsed = time.Since(o.started)
		}
	}

	logs := make([]string, len(o.logLines))
	copy(logs, o.logLines)

	return snap, logs, o.done, o.err
}

// Result returns the terminal artifact once the run has settled
// successfully.
func (o *Orchestrator) Result() (Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return Result{}, false
	}
	return *o.result, true
}

func (o *Orchestrator) applyDuration(seconds float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.snap.TotalSec > 0 || seconds <= 0 {
		return
	}
	o.snap.TotalSec = seconds
	o.snap.Label = FormatLabel(o.snap.TotalSec, o.snap.PositionSec)
}

func (o *Orchestrator) applyProgress(ev Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if ev.Seconds >= 0 {
		o.snap.PositionSec = ev.Seconds
	}
	if ev.FPS > 0 {
		o.snap.FPS = ev.FPS
	}
	if ev.Speed != "" {
		o.snap.Speed = ev.Speed
	}
	if ev.OutputBytes > 0 {
		o.snap.OutputBytes = ev.OutputBytes
	}

	if o.snap.TotalSec > 0 {
		o.snap.Percent = clampPercent(o.snap.PositionSec / o.snap.TotalSec * 100)
	}
	o.snap.Label = FormatLabel(o.snap.TotalSec, o.snap.PositionSec)
}

// finalize pins the display state to completion when the encoder signals
// a clean end.
func (o *Orchestrator) finalize() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snap.PositionSec = o.snap.TotalSec
	o.snap.Percent = 100
	o.snap.Label = FormatLabel(o.snap.TotalSec, o.snap.TotalSec)
}

// settle records the terminal state exactly once, stamping the result
// with the total run time.
func (o *Orchestrator) settle(res *Result, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return
	}
	o.done = true
	o.err = err
	o.elapsed = time.Since(o.started)
	if res != nil {
		res.Elapsed = o.elapsed
		o.result = res
	}
}

func (o *Orchestrator) addLog(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.logLines = append(o.logLines, line)
	if len(o.logLines) > maxLogs {
		o.logLines = o.logLines[len(o.logLines)-maxLogs:]
	}
}

// tail returns up to n of the most recent log lines.
func (o *Orchestrator) tail(n int) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.logLines) < n {
		n = len(o.logLines)
	}
	out := make([]string, n)
	copy(out, o.logLines[len(o.logLines)-n:])
	return out
}
