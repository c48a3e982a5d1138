// Package tui is the interactive front end: pick a video, choose an
// output suffix, watch the encode, read the size report.
package tui

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"vidsqueeze/catalog"
	"vidsqueeze/config"
	"vidsqueeze/encoder"
)

// Phase is the screen the UI currently shows. The encode pipeline moves
// strictly forward: pick, suffix, starting, encoding, then done or error.
type Phase int

const (
	PhasePick Phase = iota
	PhaseSuffix
	PhaseStarting
	PhaseEncoding
	PhaseDone
	PhaseError
)

// sessionStartedMsg is sent when the probe and the ffmpeg spawn succeeded.
type sessionStartedMsg struct {
	orch    *encoder.Orchestrator
	session *encoder.Session
}

// sessionErrorMsg is sent when the encode process could not be started.
type sessionErrorMsg struct {
	err error
}

// encodeDoneMsg carries the orchestrator's terminal outcome.
type encodeDoneMsg struct {
	result encoder.Result
	err    error
}

// TickMsg is sent periodically to refresh the progress display.
type TickMsg time.Time

// Model is the Bubble Tea model for the whole run.
type Model struct {
	Runtime  config.Runtime
	Settings config.Settings
	Files    []catalog.File
	Phase    Phase

	// Terminal outcome for the caller to map to an exit code.
	Err     error
	Aborted bool

	cursor       int
	suffixInput  textinput.Model
	presetSuffix string

	spin        spinner.Model
	Progress    progress.Model
	LogViewport viewport.Model
	ShowLogs    bool
	Width       int
	Height      int

	selected catalog.File
	request  encoder.Request
	orch     *encoder.Orchestrator
	session  *encoder.Session

	snapshot encoder.Snapshot // local safe copy, refreshed on tick
	result   encoder.Result

	log    *slog.Logger
	encLog *slog.Logger
}

// NewModel builds the UI over a non-empty file list. A non-empty
// presetSuffix answers the suffix prompt up front, skipping that screen.
func NewModel(files []catalog.File, rt config.Runtime, set config.Settings, presetSuffix string, logger *slog.Logger) Model {
	prog := progress.New(
		progress.WithGradient("#7C3AED", "#10B981"),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 30
	ti.SetValue(rt.DefaultSuffix)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	vp := viewport.New(80, 12)
	vp.SetContent("")

	if logger == nil {
		// The UI owns the terminal, so an absent logger discards.
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return Model{
		Runtime:      rt,
		Settings:     set,
		Files:        files,
		Phase:        PhasePick,
		suffixInput:  ti,
		presetSuffix: presetSuffix,
		spin:         sp,
		Progress:     prog,
		LogViewport:  vp,
		log:          logger.With("component", "tui"),
		encLog:       logger.With("component", "encoder"),
	}
}

// Init initializes the Bubble Tea program.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// startEncode probes the pick's duration and spawns the encode process.
func (m *Model) startEncode() tea.Cmd {
	req := m.request
	rt := m.Runtime
	set := m.Settings
	logger := m.encLog

	return func() tea.Msg {
		orch := encoder.New(req, logger)
		if total := encoder.ProbeDuration(rt.FFprobeBin, req.Input); total > 0 {
			orch.SetTotal(total)
		}

		sess, err := encoder.StartSession(rt, set, req.Input, orch.OutputPath())
		if err != nil {
			return sessionErrorMsg{err: err}
		}
		return sessionStartedMsg{orch: orch, session: sess}
	}
}

// runEncode blocks on the orchestrator's event loop and reports the
// terminal outcome back to the UI.
func runEncode(orch *encoder.Orchestrator, runner encoder.Runner) tea.Cmd {
	return func() tea.Msg {
		res, err := orch.Run(runner)
		return encodeDoneMsg{result: res, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages and advances the phase machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.abort()
		case "q":
			// The suffix field needs the letter.
			if m.Phase != PhaseSuffix {
				return m.abort()
			}
		case "l":
			if m.Phase == PhaseEncoding || m.Phase == PhaseError {
				m.ShowLogs = !m.ShowLogs
			}
		}

		switch m.Phase {
		case PhasePick:
			switch msg.String() {
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.Files)-1 {
					m.cursor++
				}
			case "enter":
				m.selected = m.Files[m.cursor]
				if m.presetSuffix != "" {
					return m.confirmSuffix(m.presetSuffix)
				}
				m.Phase = PhaseSuffix
				cmds = append(cmds, m.suffixInput.Focus(), textinput.Blink)
			}

		case PhaseSuffix:
			if msg.String() == "enter" {
				suffix := strings.TrimSpace(m.suffixInput.Value())
				if suffix == "" {
					suffix = m.Runtime.DefaultSuffix
				}
				return m.confirmSuffix(suffix)
			}

		case PhaseDone, PhaseError:
			if msg.String() == "enter" {
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		barWidth := msg.Width - 20
		if barWidth < 10 {
			barWidth = 10
		}
		m.Progress.Width = barWidth
		m.LogViewport.Width = msg.Width - 4

		logHeight := msg.Height - 20
		if logHeight < 0 {
			logHeight = 0
		}
		m.LogViewport.Height = logHeight

	case sessionStartedMsg:
		m.orch = msg.orch
		m.session = msg.session
		m.Phase = PhaseEncoding
		cmds = append(cmds, runEncode(msg.orch, msg.session), tickCmd())

	case sessionErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.err
		return m, nil

	case encodeDoneMsg:
		m.refreshFromOrchestrator()
		if msg.err != nil {
			m.Phase = PhaseError
			m.Err = msg.err
		} else {
			m.Phase = PhaseDone
			m.result = msg.result
		}
		return m, nil

	case TickMsg:
		if m.orch != nil && m.Phase == PhaseEncoding {
			m.refreshFromOrchestrator()
			cmds = append(cmds, tickCmd())
		}

	case spinner.TickMsg:
		if m.Phase == PhaseStarting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}

	if m.Phase == PhaseSuffix {
		var cmd tea.Cmd
		m.suffixInput, cmd = m.suffixInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.ShowLogs {
		var cmd tea.Cmd
		m.LogViewport, cmd = m.LogViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// confirmSuffix locks in the request and moves to the starting phase.
func (m Model) confirmSuffix(suffix string) (tea.Model, tea.Cmd) {
	input := filepath.Join(m.Runtime.ScanDir, m.selected.Name)
	m.request = encoder.NewRequest(input, suffix)
	m.Phase = PhaseStarting
	m.log.Info("request confirmed", "request", m.request.ID, "input", input, "suffix", suffix)
	return m, tea.Batch(m.spin.Tick, m.startEncode())
}

// abort stops a live encode, records the user's intent, and quits.
func (m Model) abort() (tea.Model, tea.Cmd) {
	if m.session != nil && m.Phase == PhaseEncoding {
		m.Aborted = true
		m.session.Stop()
		m.log.Info("encode aborted by user", "request", m.request.ID)
	}
	return m, tea.Quit
}

// refreshFromOrchestrator pulls a fresh display snapshot.
func (m *Model) refreshFromOrchestrator() {
	snap, logs, _, _ := m.orch.State()
	m.snapshot = snap
	if len(logs) > 0 {
		m.LogViewport.SetContent(strings.Join(logs, "\n"))
		m.LogViewport.GotoBottom()
	}
}

// Result returns the completed run's statistics. The second return is
// false unless the run finished successfully.
func (m Model) Result() (encoder.Result, bool) {
	return m.result, m.Phase == PhaseDone
}
