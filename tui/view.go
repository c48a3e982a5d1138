package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vidsqueeze/encoder"
)

// Color palette - modern, readable
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Violet
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorSuccess   = lipgloss.Color("#10B981") // Emerald
	colorError     = lipgloss.Color("#EF4444") // Red
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorText      = lipgloss.Color("#F9FAFB") // White
	colorTextDim   = lipgloss.Color("#9CA3AF") // Light gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
)

var (
	// Title bar
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 2).
			MarginBottom(1)

	// Section headers
	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				MarginTop(1)

	// Main stats box
	statsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			MarginTop(1)

	// Individual stat styles
	statLabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(10)

	statValueStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	statUnitStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	// File path styles
	fileBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2).
			MarginTop(1)

	fileLabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(8)

	filePathStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	// Pick menu
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Help text
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	// Log viewport
	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginTop(1)

	// Percentage styles based on progress
	percentLowStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	percentMidStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	percentHighStyle = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Bold(true)
)

// formatSpeed shows the encoder's raw speed multiplier, or a placeholder
// before the first reading.
func formatSpeed(speed string) string {
	if speed == "" || speed == "0x" {
		return "—"
	}
	return speed
}

// formatClock renders a second count as M:SS (H:MM:SS past an hour).
func formatClock(sec float64) string {
	if sec <= 0 {
		return "0:00"
	}
	return formatDuration(time.Duration(sec * float64(time.Second)))
}

// getPercentageStyle returns the label color for the current progress.
func getPercentageStyle(pct float64) lipgloss.Style {
	if pct < 33 {
		return percentLowStyle
	} else if pct < 66 {
		return percentMidStyle
	}
	return percentHighStyle
}

// formatSizeDisplay handles early encoding when size is unavailable
func formatSizeDisplay(size int64) string {
	if size <= 0 {
		return "—"
	}
	return formatBytes(size)
}

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" 🎬 vidsqueeze ") + "\n")

	switch m.Phase {
	case PhasePick:
		b.WriteString(m.renderPickView())

	case PhaseSuffix:
		b.WriteString(m.renderSuffixView())

	case PhaseStarting:
		b.WriteString(m.renderStartingView())

	case PhaseEncoding:
		b.WriteString(m.renderEncodingView())

	case PhaseDone:
		b.WriteString(m.renderDoneView())

	case PhaseError:
		b.WriteString(m.renderErrorView())
	}

	b.WriteString("\n" + helpStyle.Render(m.helpLine()) + "\n")

	return b.String()
}

func (m Model) helpLine() string {
	switch m.Phase {
	case PhasePick:
		return "  [↑/↓] Move  •  [Enter] Select  •  [Q] Quit"
	case PhaseSuffix:
		return "  [Enter] Confirm  •  [Esc] Quit"
	case PhaseEncoding:
		return "  [L] Toggle logs  •  [Q] Abort"
	case PhaseDone, PhaseError:
		return "  [Enter] Exit"
	default:
		return "  [Q] Quit"
	}
}

func (m Model) renderPickView() string {
	var b strings.Builder

	b.WriteString(sectionHeaderStyle.Render("  Select a video to compress") + "\n\n")

	for i, f := range m.Files {
		cursor := "  "
		style := itemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(cursor+f.Name) + statUnitStyle.Render("  "+formatBytes(f.Size))
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}

func (m Model) renderSuffixView() string {
	var b strings.Builder

	b.WriteString(sectionHeaderStyle.Render("  Output suffix") + "\n\n")
	b.WriteString("  " + fileLabelStyle.Render("Input") + filePathStyle.Render(m.selected.Name) + "\n\n")
	b.WriteString("  " + m.suffixInput.View() + "\n\n")

	suffix := strings.TrimSpace(m.suffixInput.Value())
	if suffix == "" {
		suffix = m.Runtime.DefaultSuffix
	}
	preview := encoder.OutputName(m.selected.Name, suffix)
	b.WriteString("  " + fileLabelStyle.Render("Output") + filePathStyle.Render(preview) + "\n")

	return b.String()
}

func (m Model) renderStartingView() string {
	return "\n  " + m.spin.View() + statValueStyle.Render(" Starting encoder for "+m.selected.Name+"...") + "\n"
}

func (m Model) renderEncodingView() string {
	var b strings.Builder

	snap := m.snapshot
	hasProgressData := snap.PositionSec > 0 || snap.TotalSec > 0

	b.WriteString("\n")

	percentage := snap.Percent / 100
	if percentage > 1 {
		percentage = 1
	}
	if percentage < 0 {
		percentage = 0
	}
	if !hasProgressData && percentage == 0 {
		// Indeterminate: show a sliver so the bar reads as alive.
		percentage = 0.01
	}

	progressBar := m.Progress.ViewAs(percentage)

	label := "..."
	if snap.TotalSec > 0 {
		label = snap.Label
	}
	b.WriteString("  " + progressBar + "  " + getPercentageStyle(snap.Percent).Render(label) + "\n")

	b.WriteString(statsBoxStyle.Render(m.buildStatsGrid(snap)))
	b.WriteString("\n")

	b.WriteString(fileBoxStyle.Render(m.buildFilesSection()))

	if m.ShowLogs {
		b.WriteString("\n")
		b.WriteString(sectionHeaderStyle.Render("  Encoder Output") + "\n")
		b.WriteString(logBoxStyle.Render(m.LogViewport.View()))
	}

	return b.String()
}

func (m Model) buildStatsGrid(snap encoder.Snapshot) string {
	var lines []string

	positionVal := formatClock(snap.PositionSec)
	totalVal := "—"
	if snap.TotalSec > 0 {
		totalVal = formatClock(snap.TotalSec)
	}

	fpsVal := "—"
	if snap.FPS > 0 {
		fpsVal = fmt.Sprintf("%.1f", snap.FPS)
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Top,
		statLabelStyle.Render("Position"),
		statValueStyle.Render(positionVal),
		statUnitStyle.Render(" / "+totalVal),
		lipgloss.NewStyle().Width(6).Render(""),
		statLabelStyle.Render("FPS"),
		statValueStyle.Render(fpsVal),
	)
	lines = append(lines, line1)

	line2 := lipgloss.JoinHorizontal(lipgloss.Top,
		statLabelStyle.Render("Speed"),
		statValueStyle.Render(formatSpeed(snap.Speed)),
		lipgloss.NewStyle().Width(12).Render(""),
		statLabelStyle.Render("Size"),
		statValueStyle.Render(formatSizeDisplay(snap.OutputBytes)),
	)
	lines = append(lines, line2)

	line3 := lipgloss.JoinHorizontal(lipgloss.Top,
		statLabelStyle.Render("Elapsed"),
		statValueStyle.Render(formatDuration(snap.Elapsed)),
	)
	lines = append(lines, line3)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) buildFilesSection() string {
	outputPath := ""
	if m.orch != nil {
		outputPath = m.orch.OutputPath()
	}

	maxPathLen := m.Width - 16
	if maxPathLen < 20 {
		maxPathLen = 60
	}

	line1 := fileLabelStyle.Render("Input") + filePathStyle.Render(truncatePath(m.request.Input, maxPathLen))
	line2 := fileLabelStyle.Render("Output") + filePathStyle.Render(truncatePath(outputPath, maxPathLen))

	return line1 + "\n" + line2
}

func (m Model) renderDoneView() string {
	var b strings.Builder

	res := m.result

	b.WriteString("\n")
	b.WriteString(successStyle.Render("  ✓ Compression Complete!") + "\n")

	var lines []string
	lines = append(lines,
		statLabelStyle.Render("Output")+filePathStyle.Render(res.Output))
	lines = append(lines,
		statLabelStyle.Render("Input")+statValueStyle.Render(fmt.Sprintf("%.2f MB", res.InputMB)))
	lines = append(lines,
		statLabelStyle.Render("Result")+statValueStyle.Render(fmt.Sprintf("%.2f MB", res.OutputMB)))

	if res.ReductionPercent >= 0 {
		lines = append(lines,
			statLabelStyle.Render("Saved")+successStyle.Render(fmt.Sprintf("%.2f%%", res.ReductionPercent)))
	} else {
		lines = append(lines,
			statLabelStyle.Render("Grew")+warningStyle.Render(fmt.Sprintf("%.2f%% larger than the original", -res.ReductionPercent)))
	}

	lines = append(lines,
		statLabelStyle.Render("Time")+statValueStyle.Render(formatDuration(res.Elapsed)))

	b.WriteString(statsBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))

	return b.String()
}

func (m Model) renderErrorView() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(errorStyle.Render("  ✗ Compression Failed") + "\n\n")

	errMsg := "unknown error"
	if m.Err != nil {
		errMsg = m.Err.Error()
	}

	errBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Padding(0, 2).
		Foreground(colorError).
		Render(errMsg)

	b.WriteString(errBox + "\n")

	if m.ShowLogs && m.LogViewport.TotalLineCount() > 0 {
		b.WriteString("\n")
		b.WriteString(sectionHeaderStyle.Render("  Encoder Output") + "\n")
		b.WriteString(logBoxStyle.Render(m.LogViewport.View()))
	}

	return b.String()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		return "—"
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen < 20 {
		return path[:maxLen-3] + "..."
	}
	half := (maxLen - 5) / 2
	return path[:half] + " ... " + path[len(path)-half:]
}
