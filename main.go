package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"vidsqueeze/catalog"
	"vidsqueeze/config"
	"vidsqueeze/encoder"
	"vidsqueeze/logging"
	"vidsqueeze/tui"
)

// version is shown by -version; override at build time with -ldflags "-X main.version=...".
var version = "0.1.0-dev"

// Exit codes reported to the shell.
const (
	exitOK        = 0
	exitError     = 1
	exitNoEncoder = 2
	exitNoVideos  = 3
	exitEncode    = 4
	exitStats     = 5
	exitAborted   = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	dirFlag := flag.String("dir", "", "Directory to scan for videos (default: current directory)")
	suffixFlag := flag.String("suffix", "", "Output filename suffix; skips the interactive prompt")
	logFlag := flag.String("log", "", "Append logs to this file (default: discard)")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	// Custom usage
	flag.Usage = func() {
		fmt.Println("Usage: vidsqueeze [options]")
		fmt.Println()
		fmt.Println("Interactively compresses a video with FFmpeg (H.264, CRF 28).")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  vidsqueeze                      # Pick from videos in the current directory")
		fmt.Println("  vidsqueeze -dir ~/Videos        # Scan a different directory")
		fmt.Println("  vidsqueeze -suffix _small       # Skip the suffix prompt")
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println("vidsqueeze " + version)
		return exitOK
	}

	// Optional .env; environment variables may also be set directly.
	_ = godotenv.Load()

	rt := config.LoadRuntime()
	if *dirFlag != "" {
		rt.ScanDir = *dirFlag
	}
	if *logFlag != "" {
		rt.LogPath = *logFlag
	}

	logger, cleanup, err := logging.Setup(rt.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	defer cleanup()
	logger = logger.With("run", uuid.NewString(), "version", version)

	// The picker and progress views need a real terminal.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: vidsqueeze is interactive and needs a terminal")
		return exitError
	}

	if err := encoder.CheckDeps(rt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Install FFmpeg (which includes ffprobe) and make sure it is on your PATH.")
		logger.Error("dependency check failed", "error", err)
		return exitNoEncoder
	}

	files, err := catalog.ListVideoFiles(rt.ScanDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot scan %s: %v\n", rt.ScanDir, err)
		logger.Error("scan failed", "dir", rt.ScanDir, "error", err)
		return exitError
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No video files found in %s\n", rt.ScanDir)
		fmt.Fprintf(os.Stderr, "Supported extensions: %s\n", strings.Join(catalog.Extensions(), ", "))
		return exitNoVideos
	}
	logger.Info("scan complete", "dir", rt.ScanDir, "videos", len(files))

	model := tui.NewModel(files, rt, config.EncodeSettings(), *suffixFlag, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	m, ok := final.(tui.Model)
	if !ok {
		return exitError
	}

	switch {
	case m.Aborted:
		logger.Info("aborted by user")
	case m.Err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", m.Err)
		logger.Error("run failed", "error", m.Err)
	default:
		if res, ok := m.Result(); ok {
			fmt.Printf("Compressed %s -> %s\n", res.Input, res.Output)
			fmt.Printf("%.2f MB -> %.2f MB (%.2f%% smaller) in %s\n",
				res.InputMB, res.OutputMB, res.ReductionPercent, res.Elapsed.Round(time.Second))
		}
	}
	return exitCodeFor(m)
}

// exitCodeFor maps the UI's terminal outcome to the process exit code.
// A user abort mid-encode wins over whatever error the dying process
// reported.
func exitCodeFor(m tui.Model) int {
	if m.Aborted {
		return exitAborted
	}
	if m.Err == nil {
		return exitOK
	}

	var encodeErr *encoder.EncodeError
	if errors.As(m.Err, &encodeErr) {
		return exitEncode
	}
	var statsErr *encoder.StatsError
	if errors.As(m.Err, &statsErr) {
		return exitStats
	}
	return exitError
}
