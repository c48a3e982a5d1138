package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_EmptyPathDiscards(t *testing.T) {
	logger, cleanup, err := Setup("")
	if err != nil {
		t.Fatalf("Setup(\"\") error = %v", err)
	}
	defer cleanup()

	// Must not panic or touch the filesystem.
	logger.Info("discarded", "key", "value")
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, cleanup, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup(%q) error = %v", path, err)
	}

	logger.Info("encode started", "input", "movie.mp4")
	logger.Debug("progress", "seconds", 12.5)
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "encode started") {
		t.Errorf("log file missing info line, got:\n%s", content)
	}
	if !strings.Contains(content, "input=movie.mp4") {
		t.Errorf("log file missing attr, got:\n%s", content)
	}
	if !strings.Contains(content, "level=DEBUG") {
		t.Errorf("debug level not enabled, got:\n%s", content)
	}
}

func TestSetup_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	for i := 0; i < 2; i++ {
		logger, cleanup, err := Setup(path)
		if err != nil {
			t.Fatalf("Setup run %d error = %v", i, err)
		}
		logger.Info("run", "n", i)
		cleanup()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if got := strings.Count(string(data), "msg=run"); got != 2 {
		t.Errorf("expected 2 log lines across runs, found %d", got)
	}
}

func TestSetup_BadPathFails(t *testing.T) {
	_, _, err := Setup(filepath.Join(t.TempDir(), "missing", "run.log"))
	if err == nil {
		t.Fatal("expected error for unwritable log path")
	}
}
