package encoder

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"vidsqueeze/config"
)

func TestCheckDeps(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries assume a POSIX PATH")
	}

	bin := t.TempDir()
	t.Setenv("PATH", bin)

	rt := config.Runtime{FFmpegBin: "ffmpeg", FFprobeBin: "ffprobe"}

	if err := CheckDeps(rt); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("empty PATH: err = %v, want ErrFFmpegNotFound", err)
	}

	stubBinary(t, bin, "ffmpeg")
	if err := CheckDeps(rt); !errors.Is(err, ErrFFprobeNotFound) {
		t.Errorf("ffmpeg only: err = %v, want ErrFFprobeNotFound", err)
	}

	stubBinary(t, bin, "ffprobe")
	if err := CheckDeps(rt); err != nil {
		t.Errorf("both present: err = %v, want nil", err)
	}
}

func TestCheckDeps_CustomBinaryNames(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries assume a POSIX PATH")
	}

	bin := t.TempDir()
	t.Setenv("PATH", bin)
	stubBinary(t, bin, "ffmpeg6")
	stubBinary(t, bin, "ffprobe6")

	rt := config.Runtime{FFmpegBin: "ffmpeg6", FFprobeBin: "ffprobe6"}
	if err := CheckDeps(rt); err != nil {
		t.Errorf("CheckDeps = %v, want nil", err)
	}
}

func stubBinary(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("stub %s: %v", path, err)
	}
}
