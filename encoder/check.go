package encoder

import (
	"errors"
	"os/exec"

	"vidsqueeze/config"
)

// Sentinel errors returned by CheckDeps when an external tool is missing.
var (
	ErrFFmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFFprobeNotFound = errors.New("ffprobe not found on PATH")
)

// CheckDeps verifies the external binaries resolve before any work starts.
// Absence is fatal for the whole run, so this runs ahead of the directory
// scan and the interactive prompts.
func CheckDeps(rt config.Runtime) error {
	if _, err := exec.LookPath(rt.FFmpegBin); err != nil {
		return ErrFFmpegNotFound
	}
	if _, err := exec.LookPath(rt.FFprobeBin); err != nil {
		return ErrFFprobeNotFound
	}
	return nil
}
