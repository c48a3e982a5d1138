// Package config holds the fixed encode settings and the runtime
// configuration read from the environment.
package config

import "os"

// Settings holds the encoder invocation parameters. The preset is fixed on
// purpose: every run produces the same kind of MP4, so results stay
// comparable across files and machines.
type Settings struct {
	// VideoCodec is the ffmpeg video encoder name
	VideoCodec string
	// CRF is the Constant Rate Factor (0-51, lower = better quality)
	// 28 trades visible-but-acceptable quality loss for a large size win
	CRF int
	// SpeedPreset controls encoding speed vs compression efficiency
	SpeedPreset string
	// AudioCodec is the ffmpeg audio encoder name
	AudioCodec string
	// AudioBitrate is the target audio bitrate in ffmpeg "-b:a" syntax
	AudioBitrate string
	// FastStart moves the moov atom to the front of the MP4 so playback
	// can begin before the whole file is available
	FastStart bool
}

// EncodeSettings returns the compression preset: H.264 at CRF 28 with
// 128k AAC audio in an MP4 container.
func EncodeSettings() Settings {
	return Settings{
		VideoCodec:   "libx264",
		CRF:          28,
		SpeedPreset:  "medium",
		AudioCodec:   "aac",
		AudioBitrate: "128k",
		FastStart:    true,
	}
}

// Environment variables read by LoadRuntime. A .env file in the working
// directory is honored when the caller loads it before calling LoadRuntime.
const (
	EnvFFmpeg  = "VIDSQUEEZE_FFMPEG"
	EnvFFprobe = "VIDSQUEEZE_FFPROBE"
	EnvLog     = "VIDSQUEEZE_LOG"
	EnvDir     = "VIDSQUEEZE_DIR"
	EnvSuffix  = "VIDSQUEEZE_SUFFIX"
)

// Runtime holds per-machine settings. Every field has a working default, so
// an empty environment is fine.
type Runtime struct {
	// FFmpegBin names the ffmpeg binary. Overridable for systems where the
	// tool lives outside PATH or carries a version suffix.
	FFmpegBin string
	// FFprobeBin names the ffprobe binary
	FFprobeBin string
	// LogPath, when non-empty, enables the debug log file sink
	LogPath string
	// ScanDir is the directory scanned for video candidates
	ScanDir string
	// DefaultSuffix prefills the output-suffix prompt
	DefaultSuffix string
}

// LoadRuntime builds the runtime configuration from the environment,
// falling back to defaults for anything unset.
func LoadRuntime() Runtime {
	return Runtime{
		FFmpegBin:     envOr(EnvFFmpeg, "ffmpeg"),
		FFprobeBin:    envOr(EnvFFprobe, "ffprobe"),
		LogPath:       os.Getenv(EnvLog),
		ScanDir:       envOr(EnvDir, "."),
		DefaultSuffix: envOr(EnvSuffix, "_compressed"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
