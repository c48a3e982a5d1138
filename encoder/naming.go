package encoder

import (
	"path/filepath"
	"strings"
)

// OutputName derives the output file name from an input name: the final
// dot-delimited segment is dropped, the suffix is appended, and the fixed
// ".mp4" container extension follows. The last segment is dropped even
// when the name has no dot, so "movie" with suffix "_s" becomes "_s.mp4".
func OutputName(name, suffix string) string {
	segments := strings.Split(name, ".")
	base := strings.Join(segments[:len(segments)-1], ".")
	return base + suffix + ".mp4"
}

// OutputPath derives the full output path for an input path, keeping the
// output next to the input (same directory, renamed file).
func OutputPath(inputPath, suffix string) string {
	dir, name := filepath.Split(inputPath)
	return filepath.Join(dir, OutputName(name, suffix))
}
