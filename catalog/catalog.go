// Package catalog lists the video files a run can pick from.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
)

// Video file extensions eligible for compression (lowercase, with leading
// dot). Matching is case-sensitive: an uppercase ".MP4" is skipped.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".m4v":  true,
	".webm": true,
}

// Extensions returns the recognized video extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// File is one compression candidate.
type File struct {
	// Name is the bare file name, no directory component.
	Name string
	// Size is the on-disk size in bytes.
	Size int64
}

// ListVideoFiles returns the video files directly inside dir, in the
// lexicographic order os.ReadDir guarantees. Subdirectories are not
// descended into. An empty result is not an error.
func ListVideoFiles(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !videoExtensions[filepath.Ext(entry.Name())] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Entry vanished between the directory read and the stat.
			continue
		}
		files = append(files, File{Name: entry.Name(), Size: info.Size()})
	}
	return files, nil
}
