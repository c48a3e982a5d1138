package encoder

import (
	"fmt"
	"os"
)

const bytesPerMB = 1024 * 1024

// SizeStats compares input and output sizes after an encode.
type SizeStats struct {
	InputMB          float64
	OutputMB         float64
	ReductionPercent float64
}

// StatsError reports a failed size read after an otherwise successful
// encode. The output file exists at this point, so the caller can still
// point the user at it.
type StatsError struct {
	Path string
	Err  error
}

func (e *StatsError) Error() string {
	return fmt.Sprintf("reading size of %s: %v", e.Path, e.Err)
}

func (e *StatsError) Unwrap() error { return e.Err }

// Stats reads the byte sizes of both files and computes megabyte values
// and the percentage saved. A zero-byte input yields 0% rather than NaN.
func Stats(inputPath, outputPath string) (SizeStats, error) {
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return SizeStats{}, &StatsError{Path: inputPath, Err: err}
	}
	outputInfo, err := os.Stat(outputPath)
	if err != nil {
		return SizeStats{}, &StatsError{Path: outputPath, Err: err}
	}

	inBytes := inputInfo.Size()
	outBytes := outputInfo.Size()

	stats := SizeStats{
		InputMB:  float64(inBytes) / bytesPerMB,
		OutputMB: float64(outBytes) / bytesPerMB,
	}
	if inBytes > 0 {
		stats.ReductionPercent = float64(inBytes-outBytes) / float64(inBytes) * 100
	}
	return stats, nil
}
