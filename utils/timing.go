package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TimingStats holds wall-clock time spent in each trainer phase.
type TimingStats struct {
	TotalTime     time.Duration
	DataGenTime   time.Duration
	ModelInitTime time.Duration
	TrainTime     time.Duration
	PredictTime   time.Duration
}

// PrintTimingStats prints a per-phase timing breakdown for a run of the given
// epoch count. Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats, epochs int) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	if epochs > 0 {
		fmt.Fprintf(Output, "Average time per epoch: %v\n", stats.TrainTime/time.Duration(epochs))
	}
	fmt.Fprintln(Output, "\nBreakdown by phase:")
	fmt.Fprintf(Output, "  Data generation: %v (%.1f%%)\n", stats.DataGenTime, percentOf(stats.DataGenTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Model initialization: %v (%.1f%%)\n", stats.ModelInitTime, percentOf(stats.ModelInitTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Training: %v (%.1f%%)\n", stats.TrainTime, percentOf(stats.TrainTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Prediction: %v (%.1f%%)\n", stats.PredictTime, percentOf(stats.PredictTime, stats.TotalTime))
}

func percentOf(part, total time.Duration) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
