package batch

import (
	"fmt"
	"path/filepath"
)

// Run is one batch invocation: the input list, the rotation angle applied
// uniformly to every input, and the output directory. Counters accumulate as
// the dispatcher collects results; only the dispatcher's collector mutates
// them, so completed+failed never exceeds total and equals it exactly once,
// when the run ends.
type Run struct {
	inputs    []string
	seen      map[string]struct{}
	Angle     float64
	OutputDir string

	total     int
	completed int
	failed    int
}

// NewRun creates an empty run for the given angle and output directory.
func NewRun(angle float64, outputDir string) *Run {
	return &Run{
		seen:      make(map[string]struct{}),
		Angle:     angle,
		OutputDir: outputDir,
	}
}

// Add appends an input path to the run. Duplicates (by cleaned path) are
// rejected, mirroring the dedup the input picker performs before a run
// starts. Add must not be called once the run has been dispatched.
func (r *Run) Add(path string) error {
	key := filepath.Clean(path)
	if _, dup := r.seen[key]; dup {
		return fmt.Errorf("duplicate input: %s", path)
	}
	r.seen[key] = struct{}{}
	r.inputs = append(r.inputs, path)
	r.total = len(r.inputs)
	return nil
}

// AddAll adds every path, skipping duplicates, and returns how many were
// actually added.
func (r *Run) AddAll(paths []string) int {
	added := 0
	for _, p := range paths {
		if err := r.Add(p); err == nil {
			added++
		}
	}
	return added
}

// Inputs returns the input paths in insertion order.
func (r *Run) Inputs() []string { return r.inputs }

// Total returns the number of inputs in the run.
func (r *Run) Total() int { return r.total }

// Completed returns the number of successfully processed inputs so far.
func (r *Run) Completed() int { return r.completed }

// Failed returns the number of failed inputs so far.
func (r *Run) Failed() int { return r.failed }

// items derives one WorkItem per input.
func (r *Run) items() []WorkItem {
	items := make([]WorkItem, len(r.inputs))
	for i, p := range r.inputs {
		items[i] = WorkItem{Path: p, Angle: r.Angle, OutputDir: r.OutputDir}
	}
	return items
}

// record applies one result to the counters. Called only from the
// dispatcher's collector goroutine.
func (r *Run) record(res WorkResult) {
	if res.OK() {
		r.completed++
	} else {
		r.failed++
	}
}
