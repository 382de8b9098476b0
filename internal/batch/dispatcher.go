package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Dispatcher fans WorkItems out to a bounded pool of workers and streams
// progress to a sink as results arrive. Workers pull the next unclaimed item
// as soon as they finish one, so uneven file sizes balance themselves.
type Dispatcher struct {
	// Workers is the degree of parallelism. Zero or negative means
	// runtime.NumCPU().
	Workers int
}

// NewDispatcher returns a dispatcher with the given worker count
// (0 = number of CPUs).
func NewDispatcher(workers int) *Dispatcher {
	return &Dispatcher{Workers: workers}
}

// Run processes every input of the run exactly once and returns the final
// summary. Per-file failures never abort the batch; the only errors Run
// itself returns are structural precondition violations, detected before any
// worker starts. Results arrive in completion order, not submission order;
// the single collector loop below is the one place counters are touched and
// progress is emitted, so sinks never observe a torn state.
//
// There is no cancellation: once Run starts, every queued item is attempted.
func (d *Dispatcher) Run(run *Run, sink ProgressSink) (*Summary, error) {
	if err := checkPreconditions(run); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NoopSink{}
	}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	items := run.items()
	total := len(items)
	start := time.Now()
	sink.OnStart(total)

	jobs := make(chan WorkItem, total)
	results := make(chan WorkResult, total)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- processItem(item)
			}
		}()
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &Summary{Total: total, Workers: workers}
	processed := 0
	for res := range results {
		run.record(res)
		processed++
		if res.OK() {
			summary.Completed++
		} else {
			summary.Failed++
			summary.Failures = append(summary.Failures, res.Err)
		}
		sink.OnProgress(ProgressEvent{Processed: processed, Total: total, Path: res.Path})
	}
	summary.Duration = time.Since(start)

	sink.OnComplete(*summary)
	return summary, nil
}

// checkPreconditions rejects structurally invalid runs before fan-out: an
// empty input list or a missing/unwritable output directory.
func checkPreconditions(run *Run) error {
	if run == nil || len(run.Inputs()) == 0 {
		return errors.New("batch has no inputs")
	}

	info, err := os.Stat(run.OutputDir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", run.OutputDir)
	}
	if err := checkWritable(run.OutputDir); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", run.OutputDir, err)
	}
	return nil
}

// checkWritable probes the directory with a throwaway file. Stat permissions
// alone lie on some filesystems (ACLs, read-only mounts).
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".panoroll-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(filepath.Clean(name))
}
