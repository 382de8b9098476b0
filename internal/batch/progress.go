package batch

import (
	"context"
	"log/slog"
	"sync"
)

// ProgressSink receives progress and completion events from a dispatcher.
// All methods are invoked from the dispatcher's collector goroutine, never
// concurrently with each other; implementations that feed a UI are
// responsible for marshaling onto their own thread.
type ProgressSink interface {
	// OnStart is called once, before the first item is dispatched.
	OnStart(total int)

	// OnProgress is called once per finished item, in arrival order.
	OnProgress(ev ProgressEvent)

	// OnComplete is called once, after every item has a result.
	OnComplete(s Summary)
}

// NoopSink discards all events. It is the default when no sink is supplied.
type NoopSink struct{}

func (NoopSink) OnStart(int)              {}
func (NoopSink) OnProgress(ProgressEvent) {}
func (NoopSink) OnComplete(Summary)       {}

// LogSink reports progress through slog, logging every Interval items and
// always the final one.
type LogSink struct {
	Logger   *slog.Logger
	Level    slog.Level
	Interval int // log every N items; <=0 means every item

	lastLogged int
}

// NewLogSink creates a log-based sink. A nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{Logger: logger, Level: level, Interval: 10}
}

func (l *LogSink) OnStart(total int) {
	l.lastLogged = 0
	l.Logger.Log(context.Background(), l.Level, "batch started", "total", total)
}

func (l *LogSink) OnProgress(ev ProgressEvent) {
	if l.Interval > 1 && ev.Processed-l.lastLogged < l.Interval && ev.Processed < ev.Total {
		return
	}
	l.lastLogged = ev.Processed
	l.Logger.Log(context.Background(), l.Level, "batch progress",
		"processed", ev.Processed,
		"total", ev.Total,
		"file", ev.Path,
	)
}

func (l *LogSink) OnComplete(s Summary) {
	l.Logger.Log(context.Background(), l.Level, "batch finished",
		"total", s.Total,
		"completed", s.Completed,
		"failed", s.Failed,
		"duration", s.Duration,
		"workers", s.Workers,
	)
	for _, f := range s.Failures {
		l.Logger.Log(context.Background(), slog.LevelWarn, "file failed",
			"file", f.Path, "stage", f.Kind.String(), "error", f.Message())
	}
}

// MultiSink fans events out to several sinks.
type MultiSink struct {
	sinks []ProgressSink
}

// NewMultiSink combines sinks into one.
func NewMultiSink(sinks ...ProgressSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Add appends another sink.
func (m *MultiSink) Add(sink ProgressSink) {
	m.sinks = append(m.sinks, sink)
}

func (m *MultiSink) OnStart(total int) {
	for _, s := range m.sinks {
		s.OnStart(total)
	}
}

func (m *MultiSink) OnProgress(ev ProgressEvent) {
	for _, s := range m.sinks {
		s.OnProgress(ev)
	}
}

func (m *MultiSink) OnComplete(sum Summary) {
	for _, s := range m.sinks {
		s.OnComplete(sum)
	}
}

// RecorderSink captures every event it sees; used by tests and by callers
// that want to inspect the event stream after the run.
type RecorderSink struct {
	mu      sync.Mutex
	Started []int
	Events  []ProgressEvent
	Summary *Summary
}

func (r *RecorderSink) OnStart(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Started = append(r.Started, total)
}

func (r *RecorderSink) OnProgress(ev ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, ev)
}

func (r *RecorderSink) OnComplete(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summary = &s
}
