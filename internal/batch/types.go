package batch

import (
	"fmt"
	"time"
)

// ErrorKind classifies where in the per-file pipeline a failure occurred.
type ErrorKind int

const (
	// DecodeError covers missing, unreadable, corrupt or unsupported inputs.
	DecodeError ErrorKind = iota
	// TransformError covers a malformed pixel buffer surfacing during the
	// shift. Unreachable with a correct decoder, but caught all the same.
	TransformError
	// EncodeError covers unwritable outputs and unsupported re-encodes.
	EncodeError
)

func (k ErrorKind) String() string {
	switch k {
	case DecodeError:
		return "decode"
	case TransformError:
		return "transform"
	case EncodeError:
		return "encode"
	default:
		return "unknown"
	}
}

// FileError is a per-file failure carrying the offending path and the stage
// that failed. It never aborts the batch.
type FileError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Message returns the human-readable failure description.
func (e *FileError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// WorkItem is the unit of dispatch: everything a worker needs to process one
// file. It carries no reference back to the run, so workers stay isolated.
type WorkItem struct {
	Path      string
	Angle     float64
	OutputDir string
}

// WorkResult is the outcome of one WorkItem. A nil Err means success.
// Exactly one WorkResult is produced per WorkItem.
type WorkResult struct {
	Path string
	Err  *FileError
}

// OK reports whether the item succeeded.
func (r WorkResult) OK() bool { return r.Err == nil }

// ProgressEvent is emitted once per finished item, in arrival order.
// Processed counts successes and failures alike; it is strictly increasing
// within a run and reaches Total exactly once.
type ProgressEvent struct {
	Processed int    // items finished so far, success or failure
	Total     int    // items in the run
	Path      string // the item that just finished
}

// Summary reports the final state of a run. Every input contributes to
// exactly one of Completed or Failed.
type Summary struct {
	Total     int
	Completed int
	Failed    int
	Failures  []*FileError
	Duration  time.Duration
	Workers   int
}
