// Package memtrack accounts for memory allocated while a graph is materialized.
//
// A [Tracker] is handed to the loader through the load configuration. The
// loader reports every array it allocates for the in-memory graph, so callers
// can inspect how much memory a load consumed or enforce their own budgets.
//
// Use [Empty] when no accounting is needed; it discards every report.
//
//	t := memtrack.New()
//	t.Add(memtrack.SizeOfFloat64Array(1024))
//	fmt.Println(memtrack.Human(t.Tracked())) // "8.0 KiB"
package memtrack

import (
	"fmt"
	"sync/atomic"
)

// Size constants for the element types the loader allocates.
const (
	BytesPerInt     = 8
	BytesPerInt64   = 8
	BytesPerFloat64 = 8
	BytesPerPointer = 8

	// BytesArrayHeader approximates the slice header overhead.
	BytesArrayHeader = 24
)

// Tracker receives allocation reports.
// Implementations must be safe for concurrent use since batches report in parallel.
type Tracker interface {
	// Add records bytes newly allocated.
	Add(bytes int64)
	// Remove records bytes released.
	Remove(bytes int64)
	// Tracked returns the current balance in bytes.
	Tracked() int64
}

type emptyTracker struct{}

func (emptyTracker) Add(int64)      {}
func (emptyTracker) Remove(int64)   {}
func (emptyTracker) Tracked() int64 { return 0 }

// Empty is a Tracker that records nothing.
var Empty Tracker = emptyTracker{}

// IsEmpty reports whether t discards reports (nil or [Empty]).
func IsEmpty(t Tracker) bool {
	if t == nil {
		return true
	}
	_, ok := t.(emptyTracker)
	return ok
}

// AtomicTracker is a Tracker backed by an atomic counter.
type AtomicTracker struct {
	bytes atomic.Int64
}

// New creates an AtomicTracker with a zero balance.
func New() *AtomicTracker {
	return &AtomicTracker{}
}

// Add records bytes newly allocated.
func (t *AtomicTracker) Add(bytes int64) { t.bytes.Add(bytes) }

// Remove records bytes released.
func (t *AtomicTracker) Remove(bytes int64) { t.bytes.Add(-bytes) }

// Tracked returns the current balance in bytes.
func (t *AtomicTracker) Tracked() int64 { return t.bytes.Load() }

// Ensure AtomicTracker implements Tracker.
var _ Tracker = (*AtomicTracker)(nil)

// SizeOfFloat64Array returns the bytes needed for n float64 values.
func SizeOfFloat64Array(n int) int64 {
	return BytesArrayHeader + int64(n)*BytesPerFloat64
}

// SizeOfInt64Array returns the bytes needed for n int64 values.
func SizeOfInt64Array(n int) int64 {
	return BytesArrayHeader + int64(n)*BytesPerInt64
}

// SizeOfIntArray returns the bytes needed for n int values.
func SizeOfIntArray(n int) int64 {
	return BytesArrayHeader + int64(n)*BytesPerInt
}

// Human formats a byte count with binary units (e.g. "1.5 MiB").
func Human(bytes int64) string {
	const unit = 1024
	if bytes < unit && bytes > -unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit || n <= -unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
