package sorter

import "errors"

// MaxArraySize is the largest Array the core accepts in Reset, per the
// domain precondition in spec §7.2. It is not a performance tuning knob;
// callers that need to stay within an interactive UI's own [10, 1000]
// range enforce that restriction themselves, one layer up.
const MaxArraySize = 1 << 20

// ErrArraySizeExceeded is returned by Reset when the supplied data exceeds
// MaxArraySize. The Sorter's previous state is left untouched.
var ErrArraySizeExceeded = errors.New("sorter: array size exceeds maximum")

// Sorter is a resumable, in-place sorting algorithm over int32 elements.
// Every method is synchronous and side-effect free except Step and Reset.
// Implementations never panic, never log, and never perform I/O; the only
// failure mode exposed to a caller is the typed Reset precondition error.
type Sorter interface {
	// Step advances the sort by at most budget key comparisons and returns
	// what happened. Calling Step on a complete Sorter is a no-op that
	// returns a zero StepResult with Continued == false.
	Step(budget int) StepResult

	// IsComplete reports whether the Array is fully sorted.
	IsComplete() bool

	// Telemetry returns a snapshot of the Sorter's current observable
	// state. Calling it does not mutate anything.
	Telemetry() Telemetry

	// Reset reinitializes the Sorter with a private clone of data,
	// discarding all prior progress. It rejects arrays larger than
	// MaxArraySize without mutating the Sorter's existing state.
	Reset(data Array) error

	// Name returns the Sorter's stable, human-readable identifier.
	Name() string

	// Array returns a read-only snapshot of the Sorter's current Array,
	// safe for a renderer to hold onto without aliasing internal state.
	Array() Array

	// MemoryUsage reports the auxiliary bytes currently held beyond the
	// Array itself (recursion/merge/stack buffers). It never includes the
	// Array's own storage.
	MemoryUsage() int64
}

// base holds the state and bookkeeping common to every algorithm: the
// owned Array, cumulative counters, the completion flag, and the progress
// ratchet described in spec §9 ("Progress ratchet"). Each algorithm embeds
// base and adds only the fields its own resumption state needs, the way
// the teacher's FibCalculator decorates a bare coreCalculator with the
// cross-cutting concerns every algorithm shares.
type base struct {
	arr              Array
	totalComparisons uint64
	totalMoves       uint64
	complete         bool
	maxProgress      float64
	memPeak          int64
}

// resetBase installs a fresh clone of data and zeros every counter. It
// returns false when data exceeds MaxArraySize, leaving the receiver
// completely untouched so the caller's Reset can surface the typed error
// without discarding prior state.
func (b *base) resetBase(data Array) bool {
	if len(data) > MaxArraySize {
		return false
	}
	b.arr = data.Clone()
	b.totalComparisons = 0
	b.totalMoves = 0
	b.maxProgress = 0
	b.memPeak = 0
	b.complete = len(b.arr) <= 1
	if b.complete {
		b.maxProgress = 1
	}
	return true
}

// ratchet enforces invariant I3/P5: progress_hint never regresses.
func (b *base) ratchet(p float64) float64 {
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	if p > b.maxProgress {
		b.maxProgress = p
	}
	return b.maxProgress
}

// finish marks the Sorter complete and saturates the progress ratchet,
// satisfying invariant I3 (progress_hint == 1.0 iff is_complete).
func (b *base) finish() {
	b.complete = true
	b.maxProgress = 1
}

func (b *base) IsComplete() bool { return b.complete }

// bumpMemPeak records a new high-water mark in auxiliary memory usage.
// Callers invoke this at every point their auxiliary storage (a scratch
// buffer or a work stack) grows, so memPeak always reflects the most
// bytes ever held rather than just the current amount — spec §3.1's
// "ever held" definition of memory_peak.
func (b *base) bumpMemPeak(current int64) {
	if current > b.memPeak {
		b.memPeak = current
	}
}

func (b *base) Array() Array { return b.arr.Clone() }

// swap exchanges two elements and charges one move, the convention this
// package uses uniformly: a whole swap counts as exactly one move, and so
// does a single assigned write. See DESIGN.md for why this convention was
// chosen over counting each half of a swap separately.
func (b *base) swap(i, j int) {
	if i == j {
		return
	}
	b.arr[i], b.arr[j] = b.arr[j], b.arr[i]
	b.totalMoves++
}

// write assigns a single value and charges one move.
func (b *base) write(i int, v Element) {
	b.arr[i] = v
	b.totalMoves++
}

// compareLE charges one comparison and reports arr[i] <= arr[j].
func (b *base) compareLE(i, j int) bool {
	b.totalComparisons++
	return b.arr[i] <= b.arr[j]
}

// compareGT charges one comparison and reports arr[i] > arr[j].
func (b *base) compareGT(i, j int) bool {
	b.totalComparisons++
	return b.arr[i] > b.arr[j]
}
