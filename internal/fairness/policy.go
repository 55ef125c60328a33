// Package fairness implements the budget-allocation policies a race
// controller consults once per tick: pure functions from a snapshot of
// every participant's telemetry to a non-negative comparison budget for
// each of them.
package fairness

import "time"

// Snapshot is the read-only view of one participant a Policy allocates
// against. It must never be mutated by a Policy; policies that need
// memory across calls key their own state by Name instead.
type Snapshot struct {
	Name             string
	IsComplete       bool
	TotalComparisons uint64
	TotalMoves       uint64
	ProgressHint     float64
}

// Policy is a pure function from participant snapshots to per-participant
// budgets: output[i] must be 0 wherever snapshots[i].IsComplete, and
// positive for every other entry unless the caller explicitly configured
// a zero base budget. A Policy may carry learning state (Weighted's
// history, Adaptive's rate tracker, Walltime's speed estimates). Walltime's
// Allocate leaves its state unchanged; Adaptive, and Weighted with History
// enabled, update their state on every Allocate call, so two calls with
// identical snapshots can return different budgets.
type Policy interface {
	Allocate(snapshots []Snapshot) []int
	Name() string
}

// TimingRecorder is implemented by policies that need the host to report
// measured wall-clock time and operations completed per participant per
// tick, rather than deriving everything from the Snapshot alone. Walltime
// is the only policy in this package that implements it.
type TimingRecorder interface {
	RecordTiming(name string, elapsed time.Duration, opsPerformed int)
}

// activeIndices returns the indices of snapshots that are not complete.
func activeIndices(snapshots []Snapshot) []int {
	idx := make([]int, 0, len(snapshots))
	for i, s := range snapshots {
		if !s.IsComplete {
			idx = append(idx, i)
		}
	}
	return idx
}

// distributeInverse implements the shared inverse-weighting scheme used
// by Weighted and Adaptive: active participants with a lower score get a
// larger share of total, ties broken deterministically by index order
// because active and scores are iterated in a fixed order.
func distributeInverse(n int, active []int, scores []float64, total int) []int {
	budgets := make([]int, n)
	if len(active) == 0 {
		return budgets
	}
	if len(active) == 1 {
		budgets[active[0]] = total
		return budgets
	}
	maxScore := scores[0]
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	const epsilon = 0.01
	totalInverse := 0.0
	weights := make([]float64, len(scores))
	for i, s := range scores {
		w := maxScore - s + epsilon
		weights[i] = w
		totalInverse += w
	}
	if totalInverse == 0 {
		equal := total / len(active)
		for _, i := range active {
			budgets[i] = equal
		}
		return budgets
	}
	for k, i := range active {
		b := int(roundHalfAwayFromZero(float64(total) * weights[k] / totalInverse))
		if b < 1 {
			b = 1
		}
		budgets[i] = b
	}
	return budgets
}

func roundHalfAwayFromZero(v float64) float64 {
	if v < 0 {
		return -roundHalfAwayFromZero(-v)
	}
	return float64(int64(v + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	if v != v { // NaN
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
