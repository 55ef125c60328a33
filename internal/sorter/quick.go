package sorter

import (
	"math"
	"unsafe"
)

// QuickSort is a Lomuto-partition quicksort whose recursion is simulated
// with an explicit stack of pending ranges, exactly like MergeSort's
// split stack. The partition in progress is its own small state machine
// (lo/hi/pivot/i/j) rather than a single call that runs to completion,
// which is what lets Step suspend a partition after any single element
// comparison — the one design choice this package leans on hardest, since
// a partition over a large range is otherwise the one operation that
// can't be chopped into comparison-sized pieces any other way.
type QuickSort struct {
	base
	stack []Range

	active    bool
	lo, hi    int
	pivot     Element
	i, j      int
}

func (s *QuickSort) Name() string { return "Quick Sort" }

func (s *QuickSort) Reset(data Array) error {
	if !s.resetBase(data) {
		return ErrArraySizeExceeded
	}
	n := len(s.arr)
	s.stack = s.stack[:0]
	s.active = false
	if n > 1 {
		s.stack = append(s.stack, Range{Lo: 0, Hi: n})
	}
	s.bumpMemPeak(s.MemoryUsage())
	return nil
}

func (s *QuickSort) MemoryUsage() int64 {
	return int64(len(s.stack)) * int64(unsafe.Sizeof(Range{}))
}

// partitionStep performs one Lomuto comparison, or — once the scan
// cursor reaches the pivot — finalizes the partition by swapping the
// pivot into its sorted position and pushing the two resulting ranges.
func (s *QuickSort) partitionStep(res *StepResult) (consumedBudget bool) {
	if s.j < s.hi-1 {
		s.totalComparisons++
		res.ComparisonsUsed++
		before := s.totalMoves
		if s.arr[s.j] <= s.pivot {
			s.swap(s.i, s.j)
			s.i++
		}
		res.MovesMade += int(s.totalMoves - before)
		s.j++
		return true
	}
	before := s.totalMoves
	s.swap(s.i, s.hi-1)
	res.MovesMade += int(s.totalMoves - before)
	pIdx := s.i
	lo, hi := s.lo, s.hi
	s.active = false
	s.stack = append(s.stack, Range{Lo: pIdx + 1, Hi: hi})
	s.stack = append(s.stack, Range{Lo: lo, Hi: pIdx})
	s.bumpMemPeak(s.MemoryUsage())
	return false
}

func (s *QuickSort) Step(budget int) StepResult {
	var res StepResult
	if s.complete {
		return res
	}
	n := len(s.arr)
	for budget > 0 {
		if s.active {
			if s.partitionStep(&res) {
				budget--
			}
			continue
		}
		if len(s.stack) == 0 {
			s.finish()
			break
		}
		top := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if top.Hi-top.Lo <= 1 {
			continue
		}
		s.lo, s.hi = top.Lo, top.Hi
		s.pivot = s.arr[s.hi-1]
		s.i = s.lo
		s.j = s.lo
		s.active = true
	}
	res.Continued = !s.complete
	s.updateProgress(n)
	return res
}

func (s *QuickSort) updateProgress(n int) {
	if n <= 1 {
		s.ratchet(1)
		return
	}
	estimate := float64(n) * math.Log2(float64(n))
	if estimate <= 0 {
		estimate = 1
	}
	// Quicksort routinely spends more than n*log2(n) comparisons, so the
	// estimate is capped below 1.0; only finish reports full progress.
	s.ratchet(math.Min(float64(s.totalComparisons)/estimate, 0.95))
}

func (s *QuickSort) Telemetry() Telemetry {
	var hi []int
	var pivot *int
	if s.active {
		hi = []int{s.i, s.j}
		p := s.hi - 1
		pivot = &p
	}
	return Telemetry{
		TotalComparisons: s.totalComparisons,
		TotalMoves:       s.totalMoves,
		MemoryCurrent:    s.MemoryUsage(),
		MemoryPeak:       s.memPeak,
		Highlights:       hi,
		Markers:          Markers{Pivot: pivot},
		StatusText:       "partitioning",
		ProgressHint:     s.maxProgress,
	}
}
