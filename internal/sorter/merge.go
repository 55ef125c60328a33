package sorter

import (
	"math"
	"unsafe"
)

type mergeFrameKind int

const (
	frameSplit mergeFrameKind = iota
	frameMerge
)

// mergeFrame is one unit of a simulated mergesort recursion: either "split
// this range further" or "merge these two already-sorted halves". Driving
// the recursion through an explicit stack, rather than real Go call
// frames, is what lets MergeSort pause between any two frames.
type mergeFrame struct {
	kind     mergeFrameKind
	lo, mid, hi int
}

// MergeSort is a top-down merge sort whose recursion is simulated with an
// explicit work stack instead of the call stack, so Step can suspend it
// at any comparison boundary. Frames are pushed right-child-then-left-
// child so the left child is always popped and processed first, matching
// the order a recursive implementation would visit them in. A single
// scratch buffer, sized once in Reset, backs every merge; no frame
// allocates its own temporary storage.
type MergeSort struct {
	base
	scratch Array
	stack   []mergeFrame

	active      bool
	lo, mid, hi int
	i, j, k     int
}

func (s *MergeSort) Name() string { return "Merge Sort" }

func (s *MergeSort) Reset(data Array) error {
	if !s.resetBase(data) {
		return ErrArraySizeExceeded
	}
	n := len(s.arr)
	s.scratch = make(Array, n)
	s.stack = s.stack[:0]
	s.active = false
	if n > 1 {
		s.stack = append(s.stack, mergeFrame{kind: frameSplit, lo: 0, hi: n})
	}
	s.bumpMemPeak(s.MemoryUsage())
	return nil
}

// MemoryUsage reports the scratch buffer plus the pending work stack,
// per spec §4.1.4: n*sizeof(Element) + stack_depth*sizeof(Frame).
func (s *MergeSort) MemoryUsage() int64 {
	return int64(len(s.scratch))*int64(unsafe.Sizeof(Element(0))) +
		int64(len(s.stack))*int64(unsafe.Sizeof(mergeFrame{}))
}

// mergeStep performs one unit of work within the active merge: either one
// comparison-driven write, or (once a side is exhausted) a comparison-free
// bulk copy of whatever remains on the other side.
func (s *MergeSort) mergeStep(res *StepResult) (consumedBudget bool) {
	before := s.totalMoves
	switch {
	case s.i < s.mid && s.j < s.hi:
		s.totalComparisons++
		res.ComparisonsUsed++
		consumedBudget = true
		if s.scratch[s.i] <= s.scratch[s.j] {
			s.write(s.k, s.scratch[s.i])
			s.i++
		} else {
			s.write(s.k, s.scratch[s.j])
			s.j++
		}
		s.k++
	case s.i < s.mid:
		n := s.mid - s.i
		copy(s.arr[s.k:s.k+n], s.scratch[s.i:s.mid])
		s.totalMoves += uint64(n)
		s.i = s.mid
		s.k += n
		s.active = false
	case s.j < s.hi:
		n := s.hi - s.j
		copy(s.arr[s.k:s.k+n], s.scratch[s.j:s.hi])
		s.totalMoves += uint64(n)
		s.j = s.hi
		s.k += n
		s.active = false
	default:
		s.active = false
	}
	res.MovesMade += int(s.totalMoves - before)
	return consumedBudget
}

func (s *MergeSort) Step(budget int) StepResult {
	var res StepResult
	if s.complete {
		return res
	}
	n := len(s.arr)
	for budget > 0 {
		if s.active {
			if s.mergeStep(&res) {
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
		if top.kind == frameSplit {
			if top.hi-top.lo <= 1 {
				continue
			}
			mid := top.lo + (top.hi-top.lo)/2
			s.stack = append(s.stack, mergeFrame{frameMerge, top.lo, mid, top.hi})
			s.stack = append(s.stack, mergeFrame{frameSplit, mid, 0, top.hi})
			s.stack = append(s.stack, mergeFrame{frameSplit, top.lo, 0, mid})
			s.bumpMemPeak(s.MemoryUsage())
			continue
		}
		copy(s.scratch[top.lo:top.hi], s.arr[top.lo:top.hi])
		s.lo, s.mid, s.hi = top.lo, top.mid, top.hi
		s.i, s.j, s.k = top.lo, top.mid, top.lo
		s.active = true
	}
	res.Continued = !s.complete
	s.updateProgress(n)
	return res
}

func (s *MergeSort) updateProgress(n int) {
	if n <= 1 {
		s.ratchet(1)
		return
	}
	estimate := float64(n) * math.Log2(float64(n))
	if estimate <= 0 {
		estimate = 1
	}
	s.ratchet(float64(s.totalComparisons) / estimate)
}

func (s *MergeSort) Telemetry() Telemetry {
	var hi []int
	var runs []Range
	if s.active {
		hi = []int{s.i, s.j}
		runs = []Range{{Lo: s.lo, Hi: s.mid}, {Lo: s.mid, Hi: s.hi}}
	}
	return Telemetry{
		TotalComparisons: s.totalComparisons,
		TotalMoves:       s.totalMoves,
		MemoryCurrent:    s.MemoryUsage(),
		MemoryPeak:       s.memPeak,
		Highlights:       hi,
		Markers:          Markers{MergeRuns: runs},
		StatusText:       "merging",
		ProgressHint:     s.maxProgress,
	}
}
