package sorter

// heapPhase identifies which half of heap sort is in progress.
type heapPhase int

const (
	heapBuilding heapPhase = iota
	heapExtracting
)

// HeapSort is the classic two-phase algorithm: build a max-heap over the
// whole array, then repeatedly swap the root (the maximum) to the end of
// the shrinking heap and sift it back down. Both phases bottom out in the
// same sift-down primitive, which this type runs as its own small state
// machine (siftI/siftLargest/siftStage) so a sift can be paused after
// either child comparison and resumed on the next Step call.
type HeapSort struct {
	base
	phase      heapPhase
	buildIdx   int
	extractEnd int
	heapSize   int
	active     bool
	siftI      int
	siftLargest int
	siftStage  int
}

func (s *HeapSort) Name() string { return "Heap Sort" }

func (s *HeapSort) Reset(data Array) error {
	if !s.resetBase(data) {
		return ErrArraySizeExceeded
	}
	n := len(s.arr)
	s.phase = heapBuilding
	s.buildIdx = n/2 - 1
	s.heapSize = n
	s.extractEnd = n - 1
	s.active = false
	return nil
}

func (s *HeapSort) MemoryUsage() int64 { return 0 }

// siftStep performs exactly one comparison-stage of the sift-down rooted
// at siftI. It reports whether a comparison was actually charged, so the
// caller's budget loop makes forward progress even through stages that
// have no child to compare against.
func (s *HeapSort) siftStep(res *StepResult) (consumedBudget bool) {
	switch s.siftStage {
	case 0:
		left := 2*s.siftI + 1
		if left < s.heapSize {
			if s.compareGT(left, s.siftLargest) {
				s.siftLargest = left
			}
			res.ComparisonsUsed++
			consumedBudget = true
		}
		s.siftStage = 1
	case 1:
		right := 2*s.siftI + 2
		if right < s.heapSize {
			if s.compareGT(right, s.siftLargest) {
				s.siftLargest = right
			}
			res.ComparisonsUsed++
			consumedBudget = true
		}
		s.siftStage = 2
	default:
		if s.siftLargest != s.siftI {
			before := s.totalMoves
			s.swap(s.siftI, s.siftLargest)
			res.MovesMade += int(s.totalMoves - before)
			s.siftI = s.siftLargest
			s.siftStage = 0
		} else {
			s.active = false
		}
	}
	return consumedBudget
}

func (s *HeapSort) Step(budget int) StepResult {
	var res StepResult
	if s.complete {
		return res
	}
	n := len(s.arr)
	for budget > 0 {
		switch s.phase {
		case heapBuilding:
			if !s.active {
				if s.buildIdx < 0 {
					s.phase = heapExtracting
					continue
				}
				s.siftI = s.buildIdx
				s.siftLargest = s.buildIdx
				s.siftStage = 0
				s.heapSize = n
				s.active = true
			}
			if s.siftStep(&res) {
				budget--
			}
			if !s.active {
				s.buildIdx--
			}
		case heapExtracting:
			if !s.active {
				if s.extractEnd <= 0 {
					s.finish()
					break
				}
				before := s.totalMoves
				s.swap(0, s.extractEnd)
				res.MovesMade += int(s.totalMoves - before)
				s.extractEnd--
				s.heapSize = s.extractEnd + 1
				s.siftI = 0
				s.siftLargest = 0
				s.siftStage = 0
				s.active = true
			}
			if s.siftStep(&res) {
				budget--
			}
			if !s.active && s.extractEnd <= 0 {
				s.finish()
			}
		}
		if s.complete {
			break
		}
	}
	res.Continued = !s.complete
	s.updateProgress(n)
	return res
}

func (s *HeapSort) updateProgress(n int) {
	if n <= 1 {
		s.ratchet(1)
		return
	}
	buildTotal := float64(n/2 + 1)
	buildDone := buildTotal
	if s.phase == heapBuilding {
		buildDone = buildTotal - float64(s.buildIdx+1)
	}
	buildFrac := buildDone / buildTotal

	extractTotal := float64(n - 1)
	extractDone := 0.0
	if s.phase == heapExtracting {
		extractDone = extractTotal - float64(s.extractEnd)
	} else {
		extractDone = 0
	}
	extractFrac := 0.0
	if extractTotal > 0 {
		extractFrac = extractDone / extractTotal
	}

	switch s.phase {
	case heapBuilding:
		s.ratchet(0.5 * buildFrac)
	case heapExtracting:
		s.ratchet(0.5 + 0.5*extractFrac)
	}
}

func (s *HeapSort) Telemetry() Telemetry {
	n := len(s.arr)
	var hi []int
	if s.active {
		hi = []int{s.siftI, s.siftLargest}
	}
	boundary := n
	if s.phase == heapExtracting {
		boundary = s.extractEnd + 1
	}
	status := "building heap"
	if s.phase == heapExtracting {
		status = "extracting"
	}
	return Telemetry{
		TotalComparisons: s.totalComparisons,
		TotalMoves:       s.totalMoves,
		Highlights:       hi,
		Markers:          Markers{HeapBoundary: &boundary},
		StatusText:       status,
		ProgressHint:     s.maxProgress,
	}
}
