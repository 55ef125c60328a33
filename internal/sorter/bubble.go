package sorter

// BubbleSort repeatedly walks the unsorted prefix, swapping adjacent
// elements that are out of order, and shrinks the prefix by one each full
// pass. It resumes mid-pass at an arbitrary comparison boundary by storing
// the pass boundary i, the cursor j within the pass, and whether any swap
// occurred in the pass so far.
type BubbleSort struct {
	base
	i, j    int
	swapped bool
}

func (s *BubbleSort) Name() string { return "Bubble Sort" }

func (s *BubbleSort) Reset(data Array) error {
	if !s.resetBase(data) {
		return ErrArraySizeExceeded
	}
	s.i, s.j, s.swapped = 0, 0, false
	return nil
}

func (s *BubbleSort) MemoryUsage() int64 { return 0 }

func (s *BubbleSort) Step(budget int) StepResult {
	var res StepResult
	if s.complete {
		return res
	}
	n := len(s.arr)
	for budget > 0 {
		if s.i >= n-1 {
			s.finish()
			break
		}
		if s.j >= n-1-s.i {
			if !s.swapped {
				s.finish()
				break
			}
			s.i++
			s.j = 0
			s.swapped = false
			continue
		}
		before := s.totalMoves
		if s.compareGT(s.j, s.j+1) {
			s.swap(s.j, s.j+1)
			s.swapped = true
		}
		res.ComparisonsUsed++
		res.MovesMade += int(s.totalMoves - before)
		budget--
		s.j++
	}
	res.Continued = !s.complete
	if n > 1 {
		s.ratchet(float64(s.i) / float64(n-1))
	}
	return res
}

func (s *BubbleSort) Telemetry() Telemetry {
	n := len(s.arr)
	progress := 1.0
	if n > 1 {
		progress = s.maxProgress
	}
	var hi []int
	if s.j+1 < n {
		hi = []int{s.j, s.j + 1}
	}
	return Telemetry{
		TotalComparisons: s.totalComparisons,
		TotalMoves:       s.totalMoves,
		Highlights:       hi,
		StatusText:       "bubbling",
		ProgressHint:     progress,
	}
}
