package sorter

// SelectionSort scans the unsorted suffix for its minimum and swaps it
// into place at the front of that suffix. Resumption state is the
// boundary i, the scan cursor k, and the index of the smallest element
// found so far in the current scan.
type SelectionSort struct {
	base
	i, k, minIdx int
}

func (s *SelectionSort) Name() string { return "Selection Sort" }

func (s *SelectionSort) Reset(data Array) error {
	if !s.resetBase(data) {
		return ErrArraySizeExceeded
	}
	s.i = 0
	s.minIdx = 0
	s.k = 1
	return nil
}

func (s *SelectionSort) MemoryUsage() int64 { return 0 }

func (s *SelectionSort) Step(budget int) StepResult {
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
		if s.k >= n {
			before := s.totalMoves
			if s.minIdx != s.i {
				s.swap(s.i, s.minIdx)
			}
			res.MovesMade += int(s.totalMoves - before)
			s.i++
			s.minIdx = s.i
			s.k = s.i + 1
			continue
		}
		if s.compareGT(s.minIdx, s.k) {
			s.minIdx = s.k
		}
		res.ComparisonsUsed++
		budget--
		s.k++
	}
	res.Continued = !s.complete
	if n > 1 {
		s.ratchet(float64(s.i) / float64(n-1))
	}
	return res
}

func (s *SelectionSort) Telemetry() Telemetry {
	n := len(s.arr)
	progress := 1.0
	if n > 1 {
		progress = s.maxProgress
	}
	var hi []int
	if s.k < n {
		hi = []int{s.minIdx, s.k}
	}
	return Telemetry{
		TotalComparisons: s.totalComparisons,
		TotalMoves:       s.totalMoves,
		Highlights:       hi,
		StatusText:       "selecting",
		ProgressHint:     progress,
	}
}
