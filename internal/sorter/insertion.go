package sorter

// InsertionSort grows a sorted prefix one element at a time, walking the
// newly admitted element left via adjacent swaps until it finds its
// place. Resumption state is the prefix boundary i and the cursor j
// currently being walked backward.
type InsertionSort struct {
	base
	i, j int
}

func (s *InsertionSort) Name() string { return "Insertion Sort" }

func (s *InsertionSort) Reset(data Array) error {
	if !s.resetBase(data) {
		return ErrArraySizeExceeded
	}
	s.i = 1
	s.j = 1
	return nil
}

func (s *InsertionSort) MemoryUsage() int64 { return 0 }

func (s *InsertionSort) Step(budget int) StepResult {
	var res StepResult
	if s.complete {
		return res
	}
	n := len(s.arr)
	for budget > 0 {
		if s.i >= n {
			s.finish()
			break
		}
		if s.j <= 0 {
			s.i++
			if s.i >= n {
				s.finish()
				break
			}
			s.j = s.i
			continue
		}
		before := s.totalMoves
		if s.compareGT(s.j-1, s.j) {
			s.swap(s.j-1, s.j)
			s.j--
		} else {
			s.j = 0
		}
		res.ComparisonsUsed++
		res.MovesMade += int(s.totalMoves - before)
		budget--
	}
	res.Continued = !s.complete
	if n > 1 {
		s.ratchet(float64(s.i) / float64(n))
	}
	return res
}

func (s *InsertionSort) Telemetry() Telemetry {
	n := len(s.arr)
	progress := 1.0
	if n > 1 {
		progress = s.maxProgress
	}
	var hi []int
	if s.j > 0 && s.j < n {
		hi = []int{s.j - 1, s.j}
	}
	return Telemetry{
		TotalComparisons: s.totalComparisons,
		TotalMoves:       s.totalMoves,
		Highlights:       hi,
		StatusText:       "inserting",
		ProgressHint:     progress,
	}
}
