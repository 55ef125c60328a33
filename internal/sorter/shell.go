package sorter

// ShellSort runs insertion sort over a shrinking sequence of gaps,
// halving the gap each pass until it reaches zero. Resumption state is
// the current gap, the outer cursor i, and the inner cursor j being
// walked backward by gap — the same swap-walk InsertionSort uses, just
// parameterized by gap instead of fixed at 1.
type ShellSort struct {
	base
	gap, i, j int
	initGap   int
}

func (s *ShellSort) Name() string { return "Shell Sort" }

func (s *ShellSort) Reset(data Array) error {
	if !s.resetBase(data) {
		return ErrArraySizeExceeded
	}
	n := len(data)
	s.gap = n / 2
	s.initGap = s.gap
	s.i = s.gap
	s.j = s.gap
	if s.gap == 0 {
		s.finish()
	}
	return nil
}

func (s *ShellSort) MemoryUsage() int64 { return 0 }

func (s *ShellSort) Step(budget int) StepResult {
	var res StepResult
	if s.complete {
		return res
	}
	n := len(s.arr)
	for budget > 0 {
		if s.gap <= 0 {
			s.finish()
			break
		}
		if s.i >= n {
			s.gap /= 2
			if s.gap <= 0 {
				s.finish()
				break
			}
			s.i = s.gap
			s.j = s.gap
			continue
		}
		if s.j < s.gap {
			s.i++
			s.j = s.i
			continue
		}
		before := s.totalMoves
		if s.compareGT(s.j-s.gap, s.j) {
			s.swap(s.j-s.gap, s.j)
			s.j -= s.gap
		} else {
			s.j = s.gap - 1
		}
		res.ComparisonsUsed++
		res.MovesMade += int(s.totalMoves - before)
		budget--
	}
	res.Continued = !s.complete
	if s.initGap > 0 {
		gapsDone := float64(s.initGap - s.gap)
		withinGap := 0.0
		if n > 0 {
			withinGap = float64(s.i) / float64(n)
		}
		s.ratchet((gapsDone + withinGap) / float64(s.initGap+1))
	}
	return res
}

func (s *ShellSort) Telemetry() Telemetry {
	n := len(s.arr)
	progress := 1.0
	if s.initGap > 0 {
		progress = s.maxProgress
	}
	var hi []int
	var gap *int
	if s.gap > 0 {
		g := s.gap
		gap = &g
		if s.j >= 0 && s.j < n && s.j-s.gap >= 0 {
			hi = []int{s.j - s.gap, s.j}
		}
	}
	return Telemetry{
		TotalComparisons: s.totalComparisons,
		TotalMoves:       s.totalMoves,
		Highlights:       hi,
		Markers:          Markers{Gap: gap},
		StatusText:       "shelling",
		ProgressHint:     progress,
	}
}
