package fairness

// Adaptive tracks an exponential moving average of each participant's
// progress-rate (the change in ProgressHint since the previous Allocate
// call) and hands out budget inversely: a participant whose progress has
// been stalling gets a bigger share of the next tick's total than one
// that is cruising ahead. Base is the flat per-tick budget granted when
// there is exactly one active participant, and the basis for the total
// distributed across an active set.
type Adaptive struct {
	LearningRate float64
	Base         int

	rate     map[string]float64
	prevProg map[string]float64
}

// NewAdaptive constructs an Adaptive policy. LearningRate is clamped to
// [0, 1] and Base to at least 1.
func NewAdaptive(learningRate float64, base int) *Adaptive {
	if base < 1 {
		base = 1
	}
	return &Adaptive{
		LearningRate: clamp(learningRate, 0, 1),
		Base:         base,
		rate:         make(map[string]float64),
		prevProg:     make(map[string]float64),
	}
}

func (p *Adaptive) updateRate(s Snapshot) float64 {
	prev := p.prevProg[s.Name]
	delta := s.ProgressHint - prev
	if delta < 0 {
		delta = 0
	}
	old, seen := p.rate[s.Name]
	if !seen {
		old = delta
	}
	next := (1-p.LearningRate)*old + p.LearningRate*delta
	p.rate[s.Name] = next
	p.prevProg[s.Name] = s.ProgressHint
	return next
}

func (p *Adaptive) Allocate(snapshots []Snapshot) []int {
	active := activeIndices(snapshots)
	out := make([]int, len(snapshots))
	if len(active) == 0 {
		return out
	}

	rates := make([]float64, len(active))
	for k, i := range active {
		rates[k] = p.updateRate(snapshots[i])
	}

	total := p.Base * len(active)
	return distributeInverse(len(snapshots), active, rates, total)
}

func (p *Adaptive) Name() string { return "Adaptive Fairness" }
