package fairness

// Weighted scores each participant as α·comparisons + β·moves and hands
// out more of a fixed total budget to the participants with the lowest
// score — the ones doing the least total work so far get the most help
// catching up. The pool split per tick is Base * (number of active
// participants); because each share is rounded and floored at 1, the
// budgets handed out can sum to slightly more or less than the pool.
//
// Optionally, Weighted can smooth its scoring with an efficiency history
// instead of raw cumulative counters: History(window) makes it track a
// per-participant moving average of work-done-per-tick over the last
// window ticks and score against that average rather than the running
// total, so a participant that was slow early but has sped up recently
// is no longer penalized for its early cost.
type Weighted struct {
	Alpha, Beta float64
	Base        int

	window  int
	history map[string][]float64
	last    map[string]uint64
}

// NewWeighted constructs a Weighted policy with the given score weights
// and base budget. Base is clamped to at least 1.
func NewWeighted(alpha, beta float64, base int) *Weighted {
	if base < 1 {
		base = 1
	}
	return &Weighted{Alpha: alpha, Beta: beta, Base: base}
}

// History enables moving-average scoring over the given window of
// ticks (clamped to at least 1) and returns the receiver for chaining.
func (p *Weighted) History(window int) *Weighted {
	if window < 1 {
		window = 1
	}
	p.window = window
	p.history = make(map[string][]float64)
	p.last = make(map[string]uint64)
	return p
}

func (p *Weighted) score(s Snapshot) float64 {
	raw := p.Alpha*float64(s.TotalComparisons) + p.Beta*float64(s.TotalMoves)
	if p.history == nil {
		return raw
	}
	prev, seen := p.last[s.Name]
	delta := 0.0
	if seen {
		total := s.TotalComparisons + s.TotalMoves
		if total > prev {
			delta = float64(total - prev)
		}
	}
	p.last[s.Name] = s.TotalComparisons + s.TotalMoves
	h := append(p.history[s.Name], delta)
	if len(h) > p.window {
		h = h[len(h)-p.window:]
	}
	p.history[s.Name] = h
	sum := 0.0
	for _, v := range h {
		sum += v
	}
	return sum / float64(len(h))
}

func (p *Weighted) Allocate(snapshots []Snapshot) []int {
	active := activeIndices(snapshots)
	out := make([]int, len(snapshots))
	if len(active) == 0 {
		return out
	}
	total := p.Base * len(active)
	if p.Alpha == 0 && p.Beta == 0 && p.history == nil {
		for _, i := range active {
			out[i] = p.Base
		}
		return out
	}
	scores := make([]float64, len(active))
	for k, i := range active {
		scores[k] = p.score(snapshots[i])
	}
	return distributeInverse(len(snapshots), active, scores, total)
}

func (p *Weighted) Name() string { return "Weighted Fairness" }
