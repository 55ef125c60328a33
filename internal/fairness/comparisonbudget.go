package fairness

// ComparisonBudget gives every active participant exactly K comparisons
// per tick, regardless of how each is performing. It carries no learning
// state and is the simplest policy in the package.
type ComparisonBudget struct {
	K int
}

// NewComparisonBudget clamps k to at least 1 before storing it.
func NewComparisonBudget(k int) *ComparisonBudget {
	if k < 1 {
		k = 1
	}
	return &ComparisonBudget{K: k}
}

func (p *ComparisonBudget) Allocate(snapshots []Snapshot) []int {
	out := make([]int, len(snapshots))
	for i, s := range snapshots {
		if !s.IsComplete {
			out[i] = p.K
		}
	}
	return out
}

func (p *ComparisonBudget) Name() string { return "Comparison Budget" }

// EqualSteps is ComparisonBudget with K fixed at 1: every active
// participant advances by exactly one comparison per tick.
type EqualSteps struct{}

func (EqualSteps) Allocate(snapshots []Snapshot) []int {
	out := make([]int, len(snapshots))
	for i, s := range snapshots {
		if !s.IsComplete {
			out[i] = 1
		}
	}
	return out
}

func (EqualSteps) Name() string { return "Equal Steps" }
