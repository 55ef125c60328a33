// Package race implements the race controller: the state machine that
// owns a roster of sorters, drives them forward one tick at a time under
// a chosen fairness policy, and mediates pause/resume/reset/teardown.
package race

import (
	"fmt"

	"example.com/sortrace/internal/fairness"
)

// DistributionKind names the shape of the pristine array the generator
// collaborator builds. It is opaque to the controller: passed straight
// through from a RunConfiguration to whatever builds the Array.
type DistributionKind string

const (
	DistributionShuffled      DistributionKind = "shuffled"
	DistributionReversed      DistributionKind = "reversed"
	DistributionNearlySorted  DistributionKind = "nearly_sorted"
	DistributionFewUnique     DistributionKind = "few_unique"
	DistributionSorted        DistributionKind = "sorted"
	DistributionWithDuplicates DistributionKind = "with_duplicates"
)

// AllDistributionKinds lists every DistributionKind in a fixed order,
// for CLI help text and validation.
var AllDistributionKinds = []DistributionKind{
	DistributionShuffled,
	DistributionReversed,
	DistributionNearlySorted,
	DistributionFewUnique,
	DistributionSorted,
	DistributionWithDuplicates,
}

// FairnessKind names one of the five fixed fairness-policy variants a
// RunConfiguration may select.
type FairnessKind string

const (
	FairnessComparisonBudget FairnessKind = "comparison_budget"
	FairnessWeighted         FairnessKind = "weighted"
	FairnessWalltime         FairnessKind = "walltime"
	FairnessAdaptive         FairnessKind = "adaptive"
	FairnessEqualSteps       FairnessKind = "equal_steps"
)

// FairnessMode selects a fairness variant and carries its parameters.
// Only the fields relevant to Kind are read; the zero value of an
// irrelevant field is ignored.
type FairnessMode struct {
	Kind FairnessKind

	// ComparisonBudget
	K int

	// Weighted
	Alpha, Beta  float64
	Base         int
	HistoryWindow int // 0 disables history smoothing

	// Walltime
	SliceMS uint64
	Learn   bool // enables adaptive throughput smoothing
	Rate    float64

	// Adaptive
	LearningRate float64
}

// Build constructs the fairness.Policy this mode describes after checking
// the parameters of the selected kind; an out-of-range value is returned
// as an error rather than clamped. RunConfiguration.Validate does not
// check fairness parameters, so callers run both.
func (m FairnessMode) Build() (fairness.Policy, error) {
	switch m.Kind {
	case FairnessComparisonBudget:
		if m.K < 1 {
			return nil, fmt.Errorf("race: ComparisonBudget requires k >= 1, got %d", m.K)
		}
		return fairness.NewComparisonBudget(m.K), nil
	case FairnessEqualSteps:
		return fairness.EqualSteps{}, nil
	case FairnessWeighted:
		if m.Alpha <= 0 || m.Beta <= 0 {
			return nil, fmt.Errorf("race: Weighted requires alpha, beta > 0, got %v, %v", m.Alpha, m.Beta)
		}
		p := fairness.NewWeighted(m.Alpha, m.Beta, m.Base)
		if m.HistoryWindow > 0 {
			p.History(m.HistoryWindow)
		}
		return p, nil
	case FairnessWalltime:
		if m.SliceMS < 1 {
			return nil, fmt.Errorf("race: Walltime requires slice_ms >= 1, got %d", m.SliceMS)
		}
		p := fairness.NewWalltime(m.SliceMS)
		if m.Learn {
			p.Learn(m.Rate)
		}
		return p, nil
	case FairnessAdaptive:
		if m.LearningRate < 0.1 || m.LearningRate > 1.0 {
			return nil, fmt.Errorf("race: Adaptive requires learning_rate in [0.1, 1.0], got %v", m.LearningRate)
		}
		return fairness.NewAdaptive(m.LearningRate, m.Base), nil
	default:
		return nil, fmt.Errorf("race: unknown fairness kind %q", m.Kind)
	}
}

// RunConfiguration is everything a Start call needs beyond the pristine
// Array itself. DistributionKind and Seed are opaque to the controller;
// they exist here only so a single value can travel from CLI flags
// through to the generator collaborator that actually builds the Array.
type RunConfiguration struct {
	ArraySize        int
	DistributionKind DistributionKind
	Seed             uint64
	Fairness         FairnessMode
	TargetTickRateHz int
}

// Validate checks the interactive-configuration bounds from the external
// interface contract: array sizes in [10, 1000] and a tick rate in
// [1, 240]. The core's Start accepts a wider range; this validator is
// for the interactive front door, not the core itself.
func (c RunConfiguration) Validate() error {
	if c.ArraySize < 10 || c.ArraySize > 1000 {
		return fmt.Errorf("race: array_size %d out of interactive range [10, 1000]", c.ArraySize)
	}
	if c.TargetTickRateHz < 1 || c.TargetTickRateHz > 240 {
		return fmt.Errorf("race: target_tick_rate_hz %d out of range [1, 240]", c.TargetTickRateHz)
	}
	found := false
	for _, k := range AllDistributionKinds {
		if k == c.DistributionKind {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("race: unknown distribution_kind %q", c.DistributionKind)
	}
	return nil
}
