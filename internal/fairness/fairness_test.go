package fairness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func snaps(active ...bool) []Snapshot {
	out := make([]Snapshot, len(active))
	for i, a := range active {
		out[i] = Snapshot{Name: string(rune('A' + i)), IsComplete: !a}
	}
	return out
}

func TestComparisonBudgetGivesExactK(t *testing.T) {
	p := NewComparisonBudget(20)
	got := p.Allocate(snaps(true, true, false))
	assert.Equal(t, []int{20, 20, 0}, got)
}

func TestEqualStepsGivesOne(t *testing.T) {
	got := EqualSteps{}.Allocate(snaps(true, false, true))
	assert.Equal(t, []int{1, 0, 1}, got)
}

func TestNoActiveParticipantsAllZero(t *testing.T) {
	for _, p := range []Policy{
		NewComparisonBudget(10),
		EqualSteps{},
		NewWeighted(1, 1, 50),
		NewWalltime(50),
		NewAdaptive(0.3, 50),
	} {
		got := p.Allocate(snaps(false, false))
		assert.Equal(t, []int{0, 0}, got, p.Name())
	}
}

func TestWeightedEqualWeightsGiveEqualBudgets(t *testing.T) {
	p := NewWeighted(0, 0, 50)
	s := []Snapshot{
		{Name: "A", TotalComparisons: 1000, TotalMoves: 50},
		{Name: "B", TotalComparisons: 1, TotalMoves: 1},
	}
	got := p.Allocate(s)
	assert.Equal(t, 50, got[0])
	assert.Equal(t, 50, got[1])
}

func TestWeightedFavorsLowerScore(t *testing.T) {
	p := NewWeighted(1, 1, 100)
	s := []Snapshot{
		{Name: "slow", TotalComparisons: 5, TotalMoves: 0},
		{Name: "fast", TotalComparisons: 500, TotalMoves: 0},
	}
	got := p.Allocate(s)
	if got[0] <= got[1] {
		t.Fatalf("expected lower-score participant to receive more budget, got %v", got)
	}
	assert.Equal(t, 200, got[0]+got[1])
}

func TestWeightedSingleActiveGetsBase(t *testing.T) {
	p := NewWeighted(1, 1, 30)
	got := p.Allocate([]Snapshot{{Name: "A", TotalComparisons: 7}, {Name: "B", IsComplete: true}})
	assert.Equal(t, []int{30, 0}, got)
}

func TestWalltimeUsesDefaultSpeedWhenUnknown(t *testing.T) {
	p := NewWalltime(50)
	got := p.Allocate(snaps(true))
	assert.Equal(t, int(defaultOpsPerMs*50), got[0])
}

func TestWalltimeLearnsFromRecordedTiming(t *testing.T) {
	p := NewWalltime(100)
	p.RecordTiming("fast", 10*time.Millisecond, 200) // 20 ops/ms
	p.RecordTiming("slow", 50*time.Millisecond, 100) // 2 ops/ms
	got := p.Allocate([]Snapshot{{Name: "fast"}, {Name: "slow"}})
	if got[0] <= got[1] {
		t.Fatalf("expected faster participant to get a bigger budget, got %v", got)
	}
}

func TestWalltimeLearnModeNamesItselfAdaptive(t *testing.T) {
	p := NewWalltime(50).Learn(0.2)
	assert.Equal(t, "Adaptive Wall Time", p.Name())
	assert.Equal(t, "Wall Time Fairness", NewWalltime(50).Name())
}

func TestAdaptiveFavorsStagnantParticipant(t *testing.T) {
	p := NewAdaptive(0.3, 100)
	a := Snapshot{Name: "A"}
	b := Snapshot{Name: "B"}
	var lastB []int
	for tick := 0; tick < 6; tick++ {
		a.ProgressHint += 0.2
		b.ProgressHint += 0.01
		lastB = p.Allocate([]Snapshot{a, b})
	}
	if lastB[1] <= lastB[0] {
		t.Fatalf("expected stagnant participant B to receive a larger budget eventually, got %v", lastB)
	}
}

func TestAdaptiveSingleActiveGetsBase(t *testing.T) {
	p := NewAdaptive(0.2, 40)
	got := p.Allocate([]Snapshot{{Name: "A"}, {Name: "B", IsComplete: true}})
	assert.Equal(t, []int{40, 0}, got)
}
