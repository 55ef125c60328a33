package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/sortrace/internal/fairness"
	"example.com/sortrace/internal/sorter"
)

func newRoster(t *testing.T, kinds ...sorter.Kind) []Participant {
	t.Helper()
	out := make([]Participant, len(kinds))
	for i, k := range kinds {
		s, ok := sorter.New(k)
		require.True(t, ok, "unknown kind %s", k)
		out[i] = Participant{Name: string(k), Kind: k, Sort: s}
	}
	return out
}

func TestStartWithEmptyRosterIsImmediatelyComplete(t *testing.T) {
	c := NewController(nil)
	mode := c.Start(fairness.EqualSteps{}, sorter.Array{3, 1, 2})
	assert.Equal(t, Complete, mode)
}

func TestTickIsNoopUnlessRunning(t *testing.T) {
	c := NewController(newRoster(t, sorter.KindBubble))
	assert.Equal(t, Configuring, c.Tick())
	c.Start(fairness.EqualSteps{}, sorter.Array{3, 1, 2})
	c.Pause()
	before := c.Statuses()[0].Telemetry
	c.Tick()
	after := c.Statuses()[0].Telemetry
	assert.Equal(t, before, after)
}

func TestRaceRunsToCompletion(t *testing.T) {
	c := NewController(newRoster(t, sorter.AllKinds...))
	c.Start(fairness.NewComparisonBudget(5), sorter.Array{5, 3, 4, 1, 2, 9, 8, 7, 6})
	for i := 0; i < 10_000 && c.Mode() == Running; i++ {
		c.Tick()
	}
	require.Equal(t, Complete, c.Mode())
	for _, st := range c.Statuses() {
		assert.True(t, sort_IsSorted(st.Array), "%s did not finish sorted: %v", st.Name, st.Array)
	}
}

func sort_IsSorted(a sorter.Array) bool {
	for i := 1; i < len(a); i++ {
		if a[i-1] > a[i] {
			return false
		}
	}
	return true
}

func TestPauseResumePreservesExactState(t *testing.T) {
	build := func() *Controller {
		c := NewController(newRoster(t, sorter.KindQuick))
		c.Start(fairness.NewComparisonBudget(1), sorter.Array{9, 2, 7, 1, 8, 3, 6, 4, 5})
		return c
	}

	straight := build()
	for i := 0; i < 5; i++ {
		straight.Tick()
	}
	for i := 0; i < 5; i++ {
		straight.Tick()
	}
	straightTrace := straight.Statuses()[0].Telemetry

	paused := build()
	for i := 0; i < 5; i++ {
		paused.Tick()
	}
	paused.Pause()
	for i := 0; i < 10; i++ {
		paused.Tick()
	}
	paused.Resume()
	for i := 0; i < 5; i++ {
		paused.Tick()
	}
	pausedTrace := paused.Statuses()[0].Telemetry

	assert.Equal(t, straightTrace, pausedTrace)
}

func TestResetSameInputReplaysDeterministically(t *testing.T) {
	c := NewController(newRoster(t, sorter.KindMerge))
	input := sorter.Array{4, 2, 7, 1, 9, 3}
	c.Start(fairness.EqualSteps{}, input)
	for c.Mode() == Running {
		c.Tick()
	}
	firstResult := c.Statuses()[0].Array

	c.ResetSameInput()
	assert.Equal(t, Running, c.Mode())
	assert.Equal(t, uint64(0), c.TickCount())
	for c.Mode() == Running {
		c.Tick()
	}
	secondResult := c.Statuses()[0].Array

	assert.Equal(t, firstResult, secondResult)
}

func TestTeardownReturnsToConfiguring(t *testing.T) {
	c := NewController(newRoster(t, sorter.KindHeap))
	c.Start(fairness.EqualSteps{}, sorter.Array{3, 1, 2})
	c.Teardown()
	assert.Equal(t, Configuring, c.Mode())
	assert.Equal(t, Configuring, c.ResetSameInput(), "ResetSameInput after Teardown should no-op")
}

// recordingPolicy wraps a Policy and keeps every snapshot vector it was
// handed together with the budgets it returned for it.
type recordingPolicy struct {
	inner     fairness.Policy
	snapshots [][]fairness.Snapshot
	budgets   [][]int
}

func (r *recordingPolicy) Allocate(s []fairness.Snapshot) []int {
	out := r.inner.Allocate(s)
	r.snapshots = append(r.snapshots, append([]fairness.Snapshot(nil), s...))
	r.budgets = append(r.budgets, out)
	return out
}

func (r *recordingPolicy) Name() string { return r.inner.Name() }

func TestCompletedParticipantsReceiveZeroBudgetNextTick(t *testing.T) {
	policy := &recordingPolicy{inner: fairness.NewComparisonBudget(20)}
	c := NewController(newRoster(t, sorter.AllKinds...))
	input := make(sorter.Array, 15)
	for i := range input {
		input[i] = sorter.Element(15 - i)
	}
	c.Start(policy, input)
	for i := 0; i < 1000 && c.Mode() == Running; i++ {
		c.Tick()
		statuses := c.Statuses()
		allDone := true
		for _, st := range statuses {
			if st.Telemetry.ProgressHint < 1 {
				allDone = false
			}
		}
		if allDone {
			break
		}
	}
	require.Equal(t, Complete, c.Mode())

	sawMixed := false
	for tick, snapshots := range policy.snapshots {
		anyDone, anyActive := false, false
		for i, s := range snapshots {
			if s.IsComplete {
				anyDone = true
				assert.Equal(t, 0, policy.budgets[tick][i], "tick %d: completed %s received a budget", tick, s.Name)
			} else {
				anyActive = true
				assert.Equal(t, 20, policy.budgets[tick][i], "tick %d: active %s", tick, s.Name)
			}
		}
		if anyDone && anyActive {
			sawMixed = true
		}
	}
	assert.True(t, sawMixed, "expected a tick with both completed and still-active participants")
}
