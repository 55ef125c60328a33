package race

import (
	"example.com/sortrace/internal/fairness"
	"example.com/sortrace/internal/sorter"
)

// Mode is the race controller's state, reported back from every
// operation instead of an error: the core has no recoverable failure
// modes, only mode transitions and no-ops.
type Mode int

const (
	Configuring Mode = iota
	Running
	Paused
	Complete
)

func (m Mode) String() string {
	switch m {
	case Configuring:
		return "configuring"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Participant pairs a display name with the Sorter competing under it.
// The controller owns every Participant's Sorter for the lifetime of the
// Controller; nothing outside this package mutates it directly.
type Participant struct {
	Name string
	Kind sorter.Kind
	Sort sorter.Sorter
}

// ParticipantStatus is the read-only view of one participant a renderer
// consumes once per tick.
type ParticipantStatus struct {
	Name      string
	Kind      sorter.Kind
	Telemetry sorter.Telemetry
	Array     sorter.Array
}

// Controller is the race's single state machine: it owns the participant
// roster, the pristine input Array, the selected fairness policy, and
// the current Mode. Every operation is synchronous; the controller never
// spawns a goroutine and never blocks.
type Controller struct {
	participants []Participant
	pristine     sorter.Array
	policy       fairness.Policy
	mode         Mode
	tickCount    uint64
}

// NewController builds a Controller over the given roster, in
// Configuring mode. The roster's order is fixed for the Controller's
// lifetime; it is the participant-index order every ordering guarantee
// in this package refers to.
func NewController(participants []Participant) *Controller {
	return &Controller{participants: participants, mode: Configuring}
}

// Mode reports the controller's current state.
func (c *Controller) Mode() Mode { return c.mode }

// TickCount reports how many Tick calls have actually advanced the race
// (Ticks that were no-ops because the controller was not Running do not
// count).
func (c *Controller) TickCount() uint64 { return c.tickCount }

// Start installs array as the pristine input, resets every participant's
// Sorter with a fresh clone of it, zeros the tick counter, and adopts
// policy as the fairness allocator. It transitions to Running, or
// directly to Complete if the roster is empty (the one failure-free
// degenerate case the controller recognizes on its own).
func (c *Controller) Start(policy fairness.Policy, array sorter.Array) Mode {
	c.pristine = array.Clone()
	c.policy = policy
	c.tickCount = 0
	for _, p := range c.participants {
		// A Reset error here can only be ErrArraySizeExceeded, and the
		// array has already been size-checked by the caller's
		// RunConfiguration; a Sorter that still rejects it is left
		// exactly where it was, which surfaces as it simply never
		// leaving Complete/whatever state Reset declined to change.
		_ = p.Sort.Reset(c.pristine)
	}
	if len(c.participants) == 0 {
		c.mode = Complete
	} else {
		c.mode = Running
	}
	return c.mode
}

// Tick is a no-op unless the controller is Running. Otherwise it builds a
// fairness snapshot of every participant, asks the policy to allocate
// budgets, and steps each participant with a non-zero budget exactly
// once, in participant-index order. If every participant is complete
// afterward, the controller transitions to Complete.
func (c *Controller) Tick() Mode {
	if c.mode != Running {
		return c.mode
	}

	snapshots := make([]fairness.Snapshot, len(c.participants))
	for i, p := range c.participants {
		tel := p.Sort.Telemetry()
		snapshots[i] = fairness.Snapshot{
			Name:             p.Name,
			IsComplete:       p.Sort.IsComplete(),
			TotalComparisons: tel.TotalComparisons,
			TotalMoves:       tel.TotalMoves,
			ProgressHint:     tel.ProgressHint,
		}
	}

	budgets := c.policy.Allocate(snapshots)

	allComplete := true
	for i, p := range c.participants {
		if !p.Sort.IsComplete() && budgets[i] > 0 {
			p.Sort.Step(budgets[i])
		}
		if !p.Sort.IsComplete() {
			allComplete = false
		}
	}

	c.tickCount++
	if allComplete {
		c.mode = Complete
	}
	return c.mode
}

// Pause transitions Running to Paused and is a no-op otherwise. All
// sorter state is left untouched.
func (c *Controller) Pause() Mode {
	if c.mode == Running {
		c.mode = Paused
	}
	return c.mode
}

// Resume transitions Paused to Running and is a no-op otherwise.
func (c *Controller) Resume() Mode {
	if c.mode == Paused {
		c.mode = Running
	}
	return c.mode
}

// ResetSameInput re-resets every participant with a fresh clone of the
// retained pristine Array and transitions to Running. It is a no-op
// (returning Configuring) if Start has never been called.
func (c *Controller) ResetSameInput() Mode {
	if c.mode == Configuring {
		return c.mode
	}
	c.tickCount = 0
	for _, p := range c.participants {
		_ = p.Sort.Reset(c.pristine)
	}
	c.mode = Running
	return c.mode
}

// Teardown transitions unconditionally to Configuring, releasing the
// pristine Array and fairness policy. The participant roster itself
// survives a Teardown; a subsequent Start reuses the same Sorters.
func (c *Controller) Teardown() Mode {
	c.pristine = nil
	c.policy = nil
	c.tickCount = 0
	c.mode = Configuring
	return c.mode
}

// Statuses returns a read-only snapshot of every participant, in
// participant-index order, suitable for a renderer.
func (c *Controller) Statuses() []ParticipantStatus {
	out := make([]ParticipantStatus, len(c.participants))
	for i, p := range c.participants {
		out[i] = ParticipantStatus{
			Name:      p.Name,
			Kind:      p.Kind,
			Telemetry: p.Sort.Telemetry(),
			Array:     p.Sort.Array(),
		}
	}
	return out
}

// AggregateProgress is the mean ProgressHint across every participant,
// 1.0 for an empty roster.
func (c *Controller) AggregateProgress() float64 {
	if len(c.participants) == 0 {
		return 1
	}
	sum := 0.0
	for _, p := range c.participants {
		sum += p.Sort.Telemetry().ProgressHint
	}
	return sum / float64(len(c.participants))
}
