package sorter

// Kind identifies one of the fixed set of algorithms the race can run.
// Values are stable across versions and are suitable for use as map keys,
// CLI flag values, and serialized race configuration.
type Kind string

const (
	KindBubble    Kind = "bubble"
	KindSelection Kind = "selection"
	KindInsertion Kind = "insertion"
	KindShell     Kind = "shell"
	KindHeap      Kind = "heap"
	KindMerge     Kind = "merge"
	KindQuick     Kind = "quick"
)

// AllKinds lists every registered Kind in a fixed, stable order: this is
// the participant-index ordering the rest of the core treats as part of
// its observable contract (fairness allocation vectors and controller
// statuses are both indexed in this order). Callers that need a
// deterministic enumeration (flag help text, default race rosters) should
// range over this slice rather than a map.
var AllKinds = []Kind{
	KindBubble,
	KindSelection,
	KindInsertion,
	KindMerge,
	KindQuick,
	KindHeap,
	KindShell,
}

// factories maps each Kind to a constructor producing a freshly
// zero-valued Sorter. The returned Sorter still requires Reset before its
// first Step, exactly like the teacher's calculatorRegistry entries.
var factories = map[Kind]func() Sorter{
	KindBubble:    func() Sorter { return &BubbleSort{} },
	KindSelection: func() Sorter { return &SelectionSort{} },
	KindInsertion: func() Sorter { return &InsertionSort{} },
	KindShell:     func() Sorter { return &ShellSort{} },
	KindHeap:      func() Sorter { return &HeapSort{} },
	KindMerge:     func() Sorter { return &MergeSort{} },
	KindQuick:     func() Sorter { return &QuickSort{} },
}

// New constructs a fresh Sorter for kind. It returns false for a kind not
// present in AllKinds.
func New(kind Kind) (Sorter, bool) {
	f, ok := factories[kind]
	if !ok {
		return nil, false
	}
	return f(), true
}

// IsValidKind reports whether kind names a registered algorithm.
func IsValidKind(kind Kind) bool {
	_, ok := factories[kind]
	return ok
}
