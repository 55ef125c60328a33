package sorter

import (
	"math/rand/v2"
	"sort"
	"testing"
)

func allKindsForTest() []Kind { return AllKinds }

func randomArray(n int, seed uint64) Array {
	r := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	out := make(Array, n)
	for i := range out {
		out[i] = Element(r.IntN(1000))
	}
	return out
}

func isSorted(a Array) bool {
	return sort.SliceIsSorted(a, func(i, j int) bool { return a[i] < a[j] })
}

// driveToCompletion steps s with a fixed per-call budget until it
// reports complete, returning the number of Step calls it took. It fails
// the test if the sorter does not converge within a generous bound.
func driveToCompletion(t *testing.T, s Sorter, budget int) int {
	t.Helper()
	for calls := 0; calls < 1_000_000; calls++ {
		if s.IsComplete() {
			return calls
		}
		res := s.Step(budget)
		if res.ComparisonsUsed > budget {
			t.Fatalf("%s: Step used %d comparisons, exceeding budget %d", s.Name(), res.ComparisonsUsed, budget)
		}
	}
	t.Fatalf("%s: did not complete", s.Name())
	return -1
}

func TestAllKindsSortCorrectly(t *testing.T) {
	sizes := []int{0, 1, 2, 3, 10, 97, 256}
	budgets := []int{1, 2, 7, 64}
	for _, kind := range allKindsForTest() {
		for _, n := range sizes {
			for _, budget := range budgets {
				s, ok := New(kind)
				if !ok {
					t.Fatalf("unknown kind %s", kind)
				}
				data := randomArray(n, uint64(n*1000+budget))
				if err := s.Reset(data); err != nil {
					t.Fatalf("%s: Reset(%d): %v", kind, n, err)
				}
				driveToCompletion(t, s, budget)
				if !s.IsComplete() {
					t.Fatalf("%s: never completed for n=%d budget=%d", kind, n, budget)
				}
				got := s.Array()
				if len(got) != n {
					t.Fatalf("%s: result length %d, want %d", kind, len(got), n)
				}
				if !isSorted(got) {
					t.Fatalf("%s: result not sorted for n=%d budget=%d: %v", kind, n, budget, got)
				}
				tel := s.Telemetry()
				if tel.ProgressHint != 1 {
					t.Fatalf("%s: ProgressHint=%v at completion, want 1", kind, tel.ProgressHint)
				}
			}
		}
	}
}

func TestProgressHintNeverRegresses(t *testing.T) {
	for _, kind := range allKindsForTest() {
		s, _ := New(kind)
		data := randomArray(200, 42)
		if err := s.Reset(data); err != nil {
			t.Fatalf("%s: Reset: %v", kind, err)
		}
		last := 0.0
		for !s.IsComplete() {
			s.Step(3)
			p := s.Telemetry().ProgressHint
			if p < last {
				t.Fatalf("%s: progress regressed from %v to %v", kind, last, p)
			}
			last = p
		}
		if last != 1 {
			t.Fatalf("%s: final progress %v, want 1", kind, last)
		}
	}
}

func TestStepOnCompleteSorterIsNoop(t *testing.T) {
	for _, kind := range allKindsForTest() {
		s, _ := New(kind)
		if err := s.Reset(Array{3, 1, 2}); err != nil {
			t.Fatalf("%s: Reset: %v", kind, err)
		}
		driveToCompletion(t, s, 100)
		res := s.Step(10)
		if res.Continued {
			t.Fatalf("%s: Step on complete sorter reported Continued=true", kind)
		}
		if res.ComparisonsUsed != 0 || res.MovesMade != 0 {
			t.Fatalf("%s: Step on complete sorter did work: %+v", kind, res)
		}
	}
}

func TestResetRejectsOversizedArray(t *testing.T) {
	s, _ := New(KindBubble)
	oversized := make(Array, MaxArraySize+1)
	if err := s.Reset(oversized); err != ErrArraySizeExceeded {
		t.Fatalf("Reset(oversized) = %v, want ErrArraySizeExceeded", err)
	}
}

func TestResetClonesInput(t *testing.T) {
	for _, kind := range allKindsForTest() {
		s, _ := New(kind)
		data := Array{5, 4, 3, 2, 1}
		if err := s.Reset(data); err != nil {
			t.Fatalf("%s: Reset: %v", kind, err)
		}
		data[0] = 999
		driveToCompletion(t, s, 1)
		got := s.Array()
		for _, v := range got {
			if v == 999 {
				t.Fatalf("%s: sorter observed a mutation to the caller's original array", kind)
			}
		}
	}
}

func TestZeroAndOneElementArraysStartComplete(t *testing.T) {
	for _, kind := range allKindsForTest() {
		for _, data := range []Array{{}, {7}} {
			s, _ := New(kind)
			if err := s.Reset(data); err != nil {
				t.Fatalf("%s: Reset: %v", kind, err)
			}
			if !s.IsComplete() {
				t.Fatalf("%s: Reset(%v) should start complete", kind, data)
			}
			if got := s.Telemetry().ProgressHint; got != 1 {
				t.Fatalf("%s: ProgressHint=%v for trivially-sorted input, want 1", kind, got)
			}
		}
	}
}

func TestBudgetGranularityOfOne(t *testing.T) {
	// Every algorithm must make progress even with the smallest possible
	// per-tick budget, which is the scenario that most exercises the
	// mid-partition / mid-merge resumption logic.
	for _, kind := range allKindsForTest() {
		s, _ := New(kind)
		data := randomArray(64, 7)
		if err := s.Reset(data); err != nil {
			t.Fatalf("%s: Reset: %v", kind, err)
		}
		driveToCompletion(t, s, 1)
		if !isSorted(s.Array()) {
			t.Fatalf("%s: result not sorted under budget=1", kind)
		}
	}
}

func TestIsValidKind(t *testing.T) {
	if !IsValidKind(KindQuick) {
		t.Fatal("KindQuick should be valid")
	}
	if IsValidKind(Kind("bogosort")) {
		t.Fatal("bogosort should not be a valid kind")
	}
}
