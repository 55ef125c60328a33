package generator

import (
	"testing"

	"example.com/sortrace/internal/race"
)

func TestBuildIsDeterministic(t *testing.T) {
	a := Build(200, race.DistributionShuffled, 42)
	b := Build(200, race.DistributionShuffled, 42)
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestBuildSortedIsAscending(t *testing.T) {
	a := Build(50, race.DistributionSorted, 1)
	for i := 1; i < len(a); i++ {
		if a[i-1] > a[i] {
			t.Fatalf("DistributionSorted not ascending at %d: %v", i, a)
		}
	}
}

func TestBuildReversedIsDescending(t *testing.T) {
	a := Build(50, race.DistributionReversed, 1)
	for i := 1; i < len(a); i++ {
		if a[i-1] < a[i] {
			t.Fatalf("DistributionReversed not descending at %d: %v", i, a)
		}
	}
}

func TestBuildFewUniqueHasSmallValueSet(t *testing.T) {
	a := Build(500, race.DistributionFewUnique, 7)
	seen := map[int32]bool{}
	for _, v := range a {
		seen[v] = true
	}
	if len(seen) > 5 {
		t.Fatalf("FewUnique produced %d distinct values, want <= 5", len(seen))
	}
}

func TestBuildRespectsLength(t *testing.T) {
	for _, kind := range race.AllDistributionKinds {
		a := Build(37, kind, 3)
		if len(a) != 37 {
			t.Fatalf("%s: length %d, want 37", kind, len(a))
		}
	}
}

func TestBuildZeroLength(t *testing.T) {
	for _, kind := range race.AllDistributionKinds {
		a := Build(0, kind, 3)
		if len(a) != 0 {
			t.Fatalf("%s: expected empty array", kind)
		}
	}
}
