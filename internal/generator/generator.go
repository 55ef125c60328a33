// Package generator builds the pristine arrays a race sorts, from a seed
// and a requested distribution shape. It sits outside the race core: the
// core only ever consumes an already-built Array.
package generator

import (
	"math/rand/v2"

	"example.com/sortrace/internal/race"
	"example.com/sortrace/internal/sorter"
)

// Build produces a pristine Array of length n shaped according to kind,
// deterministically from seed: the same (n, kind, seed) triple always
// produces the same Array.
func Build(n int, kind race.DistributionKind, seed uint64) sorter.Array {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	switch kind {
	case race.DistributionSorted:
		return ascending(n)
	case race.DistributionReversed:
		return descending(n)
	case race.DistributionShuffled:
		a := ascending(n)
		shuffle(r, a)
		return a
	case race.DistributionNearlySorted:
		return nearlySorted(r, n)
	case race.DistributionFewUnique:
		return fewUnique(r, n)
	case race.DistributionWithDuplicates:
		return withDuplicates(r, n)
	default:
		a := ascending(n)
		shuffle(r, a)
		return a
	}
}

func ascending(n int) sorter.Array {
	out := make(sorter.Array, n)
	for i := range out {
		out[i] = sorter.Element(i)
	}
	return out
}

func descending(n int) sorter.Array {
	out := make(sorter.Array, n)
	for i := range out {
		out[i] = sorter.Element(n - 1 - i)
	}
	return out
}

func shuffle(r *rand.Rand, a sorter.Array) {
	for i := len(a) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// nearlySorted starts from ascending order and performs a small number
// of local adjacent swaps, leaving most of the array in place.
func nearlySorted(r *rand.Rand, n int) sorter.Array {
	a := ascending(n)
	swaps := n / 20
	if swaps < 1 && n > 1 {
		swaps = 1
	}
	for k := 0; k < swaps; k++ {
		i := r.IntN(n)
		j := i
		if i+1 < n {
			j = i + 1
		} else if i-1 >= 0 {
			j = i - 1
		}
		a[i], a[j] = a[j], a[i]
	}
	return a
}

// fewUnique draws every element from a small pool of distinct values, the
// pathological case for partition-based algorithms with many duplicates.
func fewUnique(r *rand.Rand, n int) sorter.Array {
	poolSize := 5
	if poolSize > n {
		poolSize = n
	}
	if poolSize < 1 {
		poolSize = 1
	}
	a := make(sorter.Array, n)
	for i := range a {
		a[i] = sorter.Element(r.IntN(poolSize))
	}
	return a
}

// withDuplicates draws from a moderately sized value range, producing
// some repeats without collapsing to only a handful of distinct values.
func withDuplicates(r *rand.Rand, n int) sorter.Array {
	span := n / 2
	if span < 1 {
		span = 1
	}
	a := make(sorter.Array, n)
	for i := range a {
		a[i] = sorter.Element(r.IntN(span))
	}
	return a
}
