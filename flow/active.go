package flow

import "slices"

// activeSet holds the active nodes of a Push-Relabel run bucketed by height.
// Each bucket is kept sorted by node index so the highest-label pick breaks
// ties by node order without rescanning every node.
type activeSet struct {
	buckets [][]int
	top     int // no bucket above top is non-empty
	size    int
}

func newActiveSet(maxHeight int) *activeSet {
	return &activeSet{buckets: make([][]int, maxHeight+1)}
}

func (a *activeSet) add(v, h int) {
	for h >= len(a.buckets) {
		a.buckets = append(a.buckets, nil)
	}
	b := a.buckets[h]
	i, found := slices.BinarySearch(b, v)
	if found {
		return
	}
	a.buckets[h] = slices.Insert(b, i, v)
	a.size++
	a.top = max(a.top, h)
}

func (a *activeSet) remove(v, h int) {
	if h >= len(a.buckets) {
		return
	}
	b := a.buckets[h]
	i, found := slices.BinarySearch(b, v)
	if !found {
		return
	}
	a.buckets[h] = slices.Delete(b, i, i+1)
	a.size--
}

// highest returns the lowest-indexed node of the highest non-empty bucket.
func (a *activeSet) highest() (int, bool) {
	if a.size == 0 {
		return 0, false
	}
	for len(a.buckets[a.top]) == 0 {
		a.top--
	}

	return a.buckets[a.top][0], true
}
