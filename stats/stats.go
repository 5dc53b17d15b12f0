// Package stats implements the decomposable sufficient-statistics aggregate
// used for variance-based split selection. A Node summarizes an arbitrary
// sample subset with fixed-size state: target sum, sum of squares, sample
// count and weight sum. Aggregates over disjoint subsets add pointwise, and
// subtracting a sub-aggregate from its superset yields the complement
// exactly, without revisiting samples.
package stats

import (
	"github.com/gogradient/treecore/pkg/errors"
)

// Node is the sufficient-statistics aggregate of one sample subset.
// It is a plain value: snapshot by assignment, combine with Add/Combine,
// invert with Sub/Diff. Fields are only written through these operations.
type Node struct {
	SumY   float64 // sum of target values
	SumYSq float64 // sum of squared target values
	Count  int64   // number of samples
	Weight float64 // sum of sample weights
}

// Reset overwrites all fields, (re)initializing the aggregate with a
// precomputed total.
func (n *Node) Reset(sumY, sumYSq float64, count int64, weight float64) {
	n.SumY = sumY
	n.SumYSq = sumYSq
	n.Count = count
	n.Weight = weight
}

// AddSample folds one weighted sample into the aggregate.
func (n *Node) AddSample(y, w float64) {
	n.SumY += w * y
	n.SumYSq += w * y * y
	n.Count++
	n.Weight += w
}

// SubSample removes one weighted sample from the aggregate. The sample must
// have been counted in n.
func (n *Node) SubSample(y, w float64) {
	n.SumY -= w * y
	n.SumYSq -= w * y * y
	n.Count--
	n.Weight -= w
}

// Add folds another aggregate into n. The two aggregates must cover
// disjoint sample sets.
func (n *Node) Add(m Node) {
	n.SumY += m.SumY
	n.SumYSq += m.SumYSq
	n.Count += m.Count
	n.Weight += m.Weight
}

// Sub removes a sub-aggregate from n. Every sample counted in m must also
// be counted in n; violating this silently produces a nonsensical
// aggregate, which the criterion treats as "do not consider".
func (n *Node) Sub(m Node) {
	n.SumY -= m.SumY
	n.SumYSq -= m.SumYSq
	n.Count -= m.Count
	n.Weight -= m.Weight
}

// Combine returns the aggregate of the union of two disjoint sample sets.
// Commutative and associative.
func Combine(a, b Node) Node {
	a.Add(b)
	return a
}

// Diff returns the aggregate of a's samples not covered by b. Defined only
// when b is a sub-aggregate of a.
func Diff(a, b Node) Node {
	a.Sub(b)
	return a
}

// Mean returns the weighted mean target of the subset. Undefined when
// Weight is zero; callers must not invoke it on an empty aggregate.
func (n Node) Mean() float64 {
	return n.SumY / n.Weight
}

// Aggregate builds a Node over the samples listed in indices, reading
// target and weight per sample index. A nil indices slice aggregates all
// samples. A nil weights slice means unit weights.
func Aggregate(targets, weights []float64, indices []int) (Node, error) {
	const op = "stats.Aggregate"

	if len(targets) == 0 {
		return Node{}, errors.Wrap(errors.ErrEmptyData, op)
	}
	if weights != nil && len(weights) != len(targets) {
		return Node{}, errors.NewDimensionError(op, "weights", len(targets), len(weights))
	}

	var n Node
	if indices == nil {
		for i, y := range targets {
			w := 1.0
			if weights != nil {
				w = weights[i]
			}
			n.AddSample(y, w)
		}
		return n, nil
	}

	for _, idx := range indices {
		if idx < 0 || idx >= len(targets) {
			return Node{}, errors.NewValueError(op, "sample index out of range")
		}
		w := 1.0
		if weights != nil {
			w = weights[idx]
		}
		n.AddSample(targets[idx], w)
	}
	return n, nil
}
