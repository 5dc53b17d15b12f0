// Package treecore provides the statistical core for growing regression
// trees: sufficient-statistics aggregates, impurity criteria, binned
// gradient/hessian histograms, and a sorted-sweep split finder.
//
// The packages are building blocks for an external tree grower; none of
// them own the recursion, the binning, or the boosting loop.
//
// # Quick Start
//
// Finding the best split of a node over one feature:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/gogradient/treecore/criterion"
//	    "github.com/gogradient/treecore/splitter"
//	    "github.com/gogradient/treecore/stats"
//	)
//
//	func main() {
//	    values := []float64{1, 1, 2, 3, 3, 5}
//	    targets := []float64{0, 0, 10, 10, 10, 20}
//
//	    parent, err := stats.Aggregate(targets, nil, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    sp, err := splitter.NewRoot(splitter.Config{Criterion: criterion.MSE}, parent)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := sp.Scan(0, splitter.Argsort(values), values, targets, nil); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    if best, ok := sp.Best(); ok {
//	        fmt.Printf("split at %.2f, improvement %.4f\n", best.Threshold, best.Improvement)
//	    }
//	}
//
// # Packages
//
//   - stats: additive {sum, sum of squares, count, weight} aggregates
//   - criterion: variance impurity, proxy and full improvement scores
//   - histogram: per-bin gradient/hessian builds, the subtraction trick,
//     and second-order gain split finding over bins
//   - splitter: exact sorted-sweep split search with feasibility gates
//   - core/parallel: chunked worker helper used for per-feature builds
//
// All hot paths are allocation-free accumulation loops over caller-owned
// buffers; contract violations are rejected once at entry points, never
// inside the loops.
package treecore
