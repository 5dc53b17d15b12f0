package histogram

import (
	"math"
)

// BinSplit describes the best bin boundary found in one histogram. Samples
// in bins 0..Bin go left, bins Bin+1.. go right. Found is false when no
// boundary passed the feasibility gates.
type BinSplit struct {
	Feature      int
	Bin          int
	Gain         float64
	LeftCount    uint32
	RightCount   uint32
	LeftGradient float64
	LeftHessian  float64
	Found        bool
}

// SplitFinder scores bin boundaries of built histograms with the
// second-order gain used by gradient boosting.
type SplitFinder struct {
	// Lambda is the L2 regularization added to hessian sums.
	Lambda float64

	// MinDataInLeaf is the minimum sample count required on each side of
	// a boundary.
	MinDataInLeaf uint32
}

// minHessian guards the gain denominators.
const minHessian = 1e-16

// FindBestSplit sweeps the bin boundaries of hist left to right,
// maintaining cumulative left sums, and returns the boundary with the
// highest gain. totalGradient and totalHessian are the sums over the whole
// node (available from the histogram itself or the node's aggregate).
// Infeasible boundaries are skipped, never errors; Found reports whether
// any boundary was feasible. Ties keep the first boundary found, so the
// scan order is reproducible.
func (f *SplitFinder) FindBestSplit(feature int, hist Histogram, totalGradient, totalHessian float64) BinSplit {
	best := BinSplit{Feature: feature, Gain: math.Inf(-1)}

	var totalCount uint32
	for i := range hist {
		totalCount += hist[i].Count
	}

	var leftGrad, leftHess float64
	var leftCount uint32

	for i := 0; i < len(hist)-1; i++ {
		leftGrad += hist[i].SumGradient
		leftHess += hist[i].SumHessian
		leftCount += hist[i].Count

		rightCount := totalCount - leftCount
		if leftCount < f.MinDataInLeaf || rightCount < f.MinDataInLeaf {
			continue
		}

		rightGrad := totalGradient - leftGrad
		rightHess := totalHessian - leftHess

		gain := f.gain(leftGrad, leftHess, rightGrad, rightHess, totalGradient, totalHessian)
		if gain > best.Gain {
			best.Bin = i
			best.Gain = gain
			best.LeftCount = leftCount
			best.RightCount = rightCount
			best.LeftGradient = leftGrad
			best.LeftHessian = leftHess
			best.Found = true
		}
	}

	if !best.Found {
		best.Gain = 0
	}
	return best
}

// gain is the second-order split gain
// ½(G_l²/(H_l+λ) + G_r²/(H_r+λ) − G²/(H+λ)).
func (f *SplitFinder) gain(leftGrad, leftHess, rightGrad, rightHess, totalGrad, totalHess float64) float64 {
	leftHess += f.Lambda
	rightHess += f.Lambda
	totalHess += f.Lambda

	if leftHess < minHessian || rightHess < minHessian || totalHess < minHessian {
		return math.Inf(-1)
	}

	gain := 0.5 * (leftGrad*leftGrad/leftHess + rightGrad*rightGrad/rightHess - totalGrad*totalGrad/totalHess)
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		return math.Inf(-1)
	}
	return gain
}
