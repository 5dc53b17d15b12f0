package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totals(hist Histogram) (grad, hess float64) {
	for i := range hist {
		grad += hist[i].SumGradient
		hess += hist[i].SumHessian
	}
	return grad, hess
}

func TestFindBestSplit(t *testing.T) {
	finder := &SplitFinder{Lambda: 0, MinDataInLeaf: 1}

	// Strong negative gradients concentrated in the low bins: the best
	// boundary separates bins {0,1} from {2,3}.
	hist := Histogram{
		{SumGradient: -10, SumHessian: 2, Count: 2},
		{SumGradient: -8, SumHessian: 2, Count: 2},
		{SumGradient: 9, SumHessian: 2, Count: 2},
		{SumGradient: 9, SumHessian: 2, Count: 2},
	}
	totalGrad, totalHess := totals(hist)

	split := finder.FindBestSplit(3, hist, totalGrad, totalHess)
	require.True(t, split.Found)
	assert.Equal(t, 3, split.Feature)
	assert.Equal(t, 1, split.Bin)
	assert.Equal(t, uint32(4), split.LeftCount)
	assert.Equal(t, uint32(4), split.RightCount)
	assert.InDelta(t, -18.0, split.LeftGradient, 1e-12)
	assert.InDelta(t, 4.0, split.LeftHessian, 1e-12)

	// Gain at boundary 1: ½(18²/4 + 18²/4 − 0²/8) = 81.
	assert.InDelta(t, 81.0, split.Gain, 1e-9)
}

func TestFindBestSplitMinDataGate(t *testing.T) {
	finder := &SplitFinder{Lambda: 0, MinDataInLeaf: 3}

	// The numerically best boundary (bin 0) leaves only one sample on the
	// left; the gate must force a feasible boundary instead.
	hist := Histogram{
		{SumGradient: -100, SumHessian: 1, Count: 1},
		{SumGradient: -1, SumHessian: 2, Count: 2},
		{SumGradient: 1, SumHessian: 2, Count: 2},
		{SumGradient: 100, SumHessian: 1, Count: 1},
	}
	totalGrad, totalHess := totals(hist)

	split := finder.FindBestSplit(0, hist, totalGrad, totalHess)
	require.True(t, split.Found)
	assert.Equal(t, 1, split.Bin)
	assert.GreaterOrEqual(t, split.LeftCount, uint32(3))
	assert.GreaterOrEqual(t, split.RightCount, uint32(3))
}

func TestFindBestSplitNotFound(t *testing.T) {
	finder := &SplitFinder{Lambda: 0, MinDataInLeaf: 5}

	hist := Histogram{
		{SumGradient: -1, SumHessian: 1, Count: 2},
		{SumGradient: 1, SumHessian: 1, Count: 2},
	}
	totalGrad, totalHess := totals(hist)

	split := finder.FindBestSplit(0, hist, totalGrad, totalHess)
	assert.False(t, split.Found)
	assert.Zero(t, split.Gain)
}

func TestFindBestSplitTieKeepsFirstBoundary(t *testing.T) {
	finder := &SplitFinder{Lambda: 0, MinDataInLeaf: 1}

	// Symmetric histogram: boundaries 0 and 2 have identical gain; the
	// first one scanned must win.
	hist := Histogram{
		{SumGradient: -5, SumHessian: 1, Count: 1},
		{SumGradient: 0, SumHessian: 2, Count: 2},
		{SumGradient: 0, SumHessian: 2, Count: 2},
		{SumGradient: 5, SumHessian: 1, Count: 1},
	}
	totalGrad, totalHess := totals(hist)

	split := finder.FindBestSplit(0, hist, totalGrad, totalHess)
	require.True(t, split.Found)
	assert.Equal(t, 0, split.Bin)
}

func TestFindBestSplitRegularization(t *testing.T) {
	// L2 regularization shrinks every score; the chosen boundary can stay
	// the same but the gain must drop.
	hist := Histogram{
		{SumGradient: -10, SumHessian: 2, Count: 2},
		{SumGradient: 10, SumHessian: 2, Count: 2},
	}
	totalGrad, totalHess := totals(hist)

	plain := (&SplitFinder{Lambda: 0, MinDataInLeaf: 1}).FindBestSplit(0, hist, totalGrad, totalHess)
	regularized := (&SplitFinder{Lambda: 10, MinDataInLeaf: 1}).FindBestSplit(0, hist, totalGrad, totalHess)

	require.True(t, plain.Found)
	require.True(t, regularized.Found)
	assert.Less(t, regularized.Gain, plain.Gain)
}
