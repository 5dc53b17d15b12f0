// Package histogram implements the binned gradient/hessian aggregation used
// by histogram-based gradient boosting. A Histogram holds one aggregate per
// fixed-width bin of a feature's binned representation; builds are pure
// accumulation passes over caller-owned buffers, and a sibling's histogram
// can be derived from its parent and the other child by per-bin subtraction
// instead of a second data scan.
//
// All builds are single-threaded pure functions with no shared state, so an
// external scheduler may run independent (node, feature) builds
// concurrently with disjoint outputs. BuildFeatures does exactly that
// across features.
package histogram

import (
	"github.com/gogradient/treecore/core/parallel"
	"github.com/gogradient/treecore/pkg/errors"
	"github.com/gogradient/treecore/pkg/log"
)

// Bin is the aggregate of the samples falling into one bin.
type Bin struct {
	SumGradient float64
	SumHessian  float64
	Count       uint32
}

// Histogram is an ordered sequence of bins indexed 0..nBins-1. Bin i always
// means the same value range across builds and subtractions for a feature,
// so histograms for the same feature stay comparable.
type Histogram []Bin

// Totals sums the gradient, hessian and count across all bins. For a root
// histogram these are the node totals split finding needs.
func (h Histogram) Totals() (sumGradient, sumHessian float64, count uint32) {
	for i := range h {
		sumGradient += h[i].SumGradient
		sumHessian += h[i].SumHessian
		count += h[i].Count
	}
	return sumGradient, sumHessian, count
}

// Builder builds histograms for features binned into a fixed number of
// bins. A Builder is stateless apart from its configuration and safe for
// concurrent use.
type Builder struct {
	nBins int
}

// NewBuilder creates a Builder for features with nBins bins. Bin indices
// are uint8, so nBins must be in [1, 256].
func NewBuilder(nBins int) (*Builder, error) {
	if nBins < 1 || nBins > 256 {
		return nil, errors.NewValidationError("nBins", "must be in [1, 256]", nBins)
	}
	return &Builder{nBins: nBins}, nil
}

// NBins returns the number of bins per feature.
func (b *Builder) NBins() int {
	return b.nBins
}

// Build accumulates gradients and hessians of the samples listed in
// sampleIndices into a fresh histogram. binned, gradients and hessians are
// indexed by sample row; sampleIndices is the explicit, possibly
// non-contiguous row set of the current node. Bin indices at or above
// NBins are a caller contract violation and panic.
func (b *Builder) Build(binned []uint8, sampleIndices []int, gradients, hessians []float64) (Histogram, error) {
	const op = "histogram.Build"
	if err := b.validate(op, binned, gradients, hessians); err != nil {
		return nil, err
	}

	hist := make(Histogram, b.nBins)
	for _, idx := range sampleIndices {
		bin := binned[idx]
		hist[bin].SumGradient += gradients[idx]
		hist[bin].SumHessian += hessians[idx]
		hist[bin].Count++
	}
	return hist, nil
}

// BuildNoHessian is Build for losses with a constant second derivative:
// hessian sums are left at zero and must not be read from the result.
func (b *Builder) BuildNoHessian(binned []uint8, sampleIndices []int, gradients []float64) (Histogram, error) {
	const op = "histogram.BuildNoHessian"
	if err := b.validate(op, binned, gradients, nil); err != nil {
		return nil, err
	}

	hist := make(Histogram, b.nBins)
	for _, idx := range sampleIndices {
		bin := binned[idx]
		hist[bin].SumGradient += gradients[idx]
		hist[bin].Count++
	}
	return hist, nil
}

// BuildRoot accumulates over all samples in row order. The root node owns
// the entire training set, so the subset indirection is skipped; binned,
// gradients and hessians must be aligned 1:1 by row.
func (b *Builder) BuildRoot(binned []uint8, gradients, hessians []float64) (Histogram, error) {
	const op = "histogram.BuildRoot"
	if err := b.validate(op, binned, gradients, hessians); err != nil {
		return nil, err
	}

	hist := make(Histogram, b.nBins)
	for i, bin := range binned {
		hist[bin].SumGradient += gradients[i]
		hist[bin].SumHessian += hessians[i]
		hist[bin].Count++
	}
	return hist, nil
}

// BuildRootNoHessian is BuildRoot without hessian accumulation.
func (b *Builder) BuildRootNoHessian(binned []uint8, gradients []float64) (Histogram, error) {
	const op = "histogram.BuildRootNoHessian"
	if err := b.validate(op, binned, gradients, nil); err != nil {
		return nil, err
	}

	hist := make(Histogram, b.nBins)
	for i, bin := range binned {
		hist[bin].SumGradient += gradients[i]
		hist[bin].Count++
	}
	return hist, nil
}

// Subtract returns parent minus child per bin. The child's samples must be
// a strict subset of the parent's; violating that yields silently wrong
// bins, the same precondition as stats.Diff. The external grower uses this
// to derive one sibling's histogram from the parent and the other child.
func (b *Builder) Subtract(parent, child Histogram) (Histogram, error) {
	const op = "histogram.Subtract"
	if len(parent) != b.nBins {
		return nil, errors.NewDimensionError(op, "parent", b.nBins, len(parent))
	}
	if len(child) != b.nBins {
		return nil, errors.NewDimensionError(op, "child", b.nBins, len(child))
	}

	hist := make(Histogram, b.nBins)
	for i := range hist {
		hist[i] = Bin{
			SumGradient: parent[i].SumGradient - child[i].SumGradient,
			SumHessian:  parent[i].SumHessian - child[i].SumHessian,
			Count:       parent[i].Count - child[i].Count,
		}
	}
	return hist, nil
}

// BuildFeatures builds one histogram per feature for a node's sample
// subset, running independent feature builds concurrently. binnedCols
// holds one binned column per feature; every column shares the sample
// row space of gradients and hessians. Pass hessians nil for the
// no-hessian variant.
func (b *Builder) BuildFeatures(binnedCols [][]uint8, sampleIndices []int, gradients, hessians []float64) ([]Histogram, error) {
	const op = "histogram.BuildFeatures"
	for _, col := range binnedCols {
		if len(col) != len(gradients) {
			return nil, errors.NewDimensionError(op, "binnedCols", len(gradients), len(col))
		}
	}
	if hessians != nil && len(hessians) != len(gradients) {
		return nil, errors.NewDimensionError(op, "hessians", len(gradients), len(hessians))
	}

	hists := make([]Histogram, len(binnedCols))
	errs := make([]error, len(binnedCols))

	parallel.ParallelizeWithThreshold(len(binnedCols), 1, func(start, end int) {
		for j := start; j < end; j++ {
			if hessians == nil {
				hists[j], errs[j] = b.BuildNoHessian(binnedCols[j], sampleIndices, gradients)
			} else {
				hists[j], errs[j] = b.Build(binnedCols[j], sampleIndices, gradients, hessians)
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	logger := log.GetLoggerWithName("histogram")
	logger.Debug("feature histograms built",
		log.OperationKey, "build_features",
		log.FeaturesKey, len(binnedCols),
		log.SamplesKey, len(sampleIndices),
		log.BinsKey, b.nBins,
	)
	return hists, nil
}

// BuildRootFeatures is BuildFeatures over the whole training set in row
// order, skipping the subset indirection.
func (b *Builder) BuildRootFeatures(binnedCols [][]uint8, gradients, hessians []float64) ([]Histogram, error) {
	const op = "histogram.BuildRootFeatures"
	for _, col := range binnedCols {
		if len(col) != len(gradients) {
			return nil, errors.NewDimensionError(op, "binnedCols", len(gradients), len(col))
		}
	}
	if hessians != nil && len(hessians) != len(gradients) {
		return nil, errors.NewDimensionError(op, "hessians", len(gradients), len(hessians))
	}

	hists := make([]Histogram, len(binnedCols))
	errs := make([]error, len(binnedCols))

	parallel.ParallelizeWithThreshold(len(binnedCols), 1, func(start, end int) {
		for j := start; j < end; j++ {
			if hessians == nil {
				hists[j], errs[j] = b.BuildRootNoHessian(binnedCols[j], gradients)
			} else {
				hists[j], errs[j] = b.BuildRoot(binnedCols[j], gradients, hessians)
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return hists, nil
}

func (b *Builder) validate(op string, binned []uint8, gradients, hessians []float64) error {
	if len(binned) != len(gradients) {
		return errors.NewDimensionError(op, "gradients", len(binned), len(gradients))
	}
	if hessians != nil && len(hessians) != len(gradients) {
		return errors.NewDimensionError(op, "hessians", len(gradients), len(hessians))
	}
	return nil
}
