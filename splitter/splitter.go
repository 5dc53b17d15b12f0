// Package splitter implements sequential best-split search over samples
// pre-sorted by a continuous feature value. A Splitter owns the scan state
// of one in-progress node: running left/right aggregates that are updated
// incrementally as the candidate boundary sweeps the sorted order, and the
// best split found so far. Expanding a finished node seeds the children's
// aggregates from the winning split instead of rescanning data.
package splitter

import (
	"math"

	"github.com/gogradient/treecore/criterion"
	"github.com/gogradient/treecore/pkg/errors"
	"github.com/gogradient/treecore/pkg/log"
	"github.com/gogradient/treecore/stats"
)

// DefaultFeatureTolerance is the minimum difference between consecutive
// distinct feature values for a boundary between them to be considered.
// Splitting between effectively identical values would produce a threshold
// that misroutes ties.
const DefaultFeatureTolerance = 1e-7

// Config holds the split-search constraints for one tree fit.
type Config struct {
	// Criterion selects the impurity model. Resolved once at construction.
	Criterion criterion.Kind

	// MinSamplesLeaf is the minimum sample count of each child.
	// Values below 1 default to 1.
	MinSamplesLeaf int64

	// MinWeightLeaf is the minimum total weight of each child.
	MinWeightLeaf float64

	// FeatureTolerance overrides DefaultFeatureTolerance when positive,
	// so the distinctness gate can be tuned per feature scale.
	FeatureTolerance float64
}

// SplitRecord describes one candidate or winning split.
type SplitRecord struct {
	// Feature is the id of the feature the threshold applies to.
	Feature int

	// Pos is the original row index of the last sample routed left, the
	// boundary sample of the sorted scan.
	Pos int

	// Threshold is the midpoint of the feature values on either side of
	// the boundary. Samples with value <= Threshold go left.
	Threshold float64

	// Parent, Left and Right are aggregate snapshots taken when the
	// candidate was recorded. Left + Right == Parent by construction.
	Parent stats.Node
	Left   stats.Node
	Right  stats.Node

	// Impurity is the parent impurity, Improvement the weighted impurity
	// decrease normalized by the total weight at the tree root.
	Impurity    float64
	Improvement float64
}

// Splitter is the scan state of one node. It is not safe for concurrent
// use; run concurrent node evaluations on separate Splitters.
type Splitter struct {
	cfg  Config
	crit criterion.Criterion

	// totalWeight is the weight of the full training set, fixed at the
	// root and propagated through Expand for improvement normalization.
	totalWeight float64

	parent stats.Node

	// Running left/right aggregates of the current scan. left starts
	// empty, right starts holding the full node; Reset restores that
	// state without touching the best record.
	left  stats.Node
	right stats.Node

	best      SplitRecord
	bestProxy float64
	found     bool

	logger log.Logger
}

// NewRoot creates the Splitter for the root node of a tree. parent must be
// the aggregate of the full training set (see stats.Aggregate); its weight
// becomes the normalization constant for all improvements in this tree.
func NewRoot(cfg Config, parent stats.Node) (*Splitter, error) {
	const op = "splitter.NewRoot"

	if cfg.MinSamplesLeaf < 1 {
		cfg.MinSamplesLeaf = 1
	}
	if cfg.FeatureTolerance <= 0 {
		cfg.FeatureTolerance = DefaultFeatureTolerance
	}
	if cfg.MinWeightLeaf < 0 {
		return nil, errors.NewValidationError("MinWeightLeaf", "must be non-negative", cfg.MinWeightLeaf)
	}

	crit, err := criterion.New(cfg.Criterion)
	if err != nil {
		return nil, err
	}

	if parent.Count <= 0 || parent.Weight <= 0 {
		return nil, errors.NewValueError(op, "parent aggregate is empty")
	}
	if err := errors.CheckFiniteScalar(op, parent.SumY); err != nil {
		return nil, err
	}
	if err := errors.CheckFiniteScalar(op, parent.SumYSq); err != nil {
		return nil, err
	}

	return newSplitter(cfg, crit, parent, parent.Weight), nil
}

func newSplitter(cfg Config, crit criterion.Criterion, parent stats.Node, totalWeight float64) *Splitter {
	return &Splitter{
		cfg:         cfg,
		crit:        crit,
		totalWeight: totalWeight,
		parent:      parent,
		right:       parent,
		bestProxy:   math.Inf(-1),
		logger:      log.GetLoggerWithName("splitter"),
	}
}

// Parent returns the aggregate of the node this splitter scans.
func (s *Splitter) Parent() stats.Node {
	return s.parent
}

// Reset restores the running aggregates to their pre-scan state, leaving
// the best-found-so-far record intact.
func (s *Splitter) Reset() {
	s.left = stats.Node{}
	s.right = s.parent
}

// Scan sweeps the node's samples in ascending order of one feature's value
// and updates the best split found so far. order lists the node's sample
// row indices sorted by values (ties broken by original row order, see
// Argsort); values, targets and weights are indexed by row. weights may be
// nil for unit weights.
//
// Preconditions (checked once here, never inside the loop): order is
// non-empty and covers exactly the parent's sample count, all buffers
// share the row space, and values[order[i]] is non-decreasing. Violations
// are caller bugs and fail fast.
//
// Infeasible boundaries are skipped silently; they occur routinely (pure
// leaves, all-identical feature values) and are not errors.
func (s *Splitter) Scan(feature int, order []int, values, targets, weights []float64) error {
	const op = "splitter.Scan"

	if len(order) == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if int64(len(order)) != s.parent.Count {
		return errors.NewDimensionError(op, "order", int(s.parent.Count), len(order))
	}
	if len(targets) != len(values) {
		return errors.NewDimensionError(op, "targets", len(values), len(targets))
	}
	if weights != nil && len(weights) != len(values) {
		return errors.NewDimensionError(op, "weights", len(values), len(weights))
	}
	for i, idx := range order {
		if idx < 0 || idx >= len(values) {
			return errors.NewValueError(op, "order contains a row index out of range")
		}
		if i > 0 && values[idx] < values[order[i-1]] {
			return errors.NewValueError(op, "order is not sorted by feature value")
		}
	}

	s.Reset()

	prevIdx := order[0]
	prevValue := values[prevIdx]

	for i, idx := range order {
		v := values[idx]

		// Decide whether prevIdx is a valid boundary before the current
		// sample crosses from right to left.
		if i > 0 && v-prevValue > s.cfg.FeatureTolerance {
			if s.left.Count >= s.cfg.MinSamplesLeaf && s.right.Count >= s.cfg.MinSamplesLeaf &&
				s.left.Weight >= s.cfg.MinWeightLeaf && s.right.Weight >= s.cfg.MinWeightLeaf {
				proxy := s.crit.ProxyImprovement(s.left, s.right)
				// Strictly greater: the first boundary reaching a maximal
				// proxy wins, keeping left-to-right scans reproducible.
				if proxy > s.bestProxy {
					s.recordBest(feature, prevIdx, (prevValue+v)/2, proxy)
				}
			}
		}

		w := 1.0
		if weights != nil {
			w = weights[idx]
		}
		s.left.AddSample(targets[idx], w)
		s.right.SubSample(targets[idx], w)

		prevIdx = idx
		prevValue = v
	}

	s.logger.Debug("feature scanned",
		log.OperationKey, "scan",
		log.FeatureKey, feature,
		log.SamplesKey, len(order),
		log.FoundKey, s.found,
	)
	return nil
}

func (s *Splitter) recordBest(feature, pos int, threshold, proxy float64) {
	s.best = SplitRecord{
		Feature:     feature,
		Pos:         pos,
		Threshold:   threshold,
		Parent:      s.parent,
		Left:        s.left,
		Right:       s.right,
		Impurity:    s.crit.Impurity(s.parent),
		Improvement: s.crit.Improvement(s.parent, s.left, s.right, s.totalWeight),
	}
	s.bestProxy = proxy
	s.found = true
}

// Best returns the best split found across all scans so far. The second
// return is false when no feasible boundary has been seen, which callers
// treat as "keep this node a leaf".
func (s *Splitter) Best() (SplitRecord, bool) {
	return s.best, s.found
}

// Expand consumes the best split and returns splitters for the two child
// nodes. The children's full-node aggregates are seeded from the winning
// split's left/right snapshots, so neither child recomputes its totals
// from raw data before its own scans. Returns errors.ErrNoSplit when no
// feasible split was found.
func (s *Splitter) Expand() (*Splitter, *Splitter, error) {
	const op = "splitter.Expand"

	if !s.found {
		return nil, nil, errors.Wrap(errors.ErrNoSplit, op)
	}

	left := newSplitter(s.cfg, s.crit, s.best.Left, s.totalWeight)
	right := newSplitter(s.cfg, s.crit, s.best.Right, s.totalWeight)

	s.logger.Debug("node expanded",
		log.OperationKey, "expand",
		log.FeatureKey, s.best.Feature,
		log.ThresholdKey, s.best.Threshold,
		log.ImprovementKey, s.best.Improvement,
	)
	return left, right, nil
}
