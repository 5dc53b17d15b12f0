// Standard attribute keys used across treecore logging.
//
// Keys follow a hierarchical naming convention ("data.samples",
// "split.improvement") so log output can be filtered per concern.

package log

// Component and operation context.
const (
	// ComponentKey identifies which package emitted the log record.
	// Examples: "histogram", "splitter", "criterion"
	ComponentKey = "component"

	// OperationKey specifies the operation being performed.
	// Examples: "build", "build_root", "subtract", "scan", "expand"
	OperationKey = "operation"
)

// Data shape.
const (
	// SamplesKey is the number of samples covered by an operation.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features covered by an operation.
	FeaturesKey = "data.features"

	// BinsKey is the number of histogram bins per feature.
	BinsKey = "data.bins"
)

// Split selection results.
const (
	// FeatureKey is the feature id of a chosen split.
	FeatureKey = "split.feature"

	// ThresholdKey is the threshold of a chosen split.
	ThresholdKey = "split.threshold"

	// ImprovementKey is the impurity improvement of a chosen split.
	ImprovementKey = "split.improvement"

	// FoundKey reports whether a feasible split was found.
	FoundKey = "split.found"
)
