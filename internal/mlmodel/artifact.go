package mlmodel

// FormatVersion is the only artifact format version this build reads.
const FormatVersion = 1

// Estimator kinds.
const (
	KindConstant = "constant"
	KindLinear   = "linear"
	KindTree     = "tree"
	KindEnsemble = "ensemble"
)

// Probability head kinds.
const (
	ProbaSoftmax = "softmax"
	ProbaFixed   = "fixed"
)

// Ensemble aggregations.
const (
	AggregateMean = "mean"
	AggregateSum  = "sum"
)

// Artifact is the on-disk model document, encoded as JSON or YAML.
type Artifact struct {
	FormatVersion int              `json:"format_version" yaml:"format_version"`
	Name          string           `json:"name,omitempty" yaml:"name,omitempty"`
	Features      []string         `json:"features" yaml:"features"`
	Model         EstimatorSpec    `json:"model" yaml:"model"`
	Probability   *ProbabilitySpec `json:"probability,omitempty" yaml:"probability,omitempty"`
}

// EstimatorSpec describes one estimator. Which fields apply depends on Kind.
type EstimatorSpec struct {
	Kind string `json:"kind" yaml:"kind"`

	// constant
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty"`

	// linear
	Intercept    float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`
	Coefficients []float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`

	// tree
	Nodes []TreeNode `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	// ensemble
	Members      []EstimatorSpec `json:"members,omitempty" yaml:"members,omitempty"`
	Aggregate    string          `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Weights      []float64       `json:"weights,omitempty" yaml:"weights,omitempty"`
	BaseScore    float64         `json:"base_score,omitempty" yaml:"base_score,omitempty"`
	LearningRate *float64        `json:"learning_rate,omitempty" yaml:"learning_rate,omitempty"`
}

// TreeNode is one node of a binary regression tree. A node with Left == -1
// is a leaf and yields Value; otherwise x[Feature] <= Threshold goes Left.
type TreeNode struct {
	Feature   int     `json:"feature" yaml:"feature"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Left      int     `json:"left" yaml:"left"`
	Right     int     `json:"right" yaml:"right"`
	Value     float64 `json:"value" yaml:"value"`
}

// ProbabilitySpec describes the optional class-probability head.
type ProbabilitySpec struct {
	Kind string `json:"kind" yaml:"kind"`

	// softmax
	Classes      []string    `json:"classes,omitempty" yaml:"classes,omitempty"`
	Coefficients [][]float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercepts   []float64   `json:"intercepts,omitempty" yaml:"intercepts,omitempty"`

	// fixed
	Probabilities []float64 `json:"probabilities,omitempty" yaml:"probabilities,omitempty"`
}
