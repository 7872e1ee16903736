package mlmodel

import (
	"fmt"
)

// Regressor produces a single prediction from one feature row.
type Regressor interface {
	Predict(x []float64) (float64, error)
}

// ProbabilityEstimator produces a class-probability distribution from one
// feature row.
type ProbabilityEstimator interface {
	PredictProba(x []float64) ([]float64, error)
}

type constant struct {
	value float64
}

func (c constant) Predict([]float64) (float64, error) { return c.value, nil }

type linear struct {
	intercept    float64
	coefficients []float64
}

func (l linear) Predict(x []float64) (float64, error) {
	if len(x) != len(l.coefficients) {
		return 0, fmt.Errorf("linear: got %d features, want %d", len(x), len(l.coefficients))
	}
	y := l.intercept
	for i, c := range l.coefficients {
		y += c * x[i]
	}
	return y, nil
}

type tree struct {
	nodes     []TreeNode
	nFeatures int
}

func (t tree) Predict(x []float64) (float64, error) {
	if len(x) != t.nFeatures {
		return 0, fmt.Errorf("tree: got %d features, want %d", len(x), t.nFeatures)
	}
	// Children always have larger indices than their parent, so the walk ends.
	i := 0
	for {
		n := t.nodes[i]
		if n.Left == -1 {
			return n.Value, nil
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type ensemble struct {
	members      []Regressor
	weights      []float64 // normalized; mean aggregation only
	sum          bool
	baseScore    float64
	learningRate float64
}

func (e ensemble) Predict(x []float64) (float64, error) {
	var acc float64
	for i, m := range e.members {
		y, err := m.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("ensemble member %d: %w", i, err)
		}
		if e.sum {
			acc += y
		} else {
			acc += e.weights[i] * y
		}
	}
	if e.sum {
		return e.baseScore + e.learningRate*acc, nil
	}
	return acc, nil
}

// buildEstimator validates spec against the feature count and returns the
// matching Regressor.
func buildEstimator(spec EstimatorSpec, nFeatures int) (Regressor, error) {
	switch spec.Kind {
	case KindConstant:
		if spec.Value == nil {
			return nil, fmt.Errorf("constant estimator has no value")
		}
		return constant{value: *spec.Value}, nil

	case KindLinear:
		if len(spec.Coefficients) != nFeatures {
			return nil, fmt.Errorf("linear estimator has %d coefficients for %d features",
				len(spec.Coefficients), nFeatures)
		}
		return linear{intercept: spec.Intercept, coefficients: spec.Coefficients}, nil

	case KindTree:
		if err := validateTree(spec.Nodes, nFeatures); err != nil {
			return nil, err
		}
		return tree{nodes: spec.Nodes, nFeatures: nFeatures}, nil

	case KindEnsemble:
		return buildEnsemble(spec, nFeatures)

	case "":
		return nil, fmt.Errorf("estimator kind is empty")
	default:
		return nil, fmt.Errorf("unknown estimator kind %q", spec.Kind)
	}
}

func validateTree(nodes []TreeNode, nFeatures int) error {
	if len(nodes) == 0 {
		return fmt.Errorf("tree estimator has no nodes")
	}
	for i, n := range nodes {
		if n.Left == -1 {
			if n.Right != -1 {
				return fmt.Errorf("tree node %d: leaf has right child %d", i, n.Right)
			}
			continue
		}
		if n.Left <= i || n.Left >= len(nodes) || n.Right <= i || n.Right >= len(nodes) {
			return fmt.Errorf("tree node %d: children (%d, %d) out of range", i, n.Left, n.Right)
		}
		if n.Feature < 0 || n.Feature >= nFeatures {
			return fmt.Errorf("tree node %d: feature index %d out of range", i, n.Feature)
		}
	}
	return nil
}

func buildEnsemble(spec EstimatorSpec, nFeatures int) (Regressor, error) {
	if len(spec.Members) == 0 {
		return nil, fmt.Errorf("ensemble estimator has no members")
	}
	e := ensemble{members: make([]Regressor, len(spec.Members))}
	for i, m := range spec.Members {
		r, err := buildEstimator(m, nFeatures)
		if err != nil {
			return nil, fmt.Errorf("ensemble member %d: %w", i, err)
		}
		e.members[i] = r
	}

	switch spec.Aggregate {
	case AggregateMean, "":
		weights := spec.Weights
		if len(weights) == 0 {
			weights = make([]float64, len(spec.Members))
			for i := range weights {
				weights[i] = 1
			}
		}
		if len(weights) != len(spec.Members) {
			return nil, fmt.Errorf("ensemble has %d weights for %d members", len(weights), len(spec.Members))
		}
		var total float64
		for _, w := range weights {
			if w < 0 {
				return nil, fmt.Errorf("ensemble weight %v is negative", w)
			}
			total += w
		}
		if total == 0 {
			return nil, fmt.Errorf("ensemble weights sum to zero")
		}
		e.weights = make([]float64, len(weights))
		for i, w := range weights {
			e.weights[i] = w / total
		}
	case AggregateSum:
		e.sum = true
		e.baseScore = spec.BaseScore
		e.learningRate = 1
		if spec.LearningRate != nil {
			e.learningRate = *spec.LearningRate
		}
	default:
		return nil, fmt.Errorf("unknown ensemble aggregate %q", spec.Aggregate)
	}
	return e, nil
}
