package mlmodel

import (
	"fmt"
	"math"
)

type softmax struct {
	classes      []string
	coefficients [][]float64
	intercepts   []float64
}

func (s softmax) PredictProba(x []float64) ([]float64, error) {
	scores := make([]float64, len(s.classes))
	peak := math.Inf(-1)
	for k, row := range s.coefficients {
		if len(row) != len(x) {
			return nil, fmt.Errorf("softmax: got %d features, want %d", len(x), len(row))
		}
		z := s.intercepts[k]
		for i, c := range row {
			z += c * x[i]
		}
		scores[k] = z
		if z > peak {
			peak = z
		}
	}
	var total float64
	for k, z := range scores {
		scores[k] = math.Exp(z - peak)
		total += scores[k]
	}
	for k := range scores {
		scores[k] /= total
	}
	return scores, nil
}

type fixed struct {
	probabilities []float64
}

func (f fixed) PredictProba([]float64) ([]float64, error) {
	out := make([]float64, len(f.probabilities))
	copy(out, f.probabilities)
	return out, nil
}

func buildProbability(spec ProbabilitySpec, nFeatures int) (ProbabilityEstimator, error) {
	switch spec.Kind {
	case ProbaSoftmax:
		k := len(spec.Classes)
		if k == 0 {
			return nil, fmt.Errorf("softmax head has no classes")
		}
		if len(spec.Coefficients) != k {
			return nil, fmt.Errorf("softmax head has %d coefficient rows for %d classes", len(spec.Coefficients), k)
		}
		for i, row := range spec.Coefficients {
			if len(row) != nFeatures {
				return nil, fmt.Errorf("softmax class %q has %d coefficients for %d features",
					spec.Classes[i], len(row), nFeatures)
			}
		}
		intercepts := spec.Intercepts
		if len(intercepts) == 0 {
			intercepts = make([]float64, k)
		}
		if len(intercepts) != k {
			return nil, fmt.Errorf("softmax head has %d intercepts for %d classes", len(intercepts), k)
		}
		return softmax{classes: spec.Classes, coefficients: spec.Coefficients, intercepts: intercepts}, nil

	case ProbaFixed:
		if len(spec.Probabilities) == 0 {
			return nil, fmt.Errorf("fixed head has no probabilities")
		}
		return fixed{probabilities: spec.Probabilities}, nil

	default:
		return nil, fmt.Errorf("unknown probability head kind %q", spec.Kind)
	}
}
