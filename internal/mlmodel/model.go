package mlmodel

import (
	"errors"
	"fmt"
	"math"

	"github.com/gyeh/bedpredict/internal/features"
)

var (
	// ErrModelLoad marks a model file that is missing, unreadable or not a
	// valid artifact.
	ErrModelLoad = errors.New("load model")
	// ErrInference marks a failed prediction call.
	ErrInference = errors.New("inference failed")
	// ErrNoProbability is returned by PredictProba on a model without a
	// probability head.
	ErrNoProbability = errors.New("model has no probability output")
)

// Model is a loaded, immutable predictor. It is safe for concurrent use.
type Model struct {
	Name   string
	Kind   string
	Path   string
	SHA256 string
	Size   int64

	features []string
	reg      Regressor
	proba    ProbabilityEstimator
}

// New wraps a Regressor trained on the given feature columns. proba may be
// nil; when it is and reg itself implements ProbabilityEstimator, reg is
// used for probabilities. The capability is fixed here and never re-probed.
func New(featureColumns []string, reg Regressor, proba ProbabilityEstimator) *Model {
	if proba == nil {
		if p, ok := reg.(ProbabilityEstimator); ok {
			proba = p
		}
	}
	cols := make([]string, len(featureColumns))
	copy(cols, featureColumns)
	return &Model{features: cols, reg: reg, proba: proba}
}

// Features returns the feature columns the model was trained on, in order.
func (m *Model) Features() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

// SupportsConfidence reports whether PredictProba is available.
func (m *Model) SupportsConfidence() bool {
	return m.proba != nil
}

// Predict runs the regressor on v.
func (m *Model) Predict(v features.Vector) (float64, error) {
	if err := m.checkColumns(v); err != nil {
		return 0, err
	}
	y, err := m.reg.Predict(v.Values)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInference, err)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: non-finite prediction %v", ErrInference, y)
	}
	return y, nil
}

// PredictProba runs the probability head on v.
func (m *Model) PredictProba(v features.Vector) ([]float64, error) {
	if m.proba == nil {
		return nil, ErrNoProbability
	}
	if err := m.checkColumns(v); err != nil {
		return nil, err
	}
	return m.proba.PredictProba(v.Values)
}

// CheckColumns compares a column list against the model's feature list and
// describes the first difference.
func (m *Model) CheckColumns(columns []string) error {
	if len(columns) != len(m.features) {
		return fmt.Errorf("model expects %d features, got %d", len(m.features), len(columns))
	}
	for i, c := range columns {
		if c != m.features[i] {
			return fmt.Errorf("feature column %d is %q, model expects %q", i, c, m.features[i])
		}
	}
	return nil
}

func (m *Model) checkColumns(v features.Vector) error {
	if len(v.Values) != len(v.Columns) {
		return fmt.Errorf("%w: vector has %d columns and %d values", ErrInference, len(v.Columns), len(v.Values))
	}
	if err := m.CheckColumns(v.Columns); err != nil {
		return fmt.Errorf("%w: %w", ErrInference, err)
	}
	return nil
}
