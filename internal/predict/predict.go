package predict

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/gyeh/bedpredict/internal/features"
	"github.com/gyeh/bedpredict/internal/mlmodel"
	"github.com/gyeh/bedpredict/internal/model"
)

// DefaultConfidence is reported when the model cannot supply a probability.
const DefaultConfidence = 0.85

// SurgeThresholdPercent is the demand increase above which a surge is flagged.
const SurgeThresholdPercent = 10.0

// Predictor runs single-record inference against a loaded model.
type Predictor struct {
	Model             *mlmodel.Model
	DefaultConfidence float64
	Log               zerolog.Logger
}

// NewPredictor returns a Predictor with the standard default confidence.
func NewPredictor(m *mlmodel.Model, log zerolog.Logger) *Predictor {
	return &Predictor{Model: m, DefaultConfidence: DefaultConfidence, Log: log}
}

// Predict builds the feature vector for rec and returns the model's
// prediction together with a confidence score.
func (p *Predictor) Predict(rec *model.InputRecord) (*model.PredictionResult, error) {
	v := features.Build(rec)

	y, err := p.Model.Predict(v)
	if err != nil {
		return nil, err
	}

	return &model.PredictionResult{
		PredictedBedDemand: y,
		Confidence:         p.Confidence(v),
	}, nil
}

// Confidence returns the largest class probability the model assigns to v.
// Models without a probability head get the default. A probability call
// that fails also gets the default: confidence is advisory and must never
// fail a prediction that already succeeded.
func (p *Predictor) Confidence(v features.Vector) float64 {
	if !p.Model.SupportsConfidence() {
		return p.DefaultConfidence
	}
	proba, err := p.Model.PredictProba(v)
	if err != nil {
		p.Log.Debug().Err(err).Msg("probability output failed, using default confidence")
		return p.DefaultConfidence
	}
	c, err := MaxProbability(proba)
	if err != nil {
		p.Log.Debug().Err(err).Msg("probability output unusable, using default confidence")
		return p.DefaultConfidence
	}
	return c
}

// MaxProbability returns the largest entry of a probability distribution.
func MaxProbability(proba []float64) (float64, error) {
	if len(proba) == 0 {
		return 0, errors.New("empty probability distribution")
	}
	best := math.Inf(-1)
	for i, q := range proba {
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return 0, fmt.Errorf("probability %d is not finite", i)
		}
		if q > best {
			best = q
		}
	}
	return best, nil
}

// Surge compares a predicted demand against the current one. The percentage
// is rounded to two decimals and is 0 when current demand is not positive.
func Surge(predicted, current float64) (percent float64, expected bool) {
	if current > 0 {
		percent = math.Round((predicted-current)/current*100*100) / 100
	}
	return percent, percent > SurgeThresholdPercent
}
