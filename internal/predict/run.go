package predict

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gyeh/bedpredict/internal/exitcode"
	"github.com/gyeh/bedpredict/internal/mlmodel"
	"github.com/gyeh/bedpredict/internal/model"
)

// MissingArgumentsMessage is printed on stdout when the CLI gets fewer than
// two positional arguments.
const MissingArgumentsMessage = "Missing arguments"

// StageError wraps an error with the stage where it occurred.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Options tunes a single CLI invocation.
type Options struct {
	DefaultConfidence float64
	Log               zerolog.Logger
}

// Run executes one prediction for args = [json-input, model-path, ...] and
// returns the process exit code. The result goes to stdout; failures go to
// stderr as {"error": ...}, except a short argument list, which is reported
// on stdout.
func Run(args []string, stdout, stderr io.Writer, opts Options) int {
	if len(args) < 2 {
		if err := WriteJSON(stdout, model.ErrorResult{Error: MissingArgumentsMessage}); err != nil {
			opts.Log.Error().Err(err).Msg("write usage error")
		}
		return exitcode.UsageError
	}

	result, err := Once(args[0], args[1], opts)
	if err == nil {
		if err = WriteJSON(stdout, result); err == nil {
			return exitcode.Success
		}
		err = &StageError{Stage: "output", Err: err}
	}

	ev := opts.Log.Error().Err(err)
	if se, ok := err.(*StageError); ok {
		ev = ev.Str("stage", se.Stage)
		err = se.Err
	}
	ev.Msg("prediction failed")
	if werr := WriteJSON(stderr, model.ErrorResult{Error: err.Error()}); werr != nil {
		opts.Log.Error().Err(werr).Msg("write error result")
	}
	return exitcode.Failure
}

// Once parses rawInput, loads the model at modelPath and predicts.
func Once(rawInput, modelPath string, opts Options) (*model.PredictionResult, error) {
	log := opts.Log

	rec, err := model.ParseInput([]byte(rawInput))
	if err != nil {
		return nil, &StageError{Stage: "parse", Err: err}
	}

	m, err := mlmodel.Load(modelPath)
	if err != nil {
		return nil, &StageError{Stage: "load", Err: err}
	}
	log.Debug().
		Str("model", m.Name).
		Str("kind", m.Kind).
		Str("sha256", m.SHA256).
		Bool("confidence", m.SupportsConfidence()).
		Msg("model loaded")

	p := NewPredictor(m, log)
	if opts.DefaultConfidence > 0 {
		p.DefaultConfidence = opts.DefaultConfidence
	}
	result, err := p.Predict(rec)
	if err != nil {
		return nil, &StageError{Stage: "predict", Err: err}
	}

	log.Debug().
		Float64("predicted_bed_demand", result.PredictedBedDemand).
		Float64("confidence", result.Confidence).
		Msg("prediction complete")
	return result, nil
}

// WriteJSON writes v as a single JSON line. A value that cannot be encoded
// is replaced by an error object.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(model.ErrorResult{Error: err.Error()})
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
