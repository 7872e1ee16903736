package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gyeh/bedpredict/internal/config"
	"github.com/gyeh/bedpredict/internal/mlmodel"
	"github.com/gyeh/bedpredict/internal/model"
	"github.com/gyeh/bedpredict/internal/predict"
)

const readBatchSize = 1024

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run predicts every record of cfg.InputPath with m and writes one row per
// record to cfg.OutputPath, in input order. Records that fail are written
// with their error and counted in RowsFailed; with cfg.FailFast the first
// failure aborts the run instead.
func Run(ctx context.Context, m *mlmodel.Model, log zerolog.Logger, cfg *config.Config) (*model.BatchSummary, error) {
	totalStart := time.Now()
	runID := uuid.New().String()
	log = log.With().Str("batch_run_id", runID).Logger()

	log.Info().Str("input", cfg.InputPath).Msg("opening input")
	src, err := OpenSource(cfg.InputPath)
	if err != nil {
		phase := "open"
		if errors.Is(err, ErrSchema) {
			phase = "validate"
		}
		return nil, &PipelineError{Phase: phase, Err: err}
	}
	defer src.Close()
	if counted, ok := src.(interface{ NumRows() int64 }); ok {
		log.Info().Int64("rows", counted.NumRows()).Msg("input schema validated")
	}

	sink, err := CreateSink(cfg.OutputPath)
	if err != nil {
		return nil, &PipelineError{Phase: "open", Err: err}
	}

	p := predict.NewPredictor(m, log)
	if cfg.DefaultConfidence > 0 {
		p.DefaultConfidence = cfg.DefaultConfidence
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	summary := &model.BatchSummary{
		RunID:       runID,
		InputPath:   cfg.InputPath,
		OutputPath:  cfg.OutputPath,
		ModelSHA256: m.SHA256,
	}

	items := make([]Item, readBatchSize)
	for {
		n, readErr := src.Read(items)
		if n > 0 {
			rows, err := predictChunk(ctx, p, runID, items[:n], workers, cfg.FailFast)
			if err != nil {
				sink.Close()
				return nil, &PipelineError{Phase: "predict", Err: err}
			}
			for i := range rows {
				summary.RowsRead++
				if rows[i].Error != nil {
					summary.RowsFailed++
					log.Warn().Int64("row", rows[i].RowNumber).Str("error", *rows[i].Error).Msg("row failed")
				} else {
					summary.RowsPredicted++
				}
			}
			if err := sink.Write(rows); err != nil {
				sink.Close()
				return nil, &PipelineError{Phase: "write", Err: err}
			}
			log.Debug().Int64("rows_read", summary.RowsRead).Msg("chunk written")
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			sink.Close()
			return nil, &PipelineError{Phase: "read", Err: readErr}
		}
	}

	if err := sink.Close(); err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_predicted", summary.RowsPredicted).
		Int64("rows_failed", summary.RowsFailed).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("batch complete")

	return summary, nil
}

// predictChunk runs inference over items with at most workers goroutines.
// Each goroutine writes only its own slot, so the result keeps input order.
func predictChunk(ctx context.Context, p *predict.Predictor, runID string, items []Item, workers int, failFast bool) ([]model.PredictionRow, error) {
	rows := make([]model.PredictionRow, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = predictItem(p, runID, items[i])
			if failFast && rows[i].Error != nil {
				return fmt.Errorf("row %d: %s", items[i].RowNumber, *rows[i].Error)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func predictItem(p *predict.Predictor, runID string, item Item) model.PredictionRow {
	row := model.PredictionRow{RunID: runID, RowNumber: item.RowNumber}
	if item.Err != nil {
		row.Error = optStr(item.Err.Error())
		return row
	}

	rec := item.Record
	row.HospitalID = optStr(rec.HospitalID)
	row.Date = optStr(rec.Date)
	current := rec.CurrentBedDemand
	row.CurrentBedDemand = &current

	res, err := p.Predict(rec)
	if err != nil {
		row.Error = optStr(err.Error())
		return row
	}

	pct, surge := predict.Surge(res.PredictedBedDemand, current)
	row.PredictedBedDemand = &res.PredictedBedDemand
	row.Confidence = &res.Confidence
	row.SurgePercentage = &pct
	row.SurgeExpected = &surge
	return row
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
