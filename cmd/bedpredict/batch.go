package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/bedpredict/internal/batch"
	"github.com/gyeh/bedpredict/internal/exitcode"
	"github.com/gyeh/bedpredict/internal/mlmodel"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Predict every record of a Parquet or JSON Lines file",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&cfg.InputPath, "input", "", "Input records, .parquet or .jsonl (required)")
	f.StringVar(&cfg.OutputPath, "output", "", "Output predictions, .parquet or .jsonl (required)")
	f.StringVar(&cfg.ModelPath, "model", "", "Path to model artifact (required)")
	f.IntVar(&cfg.Workers, "workers", 0, "Concurrent inference workers (default: GOMAXPROCS)")
	f.BoolVar(&cfg.FailFast, "fail-fast", false, "Abort on the first record that fails instead of recording its error")
	_ = batchCmd.MarkFlagRequired("input")
	_ = batchCmd.MarkFlagRequired("output")
	_ = batchCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := newLogger("info")
	ctx := context.Background()

	if err := cfg.ValidateBatch(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	m, err := mlmodel.Load(cfg.ModelPath)
	if err != nil {
		log.Error().Err(err).Msg("model load failed")
		os.Exit(exitcode.ModelLoadError)
	}
	log.Info().
		Str("model", m.Name).
		Str("sha256", m.SHA256).
		Bool("confidence", m.SupportsConfidence()).
		Msg("model loaded")

	summary, err := batch.Run(ctx, m, log, &cfg)
	if err != nil {
		var pe *batch.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("batch failed")
			switch pe.Phase {
			case "validate":
				os.Exit(exitcode.ValidationError)
			case "predict":
				os.Exit(exitcode.Failure)
			default:
				os.Exit(exitcode.IOError)
			}
		}
		log.Error().Err(err).Msg("batch failed")
		os.Exit(exitcode.IOError)
	}

	fmt.Printf("Batch complete: %d rows read, %d predicted, %d failed (%.1fs)\n",
		summary.RowsRead, summary.RowsPredicted, summary.RowsFailed, summary.DurationTotal.Seconds())
	if summary.RowsFailed > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
