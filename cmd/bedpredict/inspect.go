package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/bedpredict/internal/exitcode"
	"github.com/gyeh/bedpredict/internal/features"
	"github.com/gyeh/bedpredict/internal/mlmodel"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate a model artifact against the feature schema (no prediction)",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&cfg.ModelPath, "model", "", "Path to model artifact (required)")
	_ = inspectCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := newLogger("info")

	if err := cfg.ValidateModel(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	m, err := mlmodel.Load(cfg.ModelPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load model")
		os.Exit(exitcode.ModelLoadError)
	}

	fmt.Println("=== bedpredict inspect ===")
	fmt.Printf("File:       %s\n", m.Path)
	fmt.Printf("SHA-256:    %s\n", m.SHA256)
	fmt.Printf("Size:       %d bytes\n", m.Size)
	fmt.Printf("Name:       %s\n", m.Name)
	fmt.Printf("Kind:       %s\n", m.Kind)
	fmt.Printf("Features:   %d\n", len(m.Features()))
	if m.SupportsConfidence() {
		fmt.Println("Confidence: from model probabilities")
	} else {
		fmt.Printf("Confidence: default %.2f\n", cfg.DefaultConfidence)
	}

	expected := features.Columns()
	if err := m.CheckColumns(expected); err != nil {
		fmt.Println()
		fmt.Printf("Schema check: FAILED (%v)\n", err)
		missing, extra := columnDiff(expected, m.Features())
		for _, c := range missing {
			fmt.Printf("  - %s (built, not in model)\n", c)
		}
		for _, c := range extra {
			fmt.Printf("  + %s (in model, not built)\n", c)
		}
		os.Exit(exitcode.ValidationError)
	}
	fmt.Println("Schema check: OK")
	return nil
}

// columnDiff returns the columns only in built and the columns only in trained.
func columnDiff(built, trained []string) (missing, extra []string) {
	inTrained := make(map[string]bool, len(trained))
	for _, c := range trained {
		inTrained[c] = true
	}
	inBuilt := make(map[string]bool, len(built))
	for _, c := range built {
		inBuilt[c] = true
		if !inTrained[c] {
			missing = append(missing, c)
		}
	}
	for _, c := range trained {
		if !inBuilt[c] {
			extra = append(extra, c)
		}
	}
	return missing, extra
}
