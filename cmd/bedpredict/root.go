package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/bedpredict/internal/config"
	"github.com/gyeh/bedpredict/internal/exitcode"
	"github.com/gyeh/bedpredict/internal/logging"
	"github.com/gyeh/bedpredict/internal/model"
	"github.com/gyeh/bedpredict/internal/predict"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "bedpredict <json-input> <model-path>",
	Short: "Hospital bed demand predictor",
	Long: `Loads a trained bed demand model artifact, builds the feature vector for one
JSON input record and prints {"predicted_bed_demand", "confidence"} on stdout.
Failures print {"error"} on stderr and exit 1.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runPredict,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML config file")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "", "Log level (default: disabled for predictions, info otherwise)")
	pf.Float64Var(&cfg.DefaultConfidence, "default-confidence", predict.DefaultConfidence, "Confidence reported when the model has no probability output")
}

// loadConfig merges the --config file under any flags set explicitly on the
// command line, then validates the result.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("default-confidence") {
		if err := config.CheckConfidence(cfg.DefaultConfidence); err != nil {
			fail(fmt.Errorf("--default-confidence: %w", err))
		}
	}
	if cfg.ConfigFile != "" {
		flagged := cfg
		if err := cfg.LoadFromFile(cfg.ConfigFile); err != nil {
			fail(err)
		}
		f := cmd.Flags()
		if f.Changed("log-format") {
			cfg.LogFormat = flagged.LogFormat
		}
		if f.Changed("log-level") {
			cfg.LogLevel = flagged.LogLevel
		}
		if f.Changed("default-confidence") {
			cfg.DefaultConfidence = flagged.DefaultConfidence
		}
		if f.Changed("workers") {
			cfg.Workers = flagged.Workers
		}
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	return nil
}

// newLogger builds the invocation logger. defaultLevel applies when neither
// --log-level nor the config file chose one.
func newLogger(defaultLevel string) zerolog.Logger {
	level := cfg.LogLevel
	if level == "" {
		level = defaultLevel
	}
	return logging.Setup(cfg.LogFormat, level).With().Str("run_id", uuid.NewString()).Logger()
}

// fail reports a usage error the way the predictor reports failures.
func fail(err error) {
	predict.WriteJSON(os.Stderr, model.ErrorResult{Error: err.Error()})
	os.Exit(exitcode.UsageError)
}

func runPredict(cmd *cobra.Command, args []string) error {
	log := newLogger("disabled")

	code := predict.Run(args, cmd.OutOrStdout(), cmd.ErrOrStderr(), predict.Options{
		DefaultConfidence: cfg.DefaultConfidence,
		Log:               log,
	})
	if code != exitcode.Success {
		os.Exit(code)
	}
	return nil
}
