package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/bedpredict/internal/exitcode"
	"github.com/gyeh/bedpredict/internal/features"
	"github.com/gyeh/bedpredict/internal/model"
	"github.com/gyeh/bedpredict/internal/predict"
)

var columnsOnly bool

var featuresCmd = &cobra.Command{
	Use:   "features <json-input>",
	Short: "Print the feature vector built from one JSON input record",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFeatures,
}

func init() {
	featuresCmd.Flags().BoolVar(&columnsOnly, "columns", false, "Print only the ordered column names")
	rootCmd.AddCommand(featuresCmd)
}

type featureDump struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values,omitempty"`
}

func runFeatures(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if columnsOnly {
		return predict.WriteJSON(out, featureDump{Columns: features.Columns()})
	}
	if len(args) == 0 {
		return errors.New("features needs a JSON input argument or --columns")
	}

	rec, err := model.ParseInput([]byte(args[0]))
	if err != nil {
		predict.WriteJSON(cmd.ErrOrStderr(), model.ErrorResult{Error: err.Error()})
		os.Exit(exitcode.Failure)
	}
	log := newLogger("warn")
	for _, c := range []struct {
		field, value string
		group        []model.Category
	}{
		{"season", rec.Season, model.AllSeasons},
		{"hospital_type", rec.HospitalType, model.AllHospitalTypes},
	} {
		if _, ok := model.CategoryByName(c.group, c.value); !ok {
			log.Warn().Str("field", c.field).Str("value", c.value).Msg("unrecognized category, its indicators are all 0")
		}
	}

	v := features.Build(rec)
	return predict.WriteJSON(out, featureDump{Columns: v.Columns, Values: v.Values})
}
