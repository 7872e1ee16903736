// mkmodel writes a deterministic demo model artifact and a matching Parquet
// file of sample input records, for smoke-testing bedpredict end to end.
// Usage: go run ./cmd/mkmodel --model testdata/demo-model.json --records testdata/records.parquet --rows 200
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/bedpredict/internal/features"
	"github.com/gyeh/bedpredict/internal/mlmodel"
	"github.com/gyeh/bedpredict/internal/model"
)

func main() {
	modelOut := flag.String("model", "testdata/demo-model.json", "output model artifact (.json, .yaml, optionally .gz or .zst)")
	recordsOut := flag.String("records", "testdata/records.parquet", "output parquet of sample records (empty to skip)")
	rows := flag.Int("rows", 200, "number of sample records")
	seed := flag.Uint64("seed", 1, "random seed for sample records")
	flag.Parse()

	artifact := DemoArtifact()
	if _, err := mlmodel.Build(artifact); err != nil {
		fmt.Fprintf(os.Stderr, "demo artifact invalid: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*modelOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create model: %v\n", err)
		os.Exit(1)
	}
	if err := mlmodel.EncodeArtifact(f, *modelOut, artifact); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "encode model: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close model: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote model %q (%d features) to %s\n", artifact.Name, len(artifact.Features), *modelOut)

	if *recordsOut == "" {
		return
	}

	records := SampleRecords(*rows, *seed)
	out, err := os.Create(*recordsOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create records: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	writer := goparquet.NewGenericWriter[model.RecordRow](out)
	if _, err := writer.Write(records); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}

	seasons := make(map[string]int)
	for _, r := range records {
		seasons[r.Season]++
	}
	fmt.Printf("Wrote %d records to %s\n", len(records), *recordsOut)
	fmt.Println("Season distribution:")
	for _, s := range model.AllSeasons {
		fmt.Printf("  %-10s %d\n", s.Name, seasons[s.Name])
	}
}

// DemoArtifact returns a linear model plus a festival/air-quality tree,
// summed, with a three-class softmax head for confidence.
func DemoArtifact() *mlmodel.Artifact {
	cols := features.Columns()
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	weights := func(w map[string]float64) []float64 {
		out := make([]float64, len(cols))
		for name, v := range w {
			out[idx[name]] = v
		}
		return out
	}

	linear := mlmodel.EstimatorSpec{
		Kind:      mlmodel.KindLinear,
		Intercept: 2,
		Coefficients: weights(map[string]float64{
			"current_bed_demand":       0.35,
			"lag_1_day":                0.2,
			"lag_7_day":                0.1,
			"rolling_avg_7":            0.25,
			"rolling_avg_14":           0.05,
			"festival_intensity":       3,
			"is_weekend":               -2,
			"rainfall":                 0.05,
			"aqi":                      0.02,
			"season_Monsoon":           5,
			"hospital_type_Government": 3,
		}),
	}
	tree := mlmodel.EstimatorSpec{
		Kind: mlmodel.KindTree,
		Nodes: []mlmodel.TreeNode{
			{Feature: idx["is_festival"], Threshold: 0.5, Left: 1, Right: 2},
			{Feature: idx["aqi"], Threshold: 150, Left: 3, Right: 4},
			{Left: -1, Right: -1, Value: 12},
			{Left: -1, Right: -1, Value: 0},
			{Left: -1, Right: -1, Value: 6},
		},
	}

	return &mlmodel.Artifact{
		FormatVersion: mlmodel.FormatVersion,
		Name:          "bed_demand_demo",
		Features:      cols,
		Model: mlmodel.EstimatorSpec{
			Kind:      mlmodel.KindEnsemble,
			Aggregate: mlmodel.AggregateSum,
			Members:   []mlmodel.EstimatorSpec{linear, tree},
		},
		Probability: &mlmodel.ProbabilitySpec{
			Kind:    mlmodel.ProbaSoftmax,
			Classes: []string{"stable", "rising", "surge"},
			Coefficients: [][]float64{
				weights(map[string]float64{"aqi": -0.005}),
				weights(map[string]float64{"festival_intensity": 0.3}),
				weights(map[string]float64{"is_festival": 1.5, "aqi": 0.008}),
			},
			Intercepts: []float64{1, 0, -1},
		},
	}
}

// SampleRecords returns n plausible input rows drawn from a seeded generator.
func SampleRecords(n int, seed uint64) []model.RecordRow {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	round := func(v float64) float64 { return math.Round(v*10) / 10 }

	out := make([]model.RecordRow, n)
	for i := range out {
		day := i % 365
		dow := float64(day % 7)
		month := float64(day/31 + 1)
		festival := rng.Float64() < 0.1
		intensity := 0.0
		if festival {
			intensity = float64(rng.IntN(5) + 1)
		}
		beds := float64(100 + rng.IntN(400))
		demand := round(beds * (0.5 + 0.4*rng.Float64()))
		hospitalID := fmt.Sprintf("H%03d", i%25+1)
		date := fmt.Sprintf("2025-%02d-%02d", int(month), day%28+1)

		out[i] = model.RecordRow{
			HospitalID:        &hospitalID,
			Date:              &date,
			DayOfWeek:         dow,
			Month:             month,
			WeekOfYear:        float64(day/7 + 1),
			IsWeekend:         dow >= 5,
			FestivalIntensity: intensity,
			IsFestival:        festival,
			Temperature:       round(15 + 20*rng.Float64()),
			Humidity:          round(30 + 60*rng.Float64()),
			AQI:               float64(40 + rng.IntN(260)),
			Rainfall:          round(30 * rng.Float64()),
			TotalBeds:         beds,
			ICUBeds:           math.Round(beds * 0.1),
			DoctorsCount:      math.Round(beds / 8),
			NursesCount:       math.Round(beds / 3),
			CurrentBedDemand:  demand,
			Lag1Day:           round(demand * (0.95 + 0.1*rng.Float64())),
			Lag7Day:           round(demand * (0.9 + 0.2*rng.Float64())),
			Lag14Day:          round(demand * (0.85 + 0.3*rng.Float64())),
			RollingAvg7:       round(demand * (0.95 + 0.1*rng.Float64())),
			RollingAvg14:      round(demand * (0.9 + 0.2*rng.Float64())),
			RollingStd7:       round(demand * 0.05 * rng.Float64()),
			Season:            model.AllSeasons[int(month-1)/3%len(model.AllSeasons)].Name,
			HospitalType:      model.AllHospitalTypes[rng.IntN(len(model.AllHospitalTypes))].Name,
		}
	}
	return out
}
