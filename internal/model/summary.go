package model

import "time"

// PredictionResult is the success output of a single prediction.
type PredictionResult struct {
	PredictedBedDemand float64 `json:"predicted_bed_demand"`
	Confidence         float64 `json:"confidence"`
}

// ErrorResult is the failure output of a single prediction.
type ErrorResult struct {
	Error string `json:"error"`
}

// BatchSummary captures metrics from a single batch run.
type BatchSummary struct {
	RunID         string
	InputPath     string
	OutputPath    string
	ModelSHA256   string
	RowsRead      int64
	RowsPredicted int64
	RowsFailed    int64
	DurationTotal time.Duration
}
