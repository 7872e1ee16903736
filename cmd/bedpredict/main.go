package main

import (
	"os"

	"github.com/gyeh/bedpredict/internal/exitcode"
	"github.com/gyeh/bedpredict/internal/model"
	"github.com/gyeh/bedpredict/internal/predict"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		predict.WriteJSON(os.Stderr, model.ErrorResult{Error: err.Error()})
		os.Exit(exitcode.UsageError)
	}
}
