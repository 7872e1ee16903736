package features

import "github.com/gyeh/bedpredict/internal/model"

// Flag maps a boolean to 1 or 0.
func Flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// OneHot returns one indicator per category in group, 1 where the category
// name equals value exactly.
func OneHot(group []model.Category, value string) []float64 {
	out := make([]float64, len(group))
	for i, c := range group {
		if c.Name == value {
			out[i] = 1
		}
	}
	return out
}
