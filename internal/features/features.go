package features

import (
	"github.com/gyeh/bedpredict/internal/model"
)

// scalarColumns are the pass-through columns, in training order.
var scalarColumns = []string{
	"day_of_week",
	"month",
	"week_of_year",
	"is_weekend",
	"festival_intensity",
	"is_festival",
	"temperature",
	"humidity",
	"aqi",
	"rainfall",
	"total_beds",
	"icu_beds",
	"doctors_count",
	"nurses_count",
	"current_bed_demand",
	"lag_1_day",
	"lag_7_day",
	"lag_14_day",
	"rolling_avg_7",
	"rolling_avg_14",
	"rolling_std_7",
}

// Vector is a single ordered row of model inputs.
type Vector struct {
	Columns []string
	Values  []float64
}

// Columns returns the full ordered column list: scalar columns, then the
// season indicators, then the hospital type indicators.
func Columns() []string {
	cols := make([]string, 0, len(scalarColumns)+len(model.AllSeasons)+len(model.AllHospitalTypes))
	cols = append(cols, scalarColumns...)
	cols = append(cols, model.CategoryColumns(model.AllSeasons)...)
	cols = append(cols, model.CategoryColumns(model.AllHospitalTypes)...)
	return cols
}

// Build converts an InputRecord into the feature Vector. Flags become 0 or 1.
// A category value outside its group leaves every indicator of that group 0.
func Build(r *model.InputRecord) Vector {
	values := []float64{
		r.DayOfWeek,
		r.Month,
		r.WeekOfYear,
		Flag(r.IsWeekend),
		r.FestivalIntensity,
		Flag(r.IsFestival),
		r.Temperature,
		r.Humidity,
		r.AQI,
		r.Rainfall,
		r.TotalBeds,
		r.ICUBeds,
		r.DoctorsCount,
		r.NursesCount,
		r.CurrentBedDemand,
		r.Lag1Day,
		r.Lag7Day,
		r.Lag14Day,
		r.RollingAvg7,
		r.RollingAvg14,
		r.RollingStd7,
	}
	values = append(values, OneHot(model.AllSeasons, r.Season)...)
	values = append(values, OneHot(model.AllHospitalTypes, r.HospitalType)...)
	return Vector{Columns: Columns(), Values: values}
}
