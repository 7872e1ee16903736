package model

// RecordRow mirrors the Parquet schema of a batch input file. Numeric
// columns are DOUBLE, flags BOOLEAN, categories and metadata BYTE_ARRAY.
type RecordRow struct {
	HospitalID *string `parquet:"hospital_id,optional"`
	Date       *string `parquet:"date,optional"`

	DayOfWeek         float64 `parquet:"day_of_week"`
	Month             float64 `parquet:"month"`
	WeekOfYear        float64 `parquet:"week_of_year"`
	IsWeekend         bool    `parquet:"is_weekend"`
	FestivalIntensity float64 `parquet:"festival_intensity"`
	IsFestival        bool    `parquet:"is_festival"`

	// Environment
	Temperature float64 `parquet:"temperature"`
	Humidity    float64 `parquet:"humidity"`
	AQI         float64 `parquet:"aqi"`
	Rainfall    float64 `parquet:"rainfall"`

	// Capacity
	TotalBeds    float64 `parquet:"total_beds"`
	ICUBeds      float64 `parquet:"icu_beds"`
	DoctorsCount float64 `parquet:"doctors_count"`
	NursesCount  float64 `parquet:"nurses_count"`

	// Demand history
	CurrentBedDemand float64 `parquet:"current_bed_demand"`
	Lag1Day          float64 `parquet:"lag_1_day"`
	Lag7Day          float64 `parquet:"lag_7_day"`
	Lag14Day         float64 `parquet:"lag_14_day"`
	RollingAvg7      float64 `parquet:"rolling_avg_7"`
	RollingAvg14     float64 `parquet:"rolling_avg_14"`
	RollingStd7      float64 `parquet:"rolling_std_7"`

	Season       string `parquet:"season"`
	HospitalType string `parquet:"hospital_type"`
}

// Record converts the row into an InputRecord.
func (r *RecordRow) Record() *InputRecord {
	return &InputRecord{
		DayOfWeek:         r.DayOfWeek,
		Month:             r.Month,
		WeekOfYear:        r.WeekOfYear,
		IsWeekend:         r.IsWeekend,
		FestivalIntensity: r.FestivalIntensity,
		IsFestival:        r.IsFestival,
		Temperature:       r.Temperature,
		Humidity:          r.Humidity,
		AQI:               r.AQI,
		Rainfall:          r.Rainfall,
		TotalBeds:         r.TotalBeds,
		ICUBeds:           r.ICUBeds,
		DoctorsCount:      r.DoctorsCount,
		NursesCount:       r.NursesCount,
		CurrentBedDemand:  r.CurrentBedDemand,
		Lag1Day:           r.Lag1Day,
		Lag7Day:           r.Lag7Day,
		Lag14Day:          r.Lag14Day,
		RollingAvg7:       r.RollingAvg7,
		RollingAvg14:      r.RollingAvg14,
		RollingStd7:       r.RollingStd7,
		Season:            r.Season,
		HospitalType:      r.HospitalType,
		HospitalID:        derefStr(r.HospitalID),
		Date:              derefStr(r.Date),
	}
}

// PredictionRow is one line of batch output. Prediction fields are null
// when the record failed, in which case Error is set.
type PredictionRow struct {
	RunID      string  `parquet:"run_id" json:"run_id"`
	RowNumber  int64   `parquet:"row_number" json:"row_number"`
	HospitalID *string `parquet:"hospital_id,optional" json:"hospital_id,omitempty"`
	Date       *string `parquet:"date,optional" json:"date,omitempty"`

	PredictedBedDemand *float64 `parquet:"predicted_bed_demand,optional" json:"predicted_bed_demand,omitempty"`
	Confidence         *float64 `parquet:"confidence,optional" json:"confidence,omitempty"`
	CurrentBedDemand   *float64 `parquet:"current_bed_demand,optional" json:"current_bed_demand,omitempty"`
	SurgeExpected      *bool    `parquet:"surge_expected,optional" json:"surge_expected,omitempty"`
	SurgePercentage    *float64 `parquet:"surge_percentage,optional" json:"surge_percentage,omitempty"`

	Error *string `parquet:"error,optional" json:"error,omitempty"`
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
