package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInputParse marks input that is not valid JSON or holds a value of the
// wrong type for a required field.
var ErrInputParse = errors.New("invalid input")

// MissingFieldError reports every required field absent from an input record.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("missing required field: %s", e.Fields[0])
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// InputRecord holds the hospital and environmental attributes of one
// prediction request. HospitalID and Date are optional pass-through metadata
// and never reach the model.
type InputRecord struct {
	DayOfWeek         float64
	Month             float64
	WeekOfYear        float64
	IsWeekend         bool
	FestivalIntensity float64
	IsFestival        bool
	Temperature       float64
	Humidity          float64
	AQI               float64
	Rainfall          float64
	TotalBeds         float64
	ICUBeds           float64
	DoctorsCount      float64
	NursesCount       float64
	CurrentBedDemand  float64
	Lag1Day           float64
	Lag7Day           float64
	Lag14Day          float64
	RollingAvg7       float64
	RollingAvg14      float64
	RollingStd7       float64
	Season            string
	HospitalType      string

	HospitalID string
	Date       string
}

type inputField struct {
	name string
	ptr  func(r *InputRecord) any
}

// inputFields is the required schema, scalar fields first in feature column
// order, then the two categorical fields.
var inputFields = []inputField{
	{"day_of_week", func(r *InputRecord) any { return &r.DayOfWeek }},
	{"month", func(r *InputRecord) any { return &r.Month }},
	{"week_of_year", func(r *InputRecord) any { return &r.WeekOfYear }},
	{"is_weekend", func(r *InputRecord) any { return &r.IsWeekend }},
	{"festival_intensity", func(r *InputRecord) any { return &r.FestivalIntensity }},
	{"is_festival", func(r *InputRecord) any { return &r.IsFestival }},
	{"temperature", func(r *InputRecord) any { return &r.Temperature }},
	{"humidity", func(r *InputRecord) any { return &r.Humidity }},
	{"aqi", func(r *InputRecord) any { return &r.AQI }},
	{"rainfall", func(r *InputRecord) any { return &r.Rainfall }},
	{"total_beds", func(r *InputRecord) any { return &r.TotalBeds }},
	{"icu_beds", func(r *InputRecord) any { return &r.ICUBeds }},
	{"doctors_count", func(r *InputRecord) any { return &r.DoctorsCount }},
	{"nurses_count", func(r *InputRecord) any { return &r.NursesCount }},
	{"current_bed_demand", func(r *InputRecord) any { return &r.CurrentBedDemand }},
	{"lag_1_day", func(r *InputRecord) any { return &r.Lag1Day }},
	{"lag_7_day", func(r *InputRecord) any { return &r.Lag7Day }},
	{"lag_14_day", func(r *InputRecord) any { return &r.Lag14Day }},
	{"rolling_avg_7", func(r *InputRecord) any { return &r.RollingAvg7 }},
	{"rolling_avg_14", func(r *InputRecord) any { return &r.RollingAvg14 }},
	{"rolling_std_7", func(r *InputRecord) any { return &r.RollingStd7 }},
	{"season", func(r *InputRecord) any { return &r.Season }},
	{"hospital_type", func(r *InputRecord) any { return &r.HospitalType }},
}

// RequiredFields returns the names of all required input fields.
func RequiredFields() []string {
	names := make([]string, len(inputFields))
	for i, f := range inputFields {
		names[i] = f.name
	}
	return names
}

// Field returns a pointer to the named required field of r (*float64, *bool
// or *string), or nil when name is not a required field.
func (r *InputRecord) Field(name string) any {
	for _, f := range inputFields {
		if f.name == name {
			return f.ptr(r)
		}
	}
	return nil
}

// ParseInput decodes a JSON object into an InputRecord. Every required key
// is checked before any value is decoded, so a record missing several keys
// reports all of them at once.
func ParseInput(data []byte) (*InputRecord, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputParse, err)
	}

	var missing []string
	for _, f := range inputFields {
		if _, ok := raw[f.name]; !ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldError{Fields: missing}
	}

	rec := &InputRecord{}
	for _, f := range inputFields {
		v := raw[f.name]
		switch p := f.ptr(rec).(type) {
		case *float64:
			n, err := decodeNumber(v)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s: %v", ErrInputParse, f.name, err)
			}
			*p = n
		case *bool:
			b, err := decodeFlag(v)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s: %v", ErrInputParse, f.name, err)
			}
			*p = b
		case *string:
			*p = decodeLabel(v)
		}
	}

	rec.HospitalID = decodeLabel(raw["hospital_id"])
	rec.Date = decodeLabel(raw["date"])
	return rec, nil
}

// jsonKind names the JSON type of a raw value by its first byte.
func jsonKind(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "empty"
	}
	switch v[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

func decodeNumber(v json.RawMessage) (float64, error) {
	if k := jsonKind(v); k != "number" {
		return 0, fmt.Errorf("expected number, got %s", k)
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// decodeFlag accepts booleans, numbers (non-zero is true) and null (false).
func decodeFlag(v json.RawMessage) (bool, error) {
	switch k := jsonKind(v); k {
	case "bool":
		var b bool
		err := json.Unmarshal(v, &b)
		return b, err
	case "number":
		n, err := decodeNumber(v)
		return n != 0, err
	case "null":
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %s", k)
	}
}

// decodeLabel returns string values as-is and number literals verbatim.
// Anything else decodes to "", which matches no category.
func decodeLabel(v json.RawMessage) string {
	switch jsonKind(v) {
	case "string":
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return s
	case "number":
		return string(bytes.TrimSpace(v))
	default:
		return ""
	}
}
