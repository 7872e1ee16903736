package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validInput() map[string]any {
	return map[string]any{
		"day_of_week":        3,
		"month":              6,
		"week_of_year":       23,
		"is_weekend":         false,
		"festival_intensity": 0,
		"is_festival":        true,
		"temperature":        31.5,
		"humidity":           70,
		"aqi":                120,
		"rainfall":           2.5,
		"total_beds":         300,
		"icu_beds":           30,
		"doctors_count":      40,
		"nurses_count":       110,
		"current_bed_demand": 210,
		"lag_1_day":          205,
		"lag_7_day":          198,
		"lag_14_day":         190,
		"rolling_avg_7":      202.4,
		"rolling_avg_14":     199.1,
		"rolling_std_7":      6.3,
		"season":             "Summer",
		"hospital_type":      "Private",
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestParseInput_Valid(t *testing.T) {
	in := validInput()
	in["date"] = "2025-06-04"
	in["hospital_id"] = "H007"

	rec, err := ParseInput(mustJSON(t, in))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if rec.DayOfWeek != 3 || rec.Temperature != 31.5 || rec.RollingStd7 != 6.3 {
		t.Errorf("numeric fields not decoded: %+v", rec)
	}
	if rec.IsWeekend || !rec.IsFestival {
		t.Errorf("flags: weekend=%v festival=%v", rec.IsWeekend, rec.IsFestival)
	}
	if rec.Season != "Summer" || rec.HospitalType != "Private" {
		t.Errorf("categories: %q %q", rec.Season, rec.HospitalType)
	}
	if rec.Date != "2025-06-04" || rec.HospitalID != "H007" {
		t.Errorf("metadata: %q %q", rec.Date, rec.HospitalID)
	}
}

func TestParseInput_Malformed(t *testing.T) {
	_, err := ParseInput([]byte(`{"day_of_week": 3,`))
	if !errors.Is(err, ErrInputParse) {
		t.Fatalf("expected ErrInputParse, got %v", err)
	}
}

func TestParseInput_NotAnObject(t *testing.T) {
	_, err := ParseInput([]byte(`[1, 2, 3]`))
	if !errors.Is(err, ErrInputParse) {
		t.Fatalf("expected ErrInputParse, got %v", err)
	}
}

func TestParseInput_MissingFields(t *testing.T) {
	in := validInput()
	delete(in, "aqi")
	delete(in, "season")

	_, err := ParseInput(mustJSON(t, in))
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if len(mfe.Fields) != 2 || mfe.Fields[0] != "aqi" || mfe.Fields[1] != "season" {
		t.Errorf("unexpected missing fields: %v", mfe.Fields)
	}
	if !strings.Contains(err.Error(), "aqi") || !strings.Contains(err.Error(), "season") {
		t.Errorf("message does not name the fields: %q", err.Error())
	}
}

func TestParseInput_SingleMissingField(t *testing.T) {
	in := validInput()
	delete(in, "lag_14_day")

	_, err := ParseInput(mustJSON(t, in))
	if err == nil || err.Error() != "missing required field: lag_14_day" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseInput_NumericTypeError(t *testing.T) {
	for _, v := range []any{"120", nil, true, []int{1}} {
		in := validInput()
		in["aqi"] = v
		_, err := ParseInput(mustJSON(t, in))
		if !errors.Is(err, ErrInputParse) {
			t.Errorf("aqi=%v: expected ErrInputParse, got %v", v, err)
			continue
		}
		if !strings.Contains(err.Error(), "aqi") {
			t.Errorf("aqi=%v: message does not name the field: %q", v, err.Error())
		}
	}
}

func TestParseInput_FlagCoercion(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{0, false},
		{2.5, true},
		{nil, false},
	}
	for _, tc := range cases {
		in := validInput()
		in["is_weekend"] = tc.value
		rec, err := ParseInput(mustJSON(t, in))
		if err != nil {
			t.Errorf("is_weekend=%v: %v", tc.value, err)
			continue
		}
		if rec.IsWeekend != tc.want {
			t.Errorf("is_weekend=%v: got %v, want %v", tc.value, rec.IsWeekend, tc.want)
		}
	}

	in := validInput()
	in["is_festival"] = "yes"
	if _, err := ParseInput(mustJSON(t, in)); !errors.Is(err, ErrInputParse) {
		t.Errorf("string flag: expected ErrInputParse, got %v", err)
	}
}

func TestParseInput_NonStringCategory(t *testing.T) {
	in := validInput()
	in["season"] = map[string]any{"name": "Summer"}
	in["hospital_type"] = nil

	rec, err := ParseInput(mustJSON(t, in))
	if err != nil {
		t.Fatalf("ParseInput: %v", err)
	}
	if _, ok := CategoryByName(AllSeasons, rec.Season); ok {
		t.Errorf("object season matched a category: %q", rec.Season)
	}
	if rec.HospitalType != "" {
		t.Errorf("null hospital_type decoded to %q", rec.HospitalType)
	}
}

func TestRequiredFields(t *testing.T) {
	fields := RequiredFields()
	if len(fields) != 23 {
		t.Fatalf("expected 23 required fields, got %d", len(fields))
	}
	if fields[0] != "day_of_week" || fields[len(fields)-1] != "hospital_type" {
		t.Errorf("unexpected order: %v", fields)
	}
}
