package model

import "testing"

func TestCategoryByName(t *testing.T) {
	c, ok := CategoryByName(AllHospitalTypes, "Trust")
	if !ok || c.Column != "hospital_type_Trust" {
		t.Errorf("Trust: got %+v, %v", c, ok)
	}
	if _, ok := CategoryByName(AllSeasons, "summer"); ok {
		t.Error("matching must be case-sensitive")
	}
	if _, ok := CategoryByName(AllSeasons, "Autumn"); ok {
		t.Error("Autumn is not a season category")
	}
}

func TestCategoryColumns(t *testing.T) {
	cols := CategoryColumns(AllSeasons)
	want := []string{"season_Monsoon", "season_Winter", "season_Summer", "season_Spring"}
	if len(cols) != len(want) {
		t.Fatalf("got %v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, cols[i], want[i])
		}
	}
}
