package main

import "testing"

func TestColumnDiff(t *testing.T) {
	missing, extra := columnDiff(
		[]string{"a", "b", "season_Summer"},
		[]string{"b", "a", "season_Autumn"},
	)
	if len(missing) != 1 || missing[0] != "season_Summer" {
		t.Errorf("missing: %v", missing)
	}
	if len(extra) != 1 || extra[0] != "season_Autumn" {
		t.Errorf("extra: %v", extra)
	}

	missing, extra = columnDiff([]string{"a"}, []string{"a"})
	if len(missing) != 0 || len(extra) != 0 {
		t.Errorf("identical lists: %v %v", missing, extra)
	}
}
