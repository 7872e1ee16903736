package model

// Category is one of the values of a one-hot encoded input field.
type Category struct {
	Name   string // e.g. "Monsoon"
	Column string // feature column name, e.g. "season_Monsoon"
}

// AllSeasons lists the season categories in feature column order.
var AllSeasons = []Category{
	{Name: "Monsoon", Column: "season_Monsoon"},
	{Name: "Winter", Column: "season_Winter"},
	{Name: "Summer", Column: "season_Summer"},
	{Name: "Spring", Column: "season_Spring"},
}

// AllHospitalTypes lists the hospital type categories in feature column order.
var AllHospitalTypes = []Category{
	{Name: "Government", Column: "hospital_type_Government"},
	{Name: "Private", Column: "hospital_type_Private"},
	{Name: "Trust", Column: "hospital_type_Trust"},
}

// CategoryColumns returns just the column names for a category group.
func CategoryColumns(group []Category) []string {
	cols := make([]string, len(group))
	for i, c := range group {
		cols[i] = c.Column
	}
	return cols
}

// CategoryByName returns the Category with the given name, or ok=false.
// Matching is exact and case-sensitive.
func CategoryByName(group []Category, name string) (Category, bool) {
	for _, c := range group {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
