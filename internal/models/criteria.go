package models

import (
	"fmt"
	"slices"
)

// Score bounds, inclusive
const (
	MinScore = 100
	MaxScore = 720
)

// Yes/No flag values
const (
	Yes = "Yes"
	No  = "No"
)

// Option lists, in display order
var (
	GenderOptions = []string{"Male", "Female"}
	AreaOptions   = []string{"SVU", "AU", "APNL"}
	FlagOptions   = []string{Yes, No}

	// CategoryOptions lists the reservation categories accepted by the API
	CategoryOptions = []string{
		"BC-A", "BC-B", "BC-C", "BC-D", "BC-E",
		"OC",
		"SC G-I", "SC G-II", "SC G-III",
		"ST",
	}
)

// FilterCriteria represents the search parameters submitted from the query builder.
// The JSON layout is the request body of the students API.
type FilterCriteria struct {
	Score          int      `json:"score"`
	Gender         []string `json:"gender"`         // subset of GenderOptions, empty = no filter
	Category       string   `json:"category"`       // one of CategoryOptions
	Area           []string `json:"area"`           // subset of AreaOptions, empty = no filter
	MuslimMinority string   `json:"muslimMinority"` // Yes, No
	AngloIndian    string   `json:"angloIndian"`    // Yes, No
	PMC            string   `json:"pmc"`            // Yes, No
	EWS            string   `json:"ews"`            // Yes, No
}

// Validate checks every field against its domain
func (f FilterCriteria) Validate() error {
	if f.Score < MinScore || f.Score > MaxScore {
		return fmt.Errorf("score %d out of range [%d, %d]", f.Score, MinScore, MaxScore)
	}
	if err := subsetOf("gender", f.Gender, GenderOptions); err != nil {
		return err
	}
	if !slices.Contains(CategoryOptions, f.Category) {
		return fmt.Errorf("unknown category %q", f.Category)
	}
	if err := subsetOf("area", f.Area, AreaOptions); err != nil {
		return err
	}

	flags := []struct {
		name  string
		value string
	}{
		{"muslimMinority", f.MuslimMinority},
		{"angloIndian", f.AngloIndian},
		{"pmc", f.PMC},
		{"ews", f.EWS},
	}
	for _, flag := range flags {
		if !slices.Contains(FlagOptions, flag.value) {
			return fmt.Errorf("%s must be Yes or No, got %q", flag.name, flag.value)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices with f
func (f FilterCriteria) Clone() FilterCriteria {
	out := f
	out.Gender = slices.Clone(f.Gender)
	out.Area = slices.Clone(f.Area)
	return out
}

func subsetOf(field string, values, options []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !slices.Contains(options, v) {
			return fmt.Errorf("unknown %s %q", field, v)
		}
		if seen[v] {
			return fmt.Errorf("duplicate %s %q", field, v)
		}
		seen[v] = true
	}
	return nil
}
