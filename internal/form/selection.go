package form

import "slices"

// Selection is a toggle set over a fixed list of options
type Selection struct {
	options  []string
	selected map[string]bool
}

// NewSelection creates a selection over options with initial selected.
// Values that are not options are dropped.
func NewSelection(options []string, initial ...string) *Selection {
	s := &Selection{
		options:  slices.Clone(options),
		selected: make(map[string]bool, len(options)),
	}
	s.Set(initial)
	return s
}

// Toggle adds option when absent and removes it when present.
// It reports false for an unknown option.
func (s *Selection) Toggle(option string) bool {
	if !slices.Contains(s.options, option) {
		return false
	}
	if s.selected[option] {
		delete(s.selected, option)
	} else {
		s.selected[option] = true
	}
	return true
}

// Set replaces the selection
func (s *Selection) Set(values []string) {
	clear(s.selected)
	for _, v := range values {
		if slices.Contains(s.options, v) {
			s.selected[v] = true
		}
	}
}

// Has reports whether option is selected
func (s *Selection) Has(option string) bool {
	return s.selected[option]
}

// Options returns the option list
func (s *Selection) Options() []string {
	return slices.Clone(s.options)
}

// Values returns the selected options in option order. Never nil.
func (s *Selection) Values() []string {
	values := make([]string, 0, len(s.selected))
	for _, o := range s.options {
		if s.selected[o] {
			values = append(values, o)
		}
	}
	return values
}

// Len returns the number of selected options
func (s *Selection) Len() int {
	return len(s.selected)
}
