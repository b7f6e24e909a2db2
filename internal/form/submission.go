package form

// Submission is the query builder as posted by the web form
type Submission struct {
	Score          string   `form:"score"`
	Gender         []string `form:"gender"`
	Category       string   `form:"category"`
	Area           []string `form:"area"`
	MuslimMinority string   `form:"muslimMinority"`
	AngloIndian    string   `form:"angloIndian"`
	PMC            string   `form:"pmc"`
	EWS            string   `form:"ews"`
}

// State builds the form state from a submission. Unchecked multi-selects
// arrive absent and mean nothing selected; absent single choices keep
// their defaults.
func (p Submission) State() *State {
	s := NewState()
	s.Score = p.Score
	s.Gender.Set(p.Gender)
	s.Area.Set(p.Area)
	if p.Category != "" {
		s.Category = p.Category
	}
	if p.MuslimMinority != "" {
		s.MuslimMinority = p.MuslimMinority
	}
	if p.AngloIndian != "" {
		s.AngloIndian = p.AngloIndian
	}
	if p.PMC != "" {
		s.PMC = p.PMC
	}
	if p.EWS != "" {
		s.EWS = p.EWS
	}
	return s
}
