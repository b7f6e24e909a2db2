package form

import (
	"errors"
	"strconv"

	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
)

// Form defaults
const (
	DefaultScore    = 565
	DefaultCategory = "OC"
)

// State is the editable query builder form
type State struct {
	Score          string
	Gender         *Selection
	Category       string
	Area           *Selection
	MuslimMinority string
	AngloIndian    string
	PMC            string
	EWS            string

	// Error is the inline score message, empty when valid
	Error string
}

// NewState returns the form with its default values
func NewState() *State {
	return &State{
		Score:          strconv.Itoa(DefaultScore),
		Gender:         NewSelection(models.GenderOptions, "Male"),
		Category:       DefaultCategory,
		Area:           NewSelection(models.AreaOptions, "SVU"),
		MuslimMinority: models.No,
		AngloIndian:    models.No,
		PMC:            models.No,
		EWS:            models.No,
	}
}

// FromCriteria returns a form prefilled with previously submitted criteria
func FromCriteria(c models.FilterCriteria) *State {
	s := NewState()
	s.Score = strconv.Itoa(c.Score)
	s.Gender.Set(c.Gender)
	s.Category = c.Category
	s.Area.Set(c.Area)
	s.MuslimMinority = c.MuslimMinority
	s.AngloIndian = c.AngloIndian
	s.PMC = c.PMC
	s.EWS = c.EWS
	return s
}

// Blur validates the score for immediate feedback. It only updates the
// inline error; editing stays possible either way.
func (s *State) Blur() bool {
	_, err := ValidateScore(s.Score)
	s.setError(err)
	return err == nil
}

// Submit validates the whole form and builds the criteria handed to the
// result viewer. Nothing is built while the score is invalid.
func (s *State) Submit() (models.FilterCriteria, error) {
	score, err := ValidateScore(s.Score)
	s.setError(err)
	if err != nil {
		return models.FilterCriteria{}, err
	}

	criteria := models.FilterCriteria{
		Score:          score,
		Gender:         s.Gender.Values(),
		Category:       s.Category,
		Area:           s.Area.Values(),
		MuslimMinority: s.MuslimMinority,
		AngloIndian:    s.AngloIndian,
		PMC:            s.PMC,
		EWS:            s.EWS,
	}
	if err := criteria.Validate(); err != nil {
		return models.FilterCriteria{}, err
	}
	return criteria, nil
}

func (s *State) setError(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.Error = verr.Message
		return
	}
	s.Error = ""
}
