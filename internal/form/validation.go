// Package form holds the query builder: editable form state, toggle-set
// multi-selects and the score validation gate that guards navigation to
// the result viewer.
package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
)

// Inline error messages
const (
	MsgScoreRange = "Score must be between 100 and 720"
	MsgScoreWhole = "Score must be a whole number"
)

// ValidationError is a recoverable, field-level input error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateScore parses raw as a score in [MinScore, MaxScore]
func ValidateScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: "score", Message: MsgScoreRange}
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, &ValidationError{Field: "score", Message: MsgScoreRange}
	}
	if num < models.MinScore || num > models.MaxScore {
		return 0, &ValidationError{Field: "score", Message: MsgScoreRange}
	}
	if num != math.Trunc(num) {
		return 0, &ValidationError{Field: "score", Message: MsgScoreWhole}
	}
	return int(num), nil
}
