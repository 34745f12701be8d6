package setting

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrInvalidSurveyID = errors.New("survey id must be positive")
	ErrEmptyKey        = errors.New("setting key cannot be empty")
)

// SurveySetting is an arbitrary survey-scoped key/value pair persisted by
// the generic settings store. The program association never lands here;
// the settings bridge intercepts it into the enrollment store.
type SurveySetting struct {
	SurveyID int64
	Key      string
	Value    string
}

// Validate checks if the SurveySetting has valid data.
// PRE: SurveySetting struct is populated
// POST: Returns nil if valid, error otherwise
func (s *SurveySetting) Validate() error {
	if s.SurveyID <= 0 {
		return ErrInvalidSurveyID
	}
	if strings.TrimSpace(s.Key) == "" {
		return ErrEmptyKey
	}
	return nil
}
