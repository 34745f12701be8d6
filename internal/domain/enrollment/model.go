package enrollment

import (
	"errors"
	"strings"
)

// SettingKey is the reserved survey-setting name whose value is stored as
// an enrollment instead of a generic survey setting.
const SettingKey = "program_enrollment"

// Domain errors
var (
	ErrInvalidSurveyID  = errors.New("survey id must be positive")
	ErrEmptyProgramName = errors.New("enrollment program name cannot be empty")
	ErrNotFound         = errors.New("survey has no enrollment")
)

// Enrollment associates one survey with one program. The program is
// referenced by name, not by id.
type Enrollment struct {
	SurveyID    int64
	ProgramName string
}

// Validate checks if the Enrollment has valid data.
// PRE: Enrollment struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Enrollment) Validate() error {
	if e.SurveyID <= 0 {
		return ErrInvalidSurveyID
	}
	if strings.TrimSpace(e.ProgramName) == "" {
		return ErrEmptyProgramName
	}
	return nil
}
