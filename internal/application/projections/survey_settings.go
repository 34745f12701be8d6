package projections

import (
	"context"
	"errors"

	"communityaction/internal/domain/enrollment"
	"communityaction/internal/domain/program"
)

// SurveySettingsProgramStore defines the program store interface for the descriptor.
type SurveySettingsProgramStore interface {
	List(ctx context.Context) ([]program.Program, error)
}

// SurveySettingsEnrollmentStore defines the enrollment store interface for the descriptor.
type SurveySettingsEnrollmentStore interface {
	GetBySurvey(ctx context.Context, surveyID int64) (enrollment.Enrollment, error)
}

// SurveySettingsDeps holds dependencies for the settings-descriptor projection.
type SurveySettingsDeps struct {
	ProgramStore    SurveySettingsProgramStore
	EnrollmentStore SurveySettingsEnrollmentStore
}

// SurveySettingsDescriptor is consumed by the external settings UI, which
// renders it as a dropdown and posts the chosen value back on save.
type SurveySettingsDescriptor struct {
	SettingKey string            `json:"settingKey"`
	Type       string            `json:"type"`
	Options    map[string]string `json:"options"`
	Current    string            `json:"current"`
}

// QuerySurveySettingsDescriptor builds the program-association dropdown
// descriptor for one survey: every program name as a selectable option,
// with the survey's current enrollment pre-selected. A survey that has
// never been enrolled falls back to the default sentinel.
// PRE: surveyID is positive
// POST: Returns the descriptor; Options maps every program name to itself
func QuerySurveySettingsDescriptor(ctx context.Context, deps SurveySettingsDeps, surveyID int64) (SurveySettingsDescriptor, error) {
	programs, err := deps.ProgramStore.List(ctx)
	if err != nil {
		return SurveySettingsDescriptor{}, err
	}

	options := make(map[string]string, len(programs))
	for _, p := range programs {
		options[p.Name] = p.Name
	}

	current := program.DefaultName
	enr, err := deps.EnrollmentStore.GetBySurvey(ctx, surveyID)
	switch {
	case err == nil:
		current = enr.ProgramName
	case errors.Is(err, enrollment.ErrNotFound):
		// never enrolled, keep the sentinel
	default:
		return SurveySettingsDescriptor{}, err
	}

	return SurveySettingsDescriptor{
		SettingKey: enrollment.SettingKey,
		Type:       "select",
		Options:    options,
		Current:    current,
	}, nil
}
