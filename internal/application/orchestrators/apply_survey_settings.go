package orchestrators

import (
	"context"
	"log/slog"

	"communityaction/internal/domain/enrollment"
	"communityaction/internal/domain/setting"
)

// applyEnrollmentStore defines the enrollment store interface for the settings bridge.
type applyEnrollmentStore interface {
	Upsert(ctx context.Context, value enrollment.Enrollment) error
}

// applySettingStore defines the generic settings store interface for the settings bridge.
type applySettingStore interface {
	Save(ctx context.Context, value setting.SurveySetting) error
}

// ApplySurveySettingsDeps holds stores needed to apply a settings save.
type ApplySurveySettingsDeps struct {
	EnrollmentStore applyEnrollmentStore
	SettingStore    applySettingStore
}

// ExecuteApplySurveySettings processes a survey's settings-save event. The
// reserved enrollment.SettingKey pair is intercepted into the enrollment
// store (replacing any prior enrollment for the survey); every other pair
// is forwarded verbatim to the generic settings store. Order between
// unrelated keys is not significant. Storage errors abort the save and
// propagate unmodified.
// PRE: surveyID is positive, settings may be empty
// POST: All pairs are persisted; the survey has at most one enrollment
func ExecuteApplySurveySettings(ctx context.Context, deps ApplySurveySettingsDeps, surveyID int64, settings map[string]string) error {
	for name, value := range settings {
		if name == enrollment.SettingKey {
			enr := enrollment.Enrollment{SurveyID: surveyID, ProgramName: value}
			if err := deps.EnrollmentStore.Upsert(ctx, enr); err != nil {
				return err
			}
			slog.Info("survey_enrolled", "survey_id", surveyID, "program", value)
			continue
		}

		s := setting.SurveySetting{SurveyID: surveyID, Key: name, Value: value}
		if err := deps.SettingStore.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
