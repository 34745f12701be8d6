package setting

import (
	"context"

	domain "communityaction/internal/domain/setting"
)

// Store persists generic survey-scoped settings. Everything except the
// program association lands here.
type Store interface {
	GetByKey(ctx context.Context, surveyID int64, key string) (domain.SurveySetting, error)
	ListBySurvey(ctx context.Context, surveyID int64) ([]domain.SurveySetting, error)
	Save(ctx context.Context, value domain.SurveySetting) error
}
