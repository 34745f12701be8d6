package enrollment

import (
	"context"

	domain "communityaction/internal/domain/enrollment"
)

// Store persists Enrollment state.
type Store interface {
	GetBySurvey(ctx context.Context, surveyID int64) (domain.Enrollment, error)
	Upsert(ctx context.Context, value domain.Enrollment) error
}
