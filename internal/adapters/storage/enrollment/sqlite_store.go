package enrollment

import (
	"context"
	"database/sql"
	"fmt"

	domain "communityaction/internal/domain/enrollment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new Enrollment store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetBySurvey retrieves the enrollment for a survey.
// PRE: surveyID is positive
// POST: Returns the enrollment, or domain.ErrNotFound when the survey
// has never been enrolled
func (s *SQLiteStore) GetBySurvey(ctx context.Context, surveyID int64) (domain.Enrollment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT survey_id, program_name FROM program_enrollment WHERE survey_id = ?", surveyID)
	var entity domain.Enrollment
	err := row.Scan(&entity.SurveyID, &entity.ProgramName)
	if err == sql.ErrNoRows {
		return domain.Enrollment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Enrollment{}, err
	}
	return entity, nil
}

// Upsert replaces whatever program the survey was enrolled in. The single
// INSERT ... ON CONFLICT statement makes the replace atomic: a partial
// failure can never leave zero or two rows for the same survey.
// PRE: value has been validated
// POST: Exactly one enrollment row exists for value.SurveyID, carrying
// value.ProgramName
func (s *SQLiteStore) Upsert(ctx context.Context, value domain.Enrollment) error {
	if err := value.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO program_enrollment (survey_id, program_name)
		VALUES (?, ?)
		ON CONFLICT(survey_id) DO UPDATE SET program_name=excluded.program_name
	`, value.SurveyID, value.ProgramName)
	if err != nil {
		return fmt.Errorf("upsert enrollment for survey %d: %w", value.SurveyID, err)
	}
	return nil
}
