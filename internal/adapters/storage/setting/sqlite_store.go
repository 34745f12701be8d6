package setting

import (
	"context"
	"database/sql"
	"fmt"

	domain "communityaction/internal/domain/setting"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SurveySetting store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByKey retrieves a single setting for a survey.
// PRE: surveyID is positive, key is non-empty
// POST: Returns the persisted setting or an error if not found
func (s *SQLiteStore) GetByKey(ctx context.Context, surveyID int64, key string) (domain.SurveySetting, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT survey_id, key, value FROM survey_setting WHERE survey_id = ? AND key = ?",
		surveyID, key)
	var entity domain.SurveySetting
	err := row.Scan(&entity.SurveyID, &entity.Key, &entity.Value)
	if err == sql.ErrNoRows {
		return domain.SurveySetting{}, fmt.Errorf("survey setting not found: %w", err)
	}
	return entity, err
}

// ListBySurvey retrieves all settings for a survey.
// PRE: surveyID is positive
// POST: Returns matching settings ordered by key
func (s *SQLiteStore) ListBySurvey(ctx context.Context, surveyID int64) ([]domain.SurveySetting, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT survey_id, key, value FROM survey_setting WHERE survey_id = ? ORDER BY key", surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.SurveySetting{}
	for rows.Next() {
		var entity domain.SurveySetting
		if err := rows.Scan(&entity.SurveyID, &entity.Key, &entity.Value); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Save upserts a survey setting.
// PRE: value has been validated
// POST: Setting is persisted (insert or update)
// INVARIANT: No other settings are modified
func (s *SQLiteStore) Save(ctx context.Context, value domain.SurveySetting) error {
	if err := value.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO survey_setting (survey_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(survey_id, key) DO UPDATE SET value=excluded.value
	`, value.SurveyID, value.Key, value.Value)
	if err != nil {
		return fmt.Errorf("save survey setting %q: %w", value.Key, err)
	}
	return nil
}
