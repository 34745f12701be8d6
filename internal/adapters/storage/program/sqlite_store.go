package program

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domain "communityaction/internal/domain/program"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new Program store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List retrieves all Programs.
// PRE: none
// POST: Returns all persisted programs ordered by name; empty slice when none exist
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Program, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM program ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Program{}
	for rows.Next() {
		var entity domain.Program
		if err := rows.Scan(&entity.ID, &entity.Name); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// GetByName retrieves a Program by its exact name (case-sensitive).
// PRE: name is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Program, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM program WHERE name = ?", name)
	var entity domain.Program
	err := row.Scan(&entity.ID, &entity.Name)
	if err == sql.ErrNoRows {
		return domain.Program{}, fmt.Errorf("program not found: %w", err)
	}
	return entity, err
}

// Add inserts a new Program. The UNIQUE constraint on program.name is the
// authoritative duplicate check; a constraint violation is surfaced as
// domain.ErrDuplicateName so concurrent duplicate adds resolve to one row.
// PRE: entity has been validated
// POST: Entity is persisted, or ErrDuplicateName if the name is taken
func (s *SQLiteStore) Add(ctx context.Context, entity domain.Program) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO program (id, name) VALUES (?, ?)",
		entity.ID, entity.Name,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("add program %q: %w", entity.Name, domain.ErrDuplicateName)
		}
		return fmt.Errorf("add program %q: %w", entity.Name, err)
	}
	return nil
}
