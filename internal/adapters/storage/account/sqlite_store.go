package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "communityaction/internal/domain/account"
	"communityaction/internal/domain/identity"
)

// SQLiteStore implements Store using SQLite. It also serves as the
// identity.Provider for the authorization gate.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new Account store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at FROM account WHERE id = ?", id)
	return scanAccount(row.Scan)
}

// GetByEmail retrieves an Account by its email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at FROM account WHERE email = ?", email)
	return scanAccount(row.Scan)
}

// Save persists an Account (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, value domain.Account) error {
	if err := value.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account (id, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			password_hash=excluded.password_hash,
			role=excluded.role
	`, value.ID, value.Email, value.PasswordHash, value.Role, value.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save account %q: %w", value.Email, err)
	}
	return nil
}

// Count returns the number of accounts.
// PRE: none
// POST: Returns the row count
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&n)
	return n, err
}

// PermissionsFor implements identity.Provider. The permission record is
// the account's stored role; a missing account is an error, which the
// gate treats as unauthorized.
// PRE: userID is non-empty
// POST: Returns the permission record or an error if not found
func (s *SQLiteStore) PermissionsFor(ctx context.Context, userID string) (identity.PermissionRecord, error) {
	var role string
	err := s.db.QueryRowContext(ctx, "SELECT role FROM account WHERE id = ?", userID).Scan(&role)
	if err == sql.ErrNoRows {
		return identity.PermissionRecord{}, fmt.Errorf("permission record not found: %w", err)
	}
	if err != nil {
		return identity.PermissionRecord{}, err
	}
	return identity.PermissionRecord{UserID: userID, Role: role}, nil
}

func scanAccount(scan func(dest ...any) error) (domain.Account, error) {
	var a domain.Account
	var createdAt string
	if err := scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, fmt.Errorf("account not found: %w", err)
		}
		return domain.Account{}, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		a.CreatedAt = t
	}
	return a, nil
}
