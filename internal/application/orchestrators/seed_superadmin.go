package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"communityaction/internal/domain/account"
	"communityaction/internal/domain/identity"
)

// seedAccountStore defines the account store interface for the superadmin seed.
type seedAccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, value account.Account) error
}

// SeedSuperAdminDeps holds stores needed for the superadmin seed.
type SeedSuperAdminDeps struct {
	AccountStore seedAccountStore
}

// ExecuteSeedSuperAdmin creates the superadmin account if it doesn't
// already exist (checked by email). Idempotent.
// PRE: Database schema exists
// POST: An account with the superadmin role exists for the given email
func ExecuteSeedSuperAdmin(ctx context.Context, deps SeedSuperAdminDeps, email, password string) error {
	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		return nil // already exists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      identity.RoleSuperAdmin,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("superadmin_seeded", "email", email)
	return nil
}
