package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"communityaction/internal/domain/account"
)

// ErrInvalidCredentials covers both unknown email and wrong password so
// the login form cannot be used to probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// loginAccountStore defines the account store interface for login.
type loginAccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
}

// LoginDeps holds stores needed for login.
type LoginDeps struct {
	AccountStore loginAccountStore
}

// ExecuteLogin verifies credentials and returns the matching account.
// PRE: email and password are provided by the caller
// POST: Returns the account on success, ErrInvalidCredentials otherwise
func ExecuteLogin(ctx context.Context, deps LoginDeps, email, password string) (account.Account, error) {
	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	if err != nil {
		slog.Warn("login_failed", "email", email, "reason", "unknown_account")
		return account.Account{}, ErrInvalidCredentials
	}
	if err := acct.CheckPassword(password); err != nil {
		slog.Warn("login_failed", "email", email, "reason", "wrong_password")
		return account.Account{}, ErrInvalidCredentials
	}
	slog.Info("login_succeeded", "account_id", acct.ID, "role", acct.Role)
	return acct, nil
}
