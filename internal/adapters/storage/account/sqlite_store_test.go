package account_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"communityaction/internal/adapters/storage"
	accountStore "communityaction/internal/adapters/storage/account"
	domain "communityaction/internal/domain/account"
	"communityaction/internal/domain/identity"
)

// openTestStore creates an account store over an in-memory database.
func openTestStore(t *testing.T) *accountStore.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return accountStore.NewSQLiteStore(db)
}

// TestSQLiteStore_SaveAndGet verifies accounts round-trip by id and email.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	acct := domain.Account{
		ID:        "u1",
		Email:     "admin@example.org",
		Role:      identity.RoleSuperAdmin,
		CreatedAt: time.Now(),
	}
	if err := store.Save(ctx, acct); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	byID, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Email != acct.Email || byID.Role != identity.RoleSuperAdmin {
		t.Errorf("GetByID = %+v, want email %q role %q", byID, acct.Email, identity.RoleSuperAdmin)
	}

	byEmail, err := store.GetByEmail(ctx, "admin@example.org")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Errorf("GetByEmail ID = %q, want u1", byEmail.ID)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

// TestSQLiteStore_GetMissing verifies missing accounts return errors.
func TestSQLiteStore_GetMissing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.GetByID(ctx, "ghost"); err == nil {
		t.Error("GetByID(ghost) succeeded, want error")
	}
	if _, err := store.GetByEmail(ctx, "ghost@example.org"); err == nil {
		t.Error("GetByEmail(ghost) succeeded, want error")
	}
}

// TestSQLiteStore_PermissionsFor verifies the store acts as the gate's
// identity provider.
func TestSQLiteStore_PermissionsFor(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	acct := domain.Account{ID: "u1", Email: "admin@example.org", Role: identity.RoleSuperAdmin, CreatedAt: time.Now()}
	if err := store.Save(ctx, acct); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	rec, err := store.PermissionsFor(ctx, "u1")
	if err != nil {
		t.Fatalf("PermissionsFor failed: %v", err)
	}
	if rec.Role != identity.RoleSuperAdmin {
		t.Errorf("role = %q, want %q", rec.Role, identity.RoleSuperAdmin)
	}

	if _, err := store.PermissionsFor(ctx, "ghost"); err == nil {
		t.Error("PermissionsFor(ghost) succeeded, want error")
	}

	// End-to-end with the gate: errors fail closed, superadmin passes.
	gate := identity.NewGate(store)
	if !gate.IsAuthorized(ctx, identity.Principal{UserID: "u1"}) {
		t.Error("gate denied stored superadmin")
	}
	if gate.IsAuthorized(ctx, identity.Principal{UserID: "ghost"}) {
		t.Error("gate admitted unknown principal")
	}
}
