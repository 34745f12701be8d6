package setting_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"communityaction/internal/adapters/storage"
	settingStore "communityaction/internal/adapters/storage/setting"
	domain "communityaction/internal/domain/setting"
)

// openTestStore creates a setting store over an in-memory database.
func openTestStore(t *testing.T) *settingStore.SQLiteStore {
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
	return settingStore.NewSQLiteStore(db)
}

// TestSQLiteStore_SaveAndGet verifies settings persist per survey and key.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.SurveySetting{SurveyID: 42, Key: "welcome_text", Value: "Hello"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByKey(ctx, 42, "welcome_text")
	if err != nil {
		t.Fatalf("GetByKey failed: %v", err)
	}
	if got.Value != "Hello" {
		t.Errorf("got value %q, want %q", got.Value, "Hello")
	}

	if _, err := store.GetByKey(ctx, 42, "missing"); err == nil {
		t.Error("GetByKey(missing) succeeded, want not-found error")
	}
}

// TestSQLiteStore_SaveOverwrites verifies re-saving a key updates in place.
func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.SurveySetting{SurveyID: 42, Key: "welcome_text", Value: "Hello"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, domain.SurveySetting{SurveyID: 42, Key: "welcome_text", Value: "Kia ora"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	settings, err := store.ListBySurvey(ctx, 42)
	if err != nil {
		t.Fatalf("ListBySurvey failed: %v", err)
	}
	if len(settings) != 1 {
		t.Fatalf("got %d settings, want 1", len(settings))
	}
	if settings[0].Value != "Kia ora" {
		t.Errorf("got value %q, want %q", settings[0].Value, "Kia ora")
	}
}

// TestSQLiteStore_ListBySurvey_ScopedToSurvey verifies survey isolation.
func TestSQLiteStore_ListBySurvey_ScopedToSurvey(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.SurveySetting{SurveyID: 1, Key: "a", Value: "1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, domain.SurveySetting{SurveyID: 2, Key: "a", Value: "2"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	settings, err := store.ListBySurvey(ctx, 1)
	if err != nil {
		t.Fatalf("ListBySurvey failed: %v", err)
	}
	if len(settings) != 1 || settings[0].Value != "1" {
		t.Errorf("unexpected settings for survey 1: %v", settings)
	}
}

// TestSQLiteStore_SaveValidates verifies invalid settings are rejected.
func TestSQLiteStore_SaveValidates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.SurveySetting{SurveyID: 0, Key: "a", Value: "1"}); err == nil {
		t.Error("Save with zero survey id succeeded, want error")
	}
	if err := store.Save(ctx, domain.SurveySetting{SurveyID: 1, Key: "", Value: "1"}); err == nil {
		t.Error("Save with empty key succeeded, want error")
	}
}
