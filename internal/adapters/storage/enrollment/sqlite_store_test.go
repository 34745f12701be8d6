package enrollment_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"communityaction/internal/adapters/storage"
	enrollmentStore "communityaction/internal/adapters/storage/enrollment"
	domain "communityaction/internal/domain/enrollment"
)

// openTestStore creates an enrollment store over an in-memory database,
// returning the raw db for row-count assertions.
func openTestStore(t *testing.T) (*enrollmentStore.SQLiteStore, *sql.DB) {
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
	return enrollmentStore.NewSQLiteStore(db), db
}

// countRowsForSurvey returns how many enrollment rows exist for a survey.
func countRowsForSurvey(t *testing.T, db *sql.DB, surveyID int64) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM program_enrollment WHERE survey_id = ?", surveyID).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

// TestSQLiteStore_GetBySurvey_NotEnrolled verifies the no-row outcome.
func TestSQLiteStore_GetBySurvey_NotEnrolled(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.GetBySurvey(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetBySurvey error = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStore_UpsertReplaces verifies replace semantics: re-saving a
// survey's enrollment swaps the program and never accumulates rows.
func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, domain.Enrollment{SurveyID: 5, ProgramName: "Alpha"}); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, domain.Enrollment{SurveyID: 5, ProgramName: "Beta"}); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := store.GetBySurvey(ctx, 5)
	if err != nil {
		t.Fatalf("GetBySurvey failed: %v", err)
	}
	if got.ProgramName != "Beta" {
		t.Errorf("got program %q, want %q", got.ProgramName, "Beta")
	}
	if n := countRowsForSurvey(t, db, 5); n != 1 {
		t.Errorf("got %d rows for survey 5, want 1 (no residual Alpha row)", n)
	}
}

// TestSQLiteStore_UpsertIsolatedPerSurvey verifies surveys don't affect each other.
func TestSQLiteStore_UpsertIsolatedPerSurvey(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, domain.Enrollment{SurveyID: 1, ProgramName: "Alpha"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, domain.Enrollment{SurveyID: 2, ProgramName: "Beta"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	one, err := store.GetBySurvey(ctx, 1)
	if err != nil || one.ProgramName != "Alpha" {
		t.Errorf("survey 1: got (%v, %v), want Alpha", one, err)
	}
	two, err := store.GetBySurvey(ctx, 2)
	if err != nil || two.ProgramName != "Beta" {
		t.Errorf("survey 2: got (%v, %v), want Beta", two, err)
	}
}

// TestSQLiteStore_UpsertValidates verifies invalid enrollments are rejected.
func TestSQLiteStore_UpsertValidates(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, domain.Enrollment{SurveyID: 0, ProgramName: "Alpha"}); !errors.Is(err, domain.ErrInvalidSurveyID) {
		t.Errorf("Upsert(surveyID=0) error = %v, want ErrInvalidSurveyID", err)
	}
	if err := store.Upsert(ctx, domain.Enrollment{SurveyID: 7, ProgramName: ""}); !errors.Is(err, domain.ErrEmptyProgramName) {
		t.Errorf("Upsert(empty name) error = %v, want ErrEmptyProgramName", err)
	}
	if n := countRowsForSurvey(t, db, 7); n != 0 {
		t.Errorf("invalid upsert wrote %d rows, want 0", n)
	}
}
