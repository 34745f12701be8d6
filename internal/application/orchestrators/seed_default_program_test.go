package orchestrators

import (
	"context"
	"testing"

	"communityaction/internal/domain/program"
)

// TestExecuteSeedDefaultProgram verifies first-activation seeding.
func TestExecuteSeedDefaultProgram(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds the default on an empty registry", func(t *testing.T) {
		store := &mockProgramStore{}
		deps := SeedDefaultProgramDeps{ProgramStore: store}

		created, err := ExecuteSeedDefaultProgram(ctx, deps)
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if !created {
			t.Error("created = false, want true on first seed")
		}
		if len(store.programs) != 1 || store.programs[0].Name != program.DefaultName {
			t.Errorf("store = %v, want exactly [%q]", store.programs, program.DefaultName)
		}
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		store := &mockProgramStore{}
		deps := SeedDefaultProgramDeps{ProgramStore: store}

		if _, err := ExecuteSeedDefaultProgram(ctx, deps); err != nil {
			t.Fatalf("first seed failed: %v", err)
		}
		created, err := ExecuteSeedDefaultProgram(ctx, deps)
		if err != nil {
			t.Fatalf("second seed failed: %v", err)
		}
		if created {
			t.Error("created = true on second seed, want false")
		}
		if len(store.programs) != 1 {
			t.Errorf("store has %d programs after repeated seed, want 1", len(store.programs))
		}
	})

	t.Run("no-op when any program already exists", func(t *testing.T) {
		store := &mockProgramStore{programs: []program.Program{{ID: "1", Name: "Outreach"}}}
		deps := SeedDefaultProgramDeps{ProgramStore: store}

		created, err := ExecuteSeedDefaultProgram(ctx, deps)
		if err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if created {
			t.Error("created = true on populated registry, want false")
		}
		if len(store.programs) != 1 {
			t.Errorf("store has %d programs, want 1 (untouched)", len(store.programs))
		}
	})
}
