package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"communityaction/internal/domain/program"
)

// seedProgramStore defines the program store interface for seeding.
type seedProgramStore interface {
	List(ctx context.Context) ([]program.Program, error)
	Add(ctx context.Context, value program.Program) error
}

// SeedDefaultProgramDeps holds stores needed for the default-program seed.
type SeedDefaultProgramDeps struct {
	ProgramStore seedProgramStore
}

// ExecuteSeedDefaultProgram seeds the placeholder program on first
// activation. It is idempotent: when any program already exists it is a
// no-op, and a concurrent seed losing the uniqueness race is also a no-op.
// PRE: Database schema exists
// POST: The registry contains at least one program; returns true only
// when this call created the seed row
func ExecuteSeedDefaultProgram(ctx context.Context, deps SeedDefaultProgramDeps) (bool, error) {
	existing, err := deps.ProgramStore.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	seed := program.Program{ID: uuid.New().String(), Name: program.DefaultName}
	if err := deps.ProgramStore.Add(ctx, seed); err != nil {
		if errors.Is(err, program.ErrDuplicateName) {
			return false, nil
		}
		return false, err
	}

	slog.Info("default_program_seeded", "name", program.DefaultName)
	return true, nil
}
