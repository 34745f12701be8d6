package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"communityaction/internal/domain/program"
)

// addProgramStore defines the program store interface for adding programs.
type addProgramStore interface {
	Add(ctx context.Context, value program.Program) error
}

// AddProgramDeps holds stores needed to add a program.
type AddProgramDeps struct {
	ProgramStore addProgramStore
}

// ExecuteAddProgram creates a new named program. An empty name and a name
// that already exists are both normal, user-visible outcomes surfaced as
// program.ErrEmptyName and program.ErrDuplicateName; the storage layer's
// uniqueness constraint is the authoritative duplicate check, so
// concurrent adds of the same name resolve to a single row.
// PRE: deps.ProgramStore is non-nil
// POST: On success a new program with a fresh id is persisted and returned
func ExecuteAddProgram(ctx context.Context, deps AddProgramDeps, name string) (program.Program, error) {
	p := program.Program{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(name),
	}
	if err := p.Validate(); err != nil {
		return program.Program{}, err
	}
	if err := deps.ProgramStore.Add(ctx, p); err != nil {
		return program.Program{}, err
	}
	slog.Info("program_added", "id", p.ID, "name", p.Name)
	return p, nil
}
