package program

import (
	"context"

	domain "communityaction/internal/domain/program"
)

// Store persists Program state.
type Store interface {
	List(ctx context.Context) ([]domain.Program, error)
	GetByName(ctx context.Context, name string) (domain.Program, error)
	Add(ctx context.Context, value domain.Program) error
}
