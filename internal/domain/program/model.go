package program

import (
	"errors"
	"strings"
)

// DefaultName is the placeholder program representing "no program chosen".
// It is seeded once when the registry is empty.
const DefaultName = "Select a Program..."

// Domain errors
var (
	ErrEmptyName     = errors.New("program name cannot be empty")
	ErrDuplicateName = errors.New("program name already exists")
)

// Program is a named category that a survey can be enrolled in.
type Program struct {
	ID   string
	Name string
}

// Validate checks if the Program has valid data.
// PRE: Program struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Program) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
