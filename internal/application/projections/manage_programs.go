package projections

import (
	"context"

	"communityaction/internal/domain/program"
)

// ManageProgramsProgramStore defines the program store interface for the
// manage-programs page.
type ManageProgramsProgramStore interface {
	List(ctx context.Context) ([]program.Program, error)
}

// ManageProgramsDeps holds dependencies for the manage-programs projection.
type ManageProgramsDeps struct {
	ProgramStore ManageProgramsProgramStore
}

// AddProgramForm describes the add-program form rendered above the list.
// The hidden action field keeps the submission routable by the dispatcher.
type AddProgramForm struct {
	Action      string // form target path
	ActionName  string // value of the hidden "action" field
	ActionField string // name of the hidden "action" field
	NameField   string // name of the program-name input
}

// ManageProgramsResult is the render model for the manage-programs page.
type ManageProgramsResult struct {
	Programs []program.Program
	Form     AddProgramForm
	Notice   string
}

// QueryManagePrograms builds the manage-programs render model: the full
// current program list plus the add-program form descriptor. The notice
// (e.g. a duplicate-name message) is filled in by the caller.
// PRE: deps.ProgramStore is non-nil
// POST: Returns the render model; Programs is empty, never nil, when no
// programs exist
func QueryManagePrograms(ctx context.Context, deps ManageProgramsDeps) (ManageProgramsResult, error) {
	programs, err := deps.ProgramStore.List(ctx)
	if err != nil {
		return ManageProgramsResult{}, err
	}
	if programs == nil {
		programs = []program.Program{}
	}
	return ManageProgramsResult{
		Programs: programs,
		Form: AddProgramForm{
			Action:      "/plugins/direct",
			ActionName:  "managePrograms",
			ActionField: "action",
			NameField:   "program",
		},
	}, nil
}
