package program_test

import (
	"testing"

	"communityaction/internal/domain/program"
)

// TestProgram_Validate tests validation of Program.
func TestProgram_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prog    program.Program
		wantErr bool
	}{
		{
			name:    "valid program",
			prog:    program.Program{ID: "1", Name: "Outreach"},
			wantErr: false,
		},
		{
			name:    "default sentinel is valid",
			prog:    program.Program{ID: "2", Name: program.DefaultName},
			wantErr: false,
		},
		{
			name:    "empty name",
			prog:    program.Program{ID: "3", Name: ""},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			prog:    program.Program{ID: "4", Name: "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prog.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Program.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
