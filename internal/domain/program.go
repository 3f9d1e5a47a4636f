package domain

import (
	"strings"
	"time"
)

// Program is a named collection of exercises.
type Program struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProgramSummary is the slice of a program embedded in exercise listings.
type ProgramSummary struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// NewProgram creates a Program.
func NewProgram(name string, description *string) (*Program, error) {
	now := time.Now().UTC()
	program := &Program{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := program.Validate(); err != nil {
		return nil, err
	}
	return program, nil
}

// Validate checks the program invariants.
func (p *Program) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ProgramPatch carries the fields of a partial program update.
type ProgramPatch struct {
	Name        *string
	Description *string
}

// Apply copies every non-nil field onto p.
func (patch ProgramPatch) Apply(p *Program) {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
}
