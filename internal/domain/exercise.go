package domain

import (
	"strings"
	"time"
)

// Difficulty grades an exercise.
type Difficulty string

// Known difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Exercise is a single movement that programs group. Name is unique.
// Programs is populated by the service layer, not by the store.
type Exercise struct {
	ID         int64            `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	Difficulty Difficulty       `json:"difficulty" db:"difficulty"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`
	Programs   []ProgramSummary `json:"programs" db:"-"`
}

// ExerciseSummary is the slice of an exercise embedded in completion records.
type ExerciseSummary struct {
	ID         int64      `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Difficulty Difficulty `json:"difficulty" db:"difficulty"`
}

// NewExercise creates an Exercise.
func NewExercise(name string, difficulty Difficulty) (*Exercise, error) {
	now := time.Now().UTC()
	exercise := &Exercise{
		Name:       strings.TrimSpace(name),
		Difficulty: difficulty,
		CreatedAt:  now,
		UpdatedAt:  now,
		Programs:   []ProgramSummary{},
	}
	if err := exercise.Validate(); err != nil {
		return nil, err
	}
	return exercise, nil
}

// Validate checks the exercise invariants.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if !e.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	return nil
}

// ExercisePatch carries the fields of a partial exercise update.
type ExercisePatch struct {
	Name       *string
	Difficulty *Difficulty
}

// Apply copies every non-nil field onto e.
func (patch ExercisePatch) Apply(e *Exercise) {
	if patch.Name != nil {
		e.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Difficulty != nil {
		e.Difficulty = *patch.Difficulty
	}
}
