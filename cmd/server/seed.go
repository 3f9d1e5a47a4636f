package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/service"
	"github.com/fittrack/fittrack-api/internal/store"
)

type seedUser struct {
	name, surname, nickName, email, password string
	age                                      int
	role                                     domain.Role
}

type seedExercise struct {
	name       string
	difficulty domain.Difficulty
	program    int // index into seedPrograms
}

var (
	seedUsers = []seedUser{
		{"Admin", "User", "admin", "admin@example.com", "Admin123!", 30, domain.RoleAdmin},
		{"John", "Doe", "johndoe", "john@example.com", "User1234!", 25, domain.RoleUser},
		{"Jane", "Smith", "janesmith", "jane@example.com", "User1234!", 28, domain.RoleUser},
	}

	seedPrograms = []struct{ name, description string }{
		{"Beginner Workout", "A simple workout for beginners"},
		{"Advanced Workout", "A challenging workout for experienced users"},
	}

	seedExercises = []seedExercise{
		{"Push-ups", domain.DifficultyEasy, 0},
		{"Squats", domain.DifficultyEasy, 0},
		{"Pull-ups", domain.DifficultyHard, 1},
		{"Burpees", domain.DifficultyMedium, 1},
	}
)

// seedDatabase inserts the sample accounts, programs and exercises through the
// services, so passwords are hashed and every rule applies. A database that
// already holds the admin account is left untouched.
func seedDatabase(ctx context.Context, app *application) error {
	log := app.logger.With("component", "seed")

	for i, u := range seedUsers {
		user, err := app.userService.Register(ctx, service.RegisterInput{
			Email:    u.email,
			Password: u.password,
			Name:     &u.name,
			Surname:  &u.surname,
			NickName: &u.nickName,
			Age:      &u.age,
		})
		if i == 0 && errors.Is(err, store.ErrEmailExists) {
			log.Info("database already seeded, skipping")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
		if u.role != domain.RoleUser {
			role := u.role
			if _, err := app.userService.UpdateUser(ctx, user.ID, service.UserUpdate{Role: &role}); err != nil {
				return fmt.Errorf("failed to set role of %s: %w", u.email, err)
			}
		}
	}

	programIDs := make([]int64, len(seedPrograms))
	for i, p := range seedPrograms {
		description := p.description
		program, err := app.programService.CreateProgram(ctx, p.name, &description)
		if err != nil {
			return fmt.Errorf("failed to seed program %s: %w", p.name, err)
		}
		programIDs[i] = program.ID
	}

	for _, e := range seedExercises {
		programID := programIDs[e.program]
		if _, err := app.exerciseService.CreateExercise(ctx, service.CreateExerciseInput{
			Name:       e.name,
			Difficulty: e.difficulty,
			ProgramID:  &programID,
		}); err != nil {
			return fmt.Errorf("failed to seed exercise %s: %w", e.name, err)
		}
	}

	log.Info("database seeded",
		"users", len(seedUsers),
		"programs", len(seedPrograms),
		"exercises", len(seedExercises))
	return nil
}
