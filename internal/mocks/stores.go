package mocks

// Stores bundles in-memory store mocks wired to each other, so a service or
// handler under test sees the same referential behavior as the database.
type Stores struct {
	Users       *MockUserStore
	Programs    *MockProgramStore
	Exercises   *MockExerciseStore
	Links       *MockProgramExerciseStore
	Completions *MockCompletionStore
	Tx          *MockTxRunner
}

// NewStores creates an empty, wired set of store mocks.
func NewStores() *Stores {
	s := &Stores{
		Users:       NewMockUserStore(),
		Programs:    NewMockProgramStore(),
		Exercises:   NewMockExerciseStore(),
		Links:       NewMockProgramExerciseStore(),
		Completions: NewMockCompletionStore(),
		Tx:          &MockTxRunner{},
	}
	s.Programs.Links = s.Links
	s.Exercises.Links = s.Links
	s.Exercises.Completions = s.Completions
	s.Links.Programs = s.Programs
	s.Completions.Exercises = s.Exercises
	return s
}
