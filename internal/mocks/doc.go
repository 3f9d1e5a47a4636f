// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent and DRY testing across the codebase. Instead of defining
// inline mocks in individual test files, these standardized mock implementations
// can be reused.
//
// Store mocks fall back to in-memory implementations when a function field is
// unset. NewStores wires them to each other so cascades, foreign keys and
// program filters behave like the database.
//
// Usage:
//
// Import the mocks package in your test file and create the required mock:
//
//	import "github.com/fittrack/fittrack-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    stores := mocks.NewStores()
//	    stores.Exercises.DeleteFn = func(ctx context.Context, id int64) error {
//	        return store.ErrExerciseReferenced
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
//  4. Update existing tests to use the centralized mock implementation
package mocks
