// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Soft-deleted rows (users, program/exercise links) are invisible to every
// method unless its name says otherwise.
package store
