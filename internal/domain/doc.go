// Package domain defines the core entities of the fitness tracker (users,
// programs, exercises, their many-to-many links and completion records) and
// the error taxonomy every layer wraps.
//
// Domain types carry no persistence or transport logic beyond struct tags.
package domain
