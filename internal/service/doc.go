// Package service contains the application use cases: registration and login,
// user administration, programs, exercises with their program links, and each
// user's completion records. It orchestrates the repositories defined in
// internal/store and enforces the rules that span entities, such as keeping
// exercises with completion history from being deleted or unlinked.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete store implementation. Expected conditions come back as
// sentinel errors wrapping the domain taxonomy; unexpected failures are wrapped
// in ServiceError. Passwords are hashed here, explicitly, before any store sees
// them.
package service
