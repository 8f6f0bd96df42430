// Package common holds sentinel errors shared across services and the CLI.
// Callers match them with errors.Is; services wrap them with fmt.Errorf
// to add context.
package common

import "errors"

var (
	// ErrInvalidInput reports malformed or missing fields, caught before
	// any mutation happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated reports an operation that requires an active session.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrNotFound reports an id-based lookup miss, including rides that
	// exist but belong to another user.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail reports a signup with an already-registered email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials reports a failed login without revealing
	// which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPastDateTime reports a ride scheduled at or before the current time.
	ErrPastDateTime = errors.New("ride time must be in the future")

	// ErrInvalidTransition reports a status change or edit attempted on a
	// ride that is no longer upcoming.
	ErrInvalidTransition = errors.New("ride is no longer upcoming")

	// ErrStorageFailure reports a persistence problem (serialization or
	// the underlying store rejecting a write).
	ErrStorageFailure = errors.New("storage failure")
)
