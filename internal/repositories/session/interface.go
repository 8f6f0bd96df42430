package session

import (
	"context"

	"github.com/rideflow-labs/rideflow/internal/models"
)

// Repository holds the single session pointer: the currently authenticated
// user, or nothing. At most one session exists per store instance.
type Repository interface {
	// Current returns the active user, or nil when nobody is logged in.
	Current(ctx context.Context) (*models.User, error)
	// Set makes user the active session.
	Set(ctx context.Context, user *models.User) error
	// Clear drops the session pointer. User and ride data are untouched.
	Clear(ctx context.Context) error
}
