package users

import (
	"context"

	"github.com/rideflow-labs/rideflow/internal/models"
)

// Repository owns the users collection. The collection is read and replaced
// whole, matching the store's one-JSON-blob-per-key layout.
type Repository interface {
	All(ctx context.Context) ([]models.User, error)
	Replace(ctx context.Context, users []models.User) error
}
