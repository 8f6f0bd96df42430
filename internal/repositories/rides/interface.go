package rides

import (
	"context"

	"github.com/rideflow-labs/rideflow/internal/models"
)

// Repository owns the rides collection. Reads and writes move the whole
// collection; ordering is imposed later by the query pipeline, the stored
// set is flat and unordered.
type Repository interface {
	All(ctx context.Context) ([]models.Ride, error)
	Replace(ctx context.Context, rides []models.Ride) error
}
