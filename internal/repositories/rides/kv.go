// Package rides persists the booking collection in the kv store.
package rides

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rideflow-labs/rideflow/internal/common"
	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/store"
)

// KVRepository implements Repository over a store.KV.
type KVRepository struct {
	kv  store.KV
	log logging.Logger
}

func NewKVRepository(kv store.KV, log logging.Logger) *KVRepository {
	return &KVRepository{kv: kv, log: log}
}

// All returns every ride in the store, regardless of owner. Ownership
// restriction happens in the service layer. Read or decode failures
// degrade to an empty collection.
func (r *KVRepository) All(ctx context.Context) ([]models.Ride, error) {
	raw, err := r.kv.Get(ctx, store.KeyRides)
	if err != nil {
		r.log.Warn(ctx, "rides collection unreadable, treating as empty", "error", err)
		return []models.Ride{}, nil
	}
	if raw == nil {
		return []models.Ride{}, nil
	}

	var result []models.Ride
	if err := json.Unmarshal(raw, &result); err != nil {
		r.log.Warn(ctx, "rides collection corrupt, treating as empty", "error", err)
		return []models.Ride{}, nil
	}
	if result == nil {
		result = []models.Ride{}
	}
	return result, nil
}

// Replace serializes the full new collection before touching the store.
func (r *KVRepository) Replace(ctx context.Context, rides []models.Ride) error {
	if rides == nil {
		rides = []models.Ride{}
	}
	raw, err := json.Marshal(rides)
	if err != nil {
		return fmt.Errorf("%w: encoding rides: %v", common.ErrStorageFailure, err)
	}
	if err := r.kv.Set(ctx, store.KeyRides, raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageFailure, err)
	}
	return nil
}
