// Package users persists the account collection in the kv store.
package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rideflow-labs/rideflow/internal/common"
	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/store"
)

// KVRepository implements Repository over a store.KV (the store itself or a
// transactional handle).
type KVRepository struct {
	kv  store.KV
	log logging.Logger
}

func NewKVRepository(kv store.KV, log logging.Logger) *KVRepository {
	return &KVRepository{kv: kv, log: log}
}

// All returns every user. Read or decode failures degrade to an empty
// collection: a broken store must not take the app down.
func (r *KVRepository) All(ctx context.Context) ([]models.User, error) {
	raw, err := r.kv.Get(ctx, store.KeyUsers)
	if err != nil {
		r.log.Warn(ctx, "users collection unreadable, treating as empty", "error", err)
		return []models.User{}, nil
	}
	if raw == nil {
		return []models.User{}, nil
	}

	var result []models.User
	if err := json.Unmarshal(raw, &result); err != nil {
		r.log.Warn(ctx, "users collection corrupt, treating as empty", "error", err)
		return []models.User{}, nil
	}
	if result == nil {
		result = []models.User{}
	}
	return result, nil
}

// Replace serializes the full new collection before touching the store, so
// a failed write leaves the prior value in place.
func (r *KVRepository) Replace(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: encoding users: %v", common.ErrStorageFailure, err)
	}
	if err := r.kv.Set(ctx, store.KeyUsers, raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageFailure, err)
	}
	return nil
}
