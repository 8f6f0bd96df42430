// Package session persists the current-user pointer in the kv store.
// The stored value under currentUser is either a full user object or
// JSON null.
package session

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

// Current returns the logged-in user or nil. Read failures degrade to a
// logged-out state.
func (r *KVRepository) Current(ctx context.Context) (*models.User, error) {
	raw, err := r.kv.Get(ctx, store.KeyCurrentUser)
	if err != nil {
		r.log.Warn(ctx, "session pointer unreadable, treating as logged out", "error", err)
		return nil, nil
	}
	if raw == nil {
		return nil, nil
	}

	var user *models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		r.log.Warn(ctx, "session pointer corrupt, treating as logged out", "error", err)
		return nil, nil
	}
	return user, nil
}

func (r *KVRepository) Set(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encoding session: %v", common.ErrStorageFailure, err)
	}
	if err := r.kv.Set(ctx, store.KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageFailure, err)
	}
	return nil
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.Set(ctx, nil)
}
