package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rideflow-labs/rideflow/internal/logging"
)

var dsnSeq int

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsnSeq++
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", dsnSeq)

	s, err := Open(context.Background(), dsn, logging.NewTextLogger(io.Discard, slog.LevelError))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenSeedsCollections(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	users, err := s.Get(ctx, KeyUsers)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(users))

	rides, err := s.Get(ctx, KeyRides)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(rides))

	current, err := s.Get(ctx, KeyCurrentUser)
	require.NoError(t, err)
	require.JSONEq(t, `null`, string(current))
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	s := openTestStore(t)

	v, err := s.Get(context.Background(), "nothing")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyRides, []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Set(ctx, KeyRides, []byte(`[{"id":"2"}]`)))

	v, err := s.Get(ctx, KeyRides)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"2"}]`, string(v))
}

func TestWithTxRollsBackAllKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, kv KV) error {
		if err := kv.Set(ctx, KeyUsers, []byte(`[{"id":"u"}]`)); err != nil {
			return err
		}
		if err := kv.Set(ctx, KeyCurrentUser, []byte(`{"id":"u"}`)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	users, err := s.Get(ctx, KeyUsers)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(users))

	current, err := s.Get(ctx, KeyCurrentUser)
	require.NoError(t, err)
	require.JSONEq(t, `null`, string(current))
}

func TestOpenIsIdempotent(t *testing.T) {
	dsnSeq++
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", dsnSeq)
	log := logging.NewTextLogger(io.Discard, slog.LevelError)
	ctx := context.Background()

	first, err := Open(ctx, dsn, log)
	require.NoError(t, err)
	defer first.Close()

	require.NoError(t, first.Set(ctx, KeyRides, []byte(`[{"id":"1"}]`)))

	// reopening must neither re-run migrations destructively nor reseed
	second, err := Open(ctx, dsn, log)
	require.NoError(t, err)
	defer second.Close()

	v, err := second.Get(ctx, KeyRides)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"1"}]`, string(v))
}
