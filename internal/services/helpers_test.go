package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/store"
	"github.com/rideflow-labs/rideflow/internal/timex"
)

// testNow is the fixed "current time" services run at in these tests.
var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

var dsnSeq int

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsnSeq++
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", dsnSeq)

	st, err := store.Open(context.Background(), dsn, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newTestAuth(t *testing.T, st *store.Store) AuthService {
	t.Helper()
	return NewAuthService(st, timex.FixedClock{T: testNow}, testLogger())
}
