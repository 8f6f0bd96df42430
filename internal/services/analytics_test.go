package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/repositories/rides"
	"github.com/rideflow-labs/rideflow/internal/store"
	"github.com/rideflow-labs/rideflow/internal/timex"
)

func newTestAnalytics(t *testing.T, st *store.Store) AnalyticsService {
	t.Helper()
	return NewAnalyticsService(st, timex.FixedClock{T: testNow}, testLogger())
}

// statRide builds a ride record with only the fields analytics reads.
func statRide(id string, typ models.RideType, status models.RideStatus, price int, scheduled, created string) models.Ride {
	return models.Ride{
		ID:         id,
		UserID:     "u1",
		Pickup:     "A",
		Dropoff:    "B",
		DateTime:   scheduled,
		Passengers: 1,
		Type:       typ,
		Status:     status,
		Price:      price,
		CreatedAt:  created,
	}
}

func seedStats(t *testing.T, st *store.Store, all []models.Ride) {
	t.Helper()
	require.NoError(t, rides.NewKVRepository(st, testLogger()).Replace(context.Background(), all))
}

func TestComputeEmptyWindow(t *testing.T) {
	st := newTestStore(t)
	svc := newTestAnalytics(t, st)

	report, err := svc.Compute(context.Background(), "u1", 30)
	require.NoError(t, err)

	assert.Zero(t, report.TotalRides)
	assert.Zero(t, report.CompletedRides)
	assert.Zero(t, report.TotalSpent)
	assert.Zero(t, report.AvgCost)
	assert.Zero(t, report.CompletionRate)
	assert.Empty(t, report.TypeBreakdown)
	assert.Empty(t, string(report.MostUsedType))
	assert.Empty(t, report.MonthlySpending)

	require.Len(t, report.Insights, 1)
	assert.Equal(t, "Get Started", report.Insights[0].Title)
}

func TestComputeAggregates(t *testing.T) {
	st := newTestStore(t)
	svc := newTestAnalytics(t, st)

	// testNow is 2026-01-15; everything below was created inside 30 days
	seedStats(t, st, []models.Ride{
		statRide("r1", models.TypeEconomy, models.StatusCompleted, 14, "2026-01-02T09:00", "2026-01-01T08:00:00.000Z"),
		statRide("r2", models.TypeEconomy, models.StatusCompleted, 12, "2026-01-04T09:00", "2026-01-02T08:00:00.000Z"),
		statRide("r3", models.TypePremium, models.StatusCompleted, 34, "2026-02-01T09:00", "2026-01-03T08:00:00.000Z"),
		statRide("r4", models.TypeComfort, models.StatusUpcoming, 20, "2026-02-05T09:00", "2026-01-04T08:00:00.000Z"),
		statRide("r5", models.TypeEconomy, models.StatusCancelled, 13, "2026-01-06T09:00", "2026-01-05T08:00:00.000Z"),
	})

	report, err := svc.Compute(context.Background(), "u1", 30)
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalRides)
	assert.Equal(t, 3, report.CompletedRides)
	assert.Equal(t, 60, report.TotalSpent)
	assert.InDelta(t, 20.0, report.AvgCost, 1e-9)
	assert.InDelta(t, 60.0, report.CompletionRate, 1e-9)

	// breakdown counts all window rides, completed or not, in enum order
	require.Len(t, report.TypeBreakdown, 3)
	assert.Equal(t, TypeCount{Type: models.TypeEconomy, Count: 3, Percentage: 60}, report.TypeBreakdown[0])
	assert.Equal(t, TypeCount{Type: models.TypeComfort, Count: 1, Percentage: 20}, report.TypeBreakdown[1])
	assert.Equal(t, TypeCount{Type: models.TypePremium, Count: 1, Percentage: 20}, report.TypeBreakdown[2])

	assert.Equal(t, models.TypeEconomy, report.MostUsedType)
	assert.Equal(t, 60, report.MostUsedShare)

	// spending buckets only completed rides, by scheduled month, first seen
	assert.Equal(t, []MonthTotal{{Month: "Jan", Total: 26}, {Month: "Feb", Total: 34}}, report.MonthlySpending)
}

func TestComputeWindowUsesCreationTime(t *testing.T) {
	st := newTestStore(t)
	svc := newTestAnalytics(t, st)

	seedStats(t, st, []models.Ride{
		// created long ago but scheduled inside the window: excluded
		statRide("old", models.TypeEconomy, models.StatusCompleted, 15, "2026-01-10T09:00", "2025-06-01T08:00:00.000Z"),
		// created inside the window but scheduled far out: included
		statRide("new", models.TypeComfort, models.StatusUpcoming, 20, "2026-09-01T09:00", "2026-01-14T08:00:00.000Z"),
		// unparseable creation stamp: excluded
		statRide("bad", models.TypeComfort, models.StatusUpcoming, 20, "2026-02-01T09:00", "whenever"),
	})

	report, err := svc.Compute(context.Background(), "u1", 30)
	require.NoError(t, err)

	assert.Equal(t, 1, report.TotalRides)
	assert.Equal(t, models.TypeComfort, report.MostUsedType)
}

func TestComputeIgnoresOtherUsers(t *testing.T) {
	st := newTestStore(t)
	svc := newTestAnalytics(t, st)

	other := statRide("rx", models.TypePremium, models.StatusCompleted, 38, "2026-01-10T09:00", "2026-01-09T08:00:00.000Z")
	other.UserID = "u2"
	seedStats(t, st, []models.Ride{other})

	report, err := svc.Compute(context.Background(), "u1", 30)
	require.NoError(t, err)
	assert.Zero(t, report.TotalRides)
}

func TestMonthlySpendingMergesYears(t *testing.T) {
	st := newTestStore(t)
	svc := newTestAnalytics(t, st)

	seedStats(t, st, []models.Ride{
		statRide("a", models.TypeEconomy, models.StatusCompleted, 10, "2025-03-10T09:00", "2026-01-10T08:00:00.000Z"),
		statRide("b", models.TypeEconomy, models.StatusCompleted, 11, "2026-03-12T09:00", "2026-01-11T08:00:00.000Z"),
		statRide("c", models.TypeEconomy, models.StatusCompleted, 12, "2026-01-05T09:00", "2026-01-12T08:00:00.000Z"),
	})

	report, err := svc.Compute(context.Background(), "u1", 30)
	require.NoError(t, err)

	// March 2025 and March 2026 share one bucket; Mar was seen before Jan
	assert.Equal(t, []MonthTotal{{Month: "Mar", Total: 21}, {Month: "Jan", Total: 12}}, report.MonthlySpending)
}

func TestMostUsedTypeTieBreaksToEnumOrder(t *testing.T) {
	st := newTestStore(t)
	svc := newTestAnalytics(t, st)

	seedStats(t, st, []models.Ride{
		statRide("a", models.TypeXL, models.StatusUpcoming, 25, "2026-02-01T09:00", "2026-01-10T08:00:00.000Z"),
		statRide("b", models.TypeEconomy, models.StatusUpcoming, 14, "2026-02-02T09:00", "2026-01-11T08:00:00.000Z"),
	})

	report, err := svc.Compute(context.Background(), "u1", 30)
	require.NoError(t, err)

	// 1-1 tie between economy and xl resolves to economy
	assert.Equal(t, models.TypeEconomy, report.MostUsedType)
	assert.Equal(t, 50, report.MostUsedShare)
}

func TestInsightRules(t *testing.T) {
	mkCompleted := func(n int, typ models.RideType, price int) []models.Ride {
		out := make([]models.Ride, n)
		for i := range out {
			out[i] = statRide(
				string(rune('a'+i)), typ, models.StatusCompleted, price,
				"2026-01-05T09:00", "2026-01-04T08:00:00.000Z")
		}
		return out
	}

	t.Run("premium preference above threshold", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestAnalytics(t, st)
		seedStats(t, st, mkCompleted(2, models.TypePremium, 30))

		report, err := svc.Compute(context.Background(), "u1", 30)
		require.NoError(t, err)

		require.Len(t, report.Insights, 2)
		assert.Equal(t, "Most Popular Ride Type", report.Insights[0].Title)
		assert.Equal(t, "You prefer Premium rides, accounting for 100% of your bookings.", report.Insights[0].Description)
		assert.Equal(t, "Premium Preference", report.Insights[1].Title)
	})

	t.Run("average at threshold does not fire", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestAnalytics(t, st)
		seedStats(t, st, mkCompleted(2, models.TypeXL, 25))

		report, err := svc.Compute(context.Background(), "u1", 30)
		require.NoError(t, err)

		for _, in := range report.Insights {
			assert.NotEqual(t, "Premium Preference", in.Title)
		}
	})

	t.Run("frequent rider at five completed", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestAnalytics(t, st)
		seedStats(t, st, mkCompleted(5, models.TypeEconomy, 14))

		report, err := svc.Compute(context.Background(), "u1", 30)
		require.NoError(t, err)

		require.Len(t, report.Insights, 2)
		assert.Equal(t, "Frequent Rider", report.Insights[1].Title)
		assert.Equal(t, "You've completed 5 rides. Great job! Keep it up for loyalty rewards.", report.Insights[1].Description)
	})

	t.Run("four completed is not frequent", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestAnalytics(t, st)
		seedStats(t, st, mkCompleted(4, models.TypeEconomy, 14))

		report, err := svc.Compute(context.Background(), "u1", 30)
		require.NoError(t, err)

		require.Len(t, report.Insights, 1)
		assert.Equal(t, "Most Popular Ride Type", report.Insights[0].Title)
	})
}
