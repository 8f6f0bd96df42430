package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/repositories/rides"
	"github.com/rideflow-labs/rideflow/internal/store"
	"github.com/rideflow-labs/rideflow/internal/timex"
)

// FrequentRiderThreshold is the completed-ride count that fires the
// frequent-rider insight.
const FrequentRiderThreshold = 5

// PremiumCostThreshold is the average cost above which the premium
// preference insight fires.
const PremiumCostThreshold = 25.0

// TypeCount is one slice of the type breakdown. Percentage is relative to
// the whole window set, rounded to the nearest integer.
type TypeCount struct {
	Type       models.RideType
	Count      int
	Percentage int
}

// MonthTotal is spending in one calendar month bucket. Months are short
// labels with no year, so rides from different years sharing a month merge
// into one bucket.
type MonthTotal struct {
	Month string
	Total int
}

// Insight is one qualitative observation derived from the aggregates.
type Insight struct {
	Title       string
	Description string
}

// Report is the derived view over one user's rides inside the window.
type Report struct {
	TotalRides     int
	CompletedRides int
	TotalSpent     int
	AvgCost        float64
	CompletionRate float64

	// TypeBreakdown lists the tiers present in the window, in the fixed
	// enumeration order.
	TypeBreakdown []TypeCount

	// MostUsedType is empty when the window holds no rides. Count ties
	// resolve to the tier appearing first in the enumeration order.
	MostUsedType  models.RideType
	MostUsedShare int

	// MonthlySpending buckets completed-ride prices by the scheduled
	// month, in first-seen order.
	MonthlySpending []MonthTotal

	// Insights fire in a fixed rule order; several can fire at once.
	Insights []Insight
}

// AnalyticsService derives usage statistics from a date-bounded subset of
// one user's rides. The window runs on record-creation time, not the
// scheduled ride time.
type AnalyticsService interface {
	Compute(ctx context.Context, ownerID string, windowDays int) (*Report, error)
}

type analyticsService struct {
	store *store.Store
	clock timex.Clock
	log   logging.Logger
}

// NewAnalyticsService constructs an AnalyticsService bound to the store.
func NewAnalyticsService(st *store.Store, clock timex.Clock, log logging.Logger) AnalyticsService {
	return &analyticsService{store: st, clock: clock, log: log}
}

func (s *analyticsService) Compute(ctx context.Context, ownerID string, windowDays int) (*Report, error) {
	all, err := rides.NewKVRepository(s.store, s.log).All(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.clock.Now().AddDate(0, 0, -windowDays)

	var window []models.Ride
	for _, r := range all {
		if r.UserID != ownerID {
			continue
		}
		created := r.CreatedTime()
		if created.IsZero() || created.Before(cutoff) {
			continue
		}
		window = append(window, r)
	}

	report := &Report{TotalRides: len(window)}

	var completed []models.Ride
	for _, r := range window {
		if r.Status == models.StatusCompleted {
			completed = append(completed, r)
			report.TotalSpent += r.Price
		}
	}
	report.CompletedRides = len(completed)

	if len(completed) > 0 {
		report.AvgCost = float64(report.TotalSpent) / float64(len(completed))
	}
	if len(window) > 0 {
		report.CompletionRate = float64(len(completed)) / float64(len(window)) * 100
	}

	report.TypeBreakdown, report.MostUsedType, report.MostUsedShare = typeBreakdown(window)
	report.MonthlySpending = monthlySpending(completed)
	report.Insights = insights(report)

	return report, nil
}

// typeBreakdown counts rides per tier over the whole window set. The
// breakdown and the most-used pick both follow the fixed enumeration
// order, which makes ties deterministic.
func typeBreakdown(window []models.Ride) ([]TypeCount, models.RideType, int) {
	counts := make(map[models.RideType]int, len(models.RideTypes))
	for _, r := range window {
		counts[r.Type]++
	}

	var breakdown []TypeCount
	var most models.RideType
	mostCount := 0
	for _, t := range models.RideTypes {
		c := counts[t]
		if c == 0 {
			continue
		}
		breakdown = append(breakdown, TypeCount{
			Type:       t,
			Count:      c,
			Percentage: roundPercent(c, len(window)),
		})
		if c > mostCount {
			most, mostCount = t, c
		}
	}

	if mostCount == 0 {
		return breakdown, "", 0
	}
	return breakdown, most, roundPercent(mostCount, len(window))
}

// monthlySpending sums completed-ride prices by the short month name of the
// scheduled time, keeping first-seen bucket order. Unparseable schedules
// are skipped.
func monthlySpending(completed []models.Ride) []MonthTotal {
	index := make(map[string]int)
	var out []MonthTotal
	for _, r := range completed {
		when := r.ScheduledAt()
		if when.IsZero() {
			continue
		}
		label := when.Month().String()[:3]
		i, ok := index[label]
		if !ok {
			index[label] = len(out)
			out = append(out, MonthTotal{Month: label})
			i = len(out) - 1
		}
		out[i].Total += r.Price
	}
	return out
}

// insights evaluates the rules in their fixed order. Rules are independent;
// any subset can fire.
func insights(r *Report) []Insight {
	var out []Insight

	if r.TotalRides > 0 {
		out = append(out, Insight{
			Title: "Most Popular Ride Type",
			Description: fmt.Sprintf("You prefer %s rides, accounting for %d%% of your bookings.",
				capitalize(string(r.MostUsedType)), r.MostUsedShare),
		})
	}

	if r.AvgCost > PremiumCostThreshold {
		out = append(out, Insight{
			Title:       "Premium Preference",
			Description: "Your average ride cost is above standard. Consider Economy rides for shorter trips to save money.",
		})
	}

	if r.CompletedRides >= FrequentRiderThreshold {
		out = append(out, Insight{
			Title: "Frequent Rider",
			Description: fmt.Sprintf("You've completed %d rides. Great job! Keep it up for loyalty rewards.",
				r.CompletedRides),
		})
	}

	if r.TotalRides == 0 {
		out = append(out, Insight{
			Title:       "Get Started",
			Description: "Book your first ride to start tracking your analytics and insights.",
		})
	}

	return out
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
