package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rideflow-labs/rideflow/internal/common"
	"github.com/rideflow-labs/rideflow/internal/events"
	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/randx"
	"github.com/rideflow-labs/rideflow/internal/repositories/rides"
	"github.com/rideflow-labs/rideflow/internal/store"
	"github.com/rideflow-labs/rideflow/internal/timex"
)

// RideInput carries the user-editable ride fields, for both booking and
// editing. Type may be empty, in which case it defaults to comfort (the
// tier the booking form pre-selects).
type RideInput struct {
	Pickup     string
	Dropoff    string
	DateTime   string
	Passengers int
	Type       models.RideType
}

// RideService owns booking records and the listing pipeline.
//
// Every mutating operation requires an active session and only ever touches
// rides owned by that session's user; foreign ride ids report ErrNotFound,
// indistinguishable from missing ones.
type RideService interface {
	Create(ctx context.Context, ownerID string, in RideInput) (*models.Ride, error)
	Update(ctx context.Context, id string, in RideInput) (*models.Ride, error)
	Complete(ctx context.Context, id string) (*models.Ride, error)
	Cancel(ctx context.Context, id string) (*models.Ride, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ownerID string, f models.Filters) ([]models.Ride, error)
}

// priceRanges are the inclusive per-tier price bounds, in whole dollars.
var priceRanges = map[models.RideType]struct{ Min, Max int }{
	models.TypeEconomy: {12, 15},
	models.TypeComfort: {18, 22},
	models.TypePremium: {30, 38},
	models.TypeXL:      {25, 32},
}

var driverNames = []string{
	"John Smith", "Sarah Johnson", "Michael Brown", "Emily Davis", "David Wilson",
}

var vehicleModels = map[models.RideType][]string{
	models.TypeEconomy: {"Toyota Corolla", "Honda Civic", "Hyundai Elantra"},
	models.TypeComfort: {"Toyota Camry", "Honda Accord", "Mazda 6"},
	models.TypePremium: {"Mercedes E-Class", "BMW 5 Series", "Audi A6"},
	models.TypeXL:      {"Toyota Sienna", "Honda Odyssey", "Chrysler Pacifica"},
}

type rideService struct {
	store *store.Store
	auth  AuthService
	rnd   randx.Source
	clock timex.Clock
	bus   *events.Bus
	log   logging.Logger
}

// NewRideService constructs a RideService. rnd is the synthesis randomness
// source; pass a seeded one in tests to pin prices and driver data.
func NewRideService(st *store.Store, auth AuthService, rnd randx.Source, clock timex.Clock, bus *events.Bus, log logging.Logger) RideService {
	return &rideService{store: st, auth: auth, rnd: rnd, clock: clock, bus: bus, log: log}
}

func (s *rideService) repo() rides.Repository {
	return rides.NewKVRepository(s.store, s.log)
}

// Create books a ride for the active session's user. ownerID must match the
// session, the schedule must be strictly in the future, and price, driver
// and vehicle are synthesized here once and never regenerated.
func (s *rideService) Create(ctx context.Context, ownerID string, in RideInput) (*models.Ride, error) {
	user, err := s.auth.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	if ownerID != user.ID {
		return nil, fmt.Errorf("%w: ride owner must be the active user", common.ErrUnauthenticated)
	}

	in, err = s.validateInput(in)
	if err != nil {
		return nil, err
	}

	all, err := s.repo().All(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	ride := models.Ride{
		ID:         timestampID(now, func(id string) bool { return rideIDTaken(all, id) }),
		UserID:     ownerID,
		Pickup:     in.Pickup,
		Dropoff:    in.Dropoff,
		DateTime:   in.DateTime,
		Passengers: in.Passengers,
		Type:       in.Type,
		Status:     models.StatusUpcoming,
		Price:      s.price(in.Type),
		Driver:     s.driver(),
		Vehicle:    s.vehicle(in.Type),
		CreatedAt:  isoTimestamp(now),
	}

	if err := s.repo().Replace(ctx, append(all, ride)); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "ride booked", "id", ride.ID, "type", ride.Type, "price", ride.Price)
	s.bus.Publish(events.Event{Kind: events.RideCreated, RideID: ride.ID, UserID: ownerID})
	return &ride, nil
}

// Update overwrites the editable fields of an upcoming ride and recomputes
// the price for the (possibly changed) tier. Driver and vehicle keep their
// original values. Rides past upcoming reject the edit.
func (s *rideService) Update(ctx context.Context, id string, in RideInput) (*models.Ride, error) {
	user, err := s.auth.RequireSession(ctx)
	if err != nil {
		return nil, err
	}

	in, err = s.validateInput(in)
	if err != nil {
		return nil, err
	}

	all, err := s.repo().All(ctx)
	if err != nil {
		return nil, err
	}

	idx := findOwned(all, id, user.ID)
	if idx < 0 {
		return nil, common.ErrNotFound
	}
	if all[idx].Status != models.StatusUpcoming {
		return nil, common.ErrInvalidTransition
	}

	all[idx].Pickup = in.Pickup
	all[idx].Dropoff = in.Dropoff
	all[idx].DateTime = in.DateTime
	all[idx].Passengers = in.Passengers
	all[idx].Type = in.Type
	all[idx].Price = s.price(in.Type)

	if err := s.repo().Replace(ctx, all); err != nil {
		return nil, err
	}

	ride := all[idx]
	s.bus.Publish(events.Event{Kind: events.RideUpdated, RideID: ride.ID, UserID: user.ID})
	return &ride, nil
}

// Complete moves an upcoming ride to its completed terminal state.
func (s *rideService) Complete(ctx context.Context, id string) (*models.Ride, error) {
	return s.transition(ctx, id, models.StatusCompleted, events.RideCompleted)
}

// Cancel moves an upcoming ride to its cancelled terminal state.
func (s *rideService) Cancel(ctx context.Context, id string) (*models.Ride, error) {
	return s.transition(ctx, id, models.StatusCancelled, events.RideCancelled)
}

func (s *rideService) transition(ctx context.Context, id string, to models.RideStatus, kind events.Kind) (*models.Ride, error) {
	user, err := s.auth.RequireSession(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.repo().All(ctx)
	if err != nil {
		return nil, err
	}

	idx := findOwned(all, id, user.ID)
	if idx < 0 {
		return nil, common.ErrNotFound
	}
	if all[idx].Status.Terminal() {
		return nil, common.ErrInvalidTransition
	}

	all[idx].Status = to
	if err := s.repo().Replace(ctx, all); err != nil {
		return nil, err
	}

	ride := all[idx]
	s.log.Info(ctx, "ride status changed", "id", ride.ID, "status", ride.Status)
	s.bus.Publish(events.Event{Kind: kind, RideID: ride.ID, UserID: user.ID})
	return &ride, nil
}

// Delete removes a ride unconditionally, whatever its status. Irreversible.
func (s *rideService) Delete(ctx context.Context, id string) error {
	user, err := s.auth.RequireSession(ctx)
	if err != nil {
		return err
	}

	all, err := s.repo().All(ctx)
	if err != nil {
		return err
	}

	idx := findOwned(all, id, user.ID)
	if idx < 0 {
		return common.ErrNotFound
	}

	remaining := append(all[:idx], all[idx+1:]...)
	if err := s.repo().Replace(ctx, remaining); err != nil {
		return err
	}

	s.bus.Publish(events.Event{Kind: events.RideDeleted, RideID: id, UserID: user.ID})
	return nil
}

// List runs the query pipeline: restrict to ownerID, apply the search and
// the exact status/type filters, then sort. The sort is stable, so rides
// with equal keys keep their stored order. An unknown sort order leaves the
// stored order untouched.
func (s *rideService) List(ctx context.Context, ownerID string, f models.Filters) ([]models.Ride, error) {
	all, err := s.repo().All(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Ride, 0, len(all))
	for _, r := range all {
		if r.UserID != ownerID {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if f.Status != "" && f.Status != models.FilterAll && string(r.Status) != f.Status {
			continue
		}
		if f.Type != "" && f.Type != models.FilterAll && string(r.Type) != f.Type {
			continue
		}
		out = append(out, r)
	}

	switch f.SortBy {
	case models.SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt().After(out[j].ScheduledAt()) })
	case models.SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledAt().Before(out[j].ScheduledAt()) })
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	}

	return out, nil
}

// matchesSearch reports whether the lowercased needle appears in any of the
// searchable fields.
func matchesSearch(r models.Ride, needle string) bool {
	fields := []string{
		r.Pickup,
		r.Dropoff,
		r.Driver.Name,
		string(r.Status),
		string(r.Type),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// validateInput normalizes and checks the editable fields. An empty type
// falls back to comfort; anything else outside the enumeration is rejected.
func (s *rideService) validateInput(in RideInput) (RideInput, error) {
	in.Pickup = strings.TrimSpace(in.Pickup)
	in.Dropoff = strings.TrimSpace(in.Dropoff)
	in.DateTime = strings.TrimSpace(in.DateTime)

	if in.Pickup == "" || in.Dropoff == "" {
		return in, fmt.Errorf("%w: pickup and dropoff are required", common.ErrInvalidInput)
	}
	if in.Passengers <= 0 {
		return in, fmt.Errorf("%w: passenger count must be positive", common.ErrInvalidInput)
	}

	when, err := models.ParseWhen(in.DateTime)
	if err != nil {
		return in, fmt.Errorf("%w: unparseable ride time %q", common.ErrInvalidInput, in.DateTime)
	}
	if !when.After(s.clock.Now()) {
		return in, common.ErrPastDateTime
	}

	if in.Type == "" {
		in.Type = models.TypeComfort
	}
	if !in.Type.Valid() {
		return in, fmt.Errorf("%w: unknown ride type %q", common.ErrInvalidInput, in.Type)
	}

	return in, nil
}

func (s *rideService) price(t models.RideType) int {
	r := priceRanges[t]
	return randx.IntInRange(s.rnd, r.Min, r.Max)
}

func (s *rideService) driver() models.Driver {
	name := driverNames[s.rnd.IntN(len(driverNames))]
	rating := math.Round((4.5+s.rnd.Float64()*0.5)*10) / 10
	return models.Driver{Name: name, Rating: rating}
}

func (s *rideService) vehicle(t models.RideType) models.Vehicle {
	pool := vehicleModels[t]
	model := pool[s.rnd.IntN(len(pool))]

	plate := make([]byte, 0, 5)
	for i := 0; i < 2; i++ {
		plate = append(plate, byte('A'+s.rnd.IntN(26)))
	}
	for i := 0; i < 3; i++ {
		plate = append(plate, byte('0'+s.rnd.IntN(10)))
	}
	return models.Vehicle{Model: model, Plate: string(plate)}
}

func findOwned(all []models.Ride, id, userID string) int {
	for i, r := range all {
		if r.ID == id && r.UserID == userID {
			return i
		}
	}
	return -1
}

func rideIDTaken(all []models.Ride, id string) bool {
	for _, r := range all {
		if r.ID == id {
			return true
		}
	}
	return false
}
