// Package services contains the application core: identity, the ride
// repository with its query pipeline, and the analytics aggregator. The
// presentation surface talks to these interfaces only.
package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rideflow-labs/rideflow/internal/common"
	"github.com/rideflow-labs/rideflow/internal/logging"
	"github.com/rideflow-labs/rideflow/internal/models"
	"github.com/rideflow-labs/rideflow/internal/repositories/session"
	"github.com/rideflow-labs/rideflow/internal/repositories/users"
	"github.com/rideflow-labs/rideflow/internal/store"
	"github.com/rideflow-labs/rideflow/internal/timex"
)

// AuthService manages accounts and the single active session.
//
// Contract:
//   - SignUp: create an account and make it the active session.
//   - Login: match credentials exactly and set the session.
//   - Logout: clear the session pointer only.
//   - CurrentUser: the active user, or nil.
//   - RequireSession: guard for ride-mutating operations.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	RequireSession(ctx context.Context) (*models.User, error)
}

const minNameLength = 2
const minPasswordLength = 6

// emailShape is the usual local@domain sanity check, not full RFC 5322.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authService struct {
	store *store.Store
	clock timex.Clock
	log   logging.Logger
}

// NewAuthService constructs an AuthService bound to the given store.
func NewAuthService(st *store.Store, clock timex.Clock, log logging.Logger) AuthService {
	return &authService{store: st, clock: clock, log: log}
}

func (s *authService) usersRepo(kv store.KV) users.Repository {
	return users.NewKVRepository(kv, s.log)
}

func (s *authService) sessionRepo(kv store.KV) session.Repository {
	return session.NewKVRepository(kv, s.log)
}

// SignUp validates the input, rejects duplicate emails case-insensitively,
// then persists the new user and the session pointer in one transaction.
func (s *authService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if len(name) < minNameLength {
		return nil, fmt.Errorf("%w: name must be at least %d characters", common.ErrInvalidInput, minNameLength)
	}
	if !emailShape.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email", common.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrInvalidInput, minPasswordLength)
	}

	all, err := s.usersRepo(s.store).All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if strings.EqualFold(u.Email, email) {
			return nil, common.ErrDuplicateEmail
		}
	}

	now := s.clock.Now()
	user := models.User{
		ID:        timestampID(now, func(id string) bool { return userIDTaken(all, id) }),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: isoTimestamp(now),
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, kv store.KV) error {
		if err := s.usersRepo(kv).Replace(ctx, append(all, user)); err != nil {
			return err
		}
		return s.sessionRepo(kv).Set(ctx, &user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account created", "user", user.ID)
	return &user, nil
}

// Login rejects malformed emails before any lookup, then requires an exact
// email and password match. Failures never reveal which field was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if !emailShape.MatchString(email) {
		return nil, fmt.Errorf("%w: malformed email", common.ErrInvalidInput)
	}

	all, err := s.usersRepo(s.store).All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.Email == email && u.Password == password {
			user := u
			if err := s.sessionRepo(s.store).Set(ctx, &user); err != nil {
				return nil, err
			}
			s.log.Info(ctx, "login", "user", user.ID)
			return &user, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

// Logout clears the session pointer. User and ride collections are untouched.
func (s *authService) Logout(ctx context.Context) error {
	return s.sessionRepo(s.store).Clear(ctx)
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.sessionRepo(s.store).Current(ctx)
}

// RequireSession returns the active user or ErrUnauthenticated.
func (s *authService) RequireSession(ctx context.Context) (*models.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUnauthenticated
	}
	return user, nil
}

func userIDTaken(all []models.User, id string) bool {
	for _, u := range all {
		if u.ID == id {
			return true
		}
	}
	return false
}
