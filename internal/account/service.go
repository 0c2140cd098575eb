package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/brickbreaker/internal/storage"
)

// Login and registration outcomes.
var (
	ErrUsernameTaken     = errors.New("account: username already exists")
	ErrUserNotFound      = errors.New("account: user not found")
	ErrIncorrectPassword = errors.New("account: incorrect password")
	ErrMissingCredential = errors.New("account: username and password are required")
)

// UserStore is the persistence the service needs.
type UserStore interface {
	CreateUser(u storage.User) (int64, error)
	UserByName(username string) (*storage.User, error)
}

// Service registers and authenticates players.
type Service struct {
	store UserStore
	cost  int
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithClock overrides the time source for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a service backed by store.
func NewService(store UserStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and stores a new account. It returns a
// *ValidationError for bad input and ErrUsernameTaken for duplicates.
func (s *Service) Register(r Registration) (*storage.User, error) {
	r = r.Normalize()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.UserByName(r.Username)
	if err != nil {
		return nil, fmt.Errorf("account: lookup %s: %w", r.Username, err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("account: hash password: %w", err)
	}

	u := storage.User{
		Username:     r.Username,
		PasswordHash: string(hash),
		FullName:     r.FullName,
		Phone:        r.Phone,
		CreatedAt:    s.now(),
	}
	id, err := s.store.CreateUser(u)
	if errors.Is(err, storage.ErrUserExists) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("account: create %s: %w", r.Username, err)
	}

	u.ID = id
	return &u, nil
}

// Login checks a username and password and returns the account.
func (s *Service) Login(username, password string) (*storage.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredential
	}

	u, err := s.store.UserByName(username)
	if err != nil {
		return nil, fmt.Errorf("account: lookup %s: %w", username, err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrIncorrectPassword
		}
		return nil, fmt.Errorf("account: verify password: %w", err)
	}

	return u, nil
}
