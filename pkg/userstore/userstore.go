package userstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fluidauth/fluidauth/core/provider"
	"github.com/fluidauth/fluidauth/core/session"
)

// User is an application account with optional password credentials.
// OAuth2-only accounts carry no password hash.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash []byte
}

// Store is an in-memory user registry, safe for concurrent use. It exists for
// examples, tests, and prototypes; production applications bring their own
// user storage and only borrow the hook constructors below.
type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
}

// New creates an empty user store.
func New() *Store {
	return &Store{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with bcrypt-hashed password credentials.
func (s *Store) Register(ctx context.Context, email, name, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[email]; taken {
		return nil, ErrEmailTaken
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID

	return copyUser(u), nil
}

// Upsert finds the user by email or creates a passwordless account. Used by
// OAuth2 validators to resolve external profiles onto local accounts.
func (s *Store) Upsert(ctx context.Context, email, name string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byEmail[email]; ok {
		return copyUser(s.byID[id]), nil
	}

	u := &User{
		ID:    uuid.New(),
		Email: email,
		Name:  name,
	}
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID

	return copyUser(u), nil
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords both return ErrInvalidCredentials so callers cannot distinguish
// which part failed.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[normalizeEmail(email)]
	var u *User
	if ok {
		u = s.byID[id]
	}
	s.mu.RUnlock()

	if u == nil || len(u.PasswordHash) == 0 {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return copyUser(u), nil
}

// ByID returns the user with the given ID, or ErrUserNotFound.
func (s *Store) ByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	u := s.byID[id]
	s.mu.RUnlock()

	if u == nil {
		return nil, ErrUserNotFound
	}
	return copyUser(u), nil
}

// SerializeUser returns the session hook mapping a *User to its ID.
func (s *Store) SerializeUser() session.SerializeUserFunc {
	return func(ctx context.Context, user any) (string, error) {
		u, ok := user.(*User)
		if !ok {
			return "", ErrUnexpectedIdentity
		}
		return u.ID.String(), nil
	}
}

// DeserializeUser returns the session hook resolving a stored ID back to a
// *User. An unknown ID yields a nil identity, not an error, so stale sessions
// degrade to anonymous instead of failing the request.
func (s *Store) DeserializeUser() session.DeserializeUserFunc {
	return func(ctx context.Context, id string) (any, error) {
		uid, err := uuid.Parse(id)
		if err != nil {
			return nil, nil
		}
		u, err := s.ByID(ctx, uid)
		if err != nil {
			return nil, nil
		}
		return u, nil
	}
}

// ValidateCredentials returns a credential-provider validator backed by this
// store. Wrong credentials surface as a soft failure.
func (s *Store) ValidateCredentials() func(ctx context.Context, email, password string) (provider.Result, error) {
	return func(ctx context.Context, email, password string) (provider.Result, error) {
		u, err := s.Authenticate(ctx, email, password)
		if err != nil {
			return provider.Result{Info: &provider.Info{Message: "invalid email or password"}}, nil
		}
		return provider.Result{User: u}, nil
	}
}

func copyUser(u *User) *User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}
