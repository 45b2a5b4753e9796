package fluidauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fluidauth/fluidauth/core/logger"
	"github.com/fluidauth/fluidauth/core/provider"
	"github.com/fluidauth/fluidauth/core/session"
)

// ErrorHandler receives hard authentication failures: verification
// infrastructure errors, token-exchange failures, session persistence errors.
// Soft failures (wrong password, consent denied) never reach it.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config assembles an auth Service.
type Config struct {
	// Session is the session lifecycle manager. Required.
	Session *session.Manager
	// Providers is the set of identity providers, keyed by Provider.Name.
	Providers []provider.Provider
	// SuccessRedirect, when set, is where successful logins redirect.
	// Empty means a plain 200 JSON acknowledgment.
	SuccessRedirect string
	// FailureRedirect, when set, is where soft failures redirect with the
	// failure message query-encoded. Empty means a JSON error body.
	FailureRedirect string
	// ErrorHandler handles hard failures. Defaults to a 500 JSON response.
	ErrorHandler ErrorHandler
	// Logger defaults to a no-op logger.
	Logger *slog.Logger
}

// Service is the front door of the engine: it registers providers, binds them
// to the session manager through a shared flow, and hands out the HTTP
// handlers the embedding application mounts on its router.
type Service struct {
	session      *session.Manager
	providers    map[string]provider.Provider
	flow         provider.Flow
	errorHandler ErrorHandler
	log          *slog.Logger
}

// New creates an auth service. Provider names must be unique and non-empty.
func New(cfg Config) (*Service, error) {
	if cfg.Session == nil {
		return nil, ErrNoSessionManager
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	errorHandler := cfg.ErrorHandler
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	s := &Service{
		session:      cfg.Session,
		providers:    make(map[string]provider.Provider, len(cfg.Providers)),
		errorHandler: errorHandler,
		log:          log,
	}
	s.flow = provider.Flow{
		CreateSession: cfg.Session.CreateSession,
		SuccessURL:    cfg.SuccessRedirect,
		FailureURL:    cfg.FailureRedirect,
	}

	for _, p := range cfg.Providers {
		if p == nil {
			return nil, ErrNilProvider
		}
		name := p.Name()
		if name == "" {
			return nil, ErrMissingProviderName
		}
		if _, exists := s.providers[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateProvider, name)
		}
		s.providers[name] = p
	}

	return s, nil
}

// SerializeUser installs the hook mapping an identity to its stored user ID.
func (s *Service) SerializeUser(fn session.SerializeUserFunc) {
	s.session.SetSerializeUser(fn)
}

// DeserializeUser installs the hook mapping a stored user ID back to an identity.
func (s *Service) DeserializeUser(fn session.DeserializeUserFunc) {
	s.session.SetDeserializeUser(fn)
}

// Session returns the session middleware. Mount it around every route that
// reads the authenticated identity, including the auth handlers themselves.
func (s *Service) Session(next http.Handler) http.Handler {
	return s.session.Manage(next)
}

// Provider returns the registered provider by name.
func (s *Service) Provider(name string) (provider.Provider, error) {
	if name == "" {
		return nil, ErrMissingProviderName
	}
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}
	return p, nil
}

// Authenticate returns the handler initiating the named provider's flow:
// a credential check, or a redirect to the authorization server. The lookup
// fails at mount time so a misspelled provider name is caught at startup.
func (s *Service) Authenticate(name string) (http.HandlerFunc, error) {
	p, err := s.Provider(name)
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.Authenticate(s.flow, w, r); err != nil {
			s.log.ErrorContext(r.Context(), "authentication failed",
				logger.Provider(p.Name()), logger.Error(err))
			s.errorHandler(w, r, err)
		}
	}, nil
}

// HandleCallback returns the handler completing the named provider's flow.
func (s *Service) HandleCallback(name string) (http.HandlerFunc, error) {
	p, err := s.Provider(name)
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.HandleCallback(s.flow, w, r); err != nil {
			s.log.ErrorContext(r.Context(), "callback failed",
				logger.Provider(p.Name()), logger.Error(err))
			s.errorHandler(w, r, err)
		}
	}, nil
}

// Logout destroys the current session and clears the cookie.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) error {
	return s.session.DestroySession(w, r)
}

// Clean removes expired session records. Scheduling is owned by the embedding
// application.
func (s *Service) Clean(ctx context.Context) error {
	return s.session.Clean(ctx)
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": http.StatusText(http.StatusInternalServerError),
	})
}
