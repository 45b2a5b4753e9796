package credential

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/fluidauth/fluidauth/core/provider"
)

// Name is the registry key for the credential provider.
const Name = "credential"

// ValidateFunc checks submitted credentials against the embedding
// application's user storage. Wrong credentials are a soft failure
// (Result.Info); infrastructure problems are hard errors.
type ValidateFunc func(ctx context.Context, email, password string) (provider.Result, error)

// Config configures the credential provider.
type Config struct {
	// ValidateUser verifies an email/password pair. Required.
	ValidateUser ValidateFunc
}

// Provider authenticates locally submitted email/password credentials.
type Provider struct {
	provider.Base
	validate ValidateFunc
}

// New creates a credential provider.
func New(cfg Config) (*Provider, error) {
	if cfg.ValidateUser == nil {
		return nil, ErrNoValidateUser
	}
	return &Provider{validate: cfg.ValidateUser}, nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Kind() provider.Kind { return provider.KindCredentials }

// Authenticate extracts email and password from the request body (JSON or
// form-encoded) and runs the canonical login path. Missing fields fail fast
// with a 400-class soft failure before the validator is consulted.
func (p *Provider) Authenticate(flow provider.Flow, w http.ResponseWriter, r *http.Request) error {
	email, password, err := readCredentials(r)
	if err != nil || email == "" || password == "" {
		p.HandleAuthError(flow, w, r, "email and password fields are required", http.StatusBadRequest)
		return nil
	}

	return p.Login(flow, w, r, func(ctx context.Context) (provider.Result, error) {
		return p.validate(ctx, email, password)
	})
}

// HandleCallback processes a credential submission identically to
// Authenticate; there is no external round trip to complete.
func (p *Provider) HandleCallback(flow provider.Flow, w http.ResponseWriter, r *http.Request) error {
	return p.Authenticate(flow, w, r)
}

func readCredentials(r *http.Request) (email, password string, err error) {
	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if contentType == "application/json" {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", err
		}
		return body.Email, body.Password, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return r.PostFormValue("email"), r.PostFormValue("password"), nil
}
