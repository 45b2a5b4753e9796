package discord

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/fluidauth/fluidauth/core/provider"
)

// Name is the registry key for the Discord provider.
const Name = "discord"

const defaultUserURL = "https://discord.com/api/users/@me"

var defaultScopes = []string{"identify", "email"}

// Profile is the subset of Discord's current-user response handed to
// ValidateUser.
type Profile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
	Email      string `json:"email"`
	Verified   bool   `json:"verified"`
}

// ValidateFunc maps a verified Discord profile onto an application user.
// The exchanged token is passed alongside the profile so applications can
// persist access and refresh tokens. Rejecting the profile is a soft failure
// (Result.Info); infrastructure problems are hard errors.
type ValidateFunc func(ctx context.Context, token *oauth2.Token, profile Profile) (provider.Result, error)

// Config configures the Discord provider.
type Config struct {
	ClientID     string
	ClientSecret string
	// RedirectURL is the callback registered with Discord.
	RedirectURL string
	// Scopes defaults to identify and email.
	Scopes []string
	// ValidateUser maps the fetched profile onto an application user. Required.
	ValidateUser ValidateFunc

	// Endpoint and UserURL override Discord's endpoints. Used in tests.
	Endpoint oauth2.Endpoint
	UserURL  string
}

// Provider completes Discord's OAuth2 authorization-code flow.
type Provider struct {
	provider.Base
	oauth    *oauth2.Config
	userURL  string
	validate ValidateFunc
}

// New creates a Discord provider.
func New(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.ValidateUser == nil {
		return nil, ErrNoValidateUser
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = endpoints.Discord
	}
	userURL := cfg.UserURL
	if userURL == "" {
		userURL = defaultUserURL
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		userURL:  userURL,
		validate: cfg.ValidateUser,
	}, nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Kind() provider.Kind { return provider.KindOAuth2 }

// Authenticate redirects the browser to Discord's authorization page.
func (p *Provider) Authenticate(flow provider.Flow, w http.ResponseWriter, r *http.Request) error {
	state, err := provider.State()
	if err != nil {
		return fmt.Errorf("generate state: %w", err)
	}
	http.Redirect(w, r, p.oauth.AuthCodeURL(state), http.StatusFound)
	return nil
}

// HandleCallback exchanges the authorization code, fetches the current user,
// and runs the canonical login path.
func (p *Provider) HandleCallback(flow provider.Flow, w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	if errCode := query.Get("error"); errCode != "" {
		message := query.Get("error_description")
		if message == "" {
			message = errCode
		}
		p.HandleAuthError(flow, w, r, message, http.StatusUnauthorized)
		return nil
	}

	code := query.Get("code")
	if code == "" {
		p.HandleAuthError(flow, w, r, "authorization code is missing", http.StatusBadRequest)
		return nil
	}

	token, err := p.oauth.Exchange(r.Context(), code)
	if err != nil {
		return fmt.Errorf("discord token exchange: %w", err)
	}

	var profile Profile
	if err := provider.GetJSON(p.oauth.Client(r.Context(), token), p.userURL, &profile); err != nil {
		return fmt.Errorf("discord user profile: %w", err)
	}

	return p.Login(flow, w, r, func(ctx context.Context) (provider.Result, error) {
		return p.validate(ctx, token, profile)
	})
}
