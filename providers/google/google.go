package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/fluidauth/fluidauth/core/provider"
)

// Name is the registry key for the Google provider.
const Name = "google"

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var defaultScopes = []string{"openid", "profile", "email"}

// Profile is the subset of Google's userinfo response handed to ValidateUser.
type Profile struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// ValidateFunc maps a verified Google profile onto an application user.
// The exchanged token is passed alongside the profile so applications can
// persist access and refresh tokens. Rejecting the profile is a soft failure
// (Result.Info); infrastructure problems are hard errors.
type ValidateFunc func(ctx context.Context, token *oauth2.Token, profile Profile) (provider.Result, error)

// Config configures the Google provider.
type Config struct {
	ClientID     string
	ClientSecret string
	// RedirectURL is the callback registered with Google.
	RedirectURL string
	// Scopes defaults to openid, profile, and email.
	Scopes []string
	// ValidateUser maps the fetched profile onto an application user. Required.
	ValidateUser ValidateFunc

	// Endpoint and UserInfoURL override Google's endpoints. Used in tests.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

// Provider completes Google's OAuth2 authorization-code flow.
type Provider struct {
	provider.Base
	oauth       *oauth2.Config
	userInfoURL string
	validate    ValidateFunc
}

// New creates a Google provider.
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
		endpoint = endpoints.Google
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = defaultUserInfoURL
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		userInfoURL: userInfoURL,
		validate:    cfg.ValidateUser,
	}, nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Kind() provider.Kind { return provider.KindOAuth2 }

// Authenticate redirects the browser to Google's consent screen.
func (p *Provider) Authenticate(flow provider.Flow, w http.ResponseWriter, r *http.Request) error {
	state, err := provider.State()
	if err != nil {
		return fmt.Errorf("generate state: %w", err)
	}
	http.Redirect(w, r, p.oauth.AuthCodeURL(state), http.StatusFound)
	return nil
}

// HandleCallback exchanges the authorization code, fetches the userinfo
// profile, and runs the canonical login path. Denials reported by Google in
// the callback query are soft failures; exchange and profile-fetch problems
// are hard errors.
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
		return fmt.Errorf("google token exchange: %w", err)
	}

	var profile Profile
	if err := provider.GetJSON(p.oauth.Client(r.Context(), token), p.userInfoURL, &profile); err != nil {
		return fmt.Errorf("google userinfo: %w", err)
	}

	return p.Login(flow, w, r, func(ctx context.Context) (provider.Result, error) {
		return p.validate(ctx, token, profile)
	})
}
