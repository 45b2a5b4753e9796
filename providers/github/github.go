package github

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/fluidauth/fluidauth/core/provider"
)

// Name is the registry key for the GitHub provider.
const Name = "github"

const (
	defaultUserURL   = "https://api.github.com/user"
	defaultEmailsURL = "https://api.github.com/user/emails"
)

var defaultScopes = []string{"read:user", "user:email"}

// Profile is the subset of GitHub's user response handed to ValidateUser.
// Email is resolved from the emails endpoint when the public profile hides it.
type Profile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

type email struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// ValidateFunc maps a verified GitHub profile onto an application user.
// The exchanged token is passed alongside the profile so applications can
// persist access and refresh tokens. Rejecting the profile is a soft failure
// (Result.Info); infrastructure problems are hard errors.
type ValidateFunc func(ctx context.Context, token *oauth2.Token, profile Profile) (provider.Result, error)

// Config configures the GitHub provider.
type Config struct {
	ClientID     string
	ClientSecret string
	// RedirectURL is the callback registered with GitHub.
	RedirectURL string
	// Scopes defaults to read:user and user:email.
	Scopes []string
	// ValidateUser maps the fetched profile onto an application user. Required.
	ValidateUser ValidateFunc

	// Endpoint, UserURL, and EmailsURL override GitHub's endpoints. Used in tests.
	Endpoint  oauth2.Endpoint
	UserURL   string
	EmailsURL string
}

// Provider completes GitHub's OAuth2 authorization-code flow.
type Provider struct {
	provider.Base
	oauth     *oauth2.Config
	userURL   string
	emailsURL string
	validate  ValidateFunc
}

// New creates a GitHub provider.
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
		endpoint = endpoints.GitHub
	}
	userURL := cfg.UserURL
	if userURL == "" {
		userURL = defaultUserURL
	}
	emailsURL := cfg.EmailsURL
	if emailsURL == "" {
		emailsURL = defaultEmailsURL
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		userURL:   userURL,
		emailsURL: emailsURL,
		validate:  cfg.ValidateUser,
	}, nil
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Kind() provider.Kind { return provider.KindOAuth2 }

// Authenticate redirects the browser to GitHub's authorization page.
func (p *Provider) Authenticate(flow provider.Flow, w http.ResponseWriter, r *http.Request) error {
	state, err := provider.State()
	if err != nil {
		return fmt.Errorf("generate state: %w", err)
	}
	http.Redirect(w, r, p.oauth.AuthCodeURL(state), http.StatusFound)
	return nil
}

// HandleCallback exchanges the authorization code, fetches the user profile,
// and runs the canonical login path. GitHub omits the email from the public
// profile when the user hides it; the emails endpoint supplies the primary
// verified address in that case.
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
		return fmt.Errorf("github token exchange: %w", err)
	}

	client := p.oauth.Client(r.Context(), token)

	var profile Profile
	if err := provider.GetJSON(client, p.userURL, &profile); err != nil {
		return fmt.Errorf("github user profile: %w", err)
	}

	if profile.Email == "" {
		primary, err := p.primaryEmail(client)
		if err != nil {
			return fmt.Errorf("github user emails: %w", err)
		}
		profile.Email = primary
	}

	return p.Login(flow, w, r, func(ctx context.Context) (provider.Result, error) {
		return p.validate(ctx, token, profile)
	})
}

func (p *Provider) primaryEmail(client *http.Client) (string, error) {
	var emails []email
	if err := provider.GetJSON(client, p.emailsURL, &emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	return "", nil
}
