package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/fluidauth/fluidauth/core/provider"
	"github.com/fluidauth/fluidauth/providers/github"
)

// fakeGitHub stands in for GitHub's token, user, and emails endpoints.
func fakeGitHub(t *testing.T, userJSON, emailsJSON string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token-123","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userJSON))
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(emailsJSON))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newProvider(t *testing.T, srv *httptest.Server, validate github.ValidateFunc) *github.Provider {
	t.Helper()

	p, err := github.New(github.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://app.example.com/auth/github/callback",
		ValidateUser: validate,
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		},
		UserURL:   srv.URL + "/user",
		EmailsURL: srv.URL + "/user/emails",
	})
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	validate := func(ctx context.Context, token *oauth2.Token, profile github.Profile) (provider.Result, error) {
		return provider.Result{User: profile.Login}, nil
	}

	t.Run("requires client credentials", func(t *testing.T) {
		t.Parallel()

		_, err := github.New(github.Config{ValidateUser: validate})
		require.ErrorIs(t, err, github.ErrMissingCredentials)
	})

	t.Run("requires a validator", func(t *testing.T) {
		t.Parallel()

		_, err := github.New(github.Config{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURL:  "https://app.example.com/cb",
		})
		require.ErrorIs(t, err, github.ErrNoValidateUser)
	})

	t.Run("reports identity", func(t *testing.T) {
		t.Parallel()

		p, err := github.New(github.Config{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURL:  "https://app.example.com/cb",
			ValidateUser: validate,
		})
		require.NoError(t, err)
		assert.Equal(t, "github", p.Name())
		assert.Equal(t, provider.KindOAuth2, p.Kind())
	})
}

func TestProvider_Authenticate(t *testing.T) {
	t.Parallel()

	srv := fakeGitHub(t, `{}`, `[]`)
	p := newProvider(t, srv, func(ctx context.Context, token *oauth2.Token, profile github.Profile) (provider.Result, error) {
		return provider.Result{User: profile.Login}, nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/github", nil)

	require.NoError(t, p.Authenticate(provider.Flow{}, rec, req))
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", loc.Path)
	assert.NotEmpty(t, loc.Query().Get("state"))
	assert.Contains(t, loc.Query().Get("scope"), "user:email")
}

func TestProvider_HandleCallback(t *testing.T) {
	t.Parallel()

	t.Run("uses profile email when public", func(t *testing.T) {
		t.Parallel()

		srv := fakeGitHub(t,
			`{"id":7,"login":"octocat","name":"Octo Cat","email":"octo@example.com"}`,
			`[]`)
		p := newProvider(t, srv, func(ctx context.Context, token *oauth2.Token, profile github.Profile) (provider.Result, error) {
			require.NotNil(t, token)
			assert.Equal(t, "token-123", token.AccessToken)
			assert.EqualValues(t, 7, profile.ID)
			assert.Equal(t, "octo@example.com", profile.Email)
			return provider.Result{User: profile.Login}, nil
		})

		var created any
		flow := provider.Flow{
			CreateSession: func(w http.ResponseWriter, r *http.Request, user any) error {
				created = user
				return nil
			},
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=auth-code", nil)

		require.NoError(t, p.HandleCallback(flow, rec, req))
		assert.Equal(t, "octocat", created)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("resolves hidden email through the emails endpoint", func(t *testing.T) {
		t.Parallel()

		srv := fakeGitHub(t,
			`{"id":7,"login":"octocat","email":""}`,
			`[{"email":"secondary@example.com","primary":false,"verified":true},
			  {"email":"primary@example.com","primary":true,"verified":true}]`)
		p := newProvider(t, srv, func(ctx context.Context, token *oauth2.Token, profile github.Profile) (provider.Result, error) {
			assert.Equal(t, "primary@example.com", profile.Email)
			return provider.Result{User: profile.Login}, nil
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=auth-code", nil)

		require.NoError(t, p.HandleCallback(provider.Flow{
			CreateSession: func(w http.ResponseWriter, r *http.Request, user any) error { return nil },
		}, rec, req))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("provider denial is a soft failure", func(t *testing.T) {
		t.Parallel()

		srv := fakeGitHub(t, `{}`, `[]`)
		p := newProvider(t, srv, func(ctx context.Context, token *oauth2.Token, profile github.Profile) (provider.Result, error) {
			t.Fatal("validator must not run on provider denial")
			return provider.Result{}, nil
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?error=access_denied", nil)

		require.NoError(t, p.HandleCallback(provider.Flow{}, rec, req))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "access_denied")
	})

	t.Run("missing code is a soft failure", func(t *testing.T) {
		t.Parallel()

		srv := fakeGitHub(t, `{}`, `[]`)
		p := newProvider(t, srv, func(ctx context.Context, token *oauth2.Token, profile github.Profile) (provider.Result, error) {
			return provider.Result{}, nil
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback", nil)

		require.NoError(t, p.HandleCallback(provider.Flow{}, rec, req))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("profile fetch failure is a hard error", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"token-123","token_type":"Bearer"}`))
		})
		mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusForbidden)
		})
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		p := newProvider(t, srv, func(ctx context.Context, token *oauth2.Token, profile github.Profile) (provider.Result, error) {
			return provider.Result{}, nil
		})

		req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?code=auth-code", nil)
		err := p.HandleCallback(provider.Flow{}, httptest.NewRecorder(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user profile")
	})
}
