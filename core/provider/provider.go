package provider

import (
	"context"
	"net/http"
)

// Kind is the closed set of provider categories. Behavior switches on Kind
// exhaustively; new categories extend this enumeration.
type Kind int

const (
	// KindCredentials identifies providers verifying locally submitted
	// credentials (email/password).
	KindCredentials Kind = iota
	// KindOAuth2 identifies providers delegating to an external OAuth2
	// authorization server.
	KindOAuth2
)

func (k Kind) String() string {
	switch k {
	case KindCredentials:
		return "credentials"
	case KindOAuth2:
		return "oauth2"
	default:
		return "unknown"
	}
}

// Info describes a soft authentication failure: the verification completed
// without error but produced no user.
type Info struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// Result is the canonical outcome of any provider's identity check:
// either User is set and Info is nil (success), or User is nil and Info
// carries the failure (soft failure). A hard error during verification is
// reported through the error return of VerifyFunc, never through Info.
type Result struct {
	User any
	Info *Info
}

// VerifyFunc resolves a provider-specific verification, bound to whatever
// inputs the provider extracted (credentials, OAuth2 token and profile).
type VerifyFunc func(ctx context.Context) (Result, error)

// CreateSessionFunc is the session-establishment capability injected by the
// auth service. Providers never create sessions any other way.
type CreateSessionFunc func(w http.ResponseWriter, r *http.Request, user any) error

// Flow carries the capabilities and redirect policy shared by every provider.
// It is assembled once, when the auth service is constructed, and threaded
// explicitly through each provider call.
type Flow struct {
	// CreateSession establishes a session for a verified user.
	CreateSession CreateSessionFunc
	// SuccessURL, when set, is where successful logins redirect.
	// Empty means a plain 200 JSON acknowledgment.
	SuccessURL string
	// FailureURL, when set, is where soft failures redirect with the failure
	// message query-encoded. Empty means a JSON error body.
	FailureURL string
}

// Provider is a pluggable strategy for establishing a user's identity.
// Authenticate initiates the flow (credential check or redirect to an
// authorization server); HandleCallback completes it. A returned error is a
// hard failure for the surrounding error-handling collaborator; soft
// failures are already written to the response.
type Provider interface {
	Name() string
	Kind() Kind
	Authenticate(flow Flow, w http.ResponseWriter, r *http.Request) error
	HandleCallback(flow Flow, w http.ResponseWriter, r *http.Request) error
}
