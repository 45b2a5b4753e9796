package google

import "errors"

var (
	// ErrMissingCredentials is returned when client ID, secret, or redirect URL is absent.
	ErrMissingCredentials = errors.New("google provider requires client ID, client secret, and redirect URL")
	// ErrNoValidateUser is returned at construction when no validator is configured.
	ErrNoValidateUser = errors.New("google provider requires a ValidateUser function")
)
