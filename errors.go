package fluidauth

import "errors"

var (
	// ErrNoSessionManager is returned when a service is built without a session manager.
	ErrNoSessionManager = errors.New("fluidauth: session manager is required")
	// ErrNilProvider is returned when a nil provider is registered.
	ErrNilProvider = errors.New("fluidauth: provider must not be nil")
	// ErrMissingProviderName is returned when a provider reports an empty name.
	ErrMissingProviderName = errors.New("fluidauth: provider name must not be empty")
	// ErrDuplicateProvider is returned when two providers share a name.
	ErrDuplicateProvider = errors.New("fluidauth: duplicate provider")
	// ErrProviderNotFound is returned when no provider is registered under the requested name.
	ErrProviderNotFound = errors.New("fluidauth: provider not found")
)
