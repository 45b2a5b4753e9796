package session

import "errors"

var (
	// ErrSecretRequired is returned at construction when no secret is configured.
	ErrSecretRequired = errors.New("session secret is required")
	// ErrInvalidDuration is returned at construction for a non-positive duration.
	ErrInvalidDuration = errors.New("session duration must be positive")
	// ErrDuplicateSession is returned by Store.Create when the session ID
	// already exists.
	ErrDuplicateSession = errors.New("session id already exists")
	// ErrNoSerializer is returned when a session is created before a
	// serialize-user hook has been installed.
	ErrNoSerializer = errors.New("serialize user hook is not set")
	// ErrNoDeserializer is returned when an authenticated request is handled
	// before a deserialize-user hook has been installed.
	ErrNoDeserializer = errors.New("deserialize user hook is not set")
	// ErrNotManaged is returned by Login and Logout when the request did not
	// pass through the Manage middleware.
	ErrNotManaged = errors.New("request has no managed session state")
)
