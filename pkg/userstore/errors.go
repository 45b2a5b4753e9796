package userstore

import "errors"

var (
	// ErrEmailRequired is returned when an empty email is submitted.
	ErrEmailRequired = errors.New("userstore: email is required")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("userstore: email already registered")
	// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("userstore: invalid credentials")
	// ErrUserNotFound is returned when no user matches the given ID.
	ErrUserNotFound = errors.New("userstore: user not found")
	// ErrUnexpectedIdentity is returned when a session hook receives a foreign identity type.
	ErrUnexpectedIdentity = errors.New("userstore: identity is not a *userstore.User")
)
