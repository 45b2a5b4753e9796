package credential

import "errors"

// ErrNoValidateUser is returned at construction when no validator is configured.
var ErrNoValidateUser = errors.New("credential provider requires a ValidateUser function")
