package session

import (
	"context"
	"net/http"
)

type stateKey struct{}

// state is the per-request session slot installed by Manage. It is built
// once per request and threaded through the context; handlers never mutate
// the request object directly.
type state struct {
	manager *Manager
	user    any
	record  *Record
}

func stateFrom(ctx context.Context) (*state, bool) {
	st, ok := ctx.Value(stateKey{}).(*state)
	return st, ok
}

// UserFromContext returns the identity attached to the request, or nil for
// anonymous requests.
func UserFromContext(ctx context.Context) any {
	st, ok := stateFrom(ctx)
	if !ok {
		return nil
	}
	return st.user
}

// IsAuthenticated reports whether the request carries an authenticated identity.
func IsAuthenticated(r *http.Request) bool {
	return UserFromContext(r.Context()) != nil
}

// CurrentRecord returns a copy of the session record backing the request's
// identity, if any.
func CurrentRecord(r *http.Request) (Record, bool) {
	st, ok := stateFrom(r.Context())
	if !ok || st.record == nil {
		return Record{}, false
	}
	return *st.record, true
}

// Login establishes a session for user on the current request. The request
// must have passed through the Manage middleware.
func Login(w http.ResponseWriter, r *http.Request, user any) error {
	st, ok := stateFrom(r.Context())
	if !ok {
		return ErrNotManaged
	}
	return st.manager.CreateSession(w, r, user)
}

// Logout destroys the current request's session, if any. The request must
// have passed through the Manage middleware.
func Logout(w http.ResponseWriter, r *http.Request) error {
	st, ok := stateFrom(r.Context())
	if !ok {
		return ErrNotManaged
	}
	return st.manager.DestroySession(w, r)
}
