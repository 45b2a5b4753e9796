package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fluidauth/fluidauth/core/codec"
	"github.com/fluidauth/fluidauth/core/logger"
)

// Manager owns session configuration and the per-request session lifecycle:
// decoding the cookie, loading and validating the record, sliding extension,
// and attaching the deserialized identity to the request context.
type Manager struct {
	cfg   Config
	store Store
	log   *slog.Logger

	serializeUser   SerializeUserFunc
	deserializeUser DeserializeUserFunc
	errorHandler    func(w http.ResponseWriter, r *http.Request, err error)
}

// New creates a session manager. The secret is required; everything else
// has working defaults (30 minute duration, in-memory store, strict cookie).
func New(secret string, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:          defaultConfig(),
		store:        NewMemoryStore(),
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		errorHandler: defaultErrorHandler,
	}
	m.cfg.Secret = secret

	for _, opt := range opts {
		opt(m)
	}

	if m.cfg.Secret == "" {
		return nil, ErrSecretRequired
	}
	if m.cfg.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	return m, nil
}

// SetSerializeUser installs the application hook mapping an identity to the
// stored user ID. A nil hook is a programmer error and panics immediately.
func (m *Manager) SetSerializeUser(fn SerializeUserFunc) {
	if fn == nil {
		panic("session: serialize user hook must not be nil")
	}
	m.serializeUser = fn
}

// SetDeserializeUser installs the application hook mapping a stored user ID
// back to an identity. A nil hook is a programmer error and panics immediately.
func (m *Manager) SetDeserializeUser(fn DeserializeUserFunc) {
	if fn == nil {
		panic("session: deserialize user hook must not be nil")
	}
	m.deserializeUser = fn
}

// Duration returns the configured session lifetime.
func (m *Manager) Duration() time.Duration {
	return m.cfg.Duration
}

// Manage is the per-request middleware. It installs the per-request session
// state, resolves the session cookie into an identity, and continues the
// pipeline. Every failure mode degrades to an anonymous request; a valid
// cookie near expiry is extended before the expiry check so a session at the
// boundary is renewed rather than destroyed.
func (m *Manager) Manage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := wrapWriter(w)
		st := &state{manager: m}
		r = r.WithContext(context.WithValue(r.Context(), stateKey{}, st))

		cookie, err := r.Cookie(m.cfg.Name)
		if err != nil {
			// No cookie: anonymous request.
			next.ServeHTTP(ww, r)
			return
		}

		id, err := codec.Decrypt(cookie.Value, m.cfg.Secret)
		if err != nil {
			m.log.DebugContext(r.Context(), "session cookie decode failed", logger.Error(err))
			m.clearCookie(ww)
			next.ServeHTTP(ww, r)
			return
		}

		rec, err := m.store.Get(r.Context(), id)
		if err != nil {
			// Fail closed: a broken store never yields an authenticated state.
			m.log.ErrorContext(r.Context(), "session lookup failed", logger.SessionID(id), logger.Error(err))
			m.clearCookie(ww)
			next.ServeHTTP(ww, r)
			return
		}

		if rec == nil {
			m.clearCookie(ww)
			next.ServeHTTP(ww, r)
			return
		}

		// Sliding extension runs before the expiry check: a record at the
		// boundary is renewed, not destroyed in the same tick. Only records
		// that have not yet expired qualify; negative remaining time means
		// the record is dead and must fall through to the expiry branch.
		if m.cfg.ExtendBeforeExpiry {
			if remaining := time.Until(rec.ExpiresAt); remaining >= 0 && remaining <= m.cfg.ExtensionThreshold {
				extended := *rec
				extended.ExpiresAt = time.Now().Add(m.cfg.Duration)
				if err := m.store.Update(r.Context(), rec.ID, extended); err != nil {
					m.log.ErrorContext(r.Context(), "session extension failed", logger.SessionID(rec.ID), logger.Error(err))
				} else {
					rec = &extended
					m.setCookie(ww, cookie.Value, extended.ExpiresAt)
				}
			}
		}

		if rec.IsExpired() {
			if err := m.store.Delete(r.Context(), rec.ID); err != nil {
				m.log.ErrorContext(r.Context(), "expired session delete failed", logger.SessionID(rec.ID), logger.Error(err))
			}
			m.clearCookie(ww)
			next.ServeHTTP(ww, r)
			return
		}

		if m.deserializeUser == nil {
			m.errorHandler(ww, r, ErrNoDeserializer)
			return
		}

		user, err := m.deserializeUser(r.Context(), rec.UserID)
		if err != nil {
			// Unknown state: destroy defensively and forward the error.
			// Never continue as authenticated.
			m.destroyRecord(r.Context(), ww, rec.ID)
			m.errorHandler(ww, r, err)
			return
		}

		if user != nil {
			st.user = user
			st.record = rec
		}

		next.ServeHTTP(ww, r)
	})
}

// CreateSession establishes a new session for user: serialize the identity,
// persist the record, then set the encrypted cookie. The record is persisted
// before the cookie is set; if persistence fails no cookie reaches the
// client. A no-op once the response has been committed.
func (m *Manager) CreateSession(w http.ResponseWriter, r *http.Request, user any) error {
	if committed(w) {
		return nil
	}
	if m.serializeUser == nil {
		return ErrNoSerializer
	}

	userID, err := m.serializeUser(r.Context(), user)
	if err != nil {
		return err
	}

	id, err := newID()
	if err != nil {
		return err
	}

	rec := Record{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(m.cfg.Duration),
	}

	if err := m.store.Create(r.Context(), rec); err != nil {
		return err
	}

	value, err := codec.Encrypt(rec.ID, m.cfg.Secret)
	if err != nil {
		// Undo the record rather than leak a session the client can't use.
		if delErr := m.store.Delete(r.Context(), rec.ID); delErr != nil {
			m.log.ErrorContext(r.Context(), "orphaned session cleanup failed", logger.SessionID(rec.ID), logger.Error(delErr))
		}
		return err
	}

	m.setCookie(w, value, rec.ExpiresAt)
	m.attachIdentity(r, &rec)

	m.log.InfoContext(r.Context(), "session created", logger.UserID(userID))
	return nil
}

// DestroySession removes the current session: the store record is deleted,
// the cookie cleared, and the request identity dropped. It is a no-op when
// the response has already been committed or no session cookie is present.
func (m *Manager) DestroySession(w http.ResponseWriter, r *http.Request) error {
	if committed(w) {
		return nil
	}

	cookie, err := r.Cookie(m.cfg.Name)
	if err != nil {
		return nil
	}

	defer func() {
		m.clearCookie(w)
		if st, ok := stateFrom(r.Context()); ok {
			st.user = nil
			st.record = nil
		}
	}()

	id, err := codec.Decrypt(cookie.Value, m.cfg.Secret)
	if err != nil {
		// Undecodable cookie still gets cleared; there is no record to delete.
		return nil
	}

	return m.store.Delete(r.Context(), id)
}

// ExtendSession recomputes the record's expiry from now plus duration
// (the configured duration when none is given) and persists it.
// A no-op when no matching record exists.
func (m *Manager) ExtendSession(ctx context.Context, id string, duration ...time.Duration) error {
	_, err := m.extend(ctx, id, duration...)
	return err
}

// ExtendCurrentSession extends the session carried by the request cookie and
// refreshes the cookie so its lifetime matches the persisted expiry.
func (m *Manager) ExtendCurrentSession(w http.ResponseWriter, r *http.Request, duration ...time.Duration) error {
	cookie, err := r.Cookie(m.cfg.Name)
	if err != nil {
		return nil
	}

	id, err := codec.Decrypt(cookie.Value, m.cfg.Secret)
	if err != nil {
		return nil
	}

	rec, err := m.extend(r.Context(), id, duration...)
	if err != nil || rec == nil {
		return err
	}

	if !committed(w) {
		m.setCookie(w, cookie.Value, rec.ExpiresAt)
	}
	return nil
}

func (m *Manager) extend(ctx context.Context, id string, duration ...time.Duration) (*Record, error) {
	d := m.cfg.Duration
	if len(duration) > 0 && duration[0] > 0 {
		d = duration[0]
	}

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	rec.ExpiresAt = time.Now().Add(d)
	if err := m.store.Update(ctx, id, *rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Clean removes all expired records from the store. Scheduling is owned by
// the embedding application; Clean is safe to run concurrently with
// per-request store access.
func (m *Manager) Clean(ctx context.Context) error {
	return m.store.Clean(ctx)
}

// attachIdentity resolves the deserialize hook for the freshly created record
// so handlers later in the same request observe the authenticated identity.
func (m *Manager) attachIdentity(r *http.Request, rec *Record) {
	st, ok := stateFrom(r.Context())
	if !ok || m.deserializeUser == nil {
		return
	}

	user, err := m.deserializeUser(r.Context(), rec.UserID)
	if err != nil || user == nil {
		return
	}

	st.user = user
	st.record = rec
}

// destroyRecord is the defensive cleanup path for ambiguous session state.
func (m *Manager) destroyRecord(ctx context.Context, w http.ResponseWriter, id string) {
	if err := m.store.Delete(ctx, id); err != nil {
		m.log.ErrorContext(ctx, "defensive session delete failed", logger.SessionID(id), logger.Error(err))
	}
	if !committed(w) {
		m.clearCookie(w)
	}
}

// setCookie derives MaxAge from the record's actual expiry so the cookie
// lifetime never drifts from the stored one, including extensions with a
// custom duration.
func (m *Manager) setCookie(w http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.Name,
		Value:    value,
		Path:     m.cfg.Cookie.Path,
		Domain:   m.cfg.Cookie.Domain,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Secure:   m.cfg.Cookie.Secure,
		HttpOnly: true,
		SameSite: m.cfg.Cookie.SameSite,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.Name,
		Value:    "",
		Path:     m.cfg.Cookie.Path,
		Domain:   m.cfg.Cookie.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.Cookie.Secure,
		HttpOnly: true,
		SameSite: m.cfg.Cookie.SameSite,
	})
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if committed(w) {
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": http.StatusText(http.StatusInternalServerError),
	})
}
