package session

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultCookieName is the session cookie name used when none is configured.
	DefaultCookieName = "fluid-auth-session"

	// DefaultDuration is the session lifetime used when none is configured.
	DefaultDuration = 30 * time.Minute
)

// CookieOptions configures attributes of the session cookie.
// The cookie is always HttpOnly; that is not negotiable here.
type CookieOptions struct {
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// Config holds session manager configuration, fixed at construction time.
type Config struct {
	// Name is the session cookie name.
	Name string
	// Secret derives the symmetric key encrypting session IDs. Required.
	Secret string
	// Duration is the session lifetime. Must be strictly positive.
	Duration time.Duration
	// Cookie configures session cookie attributes.
	Cookie CookieOptions
	// ExtendBeforeExpiry enables sliding extension: a request arriving within
	// ExtensionThreshold of expiry renews the session for another Duration.
	ExtendBeforeExpiry bool
	// ExtensionThreshold is the remaining time-to-expiry at or below which
	// a session is renewed. Only meaningful when ExtendBeforeExpiry is set.
	ExtensionThreshold time.Duration
}

func defaultConfig() Config {
	return Config{
		Name:     DefaultCookieName,
		Duration: DefaultDuration,
		Cookie: CookieOptions{
			Path:     "/",
			SameSite: http.SameSiteStrictMode,
		},
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.cfg.Name = name
		}
	}
}

// WithDuration sets the session lifetime.
func WithDuration(d time.Duration) Option {
	return func(m *Manager) {
		m.cfg.Duration = d
	}
}

// WithCookie overrides session cookie attributes.
func WithCookie(opts CookieOptions) Option {
	return func(m *Manager) {
		if opts.Path == "" {
			opts.Path = "/"
		}
		m.cfg.Cookie = opts
	}
}

// WithSecure sets the Secure cookie flag. Enable in production deployments
// served over TLS.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.cfg.Cookie.Secure = secure
	}
}

// WithSlidingExtension enables renewal of sessions whose remaining lifetime
// is at or below threshold. Renewal happens before the expiry check, so a
// session at the boundary is extended rather than destroyed.
func WithSlidingExtension(threshold time.Duration) Option {
	return func(m *Manager) {
		m.cfg.ExtendBeforeExpiry = true
		m.cfg.ExtensionThreshold = threshold
	}
}

// WithStore sets the session persistence backend.
// Defaults to the in-memory reference store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithLogger sets the structured logger. Defaults to a discard handler.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithErrorHandler sets the collaborator that receives unexpected per-request
// errors (storage failures, hook failures). The default responds with a
// 500 JSON body.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) Option {
	return func(m *Manager) {
		if h != nil {
			m.errorHandler = h
		}
	}
}
