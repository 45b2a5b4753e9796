// Package fluidauth is an embeddable authentication engine for net/http
// applications: cookie-backed sessions with encrypted session IDs, a
// pluggable session store, and pluggable identity providers (email/password
// plus OAuth2 providers for Google, GitHub, and Discord).
//
// The engine stores only an opaque session ID client-side, encrypted with
// AES-256-GCM inside an HttpOnly cookie. The session record lives in a Store
// (in-memory by default; Redis, MongoDB, and PostgreSQL implementations ship
// under integration/sessionstore). The application owns user storage and
// plugs in three functions: serialize (identity to stored user ID),
// deserialize (stored user ID back to identity), and per-provider validation.
//
// Typical wiring:
//
//	mgr, err := session.New(os.Getenv("SESSION_SECRET"),
//		session.WithDuration(24*time.Hour),
//		session.WithStore(store),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	auth, err := fluidauth.New(fluidauth.Config{
//		Session:         mgr,
//		SuccessRedirect: "/dashboard",
//		FailureRedirect: "/login",
//		Providers: []provider.Provider{
//			credentialProvider,
//			googleProvider,
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	auth.SerializeUser(func(ctx context.Context, user any) (string, error) {
//		return user.(*User).ID.String(), nil
//	})
//	auth.DeserializeUser(func(ctx context.Context, id string) (any, error) {
//		return users.ByID(ctx, id)
//	})
//
//	login, _ := auth.Authenticate("google")
//	callback, _ := auth.HandleCallback("google")
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("GET /auth/google", login)
//	mux.HandleFunc("GET /auth/google/callback", callback)
//	http.ListenAndServe(":8080", auth.Session(mux))
//
// Handlers read the authenticated identity with session.UserFromContext and
// session.IsAuthenticated; session.Login and session.Logout establish and
// destroy sessions outside the provider flows.
package fluidauth
