// Package session implements the server-side session lifecycle: establishing,
// validating, extending, and destroying sessions referenced by an encrypted
// cookie, against a swappable storage backend.
//
// # Core Components
//
//   - Record: the persisted session unit (ID, UserID, ExpiresAt)
//   - Store: persistence interface (create, get, update, delete, clean)
//   - MemoryStore: in-memory reference Store for development and tests
//   - Manager: configuration plus the per-request lifecycle
//
// # Basic Usage
//
// Create a manager and mount its middleware:
//
//	mgr, err := session.New(os.Getenv("SESSION_SECRET"),
//		session.WithDuration(30*time.Minute),
//		session.WithSlidingExtension(5*time.Minute),
//		session.WithStore(redisStore),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	mgr.SetSerializeUser(func(ctx context.Context, user any) (string, error) {
//		return user.(*app.User).ID, nil
//	})
//	mgr.SetDeserializeUser(func(ctx context.Context, id string) (any, error) {
//		return users.Find(ctx, id) // (nil, nil) means "no identity"
//	})
//
//	http.ListenAndServe(":8080", mgr.Manage(mux))
//
// Handlers observe the request identity through the context:
//
//	func dashboard(w http.ResponseWriter, r *http.Request) {
//		if !session.IsAuthenticated(r) {
//			http.Redirect(w, r, "/login", http.StatusSeeOther)
//			return
//		}
//		user := session.UserFromContext(r.Context())
//		...
//	}
//
// # Request Lifecycle
//
// Manage re-derives the session state on every request; nothing is cached
// across requests outside the Store. The per-request transitions are:
// no cookie, an undecodable cookie, a missing record, or a failing store all
// degrade to an anonymous request (with the cookie cleared where one was
// present); an expired record is destroyed; a valid record near expiry is
// extended before the expiry check; a valid record resolves the application's
// deserialize hook and attaches the identity.
//
// # Expired Record Cleanup
//
// Manager.Clean delegates to Store.Clean and removes every expired record.
// Scheduling is owned by the embedding application (a ticker, a cron job);
// Clean is safe to invoke concurrently with request traffic.
package session
