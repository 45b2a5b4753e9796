// Package pg provides PostgreSQL connection pool management and health
// checking for session storage.
//
// The package wraps the pgx driver with retry logic and pool tuning so
// embedding applications get a verified pool before wiring it into a session
// store. Transactions can be threaded through context with WithTx and picked
// up downstream with TxFromContext.
//
// Configuration maps directly from the environment:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := postgres.New(pool)
package pg
