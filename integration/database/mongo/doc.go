// Package mongo provides MongoDB client initialization and health checking
// for session storage.
//
// The package wraps the official MongoDB Go driver with connection retries
// tuned for managed deployments, where cold starts and brief network
// interruptions would otherwise abort application startup.
//
// Configuration maps directly from the environment:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "myapp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := mongostore.New(db.Collection("sessions"))
package mongo
