// Package redis provides Redis client initialization and health checking for
// session storage.
//
// The package wraps the go-redis client with URL validation, connection
// retries, and a ping-based readiness probe, so embedding applications get a
// verified client before wiring it into a session store.
//
// Configuration maps directly from the environment:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := redisstore.New(client)
package redis
