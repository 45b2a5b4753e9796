// Package redisstore implements the session store contract on Redis.
//
// Records are stored as JSON with per-key TTLs derived from the record
// expiry, so expired sessions evict without a cleanup job and Clean is a
// no-op.
package redisstore
