// Package mongostore implements the session store contract on MongoDB.
//
// The session ID is the document _id, so duplicate detection rides on the
// collection's primary index. EnsureIndexes adds a TTL index on expires_at
// for automatic eviction; Clean covers deployments without it.
package mongostore
