// Package postgres implements the session store contract on PostgreSQL
// through a pgx connection pool.
//
// Duplicate session IDs ride on the table's primary key; Clean sweeps
// expired rows and is meant to run on a schedule owned by the embedding
// application. Callers running inside a transaction thread it through the
// context with pg.WithTx and the store joins it automatically.
package postgres
