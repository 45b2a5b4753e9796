// Package userstore is a concurrency-safe in-memory user registry with
// bcrypt password hashing. It ships ready-made session hooks and a
// credential validator so examples and tests can wire a working auth setup
// in a few lines; production applications substitute their own user storage.
package userstore
