// Package store provides persistence for users, publisher houses, and
// admins behind the Store interface, with a SQLite implementation.
//
// Uniqueness is enforced at the schema level: username for users, name
// and email for publisher houses, username and email for admins.
// Violations surface as ErrDuplicate; absent records as ErrNotFound.
package store
