// Package session stores conversation history keyed by session id. A Session
// is an ordered list of content turns; stores hand out clones so callers can
// never mutate internal state.
//
// Add additional backends (Redis, Postgres, Firestore, etc.) without changing
// any calling code - only the wiring layer needs to decide which
// implementation to instantiate.
package session
