package interfaces

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSession is returned when an order insert collides with the
	// unique stripe_session_id index. Callers treat it as "already
	// materialized" and fetch the existing order.
	ErrDuplicateSession = errors.New("order already exists for session")
)
