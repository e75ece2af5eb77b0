package goSessions

import (
	"context"

	"github.com/MrEthical07/goSessions/record"
)

// SessionStore is the capability set a host middleware expects from a session
// persistence adapter. [Store] is the Redis-backed implementation.
//
// Absence of a session is success with a nil payload, never an error; only
// backend failures error. Each call completes exactly once.
type SessionStore interface {
	// Get returns the payload for a session, or nil when the session does
	// not exist or has expired (an expired record is removed on the way).
	Get(ctx context.Context, sid string) (*record.Payload, error)

	// Set writes the payload for a session, computing a fresh expiry from
	// the payload's cookie maxAge hint. Overwrites any existing record.
	Set(ctx context.Context, sid string, payload *record.Payload) error

	// Destroy removes a session. Destroying an absent session is a no-op.
	Destroy(ctx context.Context, sid string) error

	// Touch refreshes a session's expiry, keeping the stored payload but
	// replacing its cookie substructure with the incoming payload's. A
	// missing session is left missing.
	Touch(ctx context.Context, sid string, payload *record.Payload) error

	// Clear removes every record in the collection.
	Clear(ctx context.Context) error
}
