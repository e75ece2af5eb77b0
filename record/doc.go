// Package record owns the persisted session record: the document wire shape,
// the opaque payload model, backend-safe key normalization, and expiry
// computation.
//
// # Wire shape
//
// Records are stored as JSON documents of the form
//
//	{"expires": <int64 ms since epoch>, "session": <payload>, "type": "connect-session"}
//
// The "type" tag is written for backend-side introspection when the
// collection is shared with non-session documents; nothing in this module
// reads it back.
//
// # Payload opacity
//
// A [Payload] is treated as an opaque mapping of string keys to raw JSON
// values. The single exception is the optional "cookie" substructure, which
// is held aside so that Touch can replace it without understanding the rest
// of the payload, and so that its numeric "maxAge" field can feed expiry
// computation. Everything else round-trips untouched.
//
// # Architecture boundaries
//
// This package does not talk to Redis and does not import the root package.
// Persistence belongs to internal/stores; operation semantics belong to the
// root Store.
package record
