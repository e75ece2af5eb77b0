// Package stores provides the Redis-backed record store underneath the
// goSessions public surface.
//
// # Design
//
// Each session record is one JSON document under "<collection>:<key>", with a
// companion sorted set "<collection>-expiry" scoring every key by its expiry
// in milliseconds since epoch. The sorted set supplies the "expires < now"
// range query; MULTI/EXEC keeps a record's value and index entry in step, and
// reap deletes re-check the live score in a Lua script before touching the
// key.
//
// # Architecture boundaries
//
// This package owns persistence only. It does NOT normalize keys, compute
// expiry, or decide what an expired record means to a caller — those
// responsibilities belong to the record package and the root Store.
//
// # What this package must NOT do
//
//   - Import goSessions (no upward imports).
//   - Retry backend failures; errors are wrapped and surfaced verbatim.
//   - Hold cursors or locks across operations.
package stores
