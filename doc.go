// Package goSessions provides a Redis-backed persistence adapter for HTTP
// session middleware: opaque session payloads keyed by session identifier,
// with absolute expiry, lazy expiry on read, and a periodic background
// reaper.
//
// A [Store] implements the five-operation [SessionStore] contract expected by
// a host middleware's store abstraction. Session identifiers are normalized
// to backend-safe document keys, expiry is computed on every write from the
// payload's optional cookie maxAge hint (default six hours), and a record
// observed past its expiry is removed and reported exactly like an absent
// one.
//
// The [Reaper] is an explicitly owned background task: construct it with
// [NewReaper], start it with [Reaper.Start], and stop it on shutdown with
// [Reaper.Stop]. It sweeps expired records in bulk on a fixed interval,
// independent of the request path.
//
// # Architecture boundaries
//
// goSessions is the public surface. It exposes [Store], [SessionStore],
// [Config], and [Reaper]; persistence lives in internal/stores and the record
// model in the record package. Session lifecycle, cookie parsing, and
// request/response wiring belong to the host middleware.
//
// # What this package must NOT do
//
//   - Interpret session payloads beyond the optional cookie maxAge hint.
//   - Retry backend failures or impose timeouts; callers own both via
//     context and their Redis client configuration.
//   - Hold state across calls beyond configuration.
package goSessions
