package goSessions

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSessions/internal/stores"
	"github.com/MrEthical07/goSessions/metrics"
	"github.com/MrEthical07/goSessions/record"
)

// Store is the Redis-backed [SessionStore] implementation. It holds no state
// beyond configuration; every call is an independent transaction against the
// backend, and correctness under concurrency rests on the backend's per-key
// atomicity.
type Store struct {
	records *stores.RecordStore
	cfg     Config
}

var _ SessionStore = (*Store)(nil)

// New creates a [Store] backed by the given Redis client. Zero-valued Config
// fields take their defaults; a nil client is refused outright.
func New(client redis.UniversalClient, cfg Config) (*Store, error) {
	if client == nil {
		return nil, ErrNilRedisClient
	}

	cfg = cfg.withDefaults()
	return &Store{
		records: stores.NewRecordStore(client, cfg.Collection),
		cfg:     cfg,
	}, nil
}

func observe(op, result string) {
	metrics.OperationsTotal.WithLabelValues(op, result).Inc()
}

// Get returns the payload for a session, or nil when the session is absent.
// A record found past its expiry is removed and then reported exactly like an
// absent one: expiry cleanup and absence are observationally identical to the
// caller.
func (s *Store) Get(ctx context.Context, sid string) (*record.Payload, error) {
	key := record.NormalizeKey(sid)

	rec, err := s.records.Read(ctx, key)
	if err != nil {
		if errors.Is(err, stores.ErrRecordNotFound) {
			observe("get", "miss")
			return nil, nil
		}
		observe("get", "error")
		return nil, err
	}

	if rec.ExpiredAt(time.Now()) {
		if err := s.records.Remove(ctx, key); err != nil {
			observe("get", "error")
			return nil, err
		}
		observe("get", "miss")
		return nil, nil
	}

	observe("get", "ok")
	return &rec.Session, nil
}

// Set writes the payload for a session, replacing any existing record. The
// expiry is write-time now plus the payload's cookie maxAge hint, or the
// configured default lifetime when no hint is declared.
func (s *Store) Set(ctx context.Context, sid string, payload *record.Payload) error {
	if payload == nil {
		payload = &record.Payload{}
	}
	key := record.NormalizeKey(sid)

	rec := &record.Record{
		Expires: record.ExpiresAt(time.Now(), payload, s.cfg.DefaultLifetime),
		Session: *payload,
	}
	if err := s.records.Write(ctx, key, rec); err != nil {
		observe("set", "error")
		return err
	}

	observe("set", "ok")
	return nil
}

// Destroy removes a session. Destroying an absent session succeeds.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	if err := s.records.Remove(ctx, record.NormalizeKey(sid)); err != nil {
		observe("destroy", "error")
		return err
	}

	observe("destroy", "ok")
	return nil
}

// Touch refreshes a session's expiry without disturbing its server-side
// state: the stored payload keeps all of its fields, only the cookie
// substructure is replaced with the one from the incoming payload, and the
// merged record is rewritten with a fresh expiry. A missing session is left
// missing; Touch never creates one.
func (s *Store) Touch(ctx context.Context, sid string, payload *record.Payload) error {
	key := record.NormalizeKey(sid)

	rec, err := s.records.Read(ctx, key)
	if err != nil {
		if errors.Is(err, stores.ErrRecordNotFound) {
			observe("touch", "miss")
			return nil
		}
		observe("touch", "error")
		return err
	}

	merged := rec.Session
	if payload != nil {
		merged.Cookie = payload.Cookie
	} else {
		merged.Cookie = nil
	}

	refreshed := &record.Record{
		Expires: record.ExpiresAt(time.Now(), &merged, s.cfg.DefaultLifetime),
		Session: merged,
	}
	if err := s.records.Write(ctx, key, refreshed); err != nil {
		observe("touch", "error")
		return err
	}

	observe("touch", "ok")
	return nil
}

// Clear removes every record in the collection. All removals are attempted;
// the first failure, if any, is returned after the pass completes. Records
// removed before a later failure stay removed; the operation is explicitly
// best-effort and non-atomic.
func (s *Store) Clear(ctx context.Context) error {
	all, err := s.records.ListAll(ctx)
	if err != nil {
		observe("clear", "error")
		return err
	}

	var firstErr error
	for _, kr := range all {
		if err := s.records.Remove(ctx, kr.Key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		observe("clear", "error")
		return firstErr
	}

	observe("clear", "ok")
	return nil
}

// Reap deletes every record already expired at the start of the sweep and
// returns how many were deleted. Each delete re-checks the record's live
// expiry, so a concurrent Set that refreshed a listed record wins and the
// record survives. Like Clear, every delete is attempted and the first
// failure is returned after the pass.
func (s *Store) Reap(ctx context.Context) (int, error) {
	start := time.Now()

	expired, err := s.records.ListExpired(ctx, start)
	if err != nil {
		observe("reap", "error")
		return 0, err
	}

	deleted := 0
	var firstErr error
	for _, kr := range expired {
		removed, err := s.records.RemoveExpired(ctx, kr.Key, start)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if removed {
			deleted++
		}
	}

	metrics.ReapRunsTotal.Inc()
	metrics.ReapedSessionsTotal.Add(float64(deleted))
	metrics.ReapDuration.Observe(time.Since(start).Seconds())

	if firstErr != nil {
		observe("reap", "error")
		return deleted, firstErr
	}

	observe("reap", "ok")
	return deleted, nil
}
