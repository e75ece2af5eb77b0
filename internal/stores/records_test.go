package stores

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSessions/record"
)

func newRecordStoreTest(t *testing.T) (*RecordStore, *redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRecordStore(rdb, "sessions")
	return store, rdb, func() {
		rdb.Close()
		mr.Close()
	}
}

func testRecord(expires time.Time) *record.Record {
	return &record.Record{
		Expires: expires.UnixMilli(),
		Session: record.Payload{
			Values: map[string]json.RawMessage{"user": json.RawMessage(`"x"`)},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store, _, done := newRecordStoreTest(t)
	defer done()
	ctx := context.Background()

	rec := testRecord(time.Now().Add(time.Hour))
	if err := store.Write(ctx, "abc", rec); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Read(ctx, "abc")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Expires != rec.Expires {
		t.Fatalf("expires = %d, want %d", got.Expires, rec.Expires)
	}
	if string(got.Session.Values["user"]) != `"x"` {
		t.Fatalf("payload mangled: %v", got.Session.Values)
	}
}

func TestReadAbsentIsNotFound(t *testing.T) {
	store, _, done := newRecordStoreTest(t)
	defer done()

	_, err := store.Read(context.Background(), "missing")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestWriteOverwritesAndReindexes(t *testing.T) {
	store, rdb, done := newRecordStoreTest(t)
	defer done()
	ctx := context.Background()

	first := testRecord(time.Now().Add(time.Minute))
	if err := store.Write(ctx, "abc", first); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := testRecord(time.Now().Add(time.Hour))
	if err := store.Write(ctx, "abc", second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := store.Read(ctx, "abc")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Expires != second.Expires {
		t.Fatalf("expires = %d, want overwrite to %d", got.Expires, second.Expires)
	}

	score, err := rdb.ZScore(ctx, store.indexKey(), "abc").Result()
	if err != nil {
		t.Fatalf("zscore: %v", err)
	}
	if int64(score) != second.Expires {
		t.Fatalf("index score = %d, want %d", int64(score), second.Expires)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, rdb, done := newRecordStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Write(ctx, "abc", testRecord(time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Remove(ctx, "abc"); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := store.Remove(ctx, "abc"); err != nil {
		t.Fatalf("second remove: %v", err)
	}

	if n, err := rdb.Exists(ctx, store.recordKey("abc")).Result(); err != nil || n != 0 {
		t.Fatalf("record key still present (n=%d, err=%v)", n, err)
	}
	if _, err := rdb.ZScore(ctx, store.indexKey(), "abc").Result(); !errors.Is(err, redis.Nil) {
		t.Fatalf("index entry still present: %v", err)
	}
}

func TestListAllAndListExpired(t *testing.T) {
	store, _, done := newRecordStoreTest(t)
	defer done()
	ctx := context.Background()
	now := time.Now()

	if err := store.Write(ctx, "old-1", testRecord(now.Add(-time.Hour))); err != nil {
		t.Fatalf("write old-1: %v", err)
	}
	if err := store.Write(ctx, "old-2", testRecord(now.Add(-time.Minute))); err != nil {
		t.Fatalf("write old-2: %v", err)
	}
	if err := store.Write(ctx, "live", testRecord(now.Add(time.Hour))); err != nil {
		t.Fatalf("write live: %v", err)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	expired, err := store.ListExpired(ctx, now)
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	keys := map[string]bool{}
	for _, kr := range expired {
		keys[kr.Key] = true
	}
	if len(expired) != 2 || !keys["old-1"] || !keys["old-2"] {
		t.Fatalf("expected old-1 and old-2 expired, got %v", keys)
	}
}

func TestListExpiredBoundaryIsStrict(t *testing.T) {
	store, _, done := newRecordStoreTest(t)
	defer done()
	ctx := context.Background()
	now := time.Now()

	if err := store.Write(ctx, "edge", testRecord(now)); err != nil {
		t.Fatalf("write: %v", err)
	}

	expired, err := store.ListExpired(ctx, now)
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(expired) != 0 {
		t.Fatalf("record expiring exactly now must not be listed, got %d", len(expired))
	}
}

func TestListAllEmpty(t *testing.T) {
	store, _, done := newRecordStoreTest(t)
	defer done()

	all, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(all))
	}
}

func TestRemoveExpiredDeletesStaleRecord(t *testing.T) {
	store, rdb, done := newRecordStoreTest(t)
	defer done()
	ctx := context.Background()
	now := time.Now()

	if err := store.Write(ctx, "stale", testRecord(now.Add(-time.Minute))); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, err := store.RemoveExpired(ctx, "stale", now)
	if err != nil {
		t.Fatalf("remove expired: %v", err)
	}
	if !removed {
		t.Fatal("expected stale record to be removed")
	}
	if n, _ := rdb.Exists(ctx, store.recordKey("stale")).Result(); n != 0 {
		t.Fatal("record key survived guarded delete")
	}

	// Second pass over the same key is a no-op.
	removed, err = store.RemoveExpired(ctx, "stale", now)
	if err != nil {
		t.Fatalf("second remove expired: %v", err)
	}
	if removed {
		t.Fatal("guarded delete reported a delete for an absent key")
	}
}

func TestRemoveExpiredSparesRefreshedRecord(t *testing.T) {
	store, _, done := newRecordStoreTest(t)
	defer done()
	ctx := context.Background()
	now := time.Now()

	// Listed as expired, then refreshed before the delete phase reaches it.
	if err := store.Write(ctx, "racy", testRecord(now.Add(-time.Minute))); err != nil {
		t.Fatalf("write: %v", err)
	}
	expired, err := store.ListExpired(ctx, now)
	if err != nil || len(expired) != 1 {
		t.Fatalf("expected one expired record (err=%v, n=%d)", err, len(expired))
	}

	if err := store.Write(ctx, "racy", testRecord(now.Add(time.Hour))); err != nil {
		t.Fatalf("refresh write: %v", err)
	}

	removed, err := store.RemoveExpired(ctx, "racy", now)
	if err != nil {
		t.Fatalf("remove expired: %v", err)
	}
	if removed {
		t.Fatal("guarded delete clobbered a refreshed record")
	}
	if _, err := store.Read(ctx, "racy"); err != nil {
		t.Fatalf("refreshed record must survive the sweep: %v", err)
	}
}
