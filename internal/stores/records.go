package stores

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSessions/record"
)

var (
	// ErrRecordNotFound is returned by Read when no record exists for a key.
	ErrRecordNotFound = errors.New("session record not found")
	// ErrRedisUnavailable wraps every backend I/O failure.
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "sessions"

// reapKeyScript deletes one record only if its live index score is still in
// the past. The score is re-read inside the script, so a concurrent write
// that refreshed the expiry between listing and deleting keeps its record.
const reapKeyScript = `
local score = redis.call("ZSCORE", KEYS[2], ARGV[1])
if not score then
  return 0
end
if tonumber(score) < tonumber(ARGV[2]) then
  redis.call("ZREM", KEYS[2], ARGV[1])
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`

var reapKeyLua = redis.NewScript(reapKeyScript)

// KeyedRecord pairs a normalized key with its decoded record.
type KeyedRecord struct {
	Key    string
	Record *record.Record
}

// RecordStore persists session records in Redis. Each record lives under
// "<collection>:<key>" as a JSON document, with a companion sorted set
// "<collection>-expiry" scoring every key by its expiry in milliseconds.
// The sorted set is what gives the backend its "expires < now" range query;
// writes and removals always move the value and its index entry together in
// one MULTI/EXEC so the index never names a live key it shouldn't.
type RecordStore struct {
	redis      redis.UniversalClient
	collection string
}

// NewRecordStore creates a [RecordStore] over the given client. An empty
// collection name falls back to [DefaultCollection].
func NewRecordStore(client redis.UniversalClient, collection string) *RecordStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &RecordStore{
		redis:      client,
		collection: collection,
	}
}

func (s *RecordStore) recordKey(key string) string {
	return s.collection + ":" + key
}

// indexKey never collides with a record key: record keys always carry a ':'
// right after the collection name.
func (s *RecordStore) indexKey() string {
	return s.collection + "-expiry"
}

// Read fetches and decodes the record for a key. Absence is reported as
// [ErrRecordNotFound], distinct from backend failure.
func (s *RecordStore) Read(ctx context.Context, key string) (*record.Record, error) {
	data, err := s.redis.Get(ctx, s.recordKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return record.Decode(data)
}

// Write upserts the record for a key, replacing any previous one. The value
// and its expiry index entry are written in a single transaction.
func (s *RecordStore) Write(ctx context.Context, key string, rec *record.Record) error {
	data, err := record.Encode(rec)
	if err != nil {
		return err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.recordKey(key), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(rec.Expires), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Remove deletes the record and its index entry. Removing an absent key is a
// successful no-op.
func (s *RecordStore) Remove(ctx context.Context, key string) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.recordKey(key))
		pipe.ZRem(ctx, s.indexKey(), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// ListAll returns every persisted record in the collection. Keys deleted
// between reading the index and fetching the values are skipped.
func (s *RecordStore) ListAll(ctx context.Context) ([]KeyedRecord, error) {
	keys, err := s.redis.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return s.fetch(ctx, keys)
}

// ListExpired returns every record whose expiry is strictly before now.
func (s *RecordStore) ListExpired(ctx context.Context, now time.Time) ([]KeyedRecord, error) {
	keys, err := s.redis.ZRangeByScore(ctx, s.indexKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return s.fetch(ctx, keys)
}

// RemoveExpired deletes the record for a key only if it is still expired as
// of now, and reports whether a delete happened. The expiry check and delete
// run atomically in a Lua script; a record whose expiry was refreshed after
// it was listed survives.
func (s *RecordStore) RemoveExpired(ctx context.Context, key string, now time.Time) (bool, error) {
	deleted, err := reapKeyLua.Run(
		ctx,
		s.redis,
		[]string{s.recordKey(key), s.indexKey()},
		key,
		now.UnixMilli(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return deleted == 1, nil
}

func (s *RecordStore) fetch(ctx context.Context, keys []string) ([]KeyedRecord, error) {
	if len(keys) == 0 {
		return []KeyedRecord{}, nil
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, s.recordKey(key))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	records := make([]KeyedRecord, 0, len(keys))
	for i, cmd := range cmds {
		data, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, cmdErr)
		}

		rec, decErr := record.Decode(data)
		if decErr != nil {
			return nil, decErr
		}
		records = append(records, KeyedRecord{Key: keys[i], Record: rec})
	}

	return records, nil
}
