package goSessions

import (
	"errors"

	"github.com/MrEthical07/goSessions/internal/stores"
)

// ErrNilRedisClient is returned by [New] when no backend handle is provided.
// This is a fatal configuration error, not a retryable condition.
var ErrNilRedisClient = errors.New("goSessions: nil redis client")

// ErrRedisUnavailable wraps every backend I/O failure surfaced by store
// operations. Match with errors.Is.
var ErrRedisUnavailable = stores.ErrRedisUnavailable
