package goSessions

import (
	"time"

	"github.com/MrEthical07/goSessions/internal/stores"
	"github.com/MrEthical07/goSessions/record"
)

// Config defines the goSessions configuration surface.
//
// Config instances are intended to be set up during initialization and then
// treated as immutable.
type Config struct {
	// Collection is the backend collection name, i.e. the key namespace all
	// records live under. Defaults to "sessions".
	Collection string

	// DefaultLifetime is applied to writes whose payload declares no cookie
	// maxAge hint. Defaults to six hours.
	DefaultLifetime time.Duration

	// ReapInterval is the fixed period between reap sweeps. Defaults to six
	// hours. It shares its default with DefaultLifetime by convention but the
	// two are logically independent.
	ReapInterval time.Duration

	// OnReap is invoked after every completed sweep with the number of
	// records deleted and the first error encountered, if any. Nil means
	// no-op.
	OnReap func(deleted int, err error)
}

// DefaultConfig returns the configuration used when fields are left zero.
func DefaultConfig() Config {
	return Config{
		Collection:      stores.DefaultCollection,
		DefaultLifetime: record.DefaultLifetime,
		ReapInterval:    record.DefaultLifetime,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Collection == "" {
		c.Collection = def.Collection
	}
	if c.DefaultLifetime <= 0 {
		c.DefaultLifetime = def.DefaultLifetime
	}
	if c.ReapInterval <= 0 {
		c.ReapInterval = def.ReapInterval
	}
	return c
}
