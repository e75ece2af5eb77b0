package record

import "time"

// DefaultLifetime is applied when a payload declares no lifetime hint.
const DefaultLifetime = 6 * time.Hour

// ExpiresAt computes the absolute expiry for a payload written at now:
// now + the payload's cookie maxAge when one is declared, otherwise
// now + defaultLifetime (falling back to [DefaultLifetime] when the caller
// passes zero). Negative declared lifetimes are not rejected; they yield an
// expiry already in the past and the record becomes unreadable immediately.
func ExpiresAt(now time.Time, p *Payload, defaultLifetime time.Duration) int64 {
	lifetime := defaultLifetime
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	if declared, ok := p.MaxAge(); ok {
		lifetime = declared
	}
	return now.Add(lifetime).UnixMilli()
}
