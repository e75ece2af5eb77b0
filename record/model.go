package record

import (
	"encoding/json"
	"time"
)

// TypeTag is written into every stored document so that a shared collection
// can be filtered for session records backend-side.
const TypeTag = "connect-session"

// Record is the persisted unit for one session: the opaque payload plus its
// absolute expiry in milliseconds since epoch.
type Record struct {
	Expires int64   `json:"expires"`
	Session Payload `json:"session"`
	Type    string  `json:"type"`
}

// ExpiredAt reports whether the record is stale as of now. Expiry is strict:
// a record whose expiry equals now is still valid.
func (r *Record) ExpiredAt(now time.Time) bool {
	return r.Expires < now.UnixMilli()
}

// Payload is an opaque session payload: a mapping of string keys to raw JSON
// values. The optional "cookie" top-level field is held aside from Values so
// it can be replaced wholesale on touch and probed for its maxAge without
// interpreting anything else.
type Payload struct {
	// Cookie is the raw "cookie" substructure, nil when absent.
	Cookie json.RawMessage

	// Values holds every top-level field except "cookie", verbatim.
	Values map[string]json.RawMessage
}

// UnmarshalJSON splits the "cookie" field out of the payload object and keeps
// all remaining fields as raw JSON.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if cookie, ok := fields["cookie"]; ok {
		p.Cookie = cookie
		delete(fields, "cookie")
	} else {
		p.Cookie = nil
	}
	p.Values = fields
	return nil
}

// MarshalJSON recombines Values and Cookie into a single object, restoring
// the shape the payload arrived in.
func (p Payload) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(p.Values)+1)
	for k, v := range p.Values {
		fields[k] = v
	}
	if p.Cookie != nil {
		fields["cookie"] = p.Cookie
	}
	return json.Marshal(fields)
}

// MaxAge returns the payload's declared lifetime when the cookie substructure
// carries a numeric maxAge (milliseconds), and reports whether one was found.
// A missing cookie, missing field, or wrong-typed value yields (0, false);
// negative values are returned as-is and produce already-expired records.
func (p *Payload) MaxAge() (time.Duration, bool) {
	if p == nil || p.Cookie == nil {
		return 0, false
	}
	var cookie struct {
		MaxAge *float64 `json:"maxAge"`
	}
	if err := json.Unmarshal(p.Cookie, &cookie); err != nil || cookie.MaxAge == nil {
		return 0, false
	}
	return time.Duration(*cookie.MaxAge) * time.Millisecond, true
}
