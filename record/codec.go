package record

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned when a stored document cannot be decoded.
var ErrInvalidRecord = errors.New("invalid session record")

// Encode serializes a record to its stored document form. The type tag is
// stamped here so callers never have to set it.
func Encode(r *Record) ([]byte, error) {
	r.Type = TypeTag
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return data, nil
}

// Decode parses a stored document back into a record.
func Decode(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return &r, nil
}
