package kvquery

import (
	"fmt"
	"maps"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tarantool/go-datastore/statement"
)

// DecodingError represents an error that occurs while decoding a stored record.
type DecodingError struct {
	Key []byte
	Err error
}

// Error returns the error message.
func (e DecodingError) Error() string {
	if len(e.Key) == 0 {
		return fmt.Sprintf("failed to decode record: %s", e.Err)
	}

	return fmt.Sprintf("failed to decode record %q: %s", e.Key, e.Err)
}

func (e DecodingError) Unwrap() error {
	return e.Err
}

// Encode serializes a record with msgpack.
func Encode(record statement.Record) ([]byte, error) {
	data, err := msgpack.Marshal(map[string]any(record))
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	return data, nil
}

// Decode deserializes a record stored with Encode.
func Decode(data []byte) (statement.Record, error) {
	record, err := decode(data)
	if err != nil {
		return nil, DecodingError{Key: nil, Err: err}
	}

	return record, nil
}

func decode(data []byte) (statement.Record, error) {
	var record map[string]any

	if err := msgpack.Unmarshal(data, &record); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if record == nil {
		record = map[string]any{}
	}

	return record, nil
}

// MergeValues overlays the fields of patch on top of the stored value.
// An empty stored value is treated as an empty record.
func MergeValues(stored, patch []byte) ([]byte, error) {
	base := statement.Record{}

	if len(stored) != 0 {
		decoded, err := Decode(stored)
		if err != nil {
			return nil, err
		}

		base = decoded
	}

	overlay, err := Decode(patch)
	if err != nil {
		return nil, err
	}

	maps.Copy(base, overlay)

	return Encode(base)
}
