package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Optional holds a value that may be absent from a decoded model reply.
// Defaults are applied by the caller, never at decode time.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// OrDefault returns the held value, or def when absent.
func (o Optional[T]) OrDefault(def T) T {
	if o.Present {
		return o.Value
	}
	return def
}

// IsZero reports absence so `omitzero` drops absent fields on encode.
func (o Optional[T]) IsZero() bool {
	return !o.Present
}

// MarshalJSON encodes an absent value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON treats null as absent. Strings accept JSON numbers (models
// often emit ratings as 4.5) and numbers accept numeric strings; any other
// type mismatch is an error.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = Optional[T]{}
		return nil
	}

	var v T
	if err := decodeLenient(data, &v); err != nil {
		return err
	}
	o.Value = v
	o.Present = true
	return nil
}

func decodeLenient(data []byte, target any) error {
	switch t := target.(type) {
	case *string:
		if len(data) > 0 && data[0] == '"' {
			return json.Unmarshal(data, t)
		}
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string, got %s", data)
		}
		*t = n.String()
		return nil
	case *float64:
		if len(data) > 0 && data[0] == '"' {
			var s string
			if err := json.Unmarshal(data, &s); err != nil {
				return err
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("expected finite number, got %q", s)
			}
			*t = f
			return nil
		}
		return json.Unmarshal(data, t)
	default:
		return json.Unmarshal(data, target)
	}
}
