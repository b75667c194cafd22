package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Optional is a float64 that may be absent. The zero value is absent.
type Optional struct {
	value float64
	ok    bool
}

// Some returns a present value.
func Some(v float64) Optional { return Optional{value: v, ok: true} }

// None returns an absent value.
func None() Optional { return Optional{} }

// Get returns the value and whether it is present.
func (o Optional) Get() (float64, bool) { return o.value, o.ok }

// Valid reports whether the value is present.
func (o Optional) Valid() bool { return o.ok }

// Or returns the value, or d when absent.
func (o Optional) Or(d float64) float64 {
	if !o.ok {
		return d
	}
	return o.value
}

// String formats the value for tabular output; absent values are empty.
func (o Optional) String() string {
	if !o.ok {
		return ""
	}
	return strconv.FormatFloat(o.value, 'f', -1, 64)
}

// MarshalJSON encodes absent values as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, o.value, 'f', -1, 64), nil
}

// UnmarshalJSON decodes null as absent.
func (o *Optional) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("optional: %w", err)
	}
	*o = Some(v)
	return nil
}

// StatLine holds one optional value per Stat.
type StatLine [NumStats]Optional

// Mean returns the mean of the present values, skipping absent ones.
// The result is absent when no value is present.
func Mean(values []Optional) Optional {
	var sum float64
	n := 0
	for _, v := range values {
		if x, ok := v.Get(); ok {
			sum += x
			n++
		}
	}
	if n == 0 {
		return None()
	}
	return Some(sum / float64(n))
}
