package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a numeric DVF column. Government extracts write decimals with a
// comma and leave cells empty or garbled, so an Amount records whether the
// source value was usable instead of failing the whole row.
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a valid Amount for v, or an invalid one if v is not finite.
func NewAmount(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{Value: v, Valid: true}
}

// ParseAmount parses a DVF numeric cell such as "185000,00" or "92".
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}
	}
	return NewAmount(v)
}

// Ptr returns the value as a pointer, nil when invalid.
func (a Amount) Ptr() *float64 {
	if !a.Valid {
		return nil
	}
	v := a.Value
	return &v
}

// MarshalJSON writes a number, or null for an invalid amount.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts numbers, numeric strings (comma or dot decimal) and
// null. Anything else decodes to an invalid Amount without an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil //nolint:nilerr // malformed cells are tolerated
		}
		*a = ParseAmount(s)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil //nolint:nilerr // malformed cells are tolerated
	}
	*a = NewAmount(v)
	return nil
}
