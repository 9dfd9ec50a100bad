package travel

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text is a display value that the travel API may send as a string, a number
// or a small object. Live flight offers carry locations as
// {"iataCode":"JFK","at":"2025-01-01T08:00:00"} while stubbed data uses plain
// strings; both decode to a printable string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*t = Text(describeObject(obj, data))
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the text value.
func (t Text) String() string { return string(t) }

func describeObject(obj map[string]any, raw []byte) string {
	var parts []string
	for _, key := range []string{"iataCode", "name", "total", "at"} {
		if v, ok := obj[key]; ok && v != nil {
			parts = append(parts, strings.TrimSpace(scalarString(v)))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

func scalarString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// Amount is a price or rating. The travel API may send it as a JSON number,
// a numeric string, or an object carrying a "total" (or "grandTotal") field.
type Amount struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.set(s)
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		for _, key := range []string{"total", "grandTotal"} {
			if v, ok := obj[key]; ok {
				a.set(scalarString(v))
				break
			}
		}
	default:
		a.set(string(data))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(a.Value, 'f', -1, 64)), nil
}

func (a *Amount) set(raw string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return
	}
	a.Value, a.Valid = v, true
}

// NewAmount returns a valid Amount holding v.
func NewAmount(v float64) Amount { return Amount{Value: v, Valid: true} }

// String formats the amount with two decimals, or "" when absent.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', 2, 64)
}
