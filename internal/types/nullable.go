package types

import (
	"encoding/json"
)

// NullableString is a string field that distinguishes between a value that
// was absent from the JSON body, explicitly null, and set to a string.
// A plain *string collapses "absent" and "null", which is not enough for
// fields where null means "clear" and absent means "leave unchanged".
type NullableString struct {
	Present bool
	Valid   bool
	Value   string
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Valid = false
		n.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value as a *string, nil when the field was null.
func (n NullableString) Ptr() *string {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
