// Package optional provides a JSON field type that tells an absent key apart
// from an explicit null, for partial updates.
package optional

import (
	"bytes"
	"encoding/json"
)

// String is absent (Set=false), null (Set=true, Valid=false) or a value.
type String struct {
	Set   bool
	Valid bool
	Value string
}

// UnmarshalJSON is only invoked when the key is present in the document.
func (s *String) UnmarshalJSON(data []byte) error {
	s.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		s.Valid = false
		s.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &s.Value); err != nil {
		return err
	}
	// An empty string clears the reference the same way null does.
	s.Valid = s.Value != ""
	return nil
}

func (s String) MarshalJSON() ([]byte, error) {
	if !s.Set || !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Ptr returns nil for null, or a pointer to the value.
func (s String) Ptr() *string {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}

// Of builds a present, non-null value.
func Of(v string) String {
	return String{Set: true, Valid: v != "", Value: v}
}

// Null builds a present null.
func Null() String {
	return String{Set: true}
}
