// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PlayerIDList is an ordered list of player references stored as a JSONB column.
// A NULL column scans to an empty list, and an empty list is written as [] (never null).
type PlayerIDList []uint

// Value writes the list as a JSON string.
func (l PlayerIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uint(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan unmarshals a JSONB column into the list.
func (l *PlayerIDList) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*l = PlayerIDList{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("PlayerIDList: expected []byte, got %T", src)
	}
	var ids []uint
	if err := json.Unmarshal(b, &ids); err != nil {
		return fmt.Errorf("PlayerIDList: %w", err)
	}
	if ids == nil {
		ids = []uint{}
	}
	*l = ids
	return nil
}

// MarshalJSON keeps the wire shape an array even for a nil list.
func (l PlayerIDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]uint(l))
}

// Contains reports whether id is in the list.
func (l PlayerIDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// HasDuplicates reports whether any player appears twice.
func (l PlayerIDList) HasDuplicates() bool {
	seen := make(map[uint]struct{}, len(l))
	for _, v := range l {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
