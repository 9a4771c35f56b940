package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a JSON-array column of strings. A nil list is stored as SQL
// NULL, so "no pending slugs" collapses to NULL rather than "[]".
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Contains reports whether s is in the list
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with s removed; nil when nothing remains
func (l StringList) Without(s string) StringList {
	var out StringList
	for _, v := range l {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// IDList is a JSON-array column of entity ids
type IDList []uint64

// Value implements driver.Valuer
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *IDList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IDList", src)
	}
}
