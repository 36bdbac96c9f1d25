// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// StringSlice is a JSON text column holding a set of strings (e.g. playing positions).
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan unmarshals a JSON column into the slice.
func (s *StringSlice) Scan(src interface{}) error {
	b, err := columnBytes("StringSlice", src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// Normalize drops empty and duplicate entries, keeping first-seen order.
func (s StringSlice) Normalize() StringSlice {
	out := make(StringSlice, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, v := range s {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// IDSet is a JSON text column holding a sorted set of user ids.
type IDSet []uint

func (s IDSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]uint(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *IDSet) Scan(src interface{}) error {
	b, err := columnBytes("IDSet", src)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		*s = IDSet{}
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = IDSet{}.With(ids...)
	return nil
}

// Contains reports whether id is in the set.
func (s IDSet) Contains(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// With returns a new set containing s plus ids.
func (s IDSet) With(ids ...uint) IDSet {
	out := make(IDSet, 0, len(s)+len(ids))
	out = append(out, s...)
	for _, id := range ids {
		if !out.Contains(id) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Without returns a new set with id removed.
func (s IDSet) Without(id uint) IDSet {
	out := make(IDSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func columnBytes(typeName string, src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%s: expected []byte or string, got %T", typeName, src)
	}
}
