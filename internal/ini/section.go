package ini

import (
	"strconv"
	"strings"
)

// Section is a read view over one group. The zero value behaves as an empty,
// missing group.
type Section struct {
	name string
	g    *group
}

// Name returns the group name the view was requested for.
func (s Section) Name() string { return s.name }

// Exists reports whether the group is present in the file.
func (s Section) Exists() bool { return s.g != nil }

// Has reports whether key is present.
func (s Section) Has(key string) bool {
	if s.g == nil {
		return false
	}
	_, ok := s.g.values[key]
	return ok
}

// Raw returns the normalized value of key.
func (s Section) Raw(key string) (string, bool) {
	if s.g == nil {
		return "", false
	}
	v, ok := s.g.values[key]
	return v, ok
}

// Keys returns key names in file order.
func (s Section) Keys() []string {
	if s.g == nil {
		return nil
	}
	out := make([]string, len(s.g.keys))
	copy(out, s.g.keys)
	return out
}

// String returns the value of key, or def when the key is missing.
func (s Section) String(key, def string) string {
	if v, ok := s.Raw(key); ok {
		return v
	}
	return def
}

// Int returns the integer value of key when it parses and lies in [min, max];
// otherwise def.
func (s Section) Int(key string, min, max, def int) int {
	v, ok := s.Raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return def
	}
	return n
}

// IntOK is Int that also reports whether the stored value was used.
func (s Section) IntOK(key string, min, max int) (int, bool) {
	v, ok := s.Raw(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

// Float returns the floating point value of key when it parses and lies in
// [min, max]; otherwise def.
func (s Section) Float(key string, min, max, def float64) float64 {
	v, ok := s.Raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < min || f > max {
		return def
	}
	return f
}

// Bool returns true for "Y" and false for "N" (case-insensitive); any other
// value, or a missing key, yields def.
func (s Section) Bool(key string, def bool) bool {
	v, ok := s.Raw(key)
	if !ok {
		return def
	}
	switch strings.ToUpper(v) {
	case "Y":
		return true
	case "N":
		return false
	default:
		return def
	}
}
