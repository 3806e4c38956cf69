package organ

import (
	"slices"

	"github.com/aidanlsb/odfkit/internal/ini"
)

// Setting is one entry of a stored combination: the object and whether the
// combination turns it on or off. The file stores off as a negative number.
type Setting[T comparable] struct {
	Object  T
	Engaged bool
}

func signed(n int, engaged bool) int {
	if engaged {
		return n
	}
	return -n
}

func hasSetting[T comparable](list []Setting[T], x T) bool {
	return slices.ContainsFunc(list, func(s Setting[T]) bool { return s.Object == x })
}

// putSetting adds x or updates its state when already present.
func putSetting[T comparable](list []Setting[T], x T, engaged bool) []Setting[T] {
	if i := slices.IndexFunc(list, func(s Setting[T]) bool { return s.Object == x }); i >= 0 {
		list[i].Engaged = engaged
		return list
	}
	return append(list, Setting[T]{Object: x, Engaged: engaged})
}

func dropSetting[T comparable](list []Setting[T], x T) []Setting[T] {
	return slices.DeleteFunc(list, func(s Setting[T]) bool { return s.Object == x })
}

// readSigned reads a ±1..limit reference. ok is false for a missing, zero, or
// out-of-range value.
func readSigned(s ini.Section, key string, limit int) (index int, engaged bool, ok bool) {
	v, ok := s.IntOK(key, -limit, limit)
	if !ok || v == 0 {
		return 0, false, false
	}
	if v < 0 {
		return -v - 1, false, true
	}
	return v - 1, true, true
}

// readSettings reads a NumberOfX/XNNN list of signed references resolved
// through at.
func readSettings[T comparable](s ini.Section, ctx *Context, countKey, prefix string, limit int, at func(int) (T, bool)) []Setting[T] {
	var out []Setting[T]
	n := s.Int(countKey, 0, 999, 0)
	for i := 1; i <= n; i++ {
		key := numbered(prefix, i)
		idx, engaged, ok := readSigned(s, key, limit)
		if !ok {
			ctx.log().Dangling(s.Name(), "%s has an invalid reference", key)
			continue
		}
		x, found := at(idx)
		if !found {
			ctx.log().Dangling(s.Name(), "%s references a missing object", key)
			continue
		}
		out = putSetting(out, x, engaged)
	}
	return out
}

// writeSettings emits the count and the signed 1-based indices computed by indexOf.
func writeSettings[T comparable](w *ini.Writer, countKey, prefix string, list []Setting[T], indexOf func(T) int) {
	w.SetInt(countKey, len(list))
	for i, s := range list {
		w.SetIndex(numbered(prefix, i+1), signed(indexOf(s.Object)+1, s.Engaged))
	}
}
