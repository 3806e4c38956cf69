// Package ini reads and writes the sectioned Key=Value text format used by
// organ definition files.
//
// Reading produces a File: an ordered set of groups, each holding ordered keys.
// Values are normalized once at load time (inline ";" comments stripped,
// surrounding whitespace trimmed), so every later lookup sees clean text.
package ini

import (
	"bufio"
	"fmt"
	"strings"
)

// File is a parsed configuration source (the KeyedSectionStore).
type File struct {
	groups []*group
	index  map[string]*group
}

type group struct {
	name   string
	keys   []string
	values map[string]string
}

// Parse decodes raw file bytes and parses them into a File.
func Parse(data []byte) (*File, error) {
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ParseString(text)
}

// ParseString parses already-decoded text into a File.
func ParseString(text string) (*File, error) {
	f := &File{index: make(map[string]*group)}

	var current *group
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		if line[0] == '[' {
			end := strings.IndexByte(line, ']')
			if end < 0 {
				current = nil
				continue
			}
			current = f.ensureGroup(strings.TrimSpace(line[1:end]))
			continue
		}

		if current == nil {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			continue
		}
		current.set(key, line[eq+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read configuration text: %w", err)
	}

	f.normalize()
	return f, nil
}

func (f *File) ensureGroup(name string) *group {
	if g, ok := f.index[name]; ok {
		return g
	}
	g := &group{name: name, values: make(map[string]string)}
	f.groups = append(f.groups, g)
	f.index[name] = g
	return g
}

func (g *group) set(key, value string) {
	if _, ok := g.values[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.values[key] = value
}

// normalize strips inline comments and trims every value in every group.
// It runs once, before any semantic read.
func (f *File) normalize() {
	for _, g := range f.groups {
		for _, key := range g.keys {
			g.values[key] = NormalizeValue(g.values[key])
		}
	}
}

// NormalizeValue removes a trailing ";" comment and surrounding whitespace.
func NormalizeValue(value string) string {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	return strings.TrimSpace(value)
}

// HasGroup reports whether a group with the exact name exists.
func (f *File) HasGroup(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.index[name]
	return ok
}

// Groups returns group names in file order.
func (f *File) Groups() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.groups))
	for _, g := range f.groups {
		names = append(names, g.name)
	}
	return names
}

// Section returns a read view over the named group. Missing groups yield a
// view whose every lookup falls back to the supplied default.
func (f *File) Section(name string) Section {
	if f == nil {
		return Section{name: name}
	}
	return Section{name: name, g: f.index[name]}
}
