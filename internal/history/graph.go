// Package history implements the processing history lineage graph:
// a small DAG of provenance records describing a file's own creation
// context plus that of every ancestor file that contributed to it,
// serialized into the file's metadata slot so the full lineage can be
// inspected without access to any ancestor file.
package history

import (
	"sort"
	"strings"
)

const (
	// currentFileName is the serialized form of the reserved root key,
	// denoting the file currently being operated on.
	currentFileName = "CURRENTFILE"

	// UnknownTimestamp stands in for the timestamp of a parent whose
	// own history could not be read.
	UnknownTimestamp = "Unknown"
)

// CurrentKey is the reserved root key. It must never appear nested
// inside the serialized history of another file.
var CurrentKey = Key{File: currentFileName}

// Key identifies one version of one file: the base filename plus the
// timestamp at which that version's history was written.
type Key struct {
	File      string
	Timestamp string
}

// IsCurrent reports whether k is the reserved root key.
func (k Key) IsCurrent() bool { return k == CurrentKey }

// String renders the key in its canonical serialized form: the bare
// root name for the current file, a quoted tuple literal otherwise.
// ParseKey inverts it exactly.
func (k Key) String() string {
	if k.IsCurrent() {
		return currentFileName
	}
	return "(" + quoteElem(k.File) + ", " + quoteElem(k.Timestamp) + ")"
}

func quoteElem(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// ParseKey parses the canonical rendering of a key back into a Key.
// A string that is neither the root name nor a well-formed two-element
// tuple literal is corrupt history.
func ParseKey(s string) (Key, error) {
	if s == currentFileName {
		return CurrentKey, nil
	}
	body, ok := strings.CutPrefix(s, "(")
	if !ok {
		return Key{}, corruptKey(s)
	}
	file, rest, ok := scanQuoted(strings.TrimLeft(body, " "))
	if !ok {
		return Key{}, corruptKey(s)
	}
	rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " "), ",")
	if !ok {
		return Key{}, corruptKey(s)
	}
	timestamp, rest, ok := scanQuoted(strings.TrimLeft(rest, " "))
	if !ok || strings.TrimLeft(rest, " ") != ")" {
		return Key{}, corruptKey(s)
	}
	return Key{File: file, Timestamp: timestamp}, nil
}

// scanQuoted consumes one single-quoted, backslash-escaped element and
// returns it with the remainder of the input.
func scanQuoted(s string) (string, string, bool) {
	if len(s) == 0 || s[0] != '\'' {
		return "", "", false
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", "", false
			}
			b.WriteByte(s[i+1])
			i++
		case '\'':
			return b.String(), s[i+1:], true
		default:
			b.WriteByte(s[i])
		}
	}
	return "", "", false
}

// Record is the flat provenance fact sheet for one file version.
// Values are JSON-representable scalars; nesting lives only in the
// lineage's parent lists, never inside a record.
type Record map[string]any

// Lineage is the full processing history DAG for one file. Both maps
// always hold the same key set; an ancestor reachable through two
// different paths occupies a single entry because its key is the same
// from both paths.
type Lineage struct {
	MetadataByKey map[Key]Record
	ParentsByKey  map[Key][]Key
}

// NewLineage creates a history containing only the current file's
// record, with no parents.
func NewLineage(fields Record) *Lineage {
	return &Lineage{
		MetadataByKey: map[Key]Record{CurrentKey: fields},
		ParentsByKey:  map[Key][]Key{CurrentKey: {}},
	}
}

// FindKeysByFile returns every non-root key whose filename equals name.
// Zero, one or many matches are all valid outcomes; the ambiguous case
// is the caller's to disambiguate.
func (l *Lineage) FindKeysByFile(name string) []Key {
	var matches []Key
	for k := range l.MetadataByKey {
		if !k.IsCurrent() && k.File == name {
			matches = append(matches, k)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Timestamp < matches[j].Timestamp
	})
	return matches
}

// Keys returns every key in the lineage, root first, ancestors ordered
// by filename then timestamp.
func (l *Lineage) Keys() []Key {
	keys := make([]Key, 0, len(l.MetadataByKey))
	for k := range l.MetadataByKey {
		if !k.IsCurrent() {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].File != keys[j].File {
			return keys[i].File < keys[j].File
		}
		return keys[i].Timestamp < keys[j].Timestamp
	})
	return append([]Key{CurrentKey}, keys...)
}
