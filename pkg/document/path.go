// Package document implements the mod document: a single mutable nested
// tree of maps and slices addressed by structural paths.
//
// # Overview
//
// Every editing surface (terminal wizard, expert commands, HTTP API) reads
// and writes the document exclusively through [Store], which enforces the
// structural invariants centrally:
//
//   - reads never fail: a missing intermediate yields (nil, false)
//   - writes create missing intermediate containers on demand
//   - writing through a scalar intermediate fails fast with a [*PathError]
//   - every mutation marks the store dirty
//
// # Paths
//
// A [Path] is an ordered list of segments; each segment is either an object
// key or an array index. Paths are built with a small fluent API rather
// than parsed from ad-hoc strings, which removes the ambiguity between
// numeric map keys and array indices:
//
//	p := document.At("civilization").Key("localizations").Index(0).Key("city_names")
//
// [Parse] remains available for interop with the dotted string form used
// by the HTTP API ("civilization.localizations.0.city_names"), where
// digit-only segments become indices.
package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is a single step of a [Path]: either an object key or an array
// index. The zero value is a key segment with an empty key.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// String returns the segment in dotted-path form.
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path identifies a location within the document tree.
type Path []Segment

// At starts a new path with a single key segment.
func At(key string) Path {
	return Path{{Key: key}}
}

// Key appends a key segment and returns the extended path.
// The receiver is not modified.
func (p Path) Key(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Key: key})
}

// Index appends an array-index segment and returns the extended path.
// The receiver is not modified.
func (p Path) Index(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Segment{Index: i, IsIndex: true})
}

// String returns the dotted string form of the path
// (e.g. "civilization.localizations.0.city_names.2").
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Leaf returns the last key segment's name, or the empty string when the
// path is empty or ends in an index. Field validation keys off the leaf
// name (e.g. "effect", "yield_type", "binding").
func (p Path) Leaf() string {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsIndex {
			return p[i].Key
		}
	}
	return ""
}

// Parse converts a dotted path string into a [Path]. Digit-only segments
// become array indices; everything else is a key. An empty string yields
// an empty path.
func Parse(s string) Path {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		if i, err := strconv.Atoi(part); err == nil && i >= 0 {
			p = append(p, Segment{Index: i, IsIndex: true})
		} else {
			p = append(p, Segment{Key: part})
		}
	}
	return p
}

// PathError reports a structural conflict while writing through a path:
// an intermediate node exists but has a type incompatible with the next
// segment (e.g. a scalar where a container is needed).
type PathError struct {
	Path    Path   // the full path being addressed
	Segment int    // index of the offending segment within Path
	Msg     string // what went wrong
}

func (e *PathError) Error() string {
	if e.Segment < 0 || e.Segment >= len(e.Path) {
		return fmt.Sprintf("path %q: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("path %q: segment %q: %s", e.Path, e.Path[e.Segment], e.Msg)
}
