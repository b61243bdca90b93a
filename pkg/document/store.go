package document

import (
	"github.com/google/uuid"
)

// ElementKey is the synthetic identity field stamped onto object elements
// appended to document arrays. It gives UIs a stable handle on list items
// that survives reordering and removal, decoupling display identity from
// position. It is stripped from every exported or persisted serialization
// (see [StripElementKeys]).
const ElementKey = "_key"

// Store owns the mutable document tree and is its single mutation funnel.
//
// Store is not goroutine-safe: the editing model is a single-threaded
// event loop where each mutation completes synchronously within one
// handler. Concurrent readers during async validation are safe only
// because validation never writes.
type Store struct {
	root  map[string]any
	dirty bool
}

// NewStore creates a store around an empty tree.
func NewStore() *Store {
	return &Store{root: map[string]any{}}
}

// FromTree creates a store around an existing tree, e.g. one produced by
// a load operation. The tree is used directly, not copied.
func FromTree(tree map[string]any) *Store {
	if tree == nil {
		tree = map[string]any{}
	}
	return &Store{root: tree}
}

// Tree returns the underlying root. Callers must treat it as read-only;
// all mutation goes through Set/Append/Remove.
func (s *Store) Tree() map[string]any { return s.root }

// Dirty reports whether the document has been mutated since the last
// ClearDirty (i.e. has unsaved changes).
func (s *Store) Dirty() bool { return s.dirty }

// ClearDirty resets the dirty flag, typically after a successful save.
func (s *Store) ClearDirty() { s.dirty = false }

// MarkDirty explicitly marks the document as having unsaved changes.
func (s *Store) MarkDirty() { s.dirty = true }

// Replace swaps in a wholesale new tree (load / new-document) and clears
// the dirty flag.
func (s *Store) Replace(tree map[string]any) {
	if tree == nil {
		tree = map[string]any{}
	}
	s.root = tree
	s.dirty = false
}

// Get returns the value at path. A missing intermediate or a type
// mismatch along the way yields (nil, false); reads never fail.
func (s *Store) Get(p Path) (any, bool) {
	var cur any = s.root
	for _, seg := range p {
		switch node := cur.(type) {
		case map[string]any:
			if seg.IsIndex {
				return nil, false
			}
			v, ok := node[seg.Key]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(node) {
				return nil, false
			}
			cur = node[seg.Index]
		default:
			return nil, false
		}
	}
	return cur, true
}

// GetString returns the string at path, or "" when absent or not a string.
func (s *Store) GetString(p Path) string {
	v, ok := s.Get(p)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Set writes value at path, creating missing intermediate containers on
// demand: key segments create maps, index segments create (or grow)
// slices. Writing through an existing scalar intermediate returns a
// *PathError naming the offending segment instead of silently corrupting
// the tree. On success the store is marked dirty.
func (s *Store) Set(p Path, value any) error {
	if len(p) == 0 {
		return &PathError{Path: p, Segment: 0, Msg: "empty path"}
	}
	if p[0].IsIndex {
		return &PathError{Path: p, Segment: 0, Msg: "document root is not an array"}
	}

	if err := setIn(s.root, p, 0, value); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// setIn writes value into node (a map) at p[i:]. The caller guarantees
// p[i] is a key segment when node is a map.
func setIn(node map[string]any, p Path, i int, value any) error {
	seg := p[i]
	if i == len(p)-1 {
		node[seg.Key] = value
		return nil
	}

	child, exists := node[seg.Key]
	next := p[i+1]

	if next.IsIndex {
		slice, err := asSlice(child, exists, p, i+1)
		if err != nil {
			return err
		}
		slice, err = setInSlice(slice, p, i+1, value)
		if err != nil {
			return err
		}
		node[seg.Key] = slice
		return nil
	}

	m, err := asMap(child, exists, p, i+1)
	if err != nil {
		return err
	}
	node[seg.Key] = m
	return setIn(m, p, i+1, value)
}

// setInSlice writes value into slice at p[i:] where p[i] is an index
// segment. The slice grows with nils as needed; the (possibly
// reallocated) slice is returned.
func setInSlice(slice []any, p Path, i int, value any) ([]any, error) {
	seg := p[i]
	if seg.Index < 0 {
		return nil, &PathError{Path: p, Segment: i, Msg: "negative array index"}
	}
	for len(slice) <= seg.Index {
		slice = append(slice, nil)
	}

	if i == len(p)-1 {
		slice[seg.Index] = value
		return slice, nil
	}

	child := slice[seg.Index]
	next := p[i+1]

	if next.IsIndex {
		inner, err := asSlice(child, child != nil, p, i+1)
		if err != nil {
			return nil, err
		}
		inner, err = setInSlice(inner, p, i+1, value)
		if err != nil {
			return nil, err
		}
		slice[seg.Index] = inner
		return slice, nil
	}

	m, err := asMap(child, child != nil, p, i+1)
	if err != nil {
		return nil, err
	}
	slice[seg.Index] = m
	return slice, setIn(m, p, i+1, value)
}

// asMap returns child as a map, creating one when absent. An existing
// non-map value is a structural conflict.
func asMap(child any, exists bool, p Path, seg int) (map[string]any, error) {
	if !exists || child == nil {
		return map[string]any{}, nil
	}
	m, ok := child.(map[string]any)
	if !ok {
		return nil, &PathError{Path: p, Segment: seg, Msg: "intermediate value is not an object"}
	}
	return m, nil
}

// asSlice returns child as a slice, creating one when absent. An empty map
// left over from key-segment creation is coerced to an empty slice; any
// other non-slice value is a structural conflict.
func asSlice(child any, exists bool, p Path, seg int) ([]any, error) {
	if !exists || child == nil {
		return []any{}, nil
	}
	switch v := child.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if len(v) == 0 {
			return []any{}, nil
		}
	}
	return nil, &PathError{Path: p, Segment: seg, Msg: "intermediate value is not an array"}
}

// Append appends value to the array at path, creating the array if
// absent. Object values receive a synthetic [ElementKey] when they do not
// already carry one. The new element's index is returned.
func (s *Store) Append(p Path, value any) (int, error) {
	if m, ok := value.(map[string]any); ok {
		if _, has := m[ElementKey]; !has {
			m[ElementKey] = uuid.NewString()
		}
	}

	existing, ok := s.Get(p)
	var slice []any
	if ok && existing != nil {
		slice, ok = existing.([]any)
		if !ok {
			return 0, &PathError{Path: p, Segment: len(p) - 1, Msg: "value is not an array"}
		}
	}

	slice = append(slice, value)
	if err := s.Set(p, slice); err != nil {
		return 0, err
	}
	return len(slice) - 1, nil
}

// Remove splices the element at index out of the array at path. Elements
// after index shift down by one; any UI referencing elements by position
// must refresh after removal.
func (s *Store) Remove(p Path, index int) error {
	existing, ok := s.Get(p)
	if !ok || existing == nil {
		return &PathError{Path: p, Segment: max(len(p)-1, 0), Msg: "array does not exist"}
	}
	slice, ok := existing.([]any)
	if !ok {
		return &PathError{Path: p, Segment: len(p) - 1, Msg: "value is not an array"}
	}
	if index < 0 || index >= len(slice) {
		return &PathError{Path: p, Segment: len(p) - 1, Msg: "array index out of range"}
	}

	slice = append(slice[:index], slice[index+1:]...)
	return s.Set(p, slice)
}

// Snapshot returns a deep copy of the document tree. Mutating the copy
// does not affect the store.
func (s *Store) Snapshot() map[string]any {
	return CopyTree(s.root).(map[string]any)
}

// MergeShallow overwrites top-level keys of the document with the
// top-level keys of other. Values are taken wholesale: no deep merge of
// nested maps or arrays. Keys absent from other are left untouched.
func (s *Store) MergeShallow(other map[string]any) {
	for k, v := range other {
		s.root[k] = v
	}
	if len(other) > 0 {
		s.dirty = true
	}
}

// CopyTree deep-copies a document tree (maps, slices and scalars).
func CopyTree(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[k] = CopyTree(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = CopyTree(val)
		}
		return out
	default:
		return v
	}
}

// StripElementKeys returns a deep copy of tree with every [ElementKey]
// field removed. Export and save serializations pass through this so the
// synthetic identity never leaks into persisted documents.
func StripElementKeys(tree map[string]any) map[string]any {
	return stripKeys(tree).(map[string]any)
}

func stripKeys(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			if k == ElementKey {
				continue
			}
			out[k] = stripKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = stripKeys(val)
		}
		return out
	default:
		return v
	}
}
