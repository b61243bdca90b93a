package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// MemoryStore is an in-memory document store, used in tests and as a
// scratch backend.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]any)}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*document.Store, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tree, ok := s.docs[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "no document saved as %s", id)
	}
	return document.FromTree(document.CopyTree(tree).(map[string]any)), nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, doc *document.Store) error {
	if err := checkID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[id] = document.StripElementKeys(doc.Tree())
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }
