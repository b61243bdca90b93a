// Package prefs stores local editor preferences: the last-used editing
// mode and autocomplete usage-frequency counters. The store is
// non-authoritative; losing it never loses document data.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Editing modes.
const (
	ModeGuided = "guided"
	ModeExpert = "expert"
)

// Prefs is the persisted preference state.
type Prefs struct {
	LastMode string `json:"last_mode,omitempty"`
	// Usage counts how often each completion value was accepted,
	// keyed by field name then value.
	Usage map[string]map[string]int `json:"usage,omitempty"`
}

// Store is a file-backed preference store.
type Store struct {
	mu    sync.Mutex
	path  string
	prefs Prefs
}

// NewStore opens (or initializes) the preference store.
// If path is empty, defaults to ~/.config/civmod/prefs.json
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "civmod", "prefs.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read prefs file: %w", err)
	}
	// A corrupt file starts fresh rather than blocking the editor.
	if err := json.Unmarshal(data, &s.prefs); err != nil {
		s.prefs = Prefs{}
	}
	return s, nil
}

// LastMode returns the last-used editing mode, or ModeGuided when none
// was recorded.
func (s *Store) LastMode() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefs.LastMode == "" {
		return ModeGuided
	}
	return s.prefs.LastMode
}

// SetLastMode records the editing mode and persists.
func (s *Store) SetLastMode(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.LastMode = mode
	return s.flush()
}

// RecordUsage bumps the acceptance counter for a completion value and
// persists.
func (s *Store) RecordUsage(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefs.Usage == nil {
		s.prefs.Usage = make(map[string]map[string]int)
	}
	if s.prefs.Usage[field] == nil {
		s.prefs.Usage[field] = make(map[string]int)
	}
	s.prefs.Usage[field][value]++
	return s.flush()
}

// RankByUsage orders values for a field by descending acceptance count;
// unseen values keep their incoming relative order at the end.
func (s *Store) RankByUsage(field string, values []string) []string {
	s.mu.Lock()
	counts := s.prefs.Usage[field]
	s.mu.Unlock()

	out := make([]string, len(values))
	copy(out, values)
	sort.SliceStable(out, func(i, j int) bool {
		return counts[out[i]] > counts[out[j]]
	})
	return out
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write prefs file: %w", err)
	}
	return nil
}
