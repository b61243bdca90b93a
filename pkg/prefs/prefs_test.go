package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return s, path
}

func TestStore_LastModeDefault(t *testing.T) {
	s, _ := testStore(t)
	if got := s.LastMode(); got != ModeGuided {
		t.Errorf("LastMode() = %q, want %q", got, ModeGuided)
	}
}

func TestStore_LastModePersists(t *testing.T) {
	s, path := testStore(t)
	if err := s.SetLastMode(ModeExpert); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.LastMode(); got != ModeExpert {
		t.Errorf("LastMode() after reopen = %q, want %q", got, ModeExpert)
	}
}

func TestStore_RankByUsage(t *testing.T) {
	s, _ := testStore(t)

	for range 3 {
		if err := s.RecordUsage("yield_type", "YIELD_PRODUCTION"); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RecordUsage("yield_type", "YIELD_GOLD"); err != nil {
		t.Fatal(err)
	}

	got := s.RankByUsage("yield_type", []string{"YIELD_FOOD", "YIELD_GOLD", "YIELD_PRODUCTION"})
	want := []string{"YIELD_PRODUCTION", "YIELD_GOLD", "YIELD_FOOD"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RankByUsage = %v, want %v", got, want)
	}

	// Counters are scoped per field.
	other := s.RankByUsage("terrain_type", []string{"TERRAIN_COAST", "TERRAIN_DESERT"})
	if !reflect.DeepEqual(other, []string{"TERRAIN_COAST", "TERRAIN_DESERT"}) {
		t.Errorf("unseen field reordered: %v", other)
	}
}

func TestStore_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore on corrupt file failed: %v", err)
	}
	if got := s.LastMode(); got != ModeGuided {
		t.Errorf("LastMode() = %q, want default", got)
	}
}
