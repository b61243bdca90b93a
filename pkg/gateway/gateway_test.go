package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/httputil"
)

// validDocument builds a store that passes the whole-document gate.
func validDocument(t *testing.T) *document.Store {
	t.Helper()
	s := document.New()
	if err := s.Set(document.At("metadata").Key("id"), "gondor-mod"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(document.At("metadata").Key("version"), "1.0.0"); err != nil {
		t.Fatal(err)
	}
	return s
}

func testCache(t *testing.T) *httputil.Cache {
	t.Helper()
	c, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(Status{Status: "ok", Version: "1.2.3"})
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("status = %q", status.Status)
	}
}

func TestClient_LoadSaveRoundTrip(t *testing.T) {
	var saved map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/save":
			var req struct {
				Path string         `json:"path"`
				Data map[string]any `json:"data"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			saved = req.Data
			json.NewEncoder(w).Encode(map[string]any{})
		case "/api/load":
			json.NewEncoder(w).Encode(map[string]any{
				"data": saved,
				"path": "mods/gondor-mod.json",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	ctx := context.Background()

	doc := validDocument(t)
	if err := c.Save(ctx, "mods/gondor-mod.json", doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, path, err := c.Load(ctx, "mods/gondor-mod.json")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if path != "mods/gondor-mod.json" {
		t.Errorf("path = %q", path)
	}
	if got := loaded.GetString(document.At("metadata").Key("id")); got != "gondor-mod" {
		t.Errorf("loaded metadata.id = %q", got)
	}
}

func TestClient_SaveStripsElementKeys(t *testing.T) {
	var saved map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Data map[string]any `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		saved = req.Data
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	doc := validDocument(t)
	if _, err := doc.Append(document.At(document.SectionUnits), map[string]any{
		"id": "unit_a", "unit_type": "UNIT_A",
	}); err != nil {
		t.Fatal(err)
	}

	c := NewClient(server.URL, nil)
	if err := c.Save(context.Background(), "mods/x.json", doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	units := saved["units"].([]any)
	unit := units[0].(map[string]any)
	if _, ok := unit[document.ElementKey]; ok {
		t.Error("serialized unit still carries the synthetic element key")
	}
	// The in-memory document keeps its key.
	raw, _ := doc.Get(document.At(document.SectionUnits).Index(0).Key(document.ElementKey))
	if raw == nil {
		t.Error("stripping mutated the in-memory document")
	}
}

func TestClient_SaveRefusedLocally(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)

	// metadata.id missing: the gate refuses before any HTTP traffic.
	err := c.Save(context.Background(), "mods/x.json", document.New())
	if err == nil {
		t.Fatal("Save of an invalid document should fail")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *ValidationError", err)
	}
	if len(verr.Issues) == 0 {
		t.Error("ValidationError should carry the violation list")
	}
	if calls.Load() != 0 {
		t.Errorf("server saw %d calls, want 0", calls.Load())
	}
}

func TestClient_ExportRefusedLocally(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	if _, err := c.Export(context.Background(), document.New()); err == nil {
		t.Fatal("Export of an invalid document should fail")
	}
	if calls.Load() != 0 {
		t.Errorf("server saw %d calls, want 0", calls.Load())
	}
}

func TestClient_BuildReturnsArchiveBytes(t *testing.T) {
	archive := []byte("PK\x03\x04fake-zip")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/build" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archive)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	got, err := c.Build(context.Background(), validDocument(t))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if string(got) != string(archive) {
		t.Errorf("Build bytes = %q", got)
	}
}

func TestClient_ValidateField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FieldName string `json:"field_name"`
			Value     string `json:"value"`
			DataType  string `json:"data_type"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.DataType != "string" {
			t.Errorf("data_type = %q, want %q", req.DataType, "string")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"isValid":     false,
			"message":     "unknown value " + req.Value,
			"suggestions": []string{"YIELD_SCIENCE"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	result, err := c.ValidateField(context.Background(), "unit_cost.yield_type", "YIELD_SCINCE")
	if err != nil {
		t.Fatalf("ValidateField failed: %v", err)
	}
	if result.Valid {
		t.Error("expected invalid result")
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0] != "YIELD_SCIENCE" {
		t.Errorf("suggestions = %v", result.Suggestions)
	}
}

func TestClient_CatalogCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"values": []map[string]any{{"id": "YIELD_SCIENCE"}},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, testCache(t))
	ctx := context.Background()

	for range 3 {
		catalog, err := c.Catalog(ctx, "yield-types")
		if err != nil {
			t.Fatalf("Catalog failed: %v", err)
		}
		if !catalog.Contains("YIELD_SCIENCE") {
			t.Error("catalog missing YIELD_SCIENCE")
		}
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want 1 (cached)", calls.Load())
	}
}

func TestClient_CatalogNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"error": "no catalog nope", "code": "CATALOG_NOT_FOUND"})
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	_, err := c.Catalog(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for missing catalog")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_CatalogNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/refdata" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"names": []string{"effects", "yield-types"}})
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	names, err := c.CatalogNames(context.Background())
	if err != nil {
		t.Fatalf("CatalogNames failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("names = %v", names)
	}
}

func TestClient_TransportErrorLeavesDocumentUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": "disk full"})
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	doc := validDocument(t)
	before := doc.Snapshot()

	err := c.Save(context.Background(), "mods/x.json", doc)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}

	after, _ := json.Marshal(doc.Tree())
	want, _ := json.Marshal(before)
	if string(after) != string(want) {
		t.Error("failed Save mutated the document")
	}
}
