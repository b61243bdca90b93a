package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

func testDocument(t *testing.T) *document.Store {
	t.Helper()
	doc := document.New()
	meta := document.At("metadata")
	_ = doc.Set(meta.Key("id"), "gondor-mod")
	_ = doc.Set(meta.Key("version"), "1.0.0")
	_ = doc.Set(meta.Key("name"), "Kingdom of Gondor")
	_ = doc.Set(meta.Key("authors"), "Faramir")
	_ = doc.Set(document.At("action_group").Key("action_group_id"), "AGE_ANTIQUITY")
	if _, err := doc.Append(document.At(document.SectionUnits), map[string]any{
		"id": "unit_rangers", "unit_type": "UNIT_RANGERS",
	}); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestFiles(t *testing.T) {
	files, err := Files(testDocument(t))
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Name != "gondor-mod.modinfo" {
		t.Errorf("manifest name = %q", files[0].Name)
	}
	if files[1].Name != "data/gondor-mod.json" {
		t.Errorf("data file name = %q", files[1].Name)
	}

	var manifest Modinfo
	if err := xml.Unmarshal(files[0].Data, &manifest); err != nil {
		t.Fatalf("manifest is not valid XML: %v", err)
	}
	if manifest.ID != "gondor-mod" {
		t.Errorf("manifest id = %q", manifest.ID)
	}
	if manifest.Properties.Name != "Kingdom of Gondor" {
		t.Errorf("manifest name = %q", manifest.Properties.Name)
	}
	if len(manifest.ActionGroups.Groups) != 1 {
		t.Fatalf("action groups = %d, want 1", len(manifest.ActionGroups.Groups))
	}
	if got := manifest.ActionGroups.Groups[0].Criteria; got != "age-AGE_ANTIQUITY" {
		t.Errorf("action group criteria = %q", got)
	}

	// Element keys never appear in the rendered output.
	if strings.Contains(string(files[1].Data), document.ElementKey) {
		t.Error("rendered document carries a synthetic element key")
	}
}

func TestFiles_RequiresModID(t *testing.T) {
	if _, err := Files(document.New()); err == nil {
		t.Fatal("document without metadata.id should not render")
	}
}

func TestExport_Deterministic(t *testing.T) {
	doc := testDocument(t)

	first, err := Export(doc)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	second, err := Export(doc)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two exports of the same document differ")
	}
}

func TestBuild_ArchiveLayout(t *testing.T) {
	data, err := Build(testDocument(t))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Build output is not a zip: %v", err)
	}

	want := map[string]bool{
		"gondor-mod/gondor-mod.modinfo":   false,
		"gondor-mod/data/gondor-mod.json": false,
	}
	for _, f := range r.File {
		if _, ok := want[f.Name]; !ok {
			t.Errorf("unexpected archive entry %q", f.Name)
			continue
		}
		want[f.Name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("archive missing entry %q", name)
		}
	}
}

func TestExportToDir(t *testing.T) {
	dir := t.TempDir()
	if err := ExportToDir(testDocument(t), dir); err != nil {
		t.Fatalf("ExportToDir failed: %v", err)
	}

	manifest, err := os.ReadFile(filepath.Join(dir, "gondor-mod.modinfo"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if !strings.Contains(string(manifest), `id="gondor-mod"`) {
		t.Error("manifest does not carry the mod id")
	}

	if _, err := os.Stat(filepath.Join(dir, "data", "gondor-mod.json")); err != nil {
		t.Errorf("data file not written: %v", err)
	}
}

func TestExportToDir_RejectsEmptyDir(t *testing.T) {
	if err := ExportToDir(testDocument(t), ""); err == nil {
		t.Fatal("empty output dir should be rejected")
	}
}
