// Package export renders a mod document to its external structured
// representation: a .modinfo XML manifest plus the canonical JSON
// document, optionally packaged as a zip build.
//
// Output is deterministic for a given document: JSON object keys are
// sorted by encoding/json, archive entries are written in a fixed order
// with zeroed timestamps.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// File is one rendered output file.
type File struct {
	Name string
	Data []byte
}

// Files renders the document to its output files: the manifest at the
// root and the canonical JSON document under data/. Synthetic element
// keys are stripped.
func Files(doc *document.Store) ([]File, error) {
	tree := document.StripElementKeys(doc.Tree())

	manifest, err := buildModinfo(tree)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "assemble manifest")
	}

	xmlData, err := xml.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	xmlData = append([]byte(xml.Header), xmlData...)

	jsonData, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	return []File{
		{Name: manifest.ID + ".modinfo", Data: xmlData},
		{Name: "data/" + manifest.ID + ".json", Data: jsonData},
	}, nil
}

// Export renders the document and returns the zipped files as a single
// blob.
func Export(doc *document.Store) ([]byte, error) {
	files, err := Files(doc)
	if err != nil {
		return nil, err
	}
	return zipFiles(files)
}

// ExportToDir renders the document and writes the output files under
// dir, creating directories as needed.
func ExportToDir(doc *document.Store, dir string) error {
	if err := errors.ValidateOutputDir(dir); err != nil {
		return err
	}

	files, err := Files(doc)
	if err != nil {
		return err
	}

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	return nil
}

// Build renders the document into a zipped build archive, with entries
// nested under a top-level directory named after the mod id.
func Build(doc *document.Store) ([]byte, error) {
	files, err := Files(doc)
	if err != nil {
		return nil, err
	}

	id := doc.GetString(document.At(document.SectionMetadata).Key("id"))
	for i := range files {
		files[i].Name = id + "/" + files[i].Name
	}
	return zipFiles(files)
}

func zipFiles(files []File) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range files {
		// Bare FileHeader keeps the entry timestamp zeroed so the same
		// document always produces byte-identical archives.
		header := &zip.FileHeader{Name: f.Name, Method: zip.Deflate}
		entry, err := w.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
