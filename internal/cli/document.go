package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// defaultDocumentFile is the expert-mode working file when no --file
// flag is given.
const defaultDocumentFile = "mod.json"

// readDocument loads a working file into a store.
func readDocument(path string) (*document.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return document.FromTree(tree), nil
}

// writeDocument saves the store to a working file. Synthetic element
// keys stay out of the file.
func writeDocument(path string, doc *document.Store) error {
	data, err := json.MarshalIndent(document.StripElementKeys(doc.Tree()), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseValue interprets a literal argument: JSON when it parses as
// JSON, else the raw string. "42" becomes a number, "true" a bool,
// "[1,2]" a list, and "UNIT_GONDOR_RANGERS" stays a string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
