package refdata

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// StaticSource serves catalogs from an in-memory map. Used in tests and
// for the fixed catalogs bundled with the tool.
type StaticSource map[string]Catalog

// FetchCatalog returns the named catalog or ErrCodeCatalogNotFound.
func (s StaticSource) FetchCatalog(ctx context.Context, name string) (Catalog, error) {
	c, ok := s[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeCatalogNotFound, "unknown catalog %q", name)
	}
	return c, nil
}

// CatalogNames returns the catalog names in sorted order.
func (s StaticSource) CatalogNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DirSource serves catalogs from a directory of JSON files, one file per
// catalog (<name>.json containing either a bare entry array or a
// {"values": [...]} wrapper). Used for offline editing and as the
// server's system of record.
type DirSource struct {
	dir string
}

// NewDirSource creates a source reading catalogs from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// catalogFile matches the wire shape of the backend refdata endpoint.
type catalogFile struct {
	Values Catalog `json:"values"`
}

// FetchCatalog reads <dir>/<name>.json.
func (s *DirSource) FetchCatalog(ctx context.Context, name string) (Catalog, error) {
	// The catalog name becomes a file name; refuse anything path-like.
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid catalog name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name+".json"))
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeCatalogNotFound, "unknown catalog %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read catalog %q", name)
	}

	var wrapped catalogFile
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Values != nil {
		return wrapped.Values, nil
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse catalog %q", name)
	}
	return c, nil
}

// CatalogNames lists the *.json files in the directory, sorted.
func (s *DirSource) CatalogNames(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list catalogs")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
