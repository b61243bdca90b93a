// Package validate checks candidate field values and whole documents
// against external truth: reference-data catalogs and the live set of
// builder-entity ids.
//
// Field-level validation is advisory (inline errors with suggestions, the
// user keeps typing); [ValidateDocument] is the hard gate consulted
// before save and export.
package validate

import (
	"context"
	"strings"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/refdata"
)

// maxSuggestions caps how many catalog ids an invalid value's error carries.
const maxSuggestions = 3

// bindingField is the semantic field name validated against builder-entity
// ids instead of a static catalog.
const bindingField = "binding"

// fieldCatalogs maps a field's semantic name (the last key segment of its
// path) to the reference-data catalog that enumerates its valid values.
// Fields not listed here are exempt from catalog validation.
var fieldCatalogs = map[string]string{
	"effect":           "effects",
	"collection":       "collections",
	"yield_type":       "yield-types",
	"terrain_type":     "terrain-types",
	"biome_type":       "biome-types",
	"feature_type":     "feature-types",
	"resource_type":    "resource-types",
	"requirement_type": "requirement-types",
	"unit_class":       "unit-classes",
	"tag":              "tags",
	"kind":             "kinds",
	"age_type":         "ages",
}

// CatalogFor returns the catalog name validating the given field, if any.
func CatalogFor(fieldName string) (string, bool) {
	name, ok := fieldCatalogs[fieldName]
	return name, ok
}

// Result is the outcome of a single-field check.
type Result struct {
	Valid       bool     `json:"isValid"`
	Message     string   `json:"message,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// FieldValidator validates scalar field values opportunistically (on blur)
// and at commit points.
type FieldValidator struct {
	catalogs *refdata.Store
}

// NewFieldValidator creates a validator backed by the given catalog store.
func NewFieldValidator(catalogs *refdata.Store) *FieldValidator {
	return &FieldValidator{catalogs: catalogs}
}

// ValidateField checks value for the field named fieldName against the
// document tree. The rules, in order:
//
//   - empty values pass (required-ness is enforced by [ValidateDocument])
//   - "binding" fields must match a builder-entity id currently in tree
//   - catalog-mapped fields must equal some catalog entry id; failures
//     carry up to 3 case-insensitive substring suggestions
//   - everything else passes
//
// The returned error is reserved for catalog fetch failures; a plain
// invalid value is reported through Result, not the error.
func (v *FieldValidator) ValidateField(ctx context.Context, fieldName, value string, tree map[string]any) (Result, error) {
	if value == "" {
		return Result{Valid: true}, nil
	}

	if fieldName == bindingField {
		if document.HasBuilderID(tree, value) {
			return Result{Valid: true}, nil
		}
		return Result{
			Valid:       false,
			Message:     "no entity with id " + quoted(value) + " exists in this mod",
			Suggestions: suggest(document.BuilderIDs(tree), value),
		}, nil
	}

	catalogName, mapped := fieldCatalogs[fieldName]
	if !mapped {
		return Result{Valid: true}, nil
	}

	catalog, err := v.catalogs.Get(ctx, catalogName)
	if err != nil {
		return Result{}, err
	}

	if catalog.Contains(value) {
		return Result{Valid: true}, nil
	}
	return Result{
		Valid:       false,
		Message:     quoted(value) + " is not a known " + strings.ReplaceAll(fieldName, "_", " "),
		Suggestions: suggest(catalog.IDs(), value),
	}, nil
}

// suggest returns up to maxSuggestions candidates containing value as a
// case-insensitive substring, preserving candidate order. When the full
// value matches nothing (a typo near the end of the id is the common
// case), the needle is shortened from the right until something matches,
// down to a minimum of 3 characters.
func suggest(candidates []string, value string) []string {
	needle := strings.ToLower(value)
	for len(needle) >= 3 {
		var out []string
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c), needle) {
				out = append(out, c)
				if len(out) == maxSuggestions {
					break
				}
			}
		}
		if len(out) > 0 {
			return out
		}
		needle = needle[:len(needle)-1]
	}
	return nil
}

func quoted(s string) string { return `"` + s + `"` }
