package document

// Top-level section names of the mod document.
const (
	SectionMetadata             = "metadata"
	SectionModuleLocalization   = "module_localization"
	SectionActionGroup          = "action_group"
	SectionCivilization         = "civilization"
	SectionUnits                = "units"
	SectionConstructibles       = "constructibles"
	SectionModifiers            = "modifiers"
	SectionTraditions           = "traditions"
	SectionProgressionTreeNodes = "progression_tree_nodes"
	SectionProgressionTrees     = "progression_trees"
	SectionConstants            = "constants"
	SectionImports              = "imports"
	SectionBuild                = "build"
)

// BuilderSections lists the sections whose elements are builder entities:
// identity-bearing objects that can be referenced by id from bindings.
var BuilderSections = []string{
	SectionUnits,
	SectionConstructibles,
	SectionModifiers,
	SectionTraditions,
	SectionProgressionTrees,
	SectionProgressionTreeNodes,
}

// New returns a store holding an empty mod document with the standard
// top-level sections in place.
func New() *Store {
	return FromTree(map[string]any{
		SectionMetadata:           map[string]any{},
		SectionModuleLocalization: map[string]any{},
		SectionActionGroup:        map[string]any{},
		SectionCivilization:       map[string]any{},
		SectionUnits:              []any{},
		SectionConstructibles:     []any{},
		SectionModifiers:          []any{},
		SectionTraditions:         []any{},
		SectionConstants:          map[string]any{},
		SectionImports:            []any{},
		SectionBuild:              map[string]any{},
	})
}

// Entities returns the elements of a builder-entity section as maps.
// Non-map elements are skipped; a missing section yields nil.
func Entities(tree map[string]any, section string) []map[string]any {
	raw, ok := tree[section].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// BuilderIDs collects the ids of every builder entity currently present in
// the document, across all [BuilderSections]. Binding fields are validated
// against this live set rather than a static catalog.
func BuilderIDs(tree map[string]any) []string {
	var ids []string
	for _, section := range BuilderSections {
		for _, entity := range Entities(tree, section) {
			if id, ok := entity["id"].(string); ok && id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// HasBuilderID reports whether any builder entity in the document carries
// the given id.
func HasBuilderID(tree map[string]any, id string) bool {
	for _, section := range BuilderSections {
		for _, entity := range Entities(tree, section) {
			if got, ok := entity["id"].(string); ok && got == id {
				return true
			}
		}
	}
	return false
}
