package validate

import (
	"fmt"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// Issue is one whole-document validation violation, addressed by the
// dotted path of the offending field.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string { return i.Message }

// entityRule describes the identity requirements of one builder-entity
// section: every element needs a non-empty id plus its discriminator.
type entityRule struct {
	section string
	label   string // human-readable singular-list label ("Units")
	// discriminator accepts the entity and reports whether its type
	// discriminator is present.
	discriminator func(entity map[string]any) bool
	discName      string // name used in messages
}

func hasString(entity map[string]any, key string) bool {
	s, ok := entity[key].(string)
	return ok && s != ""
}

var entityRules = []entityRule{
	{
		section:       document.SectionUnits,
		label:         "Units",
		discriminator: func(e map[string]any) bool { return hasString(e, "unit_type") },
		discName:      "unit_type",
	},
	{
		section:       document.SectionConstructibles,
		label:         "Constructibles",
		discriminator: func(e map[string]any) bool { return hasString(e, "constructible_type") },
		discName:      "constructible_type",
	},
	{
		section: document.SectionModifiers,
		label:   "Modifiers",
		discriminator: func(e map[string]any) bool {
			m, ok := e["modifier"].(map[string]any)
			return ok && len(m) > 0
		},
		discName: "modifier",
	},
}

// ValidateDocument is the hard validation gate consulted before save and
// export. It requires non-empty metadata.id and metadata.version, and a
// non-empty id plus type discriminator on every unit, constructible and
// modifier. It returns (true, nil) for a valid document, otherwise
// (false, issues) with the complete violation list.
//
// Callers must refuse the save/export (making no network call) when the
// gate fails.
func ValidateDocument(tree map[string]any) (bool, []Issue) {
	var issues []Issue

	meta, _ := tree[document.SectionMetadata].(map[string]any)
	if !hasString(meta, "id") {
		issues = append(issues, Issue{
			Path:    "metadata.id",
			Message: "Mod ID is required",
		})
	}
	if !hasString(meta, "version") {
		issues = append(issues, Issue{
			Path:    "metadata.version",
			Message: "Mod version is required",
		})
	}

	for _, rule := range entityRules {
		raw, ok := tree[rule.section].([]any)
		if !ok {
			continue
		}
		for i, el := range raw {
			entity, ok := el.(map[string]any)
			if !ok {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.%d", rule.section, i),
					Message: fmt.Sprintf("%s[%d] is not an object", rule.label, i),
				})
				continue
			}
			if !hasString(entity, "id") {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.%d.id", rule.section, i),
					Message: fmt.Sprintf("%s[%d] is missing an id", rule.label, i),
				})
			}
			if !rule.discriminator(entity) {
				issues = append(issues, Issue{
					Path:    fmt.Sprintf("%s.%d.%s", rule.section, i, rule.discName),
					Message: fmt.Sprintf("%s[%d] is missing its %s", rule.label, i, rule.discName),
				})
			}
		}
	}

	return len(issues) == 0, issues
}

// Messages flattens issues into their human-readable messages.
func Messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Message
	}
	return out
}
