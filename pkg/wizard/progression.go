package wizard

import (
	"fmt"
	"strings"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// synthesizeProgressionTree seeds the main document with a starter
// culture progression tree: two nodes, one tree, and one prerequisite
// edge (node 2 requires node 1). It runs only when the document has zero
// progression trees, so repeating Finish never stacks generated trees.
//
// Identifiers derive from the civilization type and the mod id, and the
// civilization is wired to the tree through unique_culture_progression_tree
// and its bindings list.
func (w *Wizard) synthesizeProgressionTree() {
	trees, _ := w.main.Get(document.At(document.SectionProgressionTrees))
	if existing, ok := trees.([]any); ok && len(existing) > 0 {
		return
	}

	civType := w.main.GetString(document.At("civilization").Key("civilization_type"))
	modID := w.main.GetString(document.At("metadata").Key("id"))

	suffix := strings.ToLower(strings.TrimPrefix(civType, "CIVILIZATION_"))
	if suffix == "" {
		suffix = slug(modID)
	}
	typeSuffix := strings.ToUpper(suffix)

	node1ID := fmt.Sprintf("node_%s_culture_1", suffix)
	node2ID := fmt.Sprintf("node_%s_culture_2", suffix)
	treeID := fmt.Sprintf("tree_%s_culture", suffix)

	node1Type := "NODE_CIVIC_" + typeSuffix + "_1"
	node2Type := "NODE_CIVIC_" + typeSuffix + "_2"
	treeType := "TREE_CIVICS_" + typeSuffix

	node1 := map[string]any{
		"id":                         node1ID,
		"progression_tree_node_type": node1Type,
		"localizations": []any{
			map[string]any{"name": "Traditions of " + displayName(civType, modID)},
		},
	}
	node2 := map[string]any{
		"id":                         node2ID,
		"progression_tree_node_type": node2Type,
		// The single prerequisite edge: node 2 requires node 1.
		"prereqs": []any{node1Type},
		"localizations": []any{
			map[string]any{"name": "Legacy of " + displayName(civType, modID)},
		},
	}
	tree := map[string]any{
		"id":                    treeID,
		"progression_tree_type": treeType,
		"age_type":              w.main.GetString(document.At("action_group").Key("action_group_id")),
		"nodes":                 []any{node1Type, node2Type},
	}

	_, _ = w.main.Append(document.At(document.SectionProgressionTreeNodes), node1)
	_, _ = w.main.Append(document.At(document.SectionProgressionTreeNodes), node2)
	_, _ = w.main.Append(document.At(document.SectionProgressionTrees), tree)

	civ := document.At("civilization")
	_ = w.main.Set(civ.Key("unique_culture_progression_tree"), treeType)
	_, _ = w.main.Append(civ.Key("bindings"), treeID)
	_, _ = w.main.Append(civ.Key("bindings"), node1ID)
	_, _ = w.main.Append(civ.Key("bindings"), node2ID)
}

// displayName produces a readable name from the civilization type, falling
// back to the mod id.
func displayName(civType, modID string) string {
	base := strings.TrimPrefix(civType, "CIVILIZATION_")
	if base == "" {
		base = modID
	}
	words := strings.Split(strings.ToLower(base), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// slug lowercases and strips an id down to [a-z0-9_].
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteByte('_')
		}
	}
	return b.String()
}
