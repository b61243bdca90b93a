package preview

import (
	"strings"
	"testing"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

func treeDocument(t *testing.T) *document.Store {
	t.Helper()
	doc := document.New()

	nodes := document.At(document.SectionProgressionTreeNodes)
	if _, err := doc.Append(nodes, map[string]any{
		"id":                         "node_gondor_culture_1",
		"progression_tree_node_type": "NODE_CIVIC_GONDOR_1",
		"localizations":              []any{map[string]any{"name": "Traditions of Gondor"}},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Append(nodes, map[string]any{
		"id":                         "node_gondor_culture_2",
		"progression_tree_node_type": "NODE_CIVIC_GONDOR_2",
		"prereqs":                    []any{"NODE_CIVIC_GONDOR_1"},
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := doc.Append(document.At(document.SectionProgressionTrees), map[string]any{
		"id":                    "tree_gondor_culture",
		"progression_tree_type": "TREE_CIVICS_GONDOR",
		"age_type":              "AGE_ANTIQUITY",
		"nodes":                 []any{"NODE_CIVIC_GONDOR_1", "NODE_CIVIC_GONDOR_2"},
	}); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestTrees(t *testing.T) {
	trees := Trees(treeDocument(t))
	if len(trees) != 1 {
		t.Fatalf("len(trees) = %d, want 1", len(trees))
	}

	tree := trees[0]
	if tree.Type != "TREE_CIVICS_GONDOR" {
		t.Errorf("tree type = %q", tree.Type)
	}
	if len(tree.Nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(tree.Nodes))
	}
	if tree.Nodes[0].Name != "Traditions of Gondor" {
		t.Errorf("node name = %q", tree.Nodes[0].Name)
	}
	if len(tree.Nodes[1].Prereqs) != 1 || tree.Nodes[1].Prereqs[0] != "NODE_CIVIC_GONDOR_1" {
		t.Errorf("node 2 prereqs = %v", tree.Nodes[1].Prereqs)
	}
}

func TestTrees_SkipsUnknownNodeTypes(t *testing.T) {
	doc := document.New()
	if _, err := doc.Append(document.At(document.SectionProgressionTrees), map[string]any{
		"id":                    "tree_x",
		"progression_tree_type": "TREE_X",
		"nodes":                 []any{"NODE_MISSING"},
	}); err != nil {
		t.Fatal(err)
	}

	trees := Trees(doc)
	if len(trees) != 1 {
		t.Fatalf("len(trees) = %d, want 1", len(trees))
	}
	if len(trees[0].Nodes) != 0 {
		t.Errorf("nodes = %v, want none", trees[0].Nodes)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(Trees(treeDocument(t)))

	for _, want := range []string{
		"digraph progression",
		`"NODE_CIVIC_GONDOR_1"`,
		`"NODE_CIVIC_GONDOR_1" -> "NODE_CIVIC_GONDOR_2";`,
		"TREE_CIVICS_GONDOR (AGE_ANTIQUITY)",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_EmptyDocument(t *testing.T) {
	dot := ToDOT(Trees(document.New()))
	if !strings.Contains(dot, "digraph progression") {
		t.Errorf("DOT output malformed:\n%s", dot)
	}
	if strings.Contains(dot, "subgraph") {
		t.Error("empty document should produce no clusters")
	}
}
