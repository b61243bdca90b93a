// Package preview renders a document's progression trees as node-link
// diagrams: DOT emission plus SVG rendering through Graphviz. Nodes are
// the tree's civic nodes, edges are prerequisite relations.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// Node is one progression-tree node in the preview graph.
type Node struct {
	ID      string
	Type    string
	Name    string
	Prereqs []string // prerequisite node types
}

// Tree is one progression tree with its resolved nodes.
type Tree struct {
	ID    string
	Type  string
	Age   string
	Nodes []Node
}

// Trees extracts the progression trees from a document. Trees keep the
// document's order; nodes keep the order of the tree's node list, with
// nodes missing from the document skipped.
func Trees(doc *document.Store) []Tree {
	tree := doc.Tree()

	byType := make(map[string]Node)
	for _, raw := range sectionList(tree, document.SectionProgressionTreeNodes) {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		n := Node{
			ID:   str(m, "id"),
			Type: str(m, "progression_tree_node_type"),
			Name: nodeName(m),
		}
		if prereqs, ok := m["prereqs"].([]any); ok {
			for _, p := range prereqs {
				if s, ok := p.(string); ok {
					n.Prereqs = append(n.Prereqs, s)
				}
			}
		}
		if n.Type != "" {
			byType[n.Type] = n
		}
	}

	var out []Tree
	for _, raw := range sectionList(tree, document.SectionProgressionTrees) {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		t := Tree{
			ID:   str(m, "id"),
			Type: str(m, "progression_tree_type"),
			Age:  str(m, "age_type"),
		}
		if nodeTypes, ok := m["nodes"].([]any); ok {
			for _, nt := range nodeTypes {
				s, _ := nt.(string)
				if n, ok := byType[s]; ok {
					t.Nodes = append(t.Nodes, n)
				}
			}
		}
		out = append(out, t)
	}
	return out
}

// ToDOT converts the trees to Graphviz DOT, one cluster per tree with
// prerequisite edges drawn from prerequisite to dependent.
func ToDOT(trees []Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph progression {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i, t := range trees {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(t))
		for _, n := range t.Nodes {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", n.Type, nodeLabel(n))
		}
		for _, n := range t.Nodes {
			for _, prereq := range n.Prereqs {
				fmt.Fprintf(&buf, "    %q -> %q;\n", prereq, n.Type)
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func clusterLabel(t Tree) string {
	if t.Age != "" {
		return t.Type + " (" + t.Age + ")"
	}
	return t.Type
}

func nodeLabel(n Node) string {
	if n.Name != "" {
		return n.Name + "\n" + n.Type
	}
	return n.Type
}

func nodeName(m map[string]any) string {
	locs, _ := m["localizations"].([]any)
	if len(locs) == 0 {
		return ""
	}
	first, _ := locs[0].(map[string]any)
	return strings.TrimSpace(str(first, "name"))
}

func sectionList(tree map[string]any, section string) []any {
	list, _ := tree[section].([]any)
	return list
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
