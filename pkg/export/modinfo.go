package export

import (
	"encoding/xml"
	"fmt"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// Modinfo is the .modinfo manifest the game loader reads. Only the
// fields the editor produces are modeled; the full manifest grammar is
// out of scope.
type Modinfo struct {
	XMLName    xml.Name `xml:"Mod"`
	ID         string   `xml:"id,attr"`
	Version    string   `xml:"version,attr"`
	Xmlns      string   `xml:"xmlns,attr"`
	Properties struct {
		Name        string `xml:"Name"`
		Description string `xml:"Description,omitempty"`
		Authors     string `xml:"Authors,omitempty"`
		Package     string `xml:"Package"`
	} `xml:"Properties"`
	ActionCriteria struct {
		Criteria []Criteria `xml:"Criteria"`
	} `xml:"ActionCriteria"`
	ActionGroups struct {
		Groups []ActionGroup `xml:"ActionGroup"`
	} `xml:"ActionGroups"`
}

// Criteria is one activation criteria block.
type Criteria struct {
	ID        string    `xml:"id,attr"`
	AlwaysMet *struct{} `xml:"AlwaysMet,omitempty"`
	AgeInUse  string    `xml:"AgeInUse,omitempty"`
}

// ActionGroup is one action group applying the mod's data files.
type ActionGroup struct {
	ID       string `xml:"id,attr"`
	Scope    string `xml:"scope,attr"`
	Criteria string `xml:"criteria,attr"`
	Actions  struct {
		UpdateDatabase struct {
			Items []string `xml:"Item"`
		} `xml:"UpdateDatabase"`
	} `xml:"Actions"`
}

// buildModinfo assembles the manifest from the document's metadata and
// action group sections.
func buildModinfo(tree map[string]any) (*Modinfo, error) {
	meta, _ := tree[document.SectionMetadata].(map[string]any)
	id, _ := meta["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("document has no metadata.id")
	}

	m := &Modinfo{
		ID:      id,
		Version: str(meta, "version"),
		Xmlns:   "ModInfo",
	}
	m.Properties.Name = str(meta, "name")
	m.Properties.Description = str(meta, "description")
	m.Properties.Authors = str(meta, "authors")
	m.Properties.Package = "Mods"

	group, _ := tree[document.SectionActionGroup].(map[string]any)
	ageType := str(group, "action_group_id")

	criteriaID := "always"
	crit := Criteria{ID: criteriaID, AlwaysMet: &struct{}{}}
	if ageType != "" {
		criteriaID = "age-" + ageType
		crit = Criteria{ID: criteriaID, AgeInUse: ageType}
	}
	m.ActionCriteria.Criteria = []Criteria{crit}

	ag := ActionGroup{
		ID:       id + "-data",
		Scope:    "game",
		Criteria: criteriaID,
	}
	ag.Actions.UpdateDatabase.Items = []string{"data/" + id + ".json"}
	m.ActionGroups.Groups = []ActionGroup{ag}

	return m, nil
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
