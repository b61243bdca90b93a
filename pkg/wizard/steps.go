package wizard

import (
	"strings"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// BasicInfo is the input of step 1.
type BasicInfo struct {
	ModID       string
	Version     string
	Name        string
	Description string
	Authors     string
	StartingAge string // one of Ages
}

// ApplyBasicInfo writes step 1 fields into the draft. Partial input is
// fine: the wizard validates required fields at Finish, not here.
func (w *Wizard) ApplyBasicInfo(in BasicInfo) {
	meta := document.At("metadata")
	_ = w.draft.Set(meta.Key("id"), in.ModID)
	_ = w.draft.Set(meta.Key("version"), in.Version)
	_ = w.draft.Set(meta.Key("name"), in.Name)
	_ = w.draft.Set(meta.Key("description"), in.Description)
	_ = w.draft.Set(meta.Key("authors"), in.Authors)

	loc := document.At("module_localization")
	_ = w.draft.Set(loc.Key("name"), in.Name)
	_ = w.draft.Set(loc.Key("description"), in.Description)

	_ = w.draft.Set(document.At("action_group").Key("action_group_id"), in.StartingAge)
}

// TerrainBias is one optional start-bias entry of step 2.
type TerrainBias struct {
	TerrainType string
	Score       int
}

// CivilizationUnlock is one optional future-age transition descriptor.
type CivilizationUnlock struct {
	AgeType          string // age the unlock applies to
	CivilizationType string // civilization unlocked in that age
}

// CoreCivilization is the input of step 2.
type CoreCivilization struct {
	CivilizationType string
	Name             string
	Adjective        string
	Description      string
	Traits           []string // ordered, validated against TraitCatalog
	CityNames        []string // order significant, first is the capital
	VisualCulture    string
	TerrainBiases    []TerrainBias
	Unlocks          []CivilizationUnlock
}

// ApplyCoreCivilization writes step 2 fields into the draft. Traits not
// present in [TraitCatalog] are rejected wholesale so a typo cannot land
// in the document.
func (w *Wizard) ApplyCoreCivilization(in CoreCivilization) error {
	for _, trait := range in.Traits {
		if !IsKnownTrait(trait) {
			return errors.New(errors.ErrCodeInvalidField, "unknown civilization trait: %s", trait)
		}
	}
	// Required-ness is checked at Finish; only the format is enforced
	// here so a malformed type never lands in the draft.
	if in.CivilizationType != "" {
		if err := errors.ValidateGameType(in.CivilizationType); err != nil {
			return err
		}
	}

	civ := document.At("civilization")
	_ = w.draft.Set(civ.Key("civilization_type"), in.CivilizationType)
	_ = w.draft.Set(civ.Key("visual_culture"), in.VisualCulture)

	traits := make([]any, len(in.Traits))
	for i, t := range in.Traits {
		traits[i] = t
	}
	_ = w.draft.Set(civ.Key("civilization_traits"), traits)

	loc := civ.Key("localizations").Index(0)
	_ = w.draft.Set(loc.Key("name"), in.Name)
	_ = w.draft.Set(loc.Key("adjective"), in.Adjective)
	_ = w.draft.Set(loc.Key("description"), in.Description)

	cities := make([]any, 0, len(in.CityNames))
	for _, c := range in.CityNames {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	_ = w.draft.Set(loc.Key("city_names"), cities)

	if len(in.TerrainBiases) > 0 {
		biases := make([]any, len(in.TerrainBiases))
		for i, b := range in.TerrainBiases {
			biases[i] = map[string]any{
				"terrain_type": b.TerrainType,
				"score":        b.Score,
			}
		}
		_ = w.draft.Set(civ.Key("start_bias_terrains"), biases)
	}

	if len(in.Unlocks) > 0 {
		unlocks := make([]any, len(in.Unlocks))
		for i, u := range in.Unlocks {
			unlocks[i] = map[string]any{
				"age_type":          u.AgeType,
				"civilization_type": u.CivilizationType,
			}
		}
		_ = w.draft.Set(civ.Key("civilization_unlocks"), unlocks)
	}

	return nil
}
