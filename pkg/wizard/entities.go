package wizard

import (
	"strings"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/errors"
)

// NewEntity is the sentinel edit index meaning "append a new entity"
// rather than replacing an existing one.
const NewEntity = -1

// UnitInput is the inline unit sub-form of step 3.
type UnitInput struct {
	ID        string
	UnitType  string
	Name      string
	BaseMoves int
	Cost      int
	YieldType string // cost currency, e.g. YIELD_PRODUCTION
}

// SaveUnit appends (or, when editIndex >= 0, replaces) a unit entity in
// the draft. Saving is rejected when id or unit_type is blank.
func (w *Wizard) SaveUnit(in UnitInput, editIndex int) error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Unit ID is required")
	}
	if strings.TrimSpace(in.UnitType) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Unit Type is required")
	}
	if err := errors.ValidateGameType(in.UnitType); err != nil {
		return err
	}

	entity := map[string]any{
		"id":        in.ID,
		"unit_type": in.UnitType,
		"unit": map[string]any{
			"base_moves": in.BaseMoves,
		},
	}
	if in.Name != "" {
		entity["localizations"] = []any{map[string]any{"name": in.Name}}
	}
	if in.Cost > 0 {
		entity["unit_cost"] = map[string]any{
			"cost":       in.Cost,
			"yield_type": in.YieldType,
		}
	}

	return w.saveEntity(document.SectionUnits, entity, editIndex)
}

// ConstructibleInput is the inline building sub-form of step 3.
type ConstructibleInput struct {
	ID                string
	ConstructibleType string
	Name              string
	Cost              int
	YieldType         string
}

// SaveConstructible appends (or replaces) a building entity in the
// draft. Saving is rejected when id or constructible_type is blank.
func (w *Wizard) SaveConstructible(in ConstructibleInput, editIndex int) error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Building ID is required")
	}
	if strings.TrimSpace(in.ConstructibleType) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Building Type is required")
	}
	if err := errors.ValidateGameType(in.ConstructibleType); err != nil {
		return err
	}

	entity := map[string]any{
		"id":                 in.ID,
		"constructible_type": in.ConstructibleType,
	}
	if in.Name != "" {
		entity["localizations"] = []any{map[string]any{"name": in.Name}}
	}
	if in.Cost > 0 {
		entity["constructible_cost"] = map[string]any{
			"cost":       in.Cost,
			"yield_type": in.YieldType,
		}
	}

	return w.saveEntity(document.SectionConstructibles, entity, editIndex)
}

// Argument is one parsed name:value pair of a modifier's arguments.
type Argument struct {
	Name  string
	Value string
}

// ParseArguments parses the free-text arguments of a modifier, one
// name:value pair per line, splitting on the first colon. Blank lines
// and lines without a colon are skipped silently.
func ParseArguments(text string) []Argument {
	var args []Argument
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		args = append(args, Argument{Name: name, Value: strings.TrimSpace(value)})
	}
	return args
}

// ModifierInput is the inline modifier sub-form of step 4.
type ModifierInput struct {
	ID         string
	Effect     string
	Collection string
	Arguments  string // free text, parsed with ParseArguments
	Permanent  bool
}

// SaveModifier appends (or replaces) a modifier entity in the draft.
// Saving is rejected when id, effect or collection is blank.
func (w *Wizard) SaveModifier(in ModifierInput, editIndex int) error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Modifier ID is required")
	}
	if strings.TrimSpace(in.Effect) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Modifier Effect is required")
	}
	if strings.TrimSpace(in.Collection) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Modifier Collection is required")
	}

	modifier := map[string]any{
		"effect":     in.Effect,
		"collection": in.Collection,
		"permanent":  in.Permanent,
	}
	if args := ParseArguments(in.Arguments); len(args) > 0 {
		list := make([]any, len(args))
		for i, a := range args {
			list[i] = map[string]any{"name": a.Name, "value": a.Value}
		}
		modifier["arguments"] = list
	}

	entity := map[string]any{
		"id":       in.ID,
		"modifier": modifier,
	}
	return w.saveEntity(document.SectionModifiers, entity, editIndex)
}

// TraditionInput is the inline tradition sub-form of step 4.
type TraditionInput struct {
	ID            string
	TraditionType string
	Name          string
	Description   string
}

// SaveTradition appends (or replaces) a tradition entity in the draft.
// Saving is rejected when id or tradition_type is blank.
func (w *Wizard) SaveTradition(in TraditionInput, editIndex int) error {
	if strings.TrimSpace(in.ID) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Tradition ID is required")
	}
	if strings.TrimSpace(in.TraditionType) == "" {
		return errors.New(errors.ErrCodeInvalidEntity, "Tradition Type is required")
	}
	if err := errors.ValidateGameType(in.TraditionType); err != nil {
		return err
	}

	entity := map[string]any{
		"id":             in.ID,
		"tradition_type": in.TraditionType,
	}
	if in.Name != "" || in.Description != "" {
		entity["localizations"] = []any{map[string]any{
			"name":        in.Name,
			"description": in.Description,
		}}
	}
	return w.saveEntity(document.SectionTraditions, entity, editIndex)
}

// saveEntity appends entity to the draft section, or replaces the
// element at editIndex when editing an existing one.
func (w *Wizard) saveEntity(section string, entity map[string]any, editIndex int) error {
	p := document.At(section)
	if editIndex == NewEntity {
		_, err := w.draft.Append(p, entity)
		return err
	}

	raw, ok := w.draft.Get(p)
	slice, isSlice := raw.([]any)
	if !ok || !isSlice || editIndex < 0 || editIndex >= len(slice) {
		return errors.New(errors.ErrCodeInvalidEntity, "no %s entry at position %d", section, editIndex)
	}

	// Keep the element's stable key across edits.
	if prev, ok := slice[editIndex].(map[string]any); ok {
		if key, ok := prev[document.ElementKey]; ok {
			entity[document.ElementKey] = key
		}
	}
	return w.draft.Set(p.Index(editIndex), entity)
}
