package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/wizard"
)

var (
	formSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(18)
	formValueStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// fieldKind selects the editing behavior of a form field: free text,
// left/right choice cycling, or space-toggled multi select.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
	fieldToggle
)

// formField is one editable line of a wizard step.
type formField struct {
	label   string
	kind    fieldKind
	value   string
	options []string // fieldChoice and fieldToggle
	checked map[string]bool
}

// wizardModel is the bubbletea model driving the guided wizard.
type wizardModel struct {
	wiz    *wizard.Wizard
	fields []formField
	cursor int
	errs   []string
}

func newWizardModel(main *document.Store) wizardModel {
	m := wizardModel{wiz: wizard.New(main)}
	m.fields = m.stepFields()
	return m
}

// stepFields builds the form for the current step, rehydrating values
// already committed to the draft so back-navigation never loses edits.
func (m *wizardModel) stepFields() []formField {
	draft := m.wiz.Draft()
	switch m.wiz.Step() {
	case wizard.StepBasicInfo:
		meta := document.At("metadata")
		version := draft.GetString(meta.Key("version"))
		if version == "" {
			version = "1.0.0"
		}
		age := draft.GetString(document.At("action_group").Key("action_group_id"))
		if age == "" {
			age = wizard.Ages[0]
		}
		return []formField{
			{label: "Mod ID", kind: fieldText, value: draft.GetString(meta.Key("id"))},
			{label: "Mod Name", kind: fieldText, value: draft.GetString(meta.Key("name"))},
			{label: "Version", kind: fieldText, value: version},
			{label: "Description", kind: fieldText, value: draft.GetString(meta.Key("description"))},
			{label: "Authors", kind: fieldText, value: draft.GetString(meta.Key("authors"))},
			{label: "Starting Age", kind: fieldChoice, options: wizard.Ages, value: age},
		}
	case wizard.StepCoreCivilization:
		civ := document.At("civilization")
		loc := civ.Key("localizations").Index(0)
		checked := map[string]bool{}
		if raw, ok := draft.Get(civ.Key("civilization_traits")); ok {
			if list, ok := raw.([]any); ok {
				for _, trait := range list {
					if id, ok := trait.(string); ok {
						checked[id] = true
					}
				}
			}
		}
		return []formField{
			{label: "Civilization Type", kind: fieldText, value: draft.GetString(civ.Key("civilization_type"))},
			{label: "Name", kind: fieldText, value: draft.GetString(loc.Key("name"))},
			{label: "Adjective", kind: fieldText, value: draft.GetString(loc.Key("adjective"))},
			{label: "Description", kind: fieldText, value: draft.GetString(loc.Key("description"))},
			{label: "City Names", kind: fieldText, value: joinStrings(draft, loc.Key("city_names"))},
			{label: "Traits", kind: fieldToggle, options: wizard.TraitCatalog, checked: checked},
		}
	case wizard.StepUnitsBuildings:
		return []formField{
			{label: "Unit ID", kind: fieldText},
			{label: "Unit Type", kind: fieldText},
			{label: "Unit Name", kind: fieldText},
			{label: "Building ID", kind: fieldText},
			{label: "Building Type", kind: fieldText},
			{label: "Building Name", kind: fieldText},
		}
	case wizard.StepAdvancedFeatures:
		return []formField{
			{label: "Modifier ID", kind: fieldText},
			{label: "Effect", kind: fieldText},
			{label: "Collection", kind: fieldText},
			{label: "Arguments", kind: fieldText},
			{label: "Tradition ID", kind: fieldText},
			{label: "Tradition Type", kind: fieldText},
		}
	default:
		return nil
	}
}

func (m wizardModel) Init() tea.Cmd {
	return nil
}

func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "tab":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}

	case "left", "right":
		m.cycleChoice(key.String() == "right")

	case " ":
		f := m.currentField()
		if f != nil && f.kind == fieldToggle {
			m.toggleOption()
		} else if f != nil && f.kind == fieldText {
			f.value += " "
		}

	case "backspace":
		if f := m.currentField(); f != nil && f.kind == fieldText && f.value != "" {
			f.value = f.value[:len(f.value)-1]
		}

	case "ctrl+p", "shift+tab":
		m.wiz.Prev()
		m.fields = m.stepFields()
		m.cursor = 0
		m.errs = nil

	case "enter":
		return m.advance()

	default:
		if f := m.currentField(); f != nil && f.kind == fieldText && key.Type == tea.KeyRunes {
			f.value += string(key.Runes)
		}
	}
	return m, nil
}

func (m *wizardModel) currentField() *formField {
	if m.cursor < 0 || m.cursor >= len(m.fields) {
		return nil
	}
	return &m.fields[m.cursor]
}

// cycleChoice moves choice fields through their options and the toggle
// highlight through the trait list.
func (m *wizardModel) cycleChoice(forward bool) {
	f := m.currentField()
	if f == nil || f.kind == fieldText || len(f.options) == 0 {
		return
	}
	if f.value == "" {
		f.value = f.options[0]
	}
	i := 0
	for j, opt := range f.options {
		if opt == f.value {
			i = j
		}
	}
	if forward {
		i = (i + 1) % len(f.options)
	} else {
		i = (i - 1 + len(f.options)) % len(f.options)
	}
	f.value = f.options[i]
}

func (m *wizardModel) toggleOption() {
	f := m.currentField()
	if f == nil || f.kind != fieldToggle {
		return
	}
	// value tracks the highlighted option for toggle fields.
	if f.value == "" {
		f.value = f.options[0]
	}
	f.checked[f.value] = !f.checked[f.value]
}

// advance moves cursor to the next field, or commits the step on the
// last field and steps the wizard forward.
func (m wizardModel) advance() (tea.Model, tea.Cmd) {
	if m.cursor < len(m.fields)-1 {
		m.cursor++
		return m, nil
	}

	if err := m.applyStep(); err != nil {
		m.errs = []string{err.Error()}
		return m, nil
	}

	m.errs = m.wiz.Next()
	if m.wiz.Done() {
		return m, tea.Quit
	}
	m.fields = m.stepFields()
	m.cursor = 0
	return m, nil
}

// applyStep writes the form values into the wizard draft.
func (m *wizardModel) applyStep() error {
	v := m.fieldValues()

	switch m.wiz.Step() {
	case wizard.StepBasicInfo:
		m.wiz.ApplyBasicInfo(wizard.BasicInfo{
			ModID:       v["Mod ID"],
			Name:        v["Mod Name"],
			Version:     v["Version"],
			Description: v["Description"],
			Authors:     v["Authors"],
			StartingAge: v["Starting Age"],
		})

	case wizard.StepCoreCivilization:
		var traits []string
		for _, f := range m.fields {
			if f.kind != fieldToggle {
				continue
			}
			for _, opt := range f.options {
				if f.checked[opt] {
					traits = append(traits, opt)
				}
			}
		}
		return m.wiz.ApplyCoreCivilization(wizard.CoreCivilization{
			CivilizationType: v["Civilization Type"],
			Name:             v["Name"],
			Adjective:        v["Adjective"],
			Description:      v["Description"],
			Traits:           traits,
			CityNames:        splitList(v["City Names"]),
		})

	case wizard.StepUnitsBuildings:
		if v["Unit ID"] != "" {
			if err := m.wiz.SaveUnit(wizard.UnitInput{
				ID:       v["Unit ID"],
				UnitType: v["Unit Type"],
				Name:     v["Unit Name"],
			}, wizard.NewEntity); err != nil {
				return err
			}
		}
		if v["Building ID"] != "" {
			return m.wiz.SaveConstructible(wizard.ConstructibleInput{
				ID:                v["Building ID"],
				ConstructibleType: v["Building Type"],
				Name:              v["Building Name"],
			}, wizard.NewEntity)
		}

	case wizard.StepAdvancedFeatures:
		if v["Modifier ID"] != "" {
			if err := m.wiz.SaveModifier(wizard.ModifierInput{
				ID:         v["Modifier ID"],
				Effect:     v["Effect"],
				Collection: v["Collection"],
				Arguments:  strings.ReplaceAll(v["Arguments"], ";", "\n"),
			}, wizard.NewEntity); err != nil {
				return err
			}
		}
		if v["Tradition ID"] != "" {
			return m.wiz.SaveTradition(wizard.TraditionInput{
				ID:            v["Tradition ID"],
				TraditionType: v["Tradition Type"],
			}, wizard.NewEntity)
		}
	}
	return nil
}

func (m *wizardModel) fieldValues() map[string]string {
	v := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		v[f.label] = strings.TrimSpace(f.value)
	}
	return v
}

// joinStrings renders a draft string list back into the comma separated
// form splitList parses.
func joinStrings(draft *document.Store, p document.Path) string {
	raw, ok := draft.Get(p)
	if !ok {
		return ""
	}
	list, ok := raw.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (m wizardModel) View() string {
	var b strings.Builder

	step := m.wiz.Step()
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Step %d/%d: %s", step, wizard.StepCount, step)))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("↑/↓ move  ⏎ next  ⇧⇥ back  space toggle  esc quit"))
	b.WriteString("\n\n")

	if step == wizard.StepReviewFinish {
		b.WriteString(m.reviewView())
	} else {
		for i, f := range m.fields {
			b.WriteString(m.fieldView(i, f))
		}
	}

	for _, e := range m.errs {
		b.WriteString("\n" + StyleError.Render(iconError+" "+e))
	}
	b.WriteString("\n")
	return b.String()
}

func (m wizardModel) fieldView(i int, f formField) string {
	cursor := "  "
	label := formLabelStyle.Render(f.label)
	if i == m.cursor {
		cursor = formSelectedStyle.Render("▸ ")
		label = formSelectedStyle.Render(fmt.Sprintf("%-18s", f.label))
	}

	switch f.kind {
	case fieldChoice:
		return fmt.Sprintf("%s%s ◂ %s ▸\n", cursor, label, formValueStyle.Render(f.value))
	case fieldToggle:
		var opts []string
		for _, opt := range f.options {
			mark := "○"
			if f.checked[opt] {
				mark = "●"
			}
			line := "    " + mark + " " + opt
			if i == m.cursor && opt == f.highlighted() {
				line = formSelectedStyle.Render(line)
			}
			opts = append(opts, line)
		}
		return fmt.Sprintf("%s%s\n%s\n", cursor, label, strings.Join(opts, "\n"))
	default:
		value := formValueStyle.Render(f.value)
		if i == m.cursor {
			value += formSelectedStyle.Render("▊")
		}
		return fmt.Sprintf("%s%s %s\n", cursor, label, value)
	}
}

// highlighted returns the option the toggle cursor sits on.
func (f formField) highlighted() string {
	if f.value != "" {
		return f.value
	}
	if len(f.options) > 0 {
		return f.options[0]
	}
	return ""
}

func (m wizardModel) reviewView() string {
	var b strings.Builder
	draft := m.wiz.Draft()

	b.WriteString(formLabelStyle.Render("Mod ID") + " " + draft.GetString(document.At("metadata").Key("id")) + "\n")
	b.WriteString(formLabelStyle.Render("Mod Name") + " " + draft.GetString(document.At("metadata").Key("name")) + "\n")
	b.WriteString(formLabelStyle.Render("Civilization") + " " + draft.GetString(document.At("civilization").Key("civilization_type")) + "\n")
	b.WriteString(formLabelStyle.Render("Starting Age") + " " + draft.GetString(document.At("action_group").Key("action_group_id")) + "\n")
	for _, section := range []string{document.SectionUnits, document.SectionConstructibles, document.SectionModifiers, document.SectionTraditions} {
		if raw, ok := draft.Get(document.At(section)); ok {
			if list, ok := raw.([]any); ok && len(list) > 0 {
				b.WriteString(formLabelStyle.Render(section) + fmt.Sprintf(" %d\n", len(list)))
			}
		}
	}
	b.WriteString("\n" + formDimStyle.Render("⏎ finish and write the document"))
	b.WriteString("\n")
	return b.String()
}
