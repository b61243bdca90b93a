// Package wizard drives the 5-step guided creation flow over a draft
// document and reconciles it into the main mod document on completion.
//
// # Flow
//
// The flow is strictly linear with a single forward/back track:
//
//	BasicInfo → CoreCivilization → UnitsBuildings → AdvancedFeatures → ReviewFinish
//
// Steps 3 and 4 are optional: advancing through them without adding
// anything is allowed. Edits are written into the draft as they occur;
// moving between steps never discards them.
//
// # Reconciliation
//
// [Wizard.Finish] validates the draft's required fields, then commits it
// atomically: a shallow top-level merge into the main document (the
// draft's value for a key wins entirely), followed by synthesis of a
// starter progression tree when the document has none.
package wizard

import (
	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// Step identifies a wizard step. Steps are ordered and contiguous.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepCoreCivilization
	StepUnitsBuildings
	StepAdvancedFeatures
	StepReviewFinish
)

// stepNames for display.
var stepNames = map[Step]string{
	StepBasicInfo:        "Basic Info",
	StepCoreCivilization: "Core Civilization",
	StepUnitsBuildings:   "Units & Buildings",
	StepAdvancedFeatures: "Advanced Features",
	StepReviewFinish:     "Review & Finish",
}

// String returns the display name of the step.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "Unknown"
}

// StepCount is the number of wizard steps.
const StepCount = 5

// Starting-age gate values for action_group.action_group_id.
const (
	AgeAntiquity   = "AGE_ANTIQUITY"
	AgeExploration = "AGE_EXPLORATION"
	AgeModern      = "AGE_MODERN"
)

// Ages lists the valid starting-age gate values in game order.
var Ages = []string{AgeAntiquity, AgeExploration, AgeModern}

// TraitCatalog is the fixed set of civilization trait identifiers offered
// by step 2. The external reference-data catalogs do not carry these yet,
// so the wizard validates against this list directly.
var TraitCatalog = []string{
	"TRAIT_ATTRIBUTE_CULTURAL",
	"TRAIT_ATTRIBUTE_DIPLOMATIC",
	"TRAIT_ATTRIBUTE_ECONOMIC",
	"TRAIT_ATTRIBUTE_EXPANSIONIST",
	"TRAIT_ATTRIBUTE_MILITARISTIC",
	"TRAIT_ATTRIBUTE_SCIENTIFIC",
	"TRAIT_ANTIQUITY_CIV",
	"TRAIT_EXPLORATION_CIV",
	"TRAIT_MODERN_CIV",
}

// IsKnownTrait reports whether id is in the fixed trait catalog.
func IsKnownTrait(id string) bool {
	for _, t := range TraitCatalog {
		if t == id {
			return true
		}
	}
	return false
}

// Wizard owns the draft document and the step cursor. The draft mirrors
// the main document's top-level shape and exists only while the guided
// flow is active; it is merged on Finish or discarded on abandon.
type Wizard struct {
	main  *document.Store
	draft *document.Store
	step  Step
	done  bool
}

// New starts a wizard over the given main document with an empty draft.
func New(main *document.Store) *Wizard {
	return &Wizard{
		main:  main,
		draft: document.New(),
		step:  StepBasicInfo,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Done reports whether Finish has completed successfully.
func (w *Wizard) Done() bool { return w.done }

// Draft exposes the draft store. All step edits funnel through it.
func (w *Wizard) Draft() *document.Store { return w.draft }

// Next advances one step. On the final step it runs [Wizard.Finish]
// instead; the returned messages are the validation failures blocking
// completion (nil means the step advanced or the wizard finished).
func (w *Wizard) Next() []string {
	if w.step < StepReviewFinish {
		w.step++
		return nil
	}
	return w.Finish()
}

// Prev retreats one step. At the first step it is a no-op. Field edits
// already written to the draft are kept.
func (w *Wizard) Prev() {
	if w.step > StepBasicInfo {
		w.step--
	}
}

// Validate runs the wizard-level required-field checks that gate Finish
// (earlier navigation is never blocked). The result is a flat list of
// human-readable messages, empty when the draft is complete.
func (w *Wizard) Validate() []string {
	var msgs []string

	if w.draft.GetString(document.At("metadata").Key("id")) == "" {
		msgs = append(msgs, "Mod ID is required")
	}
	if w.draft.GetString(document.At("metadata").Key("name")) == "" {
		msgs = append(msgs, "Mod name is required")
	}
	if w.draft.GetString(document.At("action_group").Key("action_group_id")) == "" {
		msgs = append(msgs, "Starting Age is required")
	}
	if w.draft.GetString(document.At("civilization").Key("civilization_type")) == "" {
		msgs = append(msgs, "Civilization Type is required")
	}
	if w.draft.GetString(document.At("civilization").Key("localizations").Index(0).Key("name")) == "" {
		msgs = append(msgs, "Civilization Name is required")
	}
	if len(w.traits()) == 0 {
		msgs = append(msgs, "At least one Civilization Trait is required")
	}

	return msgs
}

func (w *Wizard) traits() []any {
	raw, ok := w.draft.Get(document.At("civilization").Key("civilization_traits"))
	if !ok {
		return nil
	}
	traits, _ := raw.([]any)
	return traits
}

// Finish validates the draft and, when clean, commits it: shallow merge
// into the main document, then starter progression-tree synthesis (only
// when the document has none). Returns the blocking validation messages,
// or nil on success. Finish never partially applies: a failing draft
// leaves the main document untouched.
func (w *Wizard) Finish() []string {
	if msgs := w.Validate(); len(msgs) > 0 {
		return msgs
	}

	w.main.MergeShallow(w.draft.Tree())
	w.synthesizeProgressionTree()
	w.done = true
	return nil
}
