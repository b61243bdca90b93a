package wizard

import (
	"slices"
	"strings"
	"testing"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

// completeDraft fills the wizard's draft with the minimum Finish accepts.
func completeDraft(w *Wizard) {
	w.ApplyBasicInfo(BasicInfo{
		ModID:       "gondor-mod",
		Version:     "1.0.0",
		Name:        "Kingdom of Gondor",
		StartingAge: AgeAntiquity,
	})
	_ = w.ApplyCoreCivilization(CoreCivilization{
		CivilizationType: "CIVILIZATION_GONDOR",
		Name:             "Gondor",
		Adjective:        "Gondorian",
		Traits:           []string{"TRAIT_ATTRIBUTE_MILITARISTIC"},
		CityNames:        []string{"Minas Tirith", "Osgiliath"},
	})
}

func TestWizard_Navigation(t *testing.T) {
	w := New(document.New())

	if w.Step() != StepBasicInfo {
		t.Fatalf("initial step = %v", w.Step())
	}

	// Prev at step 1 is a no-op.
	w.Prev()
	if w.Step() != StepBasicInfo {
		t.Error("Prev at first step should be a no-op")
	}

	for i := 0; i < 4; i++ {
		if msgs := w.Next(); msgs != nil {
			t.Fatalf("Next at step %v returned %v", w.Step(), msgs)
		}
	}
	if w.Step() != StepReviewFinish {
		t.Fatalf("after 4 Next, step = %v", w.Step())
	}

	// Next at the last step triggers Finish; an empty draft fails
	// validation and the step does not change.
	msgs := w.Next()
	if len(msgs) == 0 {
		t.Fatal("Finish on empty draft should report validation messages")
	}
	if w.Step() != StepReviewFinish {
		t.Error("failed Finish must not move the step")
	}
	if w.Done() {
		t.Error("failed Finish must not mark the wizard done")
	}
}

func TestWizard_EditsSurviveNavigation(t *testing.T) {
	w := New(document.New())
	w.ApplyBasicInfo(BasicInfo{ModID: "gondor-mod", Name: "Gondor"})

	w.Next()
	w.Prev()

	if got := w.Draft().GetString(document.At("metadata").Key("id")); got != "gondor-mod" {
		t.Errorf("draft lost edits across navigation: %q", got)
	}
}

func TestWizard_ValidateRequiredFields(t *testing.T) {
	w := New(document.New())

	msgs := w.Validate()
	want := []string{
		"Mod ID is required",
		"Mod name is required",
		"Starting Age is required",
		"Civilization Type is required",
		"Civilization Name is required",
		"At least one Civilization Trait is required",
	}
	for _, m := range want {
		if !slices.Contains(msgs, m) {
			t.Errorf("Validate() missing %q; got %v", m, msgs)
		}
	}
}

func TestWizard_FinishBlockedWithoutTraits(t *testing.T) {
	main := document.New()
	w := New(main)
	completeDraft(w)
	// Remove the traits again: step 2 with no traits selected.
	_ = w.Draft().Set(document.At("civilization").Key("civilization_traits"), []any{})

	msgs := w.Finish()
	if !slices.Contains(msgs, "At least one Civilization Trait is required") {
		t.Fatalf("Finish msgs = %v", msgs)
	}

	// No merge happened.
	if got := main.GetString(document.At("metadata").Key("id")); got != "" {
		t.Errorf("main document was mutated by a failed Finish: %q", got)
	}
}

func TestWizard_FinishMergesShallow(t *testing.T) {
	main := document.New()
	// Pre-existing main-document state the wizard's keys must overwrite.
	_ = main.Set(document.At("metadata").Key("id"), "old-mod")
	_ = main.Set(document.At("metadata").Key("flags"), "keep-me-not")

	w := New(main)
	completeDraft(w)

	if msgs := w.Finish(); msgs != nil {
		t.Fatalf("Finish failed: %v", msgs)
	}
	if !w.Done() {
		t.Error("Finish should mark the wizard done")
	}

	// Shallow overwrite: the wizard's metadata replaces the whole
	// metadata section, so the stale key is gone.
	if got := main.GetString(document.At("metadata").Key("id")); got != "gondor-mod" {
		t.Errorf("metadata.id = %q", got)
	}
	if _, ok := main.Get(document.At("metadata").Key("flags")); ok {
		t.Error("shallow merge should replace the metadata section wholesale")
	}
}

func TestWizard_FinishSynthesizesProgressionTree(t *testing.T) {
	main := document.New()
	w := New(main)
	completeDraft(w)
	if msgs := w.Finish(); msgs != nil {
		t.Fatalf("Finish failed: %v", msgs)
	}

	trees, _ := main.Get(document.At(document.SectionProgressionTrees))
	treeList, _ := trees.([]any)
	if len(treeList) != 1 {
		t.Fatalf("progression_trees len = %d, want 1", len(treeList))
	}

	nodes, _ := main.Get(document.At(document.SectionProgressionTreeNodes))
	nodeList, _ := nodes.([]any)
	if len(nodeList) != 2 {
		t.Fatalf("progression_tree_nodes len = %d, want 2", len(nodeList))
	}

	// Identifiers derive from the civilization type.
	tree := treeList[0].(map[string]any)
	if tree["id"] != "tree_gondor_culture" {
		t.Errorf("tree id = %v", tree["id"])
	}

	// The prerequisite edge points node 2 at node 1.
	node2 := nodeList[1].(map[string]any)
	prereqs, _ := node2["prereqs"].([]any)
	if len(prereqs) != 1 || prereqs[0] != "NODE_CIVIC_GONDOR_1" {
		t.Errorf("node2 prereqs = %v", prereqs)
	}

	// The civilization is wired to the tree.
	if got := main.GetString(document.At("civilization").Key("unique_culture_progression_tree")); got != "TREE_CIVICS_GONDOR" {
		t.Errorf("unique_culture_progression_tree = %q", got)
	}
	bindings, _ := main.Get(document.At("civilization").Key("bindings"))
	if !slices.Contains(bindings.([]any), any("tree_gondor_culture")) {
		t.Errorf("bindings = %v, want to contain the tree id", bindings)
	}
}

func TestWizard_FinishIdempotentForTreeSynthesis(t *testing.T) {
	main := document.New()

	w := New(main)
	completeDraft(w)
	if msgs := w.Finish(); msgs != nil {
		t.Fatalf("first Finish failed: %v", msgs)
	}

	// A second guided pass over the same document must not stack
	// another generated tree.
	w2 := New(main)
	completeDraft(w2)
	if msgs := w2.Finish(); msgs != nil {
		t.Fatalf("second Finish failed: %v", msgs)
	}

	trees, _ := main.Get(document.At(document.SectionProgressionTrees))
	if got := len(trees.([]any)); got != 1 {
		t.Errorf("progression_trees len = %d after two Finishes, want 1", got)
	}
}

func TestWizard_PreexistingTreeSuppressesSynthesis(t *testing.T) {
	main := document.New()
	_, _ = main.Append(document.At(document.SectionProgressionTrees), map[string]any{
		"id": "tree_custom", "progression_tree_type": "TREE_CUSTOM",
	})

	w := New(main)
	completeDraft(w)
	if msgs := w.Finish(); msgs != nil {
		t.Fatalf("Finish failed: %v", msgs)
	}

	trees, _ := main.Get(document.At(document.SectionProgressionTrees))
	treeList := trees.([]any)
	if len(treeList) != 1 {
		t.Fatalf("progression_trees len = %d, want 1 (no synthesis)", len(treeList))
	}
	if treeList[0].(map[string]any)["id"] != "tree_custom" {
		t.Error("existing tree was replaced")
	}
}

func TestApplyCoreCivilization_RejectsUnknownTrait(t *testing.T) {
	w := New(document.New())
	err := w.ApplyCoreCivilization(CoreCivilization{
		CivilizationType: "CIVILIZATION_GONDOR",
		Traits:           []string{"TRAIT_MADE_UP"},
	})
	if err == nil {
		t.Fatal("unknown trait should be rejected")
	}
	if !strings.Contains(err.Error(), "TRAIT_MADE_UP") {
		t.Errorf("error = %v, want it to name the trait", err)
	}
}

func TestApplyCoreCivilization_RejectsMalformedType(t *testing.T) {
	w := New(document.New())
	err := w.ApplyCoreCivilization(CoreCivilization{
		CivilizationType: "civilization_gondor",
	})
	if err == nil {
		t.Fatal("lowercase civilization type should be rejected")
	}

	// A blank type is fine here; required-ness is checked at Finish.
	if err := w.ApplyCoreCivilization(CoreCivilization{}); err != nil {
		t.Fatalf("blank civilization type should pass: %v", err)
	}
}

func TestTraitCatalogHasNineValues(t *testing.T) {
	if len(TraitCatalog) != 9 {
		t.Errorf("TraitCatalog len = %d, want 9", len(TraitCatalog))
	}
	for _, trait := range TraitCatalog {
		if !IsKnownTrait(trait) {
			t.Errorf("IsKnownTrait(%q) = false", trait)
		}
	}
	if IsKnownTrait("TRAIT_NOPE") {
		t.Error("IsKnownTrait should reject unknown ids")
	}
}
