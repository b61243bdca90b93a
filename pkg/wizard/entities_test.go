package wizard

import (
	"reflect"
	"testing"

	"github.com/Phlair/civ7-modding-tools-sub000/pkg/document"
)

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Argument
	}{
		{
			name: "single pair",
			text: "Amount: 2",
			want: []Argument{{Name: "Amount", Value: "2"}},
		},
		{
			name: "multiple lines",
			text: "Amount: 2\nYieldType: YIELD_SCIENCE",
			want: []Argument{
				{Name: "Amount", Value: "2"},
				{Name: "YieldType", Value: "YIELD_SCIENCE"},
			},
		},
		{
			name: "splits on first colon only",
			text: "Tooltip: has: colons",
			want: []Argument{{Name: "Tooltip", Value: "has: colons"}},
		},
		{
			name: "blank and malformed lines skipped",
			text: "\nAmount: 2\n\nno colon here\n: value without name\n",
			want: []Argument{{Name: "Amount", Value: "2"}},
		},
		{
			name: "empty value kept",
			text: "Flag:",
			want: []Argument{{Name: "Flag", Value: ""}},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseArguments(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseArguments(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSaveUnit(t *testing.T) {
	tests := []struct {
		name    string
		in      UnitInput
		wantErr bool
	}{
		{
			name: "valid unit",
			in:   UnitInput{ID: "unit_rangers", UnitType: "UNIT_RANGERS", BaseMoves: 3},
		},
		{
			name:    "missing id",
			in:      UnitInput{UnitType: "UNIT_RANGERS"},
			wantErr: true,
		},
		{
			name:    "missing unit type",
			in:      UnitInput{ID: "unit_rangers"},
			wantErr: true,
		},
		{
			name:    "whitespace-only id",
			in:      UnitInput{ID: "   ", UnitType: "UNIT_RANGERS"},
			wantErr: true,
		},
		{
			name:    "lowercase unit type",
			in:      UnitInput{ID: "unit_rangers", UnitType: "unit_rangers"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(document.New())
			err := w.SaveUnit(tt.in, NewEntity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SaveUnit() error = %v, wantErr %v", err, tt.wantErr)
			}

			units, _ := w.Draft().Get(document.At(document.SectionUnits))
			list, _ := units.([]any)
			wantLen := 1
			if tt.wantErr {
				wantLen = 0
			}
			if len(list) != wantLen {
				t.Errorf("units len = %d, want %d", len(list), wantLen)
			}
		})
	}
}

func TestSaveUnit_EditKeepsElementKey(t *testing.T) {
	w := New(document.New())
	if err := w.SaveUnit(UnitInput{ID: "unit_a", UnitType: "UNIT_A"}, NewEntity); err != nil {
		t.Fatal(err)
	}

	units, _ := w.Draft().Get(document.At(document.SectionUnits))
	original := units.([]any)[0].(map[string]any)
	key := original[document.ElementKey]
	if key == nil {
		t.Fatal("appended unit should carry an element key")
	}

	if err := w.SaveUnit(UnitInput{ID: "unit_a", UnitType: "UNIT_A", BaseMoves: 4}, 0); err != nil {
		t.Fatal(err)
	}

	units, _ = w.Draft().Get(document.At(document.SectionUnits))
	edited := units.([]any)[0].(map[string]any)
	if edited[document.ElementKey] != key {
		t.Errorf("edit changed the element key: %v != %v", edited[document.ElementKey], key)
	}
	unit := edited["unit"].(map[string]any)
	if unit["base_moves"] != 4 {
		t.Errorf("base_moves = %v, want 4", unit["base_moves"])
	}
}

func TestSaveUnit_EditOutOfRange(t *testing.T) {
	w := New(document.New())
	if err := w.SaveUnit(UnitInput{ID: "unit_a", UnitType: "UNIT_A"}, 3); err == nil {
		t.Error("editing a nonexistent entry should fail")
	}
}

func TestSaveModifier(t *testing.T) {
	tests := []struct {
		name    string
		in      ModifierInput
		wantErr bool
	}{
		{
			name: "valid modifier with arguments",
			in: ModifierInput{
				ID:         "mod_science",
				Effect:     "EFFECT_CITY_ADJUST_YIELD",
				Collection: "COLLECTION_PLAYER_CITIES",
				Arguments:  "YieldType: YIELD_SCIENCE\nAmount: 2",
			},
		},
		{
			name:    "missing effect",
			in:      ModifierInput{ID: "mod_x", Collection: "COLLECTION_OWNER"},
			wantErr: true,
		},
		{
			name:    "missing collection",
			in:      ModifierInput{ID: "mod_x", Effect: "EFFECT_X"},
			wantErr: true,
		},
		{
			name:    "missing id",
			in:      ModifierInput{Effect: "EFFECT_X", Collection: "COLLECTION_OWNER"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(document.New())
			err := w.SaveModifier(tt.in, NewEntity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SaveModifier() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveModifier_ArgumentsAsPairs(t *testing.T) {
	w := New(document.New())
	err := w.SaveModifier(ModifierInput{
		ID:         "mod_science",
		Effect:     "EFFECT_CITY_ADJUST_YIELD",
		Collection: "COLLECTION_PLAYER_CITIES",
		Arguments:  "YieldType: YIELD_SCIENCE\nAmount: 2",
	}, NewEntity)
	if err != nil {
		t.Fatal(err)
	}

	mods, _ := w.Draft().Get(document.At(document.SectionModifiers))
	entity := mods.([]any)[0].(map[string]any)
	modifier := entity["modifier"].(map[string]any)
	args := modifier["arguments"].([]any)
	if len(args) != 2 {
		t.Fatalf("arguments len = %d, want 2", len(args))
	}
	first := args[0].(map[string]any)
	if first["name"] != "YieldType" || first["value"] != "YIELD_SCIENCE" {
		t.Errorf("first argument = %v", first)
	}
}

func TestSaveTradition(t *testing.T) {
	w := New(document.New())
	if err := w.SaveTradition(TraditionInput{ID: "trad_a"}, NewEntity); err == nil {
		t.Error("tradition without a type should be rejected")
	}
	if err := w.SaveTradition(TraditionInput{ID: "trad_a", TraditionType: "TRADITION_A", Name: "A"}, NewEntity); err != nil {
		t.Errorf("valid tradition rejected: %v", err)
	}
}

func TestSaveConstructible(t *testing.T) {
	w := New(document.New())
	if err := w.SaveConstructible(ConstructibleInput{ID: "bldg_a"}, NewEntity); err == nil {
		t.Error("building without a type should be rejected")
	}
	if err := w.SaveConstructible(ConstructibleInput{
		ID: "bldg_a", ConstructibleType: "BUILDING_A", Cost: 120, YieldType: "YIELD_PRODUCTION",
	}, NewEntity); err != nil {
		t.Errorf("valid building rejected: %v", err)
	}
}

func TestSaveEntity_RejectsMalformedTypes(t *testing.T) {
	w := New(document.New())

	if err := w.SaveConstructible(ConstructibleInput{ID: "b", ConstructibleType: "Building_A"}, NewEntity); err == nil {
		t.Error("mixed-case constructible type should be rejected")
	}
	if err := w.SaveTradition(TraditionInput{ID: "t", TraditionType: "tradition a"}, NewEntity); err == nil {
		t.Error("malformed tradition type should be rejected")
	}
}
