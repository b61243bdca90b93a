package server

import "github.com/Phlair/civ7-modding-tools-sub000/pkg/refdata"

// BuiltinCatalogs is the reference data served when no catalog directory
// is configured. The lists cover the identifiers the guided editor
// offers out of the box; a full game data dump can be mounted through
// the refdata_dir setting instead.
func BuiltinCatalogs() refdata.StaticSource {
	return refdata.StaticSource{
		"yield-types": {
			{ID: "YIELD_FOOD", Name: "Food"},
			{ID: "YIELD_PRODUCTION", Name: "Production"},
			{ID: "YIELD_GOLD", Name: "Gold"},
			{ID: "YIELD_SCIENCE", Name: "Science"},
			{ID: "YIELD_CULTURE", Name: "Culture"},
			{ID: "YIELD_HAPPINESS", Name: "Happiness"},
			{ID: "YIELD_DIPLOMACY", Name: "Influence"},
		},
		"ages": {
			{ID: "AGE_ANTIQUITY", Name: "Antiquity"},
			{ID: "AGE_EXPLORATION", Name: "Exploration"},
			{ID: "AGE_MODERN", Name: "Modern"},
		},
		"terrain-types": {
			{ID: "TERRAIN_COAST", Name: "Coast"},
			{ID: "TERRAIN_FLAT", Name: "Flat"},
			{ID: "TERRAIN_HILL", Name: "Hill"},
			{ID: "TERRAIN_MOUNTAIN", Name: "Mountain"},
			{ID: "TERRAIN_NAVIGABLE_RIVER", Name: "Navigable River"},
			{ID: "TERRAIN_OCEAN", Name: "Ocean"},
		},
		"biome-types": {
			{ID: "BIOME_DESERT", Name: "Desert"},
			{ID: "BIOME_GRASSLAND", Name: "Grassland"},
			{ID: "BIOME_MARINE", Name: "Marine"},
			{ID: "BIOME_PLAINS", Name: "Plains"},
			{ID: "BIOME_TROPICAL", Name: "Tropical"},
			{ID: "BIOME_TUNDRA", Name: "Tundra"},
		},
		"effects": {
			{ID: "EFFECT_CITY_ADJUST_YIELD"},
			{ID: "EFFECT_CITY_ADJUST_YIELD_PER_RESOURCE"},
			{ID: "EFFECT_PLAYER_ADJUST_YIELD"},
			{ID: "EFFECT_UNIT_ADJUST_MOVEMENT"},
			{ID: "EFFECT_ADJUST_PLAYER_UNITS_PRODUCTION_EFFICIENCY"},
		},
		"collections": {
			{ID: "COLLECTION_OWNER"},
			{ID: "COLLECTION_PLAYER_CAPITAL_CITY"},
			{ID: "COLLECTION_PLAYER_CITIES"},
			{ID: "COLLECTION_PLAYER_UNITS"},
			{ID: "COLLECTION_ALL_CITIES"},
		},
		"kinds": {
			{ID: "KIND_CIVILIZATION"},
			{ID: "KIND_CONSTRUCTIBLE"},
			{ID: "KIND_MODIFIER"},
			{ID: "KIND_QUARTER"},
			{ID: "KIND_TRADITION"},
			{ID: "KIND_TRAIT"},
			{ID: "KIND_UNIT"},
		},
		"unit-classes": {
			{ID: "UNIT_CLASS_COMBAT", Name: "Combat"},
			{ID: "UNIT_CLASS_INFANTRY", Name: "Infantry"},
			{ID: "UNIT_CLASS_CAVALRY", Name: "Cavalry"},
			{ID: "UNIT_CLASS_RANGED", Name: "Ranged"},
			{ID: "UNIT_CLASS_NAVAL", Name: "Naval"},
			{ID: "UNIT_CLASS_RECON", Name: "Recon"},
		},
	}
}
