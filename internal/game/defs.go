package game

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// WeaponDef is one row of the shoot or fight tables. Special behaviour is
// carried as explicit capability fields rather than branching on the name
// string; the name is still load-bearing for lookups and imports.
type WeaponDef struct {
	Name       string `json:"name"`
	MaxActions int    `json:"max_actions"`
	EffectText string `json:"effect_text"`
	Damage     int    `json:"damage"`
	// AP follows the printed convention: penetrating weapons carry negative
	// values ("AP -2"), which raise the defender's save target. DeniesSave
	// replaces the "*" entries that allow no save at all.
	AP         int  `json:"ap"`
	DeniesSave bool `json:"denies_save"`
	Points     int  `json:"points"`

	// Ranged-only capabilities.
	RequiresAimStreak   int     `json:"requires_aim_streak"`  // minimum aim streak before firing
	BlocksWithinUnits   float64 `json:"blocks_within_units"`  // cannot target closer than this
	IgnoresRangePenalty bool    `json:"ignores_range_penalty"`
	FalloffBeyondUnits  float64 `json:"falloff_beyond_units"` // accuracy falloff past this distance
	FalloffPenalty      int     `json:"falloff_penalty"`
	CloseWithinUnits    float64 `json:"close_within_units"` // close-range trade band
	CloseBonusDamage    int     `json:"close_bonus_damage"` // extra damage inside the band...
	CloseLosesAP        bool    `json:"close_loses_ap"`     // ...at the price of all AP
}

// GearEffects are the passive bonuses an accessory, power, or mutation grants.
type GearEffects struct {
	ArmorBonus      int  `json:"armor_bonus"`
	WoundsBonus     int  `json:"wounds_bonus"`
	ShootBonus      int  `json:"shoot_bonus"`
	FightBonus      int  `json:"fight_bonus"`
	SaveBonus       int  `json:"save_bonus"`
	HorrorTestBonus int  `json:"horror_test_bonus"`
	RerollToHit     bool `json:"reroll_to_hit"` // one failed to-hit reroll per round
}

// AccessoryDef is one row of the accessories table.
type AccessoryDef struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	MaxActions int         `json:"max_actions"`
	EffectText string      `json:"effect_text"`
	Points     int         `json:"points"`
	Effects    GearEffects `json:"effects"`
}

// PowerDef is one row of the psychic powers table.
type PowerDef struct {
	Name            string      `json:"name"`
	PowerType       string      `json:"power_type"`
	MaxActions      int         `json:"max_actions"`
	Range           int         `json:"range"`
	Effect          string      `json:"effect"`
	HorrorGenerated int         `json:"horror_generated"`
	Points          int         `json:"points"`
	Effects         GearEffects `json:"effects"`
}

// MutationDef is one row of the mutations table.
type MutationDef struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	EffectText string      `json:"effect_text"`
	Points     int         `json:"points"`
	Effects    GearEffects `json:"effects"`
}

// RuleSet bundles the static rule tables. It is loaded (or defaulted) once
// before round 1 and never mutated afterwards.
type RuleSet struct {
	Shoot       []WeaponDef    `json:"shoot"`
	Fight       []WeaponDef    `json:"fight"`
	Accessories []AccessoryDef `json:"accessories"`
	Powers      []PowerDef     `json:"psychic_powers"`
	Mutations   []MutationDef  `json:"mutations"`
}

// Unarmed is the implicit melee profile for a model with no fight weapon.
var Unarmed = WeaponDef{Name: "Unarmed", Damage: 1}

// DefaultRules returns the built-in tables. The name strings are exact and
// referenced by imports and saved rosters; do not rename entries.
func DefaultRules() *RuleSet {
	return &RuleSet{
		Shoot: []WeaponDef{
			{Name: "Scrap Pistol", Damage: 2, AP: 0, Points: 2,
				EffectText:         "Loses accuracy beyond 1 unit",
				FalloffBeyondUnits: 1.0, FalloffPenalty: -2},
			{Name: "Trench Carbine", Damage: 2, AP: -1, Points: 4},
			{Name: "Blunderbuss", Damage: 2, AP: -1, Points: 5,
				EffectText:       "Within 1 unit: +2 damage, loses all AP",
				CloseWithinUnits: 1.0, CloseBonusDamage: 2, CloseLosesAP: true},
			{Name: "Hunting Rifle", Damage: 3, AP: -1, Points: 6,
				EffectText:        "Aim once before firing; cannot fire within 1 unit",
				RequiresAimStreak: 1, BlocksWithinUnits: 1.0},
			{Name: "Long Rifle", Damage: 3, AP: -2, Points: 9,
				EffectText:        "Aim twice before firing; no range penalty; cannot fire within 1 unit",
				RequiresAimStreak: 2, BlocksWithinUnits: 1.0, IgnoresRangePenalty: true},
			{Name: "Pyre Caster", Damage: 4, Points: 12, DeniesSave: true,
				EffectText:         "No save; loses accuracy beyond 1 unit",
				FalloffBeyondUnits: 1.0, FalloffPenalty: -2},
		},
		Fight: []WeaponDef{
			{Name: "Rusted Shiv", Damage: 2, AP: 0, Points: 1},
			{Name: "Boarding Axe", Damage: 3, AP: 0, Points: 4},
			{Name: "Chain Flail", Damage: 3, AP: -1, Points: 6},
			{Name: "Great Maul", Damage: 4, AP: -2, Points: 9},
		},
		Accessories: []AccessoryDef{
			{Name: "Scrap Plate", Type: "armour", Points: 4,
				EffectText: "+1 armor class",
				Effects:    GearEffects{ArmorBonus: 1}},
			{Name: "Stim Satchel", Type: "consumable", Points: 3,
				EffectText: "+1 wound",
				Effects:    GearEffects{WoundsBonus: 1}},
			{Name: "Gas Hood", Type: "gear", Points: 2,
				EffectText: "+1 to horror tests",
				Effects:    GearEffects{HorrorTestBonus: 1}},
			{Name: "Lucky Idol", Type: "charm", Points: 5,
				EffectText: "Reroll one failed attack per round",
				Effects:    GearEffects{RerollToHit: true}},
		},
		Powers: []PowerDef{
			{Name: "Third Eye", PowerType: "passive", Points: 4,
				Effect:  "+1 to shoot rolls",
				Effects: GearEffects{ShootBonus: 1}},
			{Name: "Veil Ward", PowerType: "passive", Points: 5,
				Effect:  "+1 to saving throws",
				Effects: GearEffects{SaveBonus: 1}},
		},
		Mutations: []MutationDef{
			{Name: "Chitin Plates", Type: "hide", Points: 6,
				EffectText: "+1 armor class",
				Effects:    GearEffects{ArmorBonus: 1}},
			{Name: "Bloated Frame", Type: "body", Points: 3,
				EffectText: "+1 wound",
				Effects:    GearEffects{WoundsBonus: 1}},
			{Name: "Whip Tendril", Type: "limb", Points: 5,
				EffectText: "+1 to fight rolls",
				Effects:    GearEffects{FightBonus: 1}},
		},
	}
}

// LoadRules reads a rule-set JSON file. A failure here is fatal to starting
// a match: the caller must not build any game state from a nil rule set.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule tables: %w", err)
	}
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule tables: %w", err)
	}
	if len(rs.Shoot) == 0 && len(rs.Fight) == 0 {
		return nil, fmt.Errorf("rule tables at %s contain no weapons", path)
	}
	return &rs, nil
}

// ShootByName finds a ranged weapon by case-insensitive name match.
func (rs *RuleSet) ShootByName(name string) (WeaponDef, bool) {
	return weaponByName(rs.Shoot, name)
}

// FightByName finds a melee weapon by case-insensitive name match.
func (rs *RuleSet) FightByName(name string) (WeaponDef, bool) {
	return weaponByName(rs.Fight, name)
}

func weaponByName(table []WeaponDef, name string) (WeaponDef, bool) {
	for _, w := range table {
		if strings.EqualFold(w.Name, name) {
			return w, true
		}
	}
	return WeaponDef{}, false
}

// ShootByIndex returns the ranged weapon at index, or nothing when the
// reference is out of range — a bad index degrades to an unarmed model
// rather than failing the import.
func (rs *RuleSet) ShootByIndex(i int) (WeaponDef, bool) {
	if i < 0 || i >= len(rs.Shoot) {
		return WeaponDef{}, false
	}
	return rs.Shoot[i], true
}

// FightByIndex returns the melee weapon at index.
func (rs *RuleSet) FightByIndex(i int) (WeaponDef, bool) {
	if i < 0 || i >= len(rs.Fight) {
		return WeaponDef{}, false
	}
	return rs.Fight[i], true
}
