package dnd5e

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/sheetwright/internal/platform/errors"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// HPMethod selects how hit points are computed.
type HPMethod string

const (
	// HPMethodFixed derives hit points from class hit dice averages.
	HPMethodFixed HPMethod = "FIXED"
	// HPMethodManual uses the player-entered total as-is.
	HPMethodManual HPMethod = "MANUAL"
)

// ArmorWeight classifies armor for the DEX-bonus cap.
type ArmorWeight string

const (
	ArmorLight  ArmorWeight = "LIGHT"
	ArmorMedium ArmorWeight = "MEDIUM"
	ArmorHeavy  ArmorWeight = "HEAVY"
)

// BonusKind labels where an ability-score contribution came from.
// ASI and feat increases are player-chosen and subject to the score-20 cap;
// item bonuses are not.
type BonusKind string

const (
	BonusSpecies    BonusKind = "SPECIES"
	BonusBackground BonusKind = "BACKGROUND"
	BonusASI        BonusKind = "ASI"
	BonusFeat       BonusKind = "FEAT"
	BonusItem       BonusKind = "ITEM"
	BonusMisc       BonusKind = "MISC"
)

// ClassEntry is one class the character has levels in, in the order taken.
type ClassEntry struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Subclass string `json:"subclass,omitempty"`
	// HitDie is the resolved die size; 0 means unresolved and the
	// calculators fall back to srd.DefaultHitDie with a warning.
	HitDie int `json:"hit_die,omitempty"`
	// Casting is the resolved casting tag; empty means unresolved and the
	// calculators consult the rule tables.
	Casting  srd.CastingType `json:"casting,omitempty"`
	Homebrew bool            `json:"homebrew,omitempty"`
}

// Item is an inventory entry relevant to armor class.
type Item struct {
	Name      string      `json:"name"`
	Equipped  bool        `json:"equipped"`
	IsArmor   bool        `json:"is_armor,omitempty"`
	IsShield  bool        `json:"is_shield,omitempty"`
	ArmorBase int         `json:"armor_base,omitempty"`
	Weight    ArmorWeight `json:"weight,omitempty"`
	// ACBonus is a flat bonus granted while equipped (magic armor, rings).
	ACBonus int `json:"ac_bonus,omitempty"`
}

// Feat is a feat the character has taken.
type Feat struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Homebrew bool   `json:"homebrew,omitempty"`
}

// AbilityBonus is one recorded contribution to an ability score.
type AbilityBonus struct {
	Ability srd.Ability `json:"ability"`
	Kind    BonusKind   `json:"kind"`
	Source  string      `json:"source"`
	Value   int         `json:"value"`
}

// SkillGrant records a skill proficiency with its granting source.
type SkillGrant struct {
	Skill     string `json:"skill"`
	Source    string `json:"source"`
	Expertise bool   `json:"expertise,omitempty"`
}

// SaveGrant records a saving-throw proficiency with its granting source.
type SaveGrant struct {
	Ability srd.Ability `json:"ability"`
	Source  string      `json:"source"`
}

// ACBonus is a flat armor-class bonus from a feat, class feature, or item.
// Bonuses sharing the same source name do not stack.
type ACBonus struct {
	Source string `json:"source"`
	Value  int    `json:"value"`
}

// CharacterSnapshot is the normalized input to the calculation core. It is
// built once per run by the caller from external raw data and never mutated.
type CharacterSnapshot struct {
	Name    string              `json:"name"`
	Level   int                 `json:"level"`
	Classes []ClassEntry        `json:"classes"`
	Base    map[srd.Ability]int `json:"base_scores"`

	AbilityBonuses   []AbilityBonus      `json:"ability_bonuses,omitempty"`
	AbilityOverrides map[srd.Ability]int `json:"ability_overrides,omitempty"`

	HPMethod HPMethod `json:"hp_method"`
	ManualHP int      `json:"manual_hp,omitempty"`

	Items []Item `json:"items"`
	Feats []Feat `json:"feats"`
	// Spells maps a class name to its prepared/known spell names.
	Spells map[string][]string `json:"spells"`

	SkillGrants []SkillGrant `json:"skill_grants,omitempty"`
	SaveGrants  []SaveGrant  `json:"save_grants,omitempty"`

	ACBonuses  []ACBonus `json:"ac_bonuses,omitempty"`
	ACOverride *int      `json:"ac_override,omitempty"`

	// Rule-version detection signals.
	Sourcebooks   []string `json:"sourcebooks,omitempty"`
	HasSpeciesKey bool     `json:"has_species_key,omitempty"`
	HasRaceKey    bool     `json:"has_race_key,omitempty"`

	// Unknown carries unrecognized attributes from the permissive source
	// parser. It is passed through untouched and never inspected by the
	// calculators.
	Unknown map[string]json.RawMessage `json:"unknown,omitempty"`
}

// Validate checks the required snapshot sections. Any failure here is
// structural: the whole run aborts and no model is produced.
func (s CharacterSnapshot) Validate() error {
	if s.Level < 1 || s.Level > 20 {
		return apperrors.WithMetadata(
			apperrors.CodeSnapshotInvalidLevel,
			fmt.Sprintf("character level %d is outside 1..20", s.Level),
			map[string]string{"Level": fmt.Sprintf("%d", s.Level)},
		)
	}
	if len(s.Classes) == 0 {
		return apperrors.New(apperrors.CodeSnapshotMissingClasses, "at least one class entry is required")
	}
	classTotal := 0
	for _, entry := range s.Classes {
		if entry.Level < 1 {
			return apperrors.WithMetadata(
				apperrors.CodeSnapshotInvalidLevel,
				fmt.Sprintf("class %q has level %d, must be at least 1", entry.Name, entry.Level),
				map[string]string{"Class": entry.Name},
			)
		}
		classTotal += entry.Level
	}
	if classTotal != s.Level {
		return apperrors.WithMetadata(
			apperrors.CodeSnapshotLevelMismatch,
			fmt.Sprintf("class levels sum to %d but character level is %d", classTotal, s.Level),
			map[string]string{
				"ClassTotal": fmt.Sprintf("%d", classTotal),
				"Level":      fmt.Sprintf("%d", s.Level),
			},
		)
	}
	for _, ability := range srd.Abilities() {
		if _, ok := s.Base[ability]; !ok {
			return apperrors.WithMetadata(
				apperrors.CodeSnapshotMissingAbilities,
				fmt.Sprintf("base score for %s is required", ability),
				map[string]string{"Ability": string(ability)},
			)
		}
	}
	switch s.HPMethod {
	case HPMethodFixed, HPMethodManual:
	default:
		return apperrors.New(apperrors.CodeSnapshotInvalidHPMethod,
			fmt.Sprintf("hp method %q is not one of FIXED, MANUAL", s.HPMethod))
	}
	if s.Items == nil {
		return apperrors.New(apperrors.CodeSnapshotMissingItems, "equipped-item list is required (may be empty)")
	}
	if s.Feats == nil {
		return apperrors.New(apperrors.CodeSnapshotMissingFeats, "feat list is required (may be empty)")
	}
	if s.Spells == nil {
		return apperrors.New(apperrors.CodeSnapshotMissingSpells, "per-class spell lists are required (may be empty)")
	}
	return nil
}

// FirstClass returns the first class taken. Callers must have validated the
// snapshot; an empty class list panics.
func (s CharacterSnapshot) FirstClass() ClassEntry {
	return s.Classes[0]
}
