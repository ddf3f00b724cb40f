package dnd5e

import "github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"

// RuleVersion selects one of the two mutually exclusive rule regimes.
type RuleVersion string

const (
	RuleVersionLegacy RuleVersion = "LEGACY"
	RuleVersionModern RuleVersion = "MODERN"
)

// Vote is one detection signal's opinion.
type Vote string

const (
	VoteLegacy  Vote = "LEGACY"
	VoteModern  Vote = "MODERN"
	VoteAbstain Vote = "ABSTAIN"
)

// Evidence records one signal's vote for auditability.
type Evidence struct {
	Signal string `json:"signal"`
	Vote   Vote   `json:"vote"`
}

// RuleVersionResult is the detector output: the decided version plus the
// ordered evidence log that explains it.
type RuleVersionResult struct {
	Version    RuleVersion `json:"version"`
	Evidence   []Evidence  `json:"evidence"`
	Overridden bool        `json:"overridden,omitempty"`
	Warnings   []string    `json:"-"`
}

// Contribution is one labeled term of a computed value.
type Contribution struct {
	Source string `json:"source"`
	Value  int    `json:"value"`
}

// AbilityScore is one computed ability with its source breakdown.
type AbilityScore struct {
	Score     int            `json:"score"`
	Modifier  int            `json:"modifier"`
	Breakdown []Contribution `json:"breakdown"`
}

// AbilityProfile holds all six computed abilities.
type AbilityProfile struct {
	Scores map[srd.Ability]AbilityScore `json:"scores"`
}

// Modifier returns the modifier for an ability, 0 when absent.
func (p AbilityProfile) Modifier(ability srd.Ability) int {
	return p.Scores[ability].Modifier
}

// LevelHP is one character level's hit-point contribution.
type LevelHP struct {
	CharacterLevel int    `json:"character_level"`
	Class          string `json:"class"`
	Amount         int    `json:"amount"`
}

// HitPointsResult is the computed hit-point maximum with its derivation.
type HitPointsResult struct {
	Total     int       `json:"total"`
	Method    HPMethod  `json:"method"`
	Breakdown []LevelHP `json:"breakdown,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// Armor-class formula identifiers.
const (
	ACFormulaArmored   = "armored"
	ACFormulaUnarmored = "unarmored"
	ACFormulaDefense   = "unarmored-defense"
	ACFormulaOverride  = "override"
)

// ArmorClassResult is the computed armor class with its ordered breakdown.
type ArmorClassResult struct {
	Total      int            `json:"total"`
	Formula    string         `json:"formula"`
	Components []Contribution `json:"components"`
}

// PactSlots is the warlock-only slot pool.
type PactSlots struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// SpellcastingProfile aggregates spell slots and headline casting figures.
type SpellcastingProfile struct {
	IsCaster    bool            `json:"is_caster"`
	CasterType  srd.CastingType `json:"caster_type,omitempty"`
	CasterLevel int             `json:"caster_level,omitempty"`
	// RegularSlots[i] is the slot count for spell level i+1.
	RegularSlots [9]int      `json:"regular_slots"`
	Pact         PactSlots   `json:"pact_slots"`
	Ability      srd.Ability `json:"ability,omitempty"`
	SaveDC       int         `json:"save_dc,omitempty"`
	AttackBonus  int         `json:"attack_bonus,omitempty"`
}

// SavingThrow is one computed saving-throw line.
type SavingThrow struct {
	Ability    srd.Ability `json:"ability"`
	Proficient bool        `json:"proficient"`
	Bonus      int         `json:"bonus"`
	Source     string      `json:"source,omitempty"`
}

// Skill is one computed skill line.
type Skill struct {
	Name       string      `json:"name"`
	Ability    srd.Ability `json:"ability"`
	Proficient bool        `json:"proficient"`
	Expertise  bool        `json:"expertise"`
	Bonus      int         `json:"bonus"`
	Sources    []string    `json:"sources,omitempty"`
}

// ProficiencyProfile holds the proficiency bonus and derived saves/skills.
type ProficiencyProfile struct {
	Bonus        int           `json:"bonus"`
	SavingThrows []SavingThrow `json:"saving_throws"`
	Skills       []Skill       `json:"skills"`
}

// CharacterComputedModel aggregates every calculator output plus a single
// ordered rationale/warning log. It is immutable once produced and consumed
// only by external formatting collaborators.
type CharacterComputedModel struct {
	Name          string              `json:"name"`
	Level         int                 `json:"level"`
	RuleVersion   RuleVersion         `json:"rule_version"`
	Evidence      []Evidence          `json:"evidence"`
	Abilities     AbilityProfile      `json:"abilities"`
	HitPoints     HitPointsResult     `json:"hit_points"`
	ArmorClass    ArmorClassResult    `json:"armor_class"`
	Proficiencies ProficiencyProfile  `json:"proficiencies"`
	Spellcasting  SpellcastingProfile `json:"spellcasting"`
	Rationale     []string            `json:"rationale"`
}
