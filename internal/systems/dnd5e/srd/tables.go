// Package srd holds the immutable rule tables the calculators index into:
// hit dice, multiclass spell-slot progression, pact-magic progression, known
// sourcebook identifiers, casting types, and skill/save mappings.
//
// Every table is package-level static data constructed once; nothing in this
// package mutates after init, so lookups are safe from any goroutine.
package srd

import "strings"

// Ability identifies one of the six ability scores.
type Ability string

const (
	AbilityStrength     Ability = "STR"
	AbilityDexterity    Ability = "DEX"
	AbilityConstitution Ability = "CON"
	AbilityIntelligence Ability = "INT"
	AbilityWisdom       Ability = "WIS"
	AbilityCharisma     Ability = "CHA"
)

// Abilities lists the six abilities in canonical order.
func Abilities() []Ability {
	return []Ability{
		AbilityStrength,
		AbilityDexterity,
		AbilityConstitution,
		AbilityIntelligence,
		AbilityWisdom,
		AbilityCharisma,
	}
}

// CastingType classifies how a class accrues spell slots.
type CastingType string

const (
	CastingFull  CastingType = "FULL"
	CastingHalf  CastingType = "HALF"
	CastingThird CastingType = "THIRD"
	CastingPact  CastingType = "PACT"
	CastingNone  CastingType = "NONE"
)

// Era tags a sourcebook identifier's rule-version lineage.
type Era string

const (
	EraLegacy  Era = "LEGACY"
	EraModern  Era = "MODERN"
	EraUnknown Era = "UNKNOWN"
)

// DefaultHitDie is the fallback die for unknown or homebrew classes.
const DefaultHitDie = 8

var hitDice = map[string]int{
	"artificer": 8,
	"barbarian": 12,
	"bard":      8,
	"cleric":    8,
	"druid":     8,
	"fighter":   10,
	"monk":      8,
	"paladin":   10,
	"ranger":    10,
	"rogue":     8,
	"sorcerer":  6,
	"warlock":   8,
	"wizard":    6,
}

var classCasting = map[string]CastingType{
	"artificer": CastingHalf,
	"barbarian": CastingNone,
	"bard":      CastingFull,
	"cleric":    CastingFull,
	"druid":     CastingFull,
	"fighter":   CastingNone,
	"monk":      CastingNone,
	"paladin":   CastingHalf,
	"ranger":    CastingHalf,
	"rogue":     CastingNone,
	"sorcerer":  CastingFull,
	"warlock":   CastingPact,
	"wizard":    CastingFull,
}

// subclassCasting maps "class/subclass" to a casting type that overrides the
// class default. Certain martial subclasses become third casters.
var subclassCasting = map[string]CastingType{
	"fighter/eldritch knight": CastingThird,
	"rogue/arcane trickster":  CastingThird,
}

var spellcastingAbility = map[string]Ability{
	"artificer": AbilityIntelligence,
	"bard":      AbilityCharisma,
	"cleric":    AbilityWisdom,
	"druid":     AbilityWisdom,
	"paladin":   AbilityCharisma,
	"ranger":    AbilityWisdom,
	"sorcerer":  AbilityCharisma,
	"warlock":   AbilityCharisma,
	"wizard":    AbilityIntelligence,
}

// thirdCasterAbility governs spellcasting for the third-caster subclasses;
// both wizard-tradition subclasses cast from Intelligence.
const thirdCasterAbility = AbilityIntelligence

// unarmoredDefense maps a class to the secondary ability of its alternate AC
// formula (the first term is always 10 + DEX).
var unarmoredDefense = map[string]Ability{
	"barbarian": AbilityConstitution,
	"monk":      AbilityWisdom,
}

var savingThrows = map[string][2]Ability{
	"artificer": {AbilityConstitution, AbilityIntelligence},
	"barbarian": {AbilityStrength, AbilityConstitution},
	"bard":      {AbilityDexterity, AbilityCharisma},
	"cleric":    {AbilityWisdom, AbilityCharisma},
	"druid":     {AbilityIntelligence, AbilityWisdom},
	"fighter":   {AbilityStrength, AbilityConstitution},
	"monk":      {AbilityStrength, AbilityDexterity},
	"paladin":   {AbilityWisdom, AbilityCharisma},
	"ranger":    {AbilityStrength, AbilityDexterity},
	"rogue":     {AbilityDexterity, AbilityIntelligence},
	"sorcerer":  {AbilityConstitution, AbilityCharisma},
	"warlock":   {AbilityWisdom, AbilityCharisma},
	"wizard":    {AbilityIntelligence, AbilityWisdom},
}

var skillAbilities = map[string]Ability{
	"acrobatics":      AbilityDexterity,
	"animal handling": AbilityWisdom,
	"arcana":          AbilityIntelligence,
	"athletics":       AbilityStrength,
	"deception":       AbilityCharisma,
	"history":         AbilityIntelligence,
	"insight":         AbilityWisdom,
	"intimidation":    AbilityCharisma,
	"investigation":   AbilityIntelligence,
	"medicine":        AbilityWisdom,
	"nature":          AbilityIntelligence,
	"perception":      AbilityWisdom,
	"performance":     AbilityCharisma,
	"persuasion":      AbilityCharisma,
	"religion":        AbilityIntelligence,
	"sleight of hand": AbilityDexterity,
	"stealth":         AbilityDexterity,
	"survival":        AbilityWisdom,
}

// multiclassSlots is the shared spell-slot table indexed by caster level
// (1..20); each row lists slot counts for spell levels 1..9.
var multiclassSlots = [21][9]int{
	1:  {2, 0, 0, 0, 0, 0, 0, 0, 0},
	2:  {3, 0, 0, 0, 0, 0, 0, 0, 0},
	3:  {4, 2, 0, 0, 0, 0, 0, 0, 0},
	4:  {4, 3, 0, 0, 0, 0, 0, 0, 0},
	5:  {4, 3, 2, 0, 0, 0, 0, 0, 0},
	6:  {4, 3, 3, 0, 0, 0, 0, 0, 0},
	7:  {4, 3, 3, 1, 0, 0, 0, 0, 0},
	8:  {4, 3, 3, 2, 0, 0, 0, 0, 0},
	9:  {4, 3, 3, 3, 1, 0, 0, 0, 0},
	10: {4, 3, 3, 3, 2, 0, 0, 0, 0},
	11: {4, 3, 3, 3, 2, 1, 0, 0, 0},
	12: {4, 3, 3, 3, 2, 1, 0, 0, 0},
	13: {4, 3, 3, 3, 2, 1, 1, 0, 0},
	14: {4, 3, 3, 3, 2, 1, 1, 0, 0},
	15: {4, 3, 3, 3, 2, 1, 1, 1, 0},
	16: {4, 3, 3, 3, 2, 1, 1, 1, 0},
	17: {4, 3, 3, 3, 2, 1, 1, 1, 1},
	18: {4, 3, 3, 3, 3, 1, 1, 1, 1},
	19: {4, 3, 3, 3, 3, 2, 1, 1, 1},
	20: {4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// pactMagic is the warlock progression indexed by warlock level (1..20);
// each row is {slot level, slot count}.
var pactMagic = [21][2]int{
	1:  {1, 1},
	2:  {1, 2},
	3:  {2, 2},
	4:  {2, 2},
	5:  {3, 2},
	6:  {3, 2},
	7:  {4, 2},
	8:  {4, 2},
	9:  {5, 2},
	10: {5, 2},
	11: {5, 3},
	12: {5, 3},
	13: {5, 3},
	14: {5, 3},
	15: {5, 3},
	16: {5, 3},
	17: {5, 4},
	18: {5, 4},
	19: {5, 4},
	20: {5, 4},
}

// sourcebookEras maps known official sourcebook identifiers to their rule
// era. Identifiers not listed here abstain from rule-version voting.
var sourcebookEras = map[string]Era{
	// Legacy (2014-line) books
	"phb-2014": EraLegacy,
	"dmg-2014": EraLegacy,
	"mm-2014":  EraLegacy,
	"xge":      EraLegacy,
	"tce":      EraLegacy,
	"scag":     EraLegacy,
	"vgm":      EraLegacy,
	"mtf":      EraLegacy,

	// Modern (2024-line) books
	"phb-2024": EraModern,
	"dmg-2024": EraModern,
	"mm-2024":  EraModern,
	"xphb":     EraModern,
	"xdmg":     EraModern,
	"xmm":      EraModern,
}

// modernFeatCategories only exist under Modern rules.
var modernFeatCategories = map[string]struct{}{
	"origin":         {},
	"general":        {},
	"fighting-style": {},
	"epic-boon":      {},
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// HitDie returns the hit-die size for a class. ok is false for classes not
// in the tables; callers fall back to DefaultHitDie with a warning.
func HitDie(class string) (size int, ok bool) {
	size, ok = hitDice[normalize(class)]
	return size, ok
}

// ClassCasting returns the casting type of a class, CastingNone when unknown.
func ClassCasting(class string) CastingType {
	if ct, ok := classCasting[normalize(class)]; ok {
		return ct
	}
	return CastingNone
}

// SubclassCasting returns the casting type a subclass imposes over its class
// default, if any.
func SubclassCasting(class, subclass string) (CastingType, bool) {
	if subclass == "" {
		return CastingNone, false
	}
	ct, ok := subclassCasting[normalize(class)+"/"+normalize(subclass)]
	return ct, ok
}

// SpellcastingAbility returns the governing ability for a class's spells.
// Third-caster subclasses cast from Intelligence.
func SpellcastingAbility(class, subclass string) (Ability, bool) {
	if _, ok := SubclassCasting(class, subclass); ok {
		return thirdCasterAbility, true
	}
	ability, ok := spellcastingAbility[normalize(class)]
	return ability, ok
}

// UnarmoredDefense returns the secondary ability of a class's alternate AC
// formula (10 + DEX + returned ability), if the class grants one.
func UnarmoredDefense(class string) (Ability, bool) {
	ability, ok := unarmoredDefense[normalize(class)]
	return ability, ok
}

// SavingThrows returns the two saving-throw proficiencies a class grants.
func SavingThrows(class string) ([2]Ability, bool) {
	saves, ok := savingThrows[normalize(class)]
	return saves, ok
}

// SkillAbility returns the ability behind a skill, false for unknown skills.
func SkillAbility(skill string) (Ability, bool) {
	ability, ok := skillAbilities[normalize(skill)]
	return ability, ok
}

// Skills lists every known skill name in the tables.
func Skills() []string {
	names := make([]string, 0, len(skillAbilities))
	for name := range skillAbilities {
		names = append(names, name)
	}
	return names
}

// RegularSlots returns the slot row for a caster level. Levels outside 1..20
// clamp to the nearest bound; level 0 yields an all-zero row.
func RegularSlots(casterLevel int) [9]int {
	if casterLevel <= 0 {
		return [9]int{}
	}
	if casterLevel > 20 {
		casterLevel = 20
	}
	return multiclassSlots[casterLevel]
}

// PactSlots returns the pact slot level and count for a warlock level.
// Level 0 yields no slots; levels above 20 clamp to the level-20 row.
func PactSlots(warlockLevel int) (slotLevel, count int) {
	if warlockLevel <= 0 {
		return 0, 0
	}
	if warlockLevel > 20 {
		warlockLevel = 20
	}
	row := pactMagic[warlockLevel]
	return row[0], row[1]
}

// SourcebookEra classifies a sourcebook identifier. Unknown identifiers
// return EraUnknown and abstain from voting.
func SourcebookEra(id string) Era {
	if era, ok := sourcebookEras[normalize(id)]; ok {
		return era
	}
	return EraUnknown
}

// IsModernFeatCategory reports whether a feat category exists only under
// Modern rules.
func IsModernFeatCategory(category string) bool {
	_, ok := modernFeatCategories[normalize(category)]
	return ok
}
