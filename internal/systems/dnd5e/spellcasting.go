package dnd5e

import (
	"fmt"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// CalculateSpellcasting aggregates spell slots and the headline casting
// figures.
//
// Regular caster level = sum(full) + floor(half/2) + floor(third/3), indexing
// the shared multiclass slot table. Pact slots come from warlock levels only,
// via their own progression, and never merge into the regular pool: a class
// contributes to exactly one of the two.
//
// The first spellcasting class in snapshot order supplies the governing
// ability for the headline save DC and attack bonus.
func CalculateSpellcasting(snap CharacterSnapshot, abilities AbilityProfile) (SpellcastingProfile, []string) {
	var warnings []string
	var profile SpellcastingProfile

	casterLevel := 0
	warlockLevel := 0
	var primary *ClassEntry
	var primaryCasting srd.CastingType

	for i := range snap.Classes {
		entry := &snap.Classes[i]
		casting := resolveCasting(*entry)
		if casting == srd.CastingNone {
			continue
		}
		if primary == nil {
			primary = entry
			primaryCasting = casting
		}
		switch casting {
		case srd.CastingFull:
			casterLevel += entry.Level
		case srd.CastingHalf:
			casterLevel += entry.Level / 2
		case srd.CastingThird:
			casterLevel += entry.Level / 3
		case srd.CastingPact:
			warlockLevel += entry.Level
		}
	}

	if primary == nil {
		// Not a caster: no DC, no slots, nothing fabricated.
		return profile, warnings
	}

	profile.IsCaster = true
	profile.CasterType = primaryCasting
	profile.CasterLevel = casterLevel
	profile.RegularSlots = srd.RegularSlots(casterLevel)
	slotLevel, count := srd.PactSlots(warlockLevel)
	profile.Pact = PactSlots{Level: slotLevel, Count: count}

	ability, ok := srd.SpellcastingAbility(primary.Name, primary.Subclass)
	if !ok {
		warnings = append(warnings, fmt.Sprintf(
			"class %q casts spells but has no known spellcasting ability, omitting save DC and attack bonus",
			primary.Name))
		return profile, warnings
	}
	profile.Ability = ability
	mod := abilities.Modifier(ability)
	prof := ProficiencyBonus(snap.Level)
	profile.SaveDC = 8 + prof + mod
	profile.AttackBonus = prof + mod

	return profile, warnings
}

// resolveCasting returns a class entry's casting type, preferring the
// snapshot's resolved tag, then a subclass override, then the class default.
// Homebrew classes without a resolved tag do not cast.
func resolveCasting(entry ClassEntry) srd.CastingType {
	if entry.Casting != "" {
		return entry.Casting
	}
	if override, ok := srd.SubclassCasting(entry.Name, entry.Subclass); ok {
		return override
	}
	if entry.Homebrew {
		return srd.CastingNone
	}
	return srd.ClassCasting(entry.Name)
}
