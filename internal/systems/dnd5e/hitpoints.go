package dnd5e

import (
	"fmt"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// CalculateHitPoints derives the hit-point maximum.
//
// Fixed method: only the very first class's first level uses the maximum-die
// rule (hitDieMax + CON modifier); every other level of every class uses the
// fixed average floor(hitDieMax/2)+1 + CON modifier. Each level contributes
// at least 1, so the total is never below the character level.
//
// Manual method: the player-entered total is used as-is; a total below the
// theoretical minimum records a warning but is not rejected.
func CalculateHitPoints(snap CharacterSnapshot, abilities AbilityProfile) HitPointsResult {
	conMod := abilities.Modifier(srd.AbilityConstitution)

	if snap.HPMethod == HPMethodManual {
		result := HitPointsResult{Total: snap.ManualHP, Method: HPMethodManual}
		if snap.ManualHP < snap.Level {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"manual hit points %d are below the theoretical minimum of %d (1 per level)",
				snap.ManualHP, snap.Level))
		}
		return result
	}

	result := HitPointsResult{Method: HPMethodFixed}
	characterLevel := 0
	for classIdx, entry := range snap.Classes {
		die, warning := resolveHitDie(entry)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		for classLevel := 1; classLevel <= entry.Level; classLevel++ {
			characterLevel++
			amount := die/2 + 1 + conMod
			if classIdx == 0 && classLevel == 1 {
				amount = die + conMod
			}
			if amount < 1 {
				amount = 1
			}
			result.Breakdown = append(result.Breakdown, LevelHP{
				CharacterLevel: characterLevel,
				Class:          entry.Name,
				Amount:         amount,
			})
			result.Total += amount
		}
	}
	return result
}

// resolveHitDie returns the die size for a class entry, preferring the
// snapshot's resolved value and falling back to the rule tables, then to
// srd.DefaultHitDie with a warning.
func resolveHitDie(entry ClassEntry) (die int, warning string) {
	if entry.HitDie > 0 {
		return entry.HitDie, ""
	}
	if !entry.Homebrew {
		if die, ok := srd.HitDie(entry.Name); ok {
			return die, ""
		}
	}
	return srd.DefaultHitDie, fmt.Sprintf(
		"class %q has no known hit die, falling back to d%d", entry.Name, srd.DefaultHitDie)
}
