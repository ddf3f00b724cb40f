package dnd5e

import (
	"fmt"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// CalculateArmorClass derives armor class with an ordered breakdown of every
// contributing term.
//
// Armored: armorBase + DEX capped by weight class (light full, medium +2,
// heavy +0). Unarmored with one or more Unarmored Defense grants: every
// applicable formula is evaluated and the maximum wins, assuming the player
// uses the best option. Otherwise 10 + DEX. Shield and flat bonuses apply on
// top; bonuses sharing a source name do not stack, distinct sources add.
func CalculateArmorClass(snap CharacterSnapshot, abilities AbilityProfile) (ArmorClassResult, []string) {
	var warnings []string
	dexMod := abilities.Modifier(srd.AbilityDexterity)

	if snap.ACOverride != nil {
		return ArmorClassResult{
			Total:      *snap.ACOverride,
			Formula:    ACFormulaOverride,
			Components: []Contribution{{Source: "override", Value: *snap.ACOverride}},
		}, warnings
	}

	var result ArmorClassResult
	armor, hasArmor := equippedArmor(snap)
	switch {
	case hasArmor:
		result.Formula = ACFormulaArmored
		dex := cappedDexBonus(dexMod, armor.Weight)
		result.Components = append(result.Components,
			Contribution{Source: armor.Name, Value: armor.ArmorBase},
			Contribution{Source: "dex", Value: dex},
		)
		result.Total = armor.ArmorBase + dex
	default:
		formula, secondary, ok := bestUnarmoredDefense(snap, abilities)
		if ok {
			result.Formula = ACFormulaDefense
			result.Components = append(result.Components,
				Contribution{Source: "base", Value: 10},
				Contribution{Source: "dex", Value: dexMod},
				Contribution{Source: formula, Value: secondary},
			)
			result.Total = 10 + dexMod + secondary
		} else {
			result.Formula = ACFormulaUnarmored
			result.Components = append(result.Components,
				Contribution{Source: "base", Value: 10},
				Contribution{Source: "dex", Value: dexMod},
			)
			result.Total = 10 + dexMod
		}
	}

	// Shields and per-item flat bonuses stack by item name; a duplicated
	// source name only counts once.
	seen := make(map[string]bool)
	for _, item := range snap.Items {
		if !item.Equipped {
			continue
		}
		if item.IsShield {
			value := item.ArmorBase
			if value == 0 {
				value = 2
			}
			// A magic shield's enhancement rides on the shield component.
			addACBonus(&result, seen, item.Name, value+item.ACBonus, &warnings)
			continue
		}
		if item.ACBonus != 0 {
			addACBonus(&result, seen, item.Name, item.ACBonus, &warnings)
		}
	}
	for _, bonus := range snap.ACBonuses {
		addACBonus(&result, seen, bonus.Source, bonus.Value, &warnings)
	}

	// Armor class never drops below 10 without an explicit override.
	if result.Total < 10 {
		diff := 10 - result.Total
		result.Components = append(result.Components, Contribution{Source: "minimum", Value: diff})
		result.Total = 10
		warnings = append(warnings, fmt.Sprintf(
			"armor class: computed total %d raised to the floor of 10", result.Total-diff))
	}

	return result, warnings
}

func addACBonus(result *ArmorClassResult, seen map[string]bool, source string, value int, warnings *[]string) {
	if seen[source] {
		*warnings = append(*warnings, fmt.Sprintf(
			"armor class: duplicate bonus source %q ignored (same-named sources do not stack)", source))
		return
	}
	seen[source] = true
	result.Components = append(result.Components, Contribution{Source: source, Value: value})
	result.Total += value
}

func equippedArmor(snap CharacterSnapshot) (Item, bool) {
	for _, item := range snap.Items {
		if item.Equipped && item.IsArmor {
			return item, true
		}
	}
	return Item{}, false
}

func cappedDexBonus(dexMod int, weight ArmorWeight) int {
	switch weight {
	case ArmorHeavy:
		return 0
	case ArmorMedium:
		if dexMod > 2 {
			return 2
		}
		return dexMod
	default: // light armor takes the full DEX modifier
		return dexMod
	}
}

// bestUnarmoredDefense evaluates every Unarmored Defense formula the
// character's classes grant and returns the winning secondary term.
func bestUnarmoredDefense(snap CharacterSnapshot, abilities AbilityProfile) (formula string, secondary int, ok bool) {
	best := 0
	for _, entry := range snap.Classes {
		ability, grants := srd.UnarmoredDefense(entry.Name)
		if !grants {
			continue
		}
		value := abilities.Modifier(ability)
		if !ok || value > best {
			best = value
			formula = fmt.Sprintf("unarmored-defense (%s)", string(ability))
			ok = true
		}
	}
	return formula, best, ok
}
