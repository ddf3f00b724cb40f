package dnd5e

import (
	"fmt"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// playerChosenCap is the ceiling player-chosen increases (ASI, feats) cannot
// push a score past. Item bonuses are exempt.
const playerChosenCap = 20

// AbilityModifier returns floor((score-10)/2), valid for the full score
// range including totals below 10.
func AbilityModifier(score int) int {
	return floorDiv(score-10, 2)
}

// floorDiv divides rounding toward negative infinity. Go's integer division
// truncates toward zero, which is wrong for negative modifiers.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CalculateAbilities sums every recorded contribution per ability, applies
// the player-chosen cap, and derives modifiers. An explicit override
// replaces the sum outright. Every contribution is labeled with its source
// for downstream attribution.
func CalculateAbilities(snap CharacterSnapshot, version RuleVersion) (AbilityProfile, []string) {
	var warnings []string
	profile := AbilityProfile{Scores: make(map[srd.Ability]AbilityScore, 6)}

	ancestryLabel := "race"
	if version == RuleVersionModern {
		ancestryLabel = "species"
	}

	for _, ability := range srd.Abilities() {
		base := snap.Base[ability]
		breakdown := []Contribution{{Source: "base", Value: base}}

		// The cap on player-chosen increases is evaluated against the score
		// without item bonuses: items apply after the cap and may exceed it.
		// Uncapped non-item contributions are counted up front so the order
		// bonuses were recorded in cannot change how an ASI or feat is capped.
		capped := base // base plus every cap-subject contribution
		items := 0
		for _, bonus := range snap.AbilityBonuses {
			if bonus.Ability != ability || bonus.Value == 0 {
				continue
			}
			switch bonus.Kind {
			case BonusASI, BonusFeat, BonusItem:
			default:
				capped += bonus.Value
			}
		}

		for _, bonus := range snap.AbilityBonuses {
			if bonus.Ability != ability || bonus.Value == 0 {
				continue
			}
			value := bonus.Value
			label := bonus.Source
			if label == "" {
				label = sourceLabel(bonus.Kind, ancestryLabel)
			}
			switch bonus.Kind {
			case BonusASI, BonusFeat:
				allowed := value
				if capped+allowed > playerChosenCap {
					allowed = playerChosenCap - capped
					if allowed < 0 {
						allowed = 0
					}
					warnings = append(warnings, fmt.Sprintf(
						"%s: %s increase of %+d capped to %+d (chosen increases cannot push the score above %d)",
						ability, label, value, allowed, playerChosenCap))
				}
				capped += allowed
				value = allowed
			case BonusItem:
				items += value
			}
			breakdown = append(breakdown, Contribution{Source: label, Value: value})
		}
		total := capped + items

		if override, ok := snap.AbilityOverrides[ability]; ok {
			total = override
			breakdown = append(breakdown, Contribution{Source: "override", Value: override})
		}

		profile.Scores[ability] = AbilityScore{
			Score:     total,
			Modifier:  AbilityModifier(total),
			Breakdown: breakdown,
		}
	}
	return profile, warnings
}

func sourceLabel(kind BonusKind, ancestryLabel string) string {
	switch kind {
	case BonusSpecies:
		return ancestryLabel
	case BonusBackground:
		return "background"
	case BonusASI:
		return "asi"
	case BonusFeat:
		return "feat"
	case BonusItem:
		return "item"
	default:
		return "misc"
	}
}
