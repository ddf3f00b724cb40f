package dnd5e

import (
	"sort"
	"strings"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// ProficiencyBonus returns 2 + floor((level-1)/4). The progression is
// identical under both rule versions.
func ProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

// CalculateProficiencies derives the proficiency bonus, saving throws, and
// skills. Proficiency is boolean per skill even when granted by multiple
// sources; expertise adds the proficiency bonus a second time.
func CalculateProficiencies(snap CharacterSnapshot, abilities AbilityProfile) (ProficiencyProfile, []string) {
	var warnings []string
	bonus := ProficiencyBonus(snap.Level)
	profile := ProficiencyProfile{Bonus: bonus}

	// Saving throws: the first class taken grants its two proficiencies;
	// explicit grants from the snapshot add on top.
	saveSources := make(map[srd.Ability]string)
	first := snap.FirstClass()
	if saves, ok := srd.SavingThrows(first.Name); ok {
		for _, ability := range saves {
			saveSources[ability] = first.Name
		}
	}
	for _, grant := range snap.SaveGrants {
		if _, ok := saveSources[grant.Ability]; !ok {
			saveSources[grant.Ability] = grant.Source
		}
	}
	for _, ability := range srd.Abilities() {
		line := SavingThrow{
			Ability: ability,
			Bonus:   abilities.Modifier(ability),
		}
		if source, ok := saveSources[ability]; ok {
			line.Proficient = true
			line.Bonus += bonus
			line.Source = source
		}
		profile.SavingThrows = append(profile.SavingThrows, line)
	}

	// Skills: fold every grant into one boolean proficiency per skill,
	// collecting sources for attribution.
	type skillState struct {
		proficient bool
		expertise  bool
		sources    []string
	}
	states := make(map[string]*skillState)
	for _, grant := range snap.SkillGrants {
		name := strings.ToLower(strings.TrimSpace(grant.Skill))
		if _, ok := srd.SkillAbility(name); !ok {
			warnings = append(warnings, "skill "+grant.Skill+" is not in the rule tables, ignoring grant")
			continue
		}
		state, ok := states[name]
		if !ok {
			state = &skillState{}
			states[name] = state
		}
		state.proficient = true
		if grant.Expertise {
			state.expertise = true
		}
		if grant.Source != "" && !contains(state.sources, grant.Source) {
			state.sources = append(state.sources, grant.Source)
		}
	}

	names := srd.Skills()
	sort.Strings(names)
	for _, name := range names {
		ability, _ := srd.SkillAbility(name)
		line := Skill{
			Name:    name,
			Ability: ability,
			Bonus:   abilities.Modifier(ability),
		}
		if state, ok := states[name]; ok {
			line.Proficient = state.proficient
			line.Expertise = state.expertise
			line.Sources = state.sources
			line.Bonus += bonus
			if state.expertise {
				line.Bonus += bonus
			}
		}
		profile.Skills = append(profile.Skills, line)
	}

	return profile, warnings
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
