// Package render formats computed character models for human consumption.
// Output is deterministic: the same model always renders the same bytes.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

var titleCaser = cases.Title(language.English)

// Markdown renders a computed model as a markdown character sheet.
func Markdown(model *dnd5e.CharacterComputedModel) string {
	if model == nil {
		return ""
	}

	var b strings.Builder

	name := model.Name
	if name == "" {
		name = "Unnamed Character"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "Level %d · %s rules\n\n", model.Level, titleCaser.String(strings.ToLower(string(model.RuleVersion))))

	writeAbilities(&b, model.Abilities)
	writeCombat(&b, model)
	writeProficiencies(&b, model.Proficiencies)
	writeSpellcasting(&b, model.Spellcasting)
	writeRationale(&b, model)

	return b.String()
}

func writeAbilities(b *strings.Builder, abilities dnd5e.AbilityProfile) {
	b.WriteString("## Abilities\n\n")
	b.WriteString("| Ability | Score | Modifier |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	for _, ability := range srd.Abilities() {
		score := abilities.Scores[ability]
		fmt.Fprintf(b, "| %s | %d | %s |\n", ability, score.Score, signed(score.Modifier))
	}
	b.WriteString("\n")
}

func writeCombat(b *strings.Builder, model *dnd5e.CharacterComputedModel) {
	b.WriteString("## Combat\n\n")
	fmt.Fprintf(b, "- **Hit Points:** %d (%s)\n",
		model.HitPoints.Total, strings.ToLower(string(model.HitPoints.Method)))
	fmt.Fprintf(b, "- **Armor Class:** %d (%s)\n",
		model.ArmorClass.Total, model.ArmorClass.Formula)
	for _, component := range model.ArmorClass.Components {
		fmt.Fprintf(b, "  - %s: %s\n", titleCaser.String(component.Source), signed(component.Value))
	}
	fmt.Fprintf(b, "- **Proficiency Bonus:** %s\n\n", signed(model.Proficiencies.Bonus))
}

func writeProficiencies(b *strings.Builder, profile dnd5e.ProficiencyProfile) {
	b.WriteString("## Saving Throws\n\n")
	for _, save := range profile.SavingThrows {
		marker := ""
		if save.Proficient {
			marker = " ●"
		}
		fmt.Fprintf(b, "- %s %s%s\n", save.Ability, signed(save.Bonus), marker)
	}
	b.WriteString("\n## Skills\n\n")
	for _, skill := range profile.Skills {
		marker := ""
		switch {
		case skill.Expertise:
			marker = " ●●"
		case skill.Proficient:
			marker = " ●"
		}
		fmt.Fprintf(b, "- %s (%s) %s%s\n",
			titleCaser.String(skill.Name), skill.Ability, signed(skill.Bonus), marker)
	}
	b.WriteString("\n")
}

func writeSpellcasting(b *strings.Builder, profile dnd5e.SpellcastingProfile) {
	if !profile.IsCaster {
		return
	}
	b.WriteString("## Spellcasting\n\n")
	if profile.Ability != "" {
		fmt.Fprintf(b, "- **Ability:** %s\n", profile.Ability)
		fmt.Fprintf(b, "- **Spell Save DC:** %d\n", profile.SaveDC)
		fmt.Fprintf(b, "- **Spell Attack:** %s\n", signed(profile.AttackBonus))
	}
	var slots []string
	for i, count := range profile.RegularSlots {
		if count > 0 {
			slots = append(slots, fmt.Sprintf("L%d×%d", i+1, count))
		}
	}
	if len(slots) > 0 {
		fmt.Fprintf(b, "- **Slots:** %s\n", strings.Join(slots, ", "))
	}
	if profile.Pact.Count > 0 {
		fmt.Fprintf(b, "- **Pact Magic:** %d × level %d\n", profile.Pact.Count, profile.Pact.Level)
	}
	b.WriteString("\n")
}

func writeRationale(b *strings.Builder, model *dnd5e.CharacterComputedModel) {
	b.WriteString("## Detection\n\n")
	for _, evidence := range model.Evidence {
		fmt.Fprintf(b, "- %s: %s\n", evidence.Signal, strings.ToLower(string(evidence.Vote)))
	}
	if len(model.Rationale) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, note := range model.Rationale {
			fmt.Fprintf(b, "- %s\n", note)
		}
	}
	b.WriteString("\n")
}

// signed formats a bonus with an explicit sign, the way sheets print them.
func signed(value int) string {
	if value >= 0 {
		return fmt.Sprintf("+%d", value)
	}
	return fmt.Sprintf("%d", value)
}
