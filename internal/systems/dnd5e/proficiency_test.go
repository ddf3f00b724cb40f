package dnd5e

import (
	"testing"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

func TestProficiencyBonusProgression(t *testing.T) {
	tcs := []struct {
		level int
		want  int
	}{
		{1, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {12, 4}, {13, 5}, {16, 5}, {17, 6}, {20, 6},
	}
	for _, tc := range tcs {
		if got := ProficiencyBonus(tc.level); got != tc.want {
			t.Fatalf("ProficiencyBonus(%d) = %d, expected %d", tc.level, got, tc.want)
		}
	}
}

func TestCalculateProficienciesSavingThrows(t *testing.T) {
	snap := fixedSnapshot([]ClassEntry{{Name: "wizard", Level: 5}}, 10)
	snap.Base = baseScores(10, 10, 10, 16, 12, 10)
	abilities, _ := CalculateAbilities(snap, RuleVersionLegacy)

	profile, warnings := CalculateProficiencies(snap, abilities)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if profile.Bonus != 3 {
		t.Fatalf("expected proficiency bonus 3, got %d", profile.Bonus)
	}

	byAbility := make(map[srd.Ability]SavingThrow)
	for _, s := range profile.SavingThrows {
		byAbility[s.Ability] = s
	}
	intSave := byAbility[srd.AbilityIntelligence]
	if !intSave.Proficient || intSave.Bonus != 6 || intSave.Source != "wizard" {
		t.Fatalf("expected proficient INT save +6 from wizard, got %+v", intSave)
	}
	strSave := byAbility[srd.AbilityStrength]
	if strSave.Proficient || strSave.Bonus != 0 {
		t.Fatalf("expected plain STR save +0, got %+v", strSave)
	}
}

func TestCalculateProficienciesMulticlassSavesFromFirstClass(t *testing.T) {
	snap := fixedSnapshot([]ClassEntry{
		{Name: "rogue", Level: 1},
		{Name: "fighter", Level: 1},
	}, 10)
	abilities, _ := CalculateAbilities(snap, RuleVersionLegacy)

	profile, _ := CalculateProficiencies(snap, abilities)
	proficient := make(map[srd.Ability]bool)
	for _, s := range profile.SavingThrows {
		if s.Proficient {
			proficient[s.Ability] = true
		}
	}
	if !proficient[srd.AbilityDexterity] || !proficient[srd.AbilityIntelligence] {
		t.Fatalf("expected rogue saves DEX and INT, got %v", proficient)
	}
	if proficient[srd.AbilityStrength] {
		t.Fatal("expected fighter saves not to apply to a multiclass dip")
	}
}

func TestCalculateProficienciesSkills(t *testing.T) {
	snap := fixedSnapshot([]ClassEntry{{Name: "rogue", Level: 1}}, 10)
	snap.Base = baseScores(10, 16, 10, 10, 10, 10)
	snap.SkillGrants = []SkillGrant{
		{Skill: "Stealth", Source: "rogue", Expertise: true},
		{Skill: "stealth", Source: "background"}, // duplicate grant, no double count
		{Skill: "acrobatics", Source: "rogue"},
	}
	abilities, _ := CalculateAbilities(snap, RuleVersionLegacy)

	profile, _ := CalculateProficiencies(snap, abilities)
	byName := make(map[string]Skill)
	for _, s := range profile.Skills {
		byName[s.Name] = s
	}

	stealth := byName["stealth"]
	// DEX +3, proficiency +2, expertise +2.
	if stealth.Bonus != 7 || !stealth.Expertise || !stealth.Proficient {
		t.Fatalf("expected stealth +7 with expertise, got %+v", stealth)
	}
	if len(stealth.Sources) != 2 {
		t.Fatalf("expected both granting sources recorded, got %v", stealth.Sources)
	}

	acrobatics := byName["acrobatics"]
	if acrobatics.Bonus != 5 || acrobatics.Expertise {
		t.Fatalf("expected acrobatics +5 without expertise, got %+v", acrobatics)
	}

	athletics := byName["athletics"]
	if athletics.Proficient || athletics.Bonus != 0 {
		t.Fatalf("expected plain athletics +0, got %+v", athletics)
	}

	if len(profile.Skills) != 18 {
		t.Fatalf("expected all 18 skills listed, got %d", len(profile.Skills))
	}
}

func TestCalculateProficienciesUnknownSkillWarns(t *testing.T) {
	snap := fixedSnapshot([]ClassEntry{{Name: "rogue", Level: 1}}, 10)
	snap.SkillGrants = []SkillGrant{{Skill: "underwater basket weaving", Source: "homebrew"}}
	abilities, _ := CalculateAbilities(snap, RuleVersionLegacy)

	_, warnings := CalculateProficiencies(snap, abilities)
	if len(warnings) != 1 {
		t.Fatalf("expected one unknown-skill warning, got %v", warnings)
	}
}
