package beyond

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

// rawClass mirrors one class entry in the source payload.
type rawClass struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Subclass string `json:"subclass"`
	HitDice  int    `json:"hit_dice"`
	Homebrew bool   `json:"homebrew"`
}

// rawAncestry mirrors the race/species/background blocks; only the name and
// ability bonuses matter here.
type rawAncestry struct {
	Name    string         `json:"name"`
	Bonuses map[string]int `json:"bonuses"`
}

type rawItem struct {
	Name      string `json:"name"`
	Equipped  bool   `json:"equipped"`
	Type      string `json:"type"` // armor, shield, or anything else
	ArmorBase int    `json:"armor_base"`
	Weight    string `json:"weight"`
	ACBonus   int    `json:"ac_bonus"`
}

type rawFeat struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Homebrew bool   `json:"homebrew"`
}

type rawBonus struct {
	Ability string `json:"ability"`
	Kind    string `json:"kind"`
	Source  string `json:"source"`
	Value   int    `json:"value"`
}

type rawSkill struct {
	Name      string `json:"name"`
	Source    string `json:"source"`
	Expertise bool   `json:"expertise"`
}

type rawSave struct {
	Ability string `json:"ability"`
	Source  string `json:"source"`
}

// knownKeys are the payload keys the decoder consumes. Everything else lands
// in the snapshot's opaque unknown-fields bag untouched.
var knownKeys = map[string]struct{}{
	"name": {}, "level": {}, "classes": {}, "stats": {},
	"race": {}, "species": {}, "background": {},
	"hp_method": {}, "manual_hp": {},
	"inventory": {}, "feats": {}, "spells": {},
	"bonuses": {}, "overrides": {}, "skills": {}, "saves": {},
	"ac_bonuses": {}, "ac_override": {}, "sourcebooks": {},
}

var abilityKeys = map[string]srd.Ability{
	"str": srd.AbilityStrength, "strength": srd.AbilityStrength,
	"dex": srd.AbilityDexterity, "dexterity": srd.AbilityDexterity,
	"con": srd.AbilityConstitution, "constitution": srd.AbilityConstitution,
	"int": srd.AbilityIntelligence, "intelligence": srd.AbilityIntelligence,
	"wis": srd.AbilityWisdom, "wisdom": srd.AbilityWisdom,
	"cha": srd.AbilityCharisma, "charisma": srd.AbilityCharisma,
}

var bonusKinds = map[string]dnd5e.BonusKind{
	"species":    dnd5e.BonusSpecies,
	"race":       dnd5e.BonusSpecies,
	"background": dnd5e.BonusBackground,
	"asi":        dnd5e.BonusASI,
	"feat":       dnd5e.BonusFeat,
	"item":       dnd5e.BonusItem,
}

// DecodeSnapshot normalizes a raw character payload into a snapshot. The
// parse is permissive: unrecognized top-level attributes are carried through
// in the snapshot's unknown-fields bag and never inspected by calculators.
func DecodeSnapshot(payload []byte) (dnd5e.CharacterSnapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return dnd5e.CharacterSnapshot{}, fmt.Errorf("parse payload: %w", err)
	}

	snap := dnd5e.CharacterSnapshot{
		Base:     map[srd.Ability]int{},
		HPMethod: dnd5e.HPMethodFixed,
		Items:    []dnd5e.Item{},
		Feats:    []dnd5e.Feat{},
		Spells:   map[string][]string{},
	}

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &snap.Name); err != nil {
			return snap, fmt.Errorf("parse name: %w", err)
		}
	}
	if raw, ok := fields["level"]; ok {
		if err := json.Unmarshal(raw, &snap.Level); err != nil {
			return snap, fmt.Errorf("parse level: %w", err)
		}
	}

	if raw, ok := fields["classes"]; ok {
		var classes []rawClass
		if err := json.Unmarshal(raw, &classes); err != nil {
			return snap, fmt.Errorf("parse classes: %w", err)
		}
		for _, c := range classes {
			snap.Classes = append(snap.Classes, dnd5e.ClassEntry{
				Name:     c.Name,
				Level:    c.Level,
				Subclass: c.Subclass,
				HitDie:   c.HitDice,
				Homebrew: c.Homebrew,
			})
		}
	}

	if raw, ok := fields["stats"]; ok {
		var stats map[string]int
		if err := json.Unmarshal(raw, &stats); err != nil {
			return snap, fmt.Errorf("parse stats: %w", err)
		}
		for key, value := range stats {
			if ability, ok := abilityKeys[strings.ToLower(key)]; ok {
				snap.Base[ability] = value
			}
		}
	}

	// Key shape is itself a rule-version signal.
	_, snap.HasRaceKey = fields["race"]
	_, snap.HasSpeciesKey = fields["species"]
	for _, key := range []string{"race", "species"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var ancestry rawAncestry
		if err := json.Unmarshal(raw, &ancestry); err != nil {
			return snap, fmt.Errorf("parse %s: %w", key, err)
		}
		for abilityKey, value := range ancestry.Bonuses {
			if ability, ok := abilityKeys[strings.ToLower(abilityKey)]; ok {
				snap.AbilityBonuses = append(snap.AbilityBonuses, dnd5e.AbilityBonus{
					Ability: ability,
					Kind:    dnd5e.BonusSpecies,
					Source:  ancestry.Name,
					Value:   value,
				})
			}
		}
	}

	if raw, ok := fields["background"]; ok {
		var background rawAncestry
		if err := json.Unmarshal(raw, &background); err != nil {
			return snap, fmt.Errorf("parse background: %w", err)
		}
		for abilityKey, value := range background.Bonuses {
			if ability, ok := abilityKeys[strings.ToLower(abilityKey)]; ok {
				snap.AbilityBonuses = append(snap.AbilityBonuses, dnd5e.AbilityBonus{
					Ability: ability,
					Kind:    dnd5e.BonusBackground,
					Source:  background.Name,
					Value:   value,
				})
			}
		}
	}

	if raw, ok := fields["hp_method"]; ok {
		var method string
		if err := json.Unmarshal(raw, &method); err != nil {
			return snap, fmt.Errorf("parse hp_method: %w", err)
		}
		switch strings.ToLower(method) {
		case "manual":
			snap.HPMethod = dnd5e.HPMethodManual
		case "fixed", "":
			snap.HPMethod = dnd5e.HPMethodFixed
		default:
			snap.HPMethod = dnd5e.HPMethod(strings.ToUpper(method))
		}
	}
	if raw, ok := fields["manual_hp"]; ok {
		if err := json.Unmarshal(raw, &snap.ManualHP); err != nil {
			return snap, fmt.Errorf("parse manual_hp: %w", err)
		}
	}

	if raw, ok := fields["inventory"]; ok {
		var items []rawItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return snap, fmt.Errorf("parse inventory: %w", err)
		}
		for _, item := range items {
			snap.Items = append(snap.Items, dnd5e.Item{
				Name:      item.Name,
				Equipped:  item.Equipped,
				IsArmor:   strings.EqualFold(item.Type, "armor"),
				IsShield:  strings.EqualFold(item.Type, "shield"),
				ArmorBase: item.ArmorBase,
				Weight:    dnd5e.ArmorWeight(strings.ToUpper(item.Weight)),
				ACBonus:   item.ACBonus,
			})
		}
	}

	if raw, ok := fields["feats"]; ok {
		var feats []rawFeat
		if err := json.Unmarshal(raw, &feats); err != nil {
			return snap, fmt.Errorf("parse feats: %w", err)
		}
		for _, feat := range feats {
			snap.Feats = append(snap.Feats, dnd5e.Feat{
				Name:     feat.Name,
				Category: feat.Category,
				Homebrew: feat.Homebrew,
			})
		}
	}

	if raw, ok := fields["spells"]; ok {
		if err := json.Unmarshal(raw, &snap.Spells); err != nil {
			return snap, fmt.Errorf("parse spells: %w", err)
		}
	}

	if raw, ok := fields["bonuses"]; ok {
		var bonuses []rawBonus
		if err := json.Unmarshal(raw, &bonuses); err != nil {
			return snap, fmt.Errorf("parse bonuses: %w", err)
		}
		for _, bonus := range bonuses {
			ability, ok := abilityKeys[strings.ToLower(bonus.Ability)]
			if !ok {
				continue
			}
			kind, ok := bonusKinds[strings.ToLower(bonus.Kind)]
			if !ok {
				kind = dnd5e.BonusMisc
			}
			snap.AbilityBonuses = append(snap.AbilityBonuses, dnd5e.AbilityBonus{
				Ability: ability,
				Kind:    kind,
				Source:  bonus.Source,
				Value:   bonus.Value,
			})
		}
	}

	if raw, ok := fields["overrides"]; ok {
		var overrides map[string]int
		if err := json.Unmarshal(raw, &overrides); err != nil {
			return snap, fmt.Errorf("parse overrides: %w", err)
		}
		for key, value := range overrides {
			if ability, ok := abilityKeys[strings.ToLower(key)]; ok {
				if snap.AbilityOverrides == nil {
					snap.AbilityOverrides = map[srd.Ability]int{}
				}
				snap.AbilityOverrides[ability] = value
			}
		}
	}

	if raw, ok := fields["skills"]; ok {
		var skills []rawSkill
		if err := json.Unmarshal(raw, &skills); err != nil {
			return snap, fmt.Errorf("parse skills: %w", err)
		}
		for _, skill := range skills {
			snap.SkillGrants = append(snap.SkillGrants, dnd5e.SkillGrant{
				Skill:     skill.Name,
				Source:    skill.Source,
				Expertise: skill.Expertise,
			})
		}
	}

	if raw, ok := fields["saves"]; ok {
		var saves []rawSave
		if err := json.Unmarshal(raw, &saves); err != nil {
			return snap, fmt.Errorf("parse saves: %w", err)
		}
		for _, save := range saves {
			if ability, ok := abilityKeys[strings.ToLower(save.Ability)]; ok {
				snap.SaveGrants = append(snap.SaveGrants, dnd5e.SaveGrant{
					Ability: ability,
					Source:  save.Source,
				})
			}
		}
	}

	if raw, ok := fields["ac_bonuses"]; ok {
		if err := json.Unmarshal(raw, &snap.ACBonuses); err != nil {
			return snap, fmt.Errorf("parse ac_bonuses: %w", err)
		}
	}
	if raw, ok := fields["ac_override"]; ok {
		var override int
		if err := json.Unmarshal(raw, &override); err != nil {
			return snap, fmt.Errorf("parse ac_override: %w", err)
		}
		snap.ACOverride = &override
	}
	if raw, ok := fields["sourcebooks"]; ok {
		if err := json.Unmarshal(raw, &snap.Sourcebooks); err != nil {
			return snap, fmt.Errorf("parse sourcebooks: %w", err)
		}
	}

	for key, raw := range fields {
		if _, ok := knownKeys[key]; ok {
			continue
		}
		if snap.Unknown == nil {
			snap.Unknown = map[string]json.RawMessage{}
		}
		snap.Unknown[key] = raw
	}

	return snap, nil
}
