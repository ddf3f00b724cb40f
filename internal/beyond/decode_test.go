package beyond

import (
	"testing"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

func TestDecodeSnapshotFullPayload(t *testing.T) {
	payload := []byte(`{
		"name": "Korra",
		"level": 5,
		"classes": [
			{"name": "fighter", "level": 3, "subclass": "eldritch knight", "hit_dice": 10},
			{"name": "wizard", "level": 2}
		],
		"stats": {"str": 16, "dex": 14, "con": 14, "int": 13, "wis": 10, "cha": 8},
		"species": {"name": "Goliath", "bonuses": {"str": 2, "con": 1}},
		"hp_method": "fixed",
		"inventory": [
			{"name": "Chain Shirt", "equipped": true, "type": "armor", "armor_base": 13, "weight": "medium"},
			{"name": "Shield", "equipped": true, "type": "shield", "ac_bonus": 2}
		],
		"feats": [{"name": "Alert", "category": "origin"}],
		"spells": {"wizard": ["shield", "magic missile"]},
		"sourcebooks": ["phb-2024"]
	}`)

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if snap.Name != "Korra" || snap.Level != 5 {
		t.Fatalf("expected Korra level 5, got %q level %d", snap.Name, snap.Level)
	}
	if len(snap.Classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(snap.Classes))
	}
	if snap.Classes[0].Subclass != "eldritch knight" || snap.Classes[0].HitDie != 10 {
		t.Fatalf("unexpected first class: %+v", snap.Classes[0])
	}
	if snap.Base[srd.AbilityStrength] != 16 {
		t.Fatalf("expected STR 16, got %d", snap.Base[srd.AbilityStrength])
	}
	if !snap.HasSpeciesKey || snap.HasRaceKey {
		t.Fatalf("expected species key only, got species=%v race=%v", snap.HasSpeciesKey, snap.HasRaceKey)
	}
	if len(snap.AbilityBonuses) != 2 {
		t.Fatalf("expected 2 ancestry bonuses, got %+v", snap.AbilityBonuses)
	}
	for _, bonus := range snap.AbilityBonuses {
		if bonus.Kind != dnd5e.BonusSpecies || bonus.Source != "Goliath" {
			t.Fatalf("unexpected ancestry bonus: %+v", bonus)
		}
	}
	if snap.HPMethod != dnd5e.HPMethodFixed {
		t.Fatalf("expected fixed hp method, got %q", snap.HPMethod)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(snap.Items))
	}
	armor := snap.Items[0]
	if !armor.IsArmor || armor.ArmorBase != 13 || armor.Weight != dnd5e.ArmorMedium {
		t.Fatalf("unexpected armor item: %+v", armor)
	}
	if !snap.Items[1].IsShield || snap.Items[1].ACBonus != 2 {
		t.Fatalf("unexpected shield item: %+v", snap.Items[1])
	}
	if len(snap.Spells["wizard"]) != 2 {
		t.Fatalf("expected 2 wizard spells, got %+v", snap.Spells)
	}
	if len(snap.Sourcebooks) != 1 || snap.Sourcebooks[0] != "phb-2024" {
		t.Fatalf("unexpected sourcebooks: %+v", snap.Sourcebooks)
	}
	if err := snap.Validate(); err != nil {
		t.Fatalf("expected decoded snapshot to validate, got %v", err)
	}
}

func TestDecodeSnapshotUnknownFieldsCarried(t *testing.T) {
	payload := []byte(`{
		"name": "Brindle",
		"level": 1,
		"classes": [{"name": "rogue", "level": 1}],
		"stats": {"str": 8, "dex": 17, "con": 12, "int": 13, "wis": 12, "cha": 14},
		"race": {"name": "Halfling"},
		"currencies": {"gp": 15},
		"notes": "met a talking badger"
	}`)

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Unknown) != 2 {
		t.Fatalf("expected 2 unknown fields, got %+v", snap.Unknown)
	}
	if _, ok := snap.Unknown["currencies"]; !ok {
		t.Fatal("expected currencies to survive in the unknown bag")
	}
	if _, ok := snap.Unknown["notes"]; !ok {
		t.Fatal("expected notes to survive in the unknown bag")
	}
	if snap.HasRaceKey != true || snap.HasSpeciesKey {
		t.Fatalf("expected race key only, got race=%v species=%v", snap.HasRaceKey, snap.HasSpeciesKey)
	}
}

func TestDecodeSnapshotDefaults(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{"name": "Empty"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Items == nil || snap.Feats == nil || snap.Spells == nil {
		t.Fatal("expected non-nil item, feat, and spell collections")
	}
	if snap.HPMethod != dnd5e.HPMethodFixed {
		t.Fatalf("expected fixed hp default, got %q", snap.HPMethod)
	}
}

func TestDecodeSnapshotBackgroundBonuses(t *testing.T) {
	payload := []byte(`{
		"background": {"name": "Soldier", "bonuses": {"str": 1, "con": 1}},
		"species": {"name": "Human"}
	}`)

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.AbilityBonuses) != 2 {
		t.Fatalf("expected 2 background bonuses, got %+v", snap.AbilityBonuses)
	}
	for _, bonus := range snap.AbilityBonuses {
		if bonus.Kind != dnd5e.BonusBackground || bonus.Source != "Soldier" {
			t.Fatalf("unexpected background bonus: %+v", bonus)
		}
	}
}

func TestDecodeSnapshotBonusKinds(t *testing.T) {
	payload := []byte(`{
		"bonuses": [
			{"ability": "str", "kind": "asi", "source": "level 4 ASI", "value": 2},
			{"ability": "con", "kind": "item", "source": "Amulet of Health", "value": 4},
			{"ability": "dex", "kind": "blessing", "source": "mysterious shrine", "value": 1}
		]
	}`)

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.AbilityBonuses) != 3 {
		t.Fatalf("expected 3 bonuses, got %d", len(snap.AbilityBonuses))
	}
	if snap.AbilityBonuses[0].Kind != dnd5e.BonusASI {
		t.Fatalf("expected ASI kind, got %q", snap.AbilityBonuses[0].Kind)
	}
	if snap.AbilityBonuses[1].Kind != dnd5e.BonusItem {
		t.Fatalf("expected item kind, got %q", snap.AbilityBonuses[1].Kind)
	}
	// Unrecognized kinds degrade to MISC rather than being dropped.
	if snap.AbilityBonuses[2].Kind != dnd5e.BonusMisc {
		t.Fatalf("expected misc kind, got %q", snap.AbilityBonuses[2].Kind)
	}
}

func TestDecodeSnapshotManualHPAndOverrides(t *testing.T) {
	payload := []byte(`{
		"hp_method": "manual",
		"manual_hp": 44,
		"overrides": {"str": 19},
		"ac_override": 18
	}`)

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.HPMethod != dnd5e.HPMethodManual || snap.ManualHP != 44 {
		t.Fatalf("expected manual hp 44, got %q %d", snap.HPMethod, snap.ManualHP)
	}
	if snap.AbilityOverrides[srd.AbilityStrength] != 19 {
		t.Fatalf("expected STR override 19, got %+v", snap.AbilityOverrides)
	}
	if snap.ACOverride == nil || *snap.ACOverride != 18 {
		t.Fatalf("expected AC override 18, got %+v", snap.ACOverride)
	}
}

func TestDecodeSnapshotRejectsMalformedJSON(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"level": "five"}`)); err == nil {
		t.Fatal("expected error for non-numeric level")
	}
	if _, err := DecodeSnapshot([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
