package domain

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"
)

const wizardPayload = `{
	"name": "Elandra",
	"level": 2,
	"classes": [{"name": "wizard", "level": 2}],
	"stats": {"str": 8, "dex": 14, "con": 12, "int": 16, "wis": 10, "cha": 10},
	"race": {"name": "Human"},
	"sourcebooks": ["phb-2014"]
}`

func TestCharacterComputeHandler(t *testing.T) {
	handler := CharacterComputeHandler()

	_, result, err := handler(context.Background(), nil, CharacterComputeInput{Payload: wizardPayload})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.Model == nil {
		t.Fatal("expected a computed model")
	}
	if result.Model.RuleVersion != dnd5e.RuleVersionLegacy {
		t.Fatalf("expected legacy rules, got %q", result.Model.RuleVersion)
	}
	if result.Model.Spellcasting.SaveDC != 13 {
		t.Fatalf("expected spell save DC 13, got %d", result.Model.Spellcasting.SaveDC)
	}
	if !strings.Contains(result.Markdown, "# Elandra") {
		t.Fatalf("expected rendered sheet, got:\n%s", result.Markdown)
	}
}

func TestCharacterComputeHandlerForceModern(t *testing.T) {
	handler := CharacterComputeHandler()

	_, result, err := handler(context.Background(), nil, CharacterComputeInput{
		Payload:     wizardPayload,
		ForceModern: true,
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.Model.RuleVersion != dnd5e.RuleVersionModern {
		t.Fatalf("expected forced modern rules, got %q", result.Model.RuleVersion)
	}
}

func TestCharacterComputeHandlerErrors(t *testing.T) {
	handler := CharacterComputeHandler()

	if _, _, err := handler(context.Background(), nil, CharacterComputeInput{}); err == nil {
		t.Fatal("expected error for missing payload")
	}
	if _, _, err := handler(context.Background(), nil, CharacterComputeInput{Payload: "not json"}); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if _, _, err := handler(context.Background(), nil, CharacterComputeInput{
		Payload:     wizardPayload,
		ForceLegacy: true,
		ForceModern: true,
	}); err == nil {
		t.Fatal("expected error for conflicting overrides")
	}
}

type stubFetcher struct {
	snap dnd5e.CharacterSnapshot
	err  error
}

func (s stubFetcher) FetchSnapshot(_ context.Context, _ string) (dnd5e.CharacterSnapshot, error) {
	return s.snap, s.err
}

func TestCharacterFetchHandler(t *testing.T) {
	snap := dnd5e.CharacterSnapshot{
		Name:    "Korra",
		Level:   1,
		Classes: []dnd5e.ClassEntry{{Name: "fighter", Level: 1}},
		Base: map[srd.Ability]int{
			srd.AbilityStrength:     16,
			srd.AbilityDexterity:    14,
			srd.AbilityConstitution: 14,
			srd.AbilityIntelligence: 10,
			srd.AbilityWisdom:       12,
			srd.AbilityCharisma:     8,
		},
		HPMethod: dnd5e.HPMethodFixed,
		Items:    []dnd5e.Item{},
		Feats:    []dnd5e.Feat{},
		Spells:   map[string][]string{},
	}
	handler := CharacterFetchHandler(stubFetcher{snap: snap})

	_, result, err := handler(context.Background(), nil, CharacterFetchInput{CharacterID: "123"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Model == nil || result.Model.Name != "Korra" {
		t.Fatalf("unexpected result: %+v", result.Model)
	}
}

func TestCharacterFetchHandlerErrors(t *testing.T) {
	handler := CharacterFetchHandler(stubFetcher{err: fmt.Errorf("boom")})

	if _, _, err := handler(context.Background(), nil, CharacterFetchInput{}); err == nil {
		t.Fatal("expected error for missing character id")
	}
	if _, _, err := handler(context.Background(), nil, CharacterFetchInput{CharacterID: "123"}); err == nil {
		t.Fatal("expected fetch error to propagate")
	}

	nilHandler := CharacterFetchHandler(nil)
	if _, _, err := nilHandler(context.Background(), nil, CharacterFetchInput{CharacterID: "123"}); err == nil {
		t.Fatal("expected error when fetching is not configured")
	}
}
