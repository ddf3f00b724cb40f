package dnd5e

import (
	"fmt"

	apperrors "github.com/louisbranch/sheetwright/internal/platform/errors"
)

// Options carries caller-supplied computation overrides. ForceLegacy and
// ForceModern are mutually exclusive; supplying both is a configuration
// error reported before any calculation begins.
type Options struct {
	ForceLegacy bool `json:"force_legacy,omitempty"`
	ForceModern bool `json:"force_modern,omitempty"`
}

func (o Options) validate() error {
	if o.ForceLegacy && o.ForceModern {
		return apperrors.New(apperrors.CodeOverrideConflict,
			"force-legacy and force-modern are mutually exclusive")
	}
	return nil
}

// Compute runs the full calculation pipeline: rule-version detection, ability
// scores, then the four mutually independent calculators, assembled into a
// CharacterComputedModel with a single ordered rationale/warning log.
//
// A structural problem in the snapshot or conflicting options fails fast with
// no model. An individual calculator failure is recovered: the field keeps
// its zero value, the failure is recorded in the rationale, and the run still
// returns a complete model.
func Compute(snap CharacterSnapshot, opts Options) (*CharacterComputedModel, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	model := &CharacterComputedModel{
		Name:      snap.Name,
		Level:     snap.Level,
		Rationale: []string{},
	}

	var detection RuleVersionResult
	switch {
	case opts.ForceLegacy:
		detection = forcedRuleVersion(RuleVersionLegacy)
	case opts.ForceModern:
		detection = forcedRuleVersion(RuleVersionModern)
	default:
		detection = DetectRuleVersion(snap)
	}
	model.RuleVersion = detection.Version
	model.Evidence = detection.Evidence
	model.Rationale = append(model.Rationale, detection.Warnings...)

	runCalculator("abilities", model, func() {
		profile, warnings := CalculateAbilities(snap, detection.Version)
		model.Abilities = profile
		model.Rationale = append(model.Rationale, warnings...)
	})

	runCalculator("hit-points", model, func() {
		result := CalculateHitPoints(snap, model.Abilities)
		model.HitPoints = result
		model.Rationale = append(model.Rationale, result.Warnings...)
	})
	runCalculator("armor-class", model, func() {
		result, warnings := CalculateArmorClass(snap, model.Abilities)
		model.ArmorClass = result
		model.Rationale = append(model.Rationale, warnings...)
	})
	runCalculator("proficiencies", model, func() {
		profile, warnings := CalculateProficiencies(snap, model.Abilities)
		model.Proficiencies = profile
		model.Rationale = append(model.Rationale, warnings...)
	})
	runCalculator("spellcasting", model, func() {
		profile, warnings := CalculateSpellcasting(snap, model.Abilities)
		model.Spellcasting = profile
		model.Rationale = append(model.Rationale, warnings...)
	})

	return model, nil
}

// runCalculator executes one calculator fail-soft: a panic leaves the field
// at its default and records the failure in the rationale log.
func runCalculator(name string, model *CharacterComputedModel, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			model.Rationale = append(model.Rationale, fmt.Sprintf(
				"%s: calculator failed (%v), field left at its default", name, r))
		}
	}()
	fn()
}

// BatchResult pairs one character's computed model with its failure, if any.
type BatchResult struct {
	Model *CharacterComputedModel
	Err   error
}

// ComputeBatch computes many characters, isolating failures so one malformed
// snapshot does not abort the rest. Results keep input order.
func ComputeBatch(snaps []CharacterSnapshot, opts Options) []BatchResult {
	results := make([]BatchResult, len(snaps))
	for i, snap := range snaps {
		model, err := Compute(snap, opts)
		results[i] = BatchResult{Model: model, Err: err}
	}
	return results
}
