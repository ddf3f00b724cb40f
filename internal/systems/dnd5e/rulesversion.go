package dnd5e

import "github.com/louisbranch/sheetwright/internal/systems/dnd5e/srd"

// signal is one independent rule-version detection heuristic. Signals are
// pure functions of the snapshot; policy (plurality, tie-break) lives in
// DetectRuleVersion so both stay independently testable.
type signal struct {
	name string
	vote func(CharacterSnapshot) Vote
}

// detectionSignals run in a fixed order so the evidence log is deterministic.
var detectionSignals = []signal{
	{name: "sourcebooks", vote: voteSourcebooks},
	{name: "species-key", vote: voteSpeciesKey},
	{name: "feat-categories", vote: voteFeatCategories},
}

// voteSourcebooks intersects the snapshot's sourcebook identifiers against
// the known Legacy/Modern sets. Unknown identifiers do not count.
func voteSourcebooks(snap CharacterSnapshot) Vote {
	legacy, modern := 0, 0
	for _, id := range snap.Sourcebooks {
		switch srd.SourcebookEra(id) {
		case srd.EraLegacy:
			legacy++
		case srd.EraModern:
			modern++
		}
	}
	switch {
	case legacy > modern:
		return VoteLegacy
	case modern > legacy:
		return VoteModern
	default:
		return VoteAbstain
	}
}

// voteSpeciesKey reads the raw payload's key shape: Modern payloads carry a
// "species" key where Legacy payloads carry "race".
func voteSpeciesKey(snap CharacterSnapshot) Vote {
	switch {
	case snap.HasSpeciesKey && !snap.HasRaceKey:
		return VoteModern
	case snap.HasRaceKey && !snap.HasSpeciesKey:
		return VoteLegacy
	default:
		return VoteAbstain
	}
}

// voteFeatCategories looks for feat-category tags that only exist under
// Modern rules. Homebrew feats never vote; official feats without Modern
// tagging point to Legacy.
func voteFeatCategories(snap CharacterSnapshot) Vote {
	official := 0
	for _, feat := range snap.Feats {
		if feat.Homebrew {
			continue
		}
		official++
		if srd.IsModernFeatCategory(feat.Category) {
			return VoteModern
		}
	}
	if official > 0 {
		return VoteLegacy
	}
	return VoteAbstain
}

// DetectRuleVersion decides between Legacy and Modern by plurality among the
// non-abstaining signals. A tie or unanimous abstention defaults to Legacy
// with a warning. The detector never fails and always emits its evidence.
func DetectRuleVersion(snap CharacterSnapshot) RuleVersionResult {
	result := RuleVersionResult{
		Evidence: make([]Evidence, 0, len(detectionSignals)),
	}

	legacy, modern := 0, 0
	for _, sig := range detectionSignals {
		vote := sig.vote(snap)
		result.Evidence = append(result.Evidence, Evidence{Signal: sig.name, Vote: vote})
		switch vote {
		case VoteLegacy:
			legacy++
		case VoteModern:
			modern++
		}
	}

	switch {
	case modern > legacy:
		result.Version = RuleVersionModern
	case legacy > modern:
		result.Version = RuleVersionLegacy
	case legacy == 0 && modern == 0:
		result.Version = RuleVersionLegacy
		result.Warnings = append(result.Warnings,
			"rule version: every signal abstained, defaulting to Legacy")
	default:
		result.Version = RuleVersionLegacy
		result.Warnings = append(result.Warnings,
			"rule version: signals tied, defaulting to Legacy")
	}
	return result
}

// forcedRuleVersion builds the detector output for a caller override. The
// override takes absolute precedence; the evidence log records it.
func forcedRuleVersion(version RuleVersion) RuleVersionResult {
	return RuleVersionResult{
		Version:    version,
		Evidence:   []Evidence{{Signal: "override", Vote: Vote(version)}},
		Overridden: true,
	}
}
