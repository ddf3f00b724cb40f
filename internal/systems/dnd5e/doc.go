// Package dnd5e computes derived character statistics from a normalized
// snapshot of raw attributes.
//
// The package provides the pure calculation core:
//
//   - Rule-version detection (Legacy vs Modern) from independent voting
//     signals with an auditable evidence log
//   - Ability scores and modifiers with per-source attribution
//   - Hit points (fixed-average or player-entered manual totals)
//   - Armor class, including unarmored-defense tie-breaks
//   - Proficiency bonus, saving throws, and skills
//   - Spell slots (shared multiclass progression plus independent pact magic)
//
// Every calculator is a pure function of the snapshot and the rule tables in
// the srd subpackage. Snapshots are immutable; results are produced fresh per
// invocation and carry ordered rationale/warning logs instead of failing.
package dnd5e
