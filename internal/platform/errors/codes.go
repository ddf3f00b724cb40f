// Package errors provides structured error handling for sheetwright.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Snapshot errors (structural: the run aborts with no model)
	CodeSnapshotMissingClasses   Code = "SNAPSHOT_MISSING_CLASSES"
	CodeSnapshotMissingAbilities Code = "SNAPSHOT_MISSING_ABILITIES"
	CodeSnapshotInvalidLevel     Code = "SNAPSHOT_INVALID_LEVEL"
	CodeSnapshotMissingItems     Code = "SNAPSHOT_MISSING_ITEMS"
	CodeSnapshotMissingFeats     Code = "SNAPSHOT_MISSING_FEATS"
	CodeSnapshotMissingSpells    Code = "SNAPSHOT_MISSING_SPELLS"
	CodeSnapshotInvalidHPMethod  Code = "SNAPSHOT_INVALID_HP_METHOD"
	CodeSnapshotLevelMismatch    Code = "SNAPSHOT_LEVEL_MISMATCH"

	// Configuration errors (reported before any calculation begins)
	CodeOverrideConflict Code = "OVERRIDE_CONFLICT"

	// Fetch errors
	CodeFetchCharacterNotFound Code = "FETCH_CHARACTER_NOT_FOUND"
	CodeFetchUnauthorized      Code = "FETCH_UNAUTHORIZED"
	CodeFetchSessionExpired    Code = "FETCH_SESSION_EXPIRED"
	CodeFetchDecodeFailed      Code = "FETCH_DECODE_FAILED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// IsStructural reports whether the code describes a missing or malformed
// required snapshot section. Structural failures abort the whole run.
func (c Code) IsStructural() bool {
	switch c {
	case CodeSnapshotMissingClasses,
		CodeSnapshotMissingAbilities,
		CodeSnapshotMissingItems,
		CodeSnapshotMissingFeats,
		CodeSnapshotMissingSpells,
		CodeSnapshotInvalidLevel,
		CodeSnapshotInvalidHPMethod,
		CodeSnapshotLevelMismatch:
		return true
	}
	return false
}

// IsConfiguration reports whether the code describes conflicting caller
// options. Configuration failures abort before calculation starts.
func (c Code) IsConfiguration() bool {
	return c == CodeOverrideConflict
}
