package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeSnapshotMissingClasses, "class entries are required")
	target := New(CodeSnapshotMissingClasses, "different message")

	if !stderrors.Is(err, target) {
		t.Fatalf("expected errors with the same code to match")
	}

	other := New(CodeOverrideConflict, "conflicting overrides")
	if stderrors.Is(err, other) {
		t.Fatalf("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(CodeNotFound, "raw payload missing", cause)

	if !stderrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be found in chain")
	}
	if err.Error() != "raw payload missing" {
		t.Fatalf("expected message %q, got %q", "raw payload missing", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeSnapshotInvalidLevel, "level must be 1..20"))
	if got := CodeOf(err); got != CodeSnapshotInvalidLevel {
		t.Fatalf("expected code %q, got %q", CodeSnapshotInvalidLevel, got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("expected code %q, got %q", CodeUnknown, got)
	}
}

func TestCodeClassification(t *testing.T) {
	if !CodeSnapshotMissingAbilities.IsStructural() {
		t.Fatalf("expected missing abilities to be structural")
	}
	if CodeOverrideConflict.IsStructural() {
		t.Fatalf("expected override conflict not to be structural")
	}
	if !CodeOverrideConflict.IsConfiguration() {
		t.Fatalf("expected override conflict to be configuration")
	}
	if CodeFetchDecodeFailed.IsStructural() || CodeFetchDecodeFailed.IsConfiguration() {
		t.Fatalf("expected fetch decode failure to be neither structural nor configuration")
	}
}
