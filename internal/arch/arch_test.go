package arch

import "testing"

// TestSaveRestoreRoundTrip exercises the two-return shape Save/Restore
// are built on: the first return from Save happens in-line and yields 0;
// a later Restore of the same Registers value jumps back into this
// function and Save "returns" again, this time with 1. A counter guards
// against an infinite loop if Restore ever re-entered more than once.
func TestSaveRestoreRoundTrip(t *testing.T) {
	var r Registers
	// Held in memory rather than a plain local: the compiler cannot see
	// Save's second return and would otherwise fold the count to a constant.
	entries := new(int)

	discriminant := Save(&r)
	*entries++

	if discriminant == 0 {
		if *entries != 1 {
			t.Fatalf("expected a single first entry, got %d", *entries)
		}
		Restore(&r)
		t.Fatal("Restore returned control instead of jumping back into Save's caller")
	}

	if *entries != 2 {
		t.Fatalf("expected Restore to resume exactly once, entries=%d", *entries)
	}
}
