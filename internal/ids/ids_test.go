package ids

import "testing"

func TestFreshRejectsCollisions(t *testing.T) {
	src := &FixedSequenceSource{Values: []uint64{1, 1, 1, 2}}
	a := New(src)

	first := a.Fresh()
	if first != 1 {
		t.Fatalf("first = %d, want 1", first)
	}

	second := a.Fresh()
	if second != 2 {
		t.Fatalf("second = %d, want 2 (collisions on 1 should have been rejected)", second)
	}
	if a.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", a.Count())
	}
}

func TestReleaseAllowsReuse(t *testing.T) {
	src := &FixedSequenceSource{Values: []uint64{7}}
	a := New(src)

	id := a.Fresh()
	a.Release(id)
	if a.Live(id) {
		t.Fatal("id still live after Release")
	}

	again := a.Fresh()
	if again != id {
		t.Fatalf("Fresh() after Release = %d, want reused %d", again, id)
	}
}
