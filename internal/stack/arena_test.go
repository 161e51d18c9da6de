package stack

import (
	"testing"

	"github.com/ehrlich-b/go-green/internal/constants"
)

func TestAllocateSizing(t *testing.T) {
	r := Allocate(constants.MinStackSize)
	defer r.Release()

	if got := r.Size(); got != constants.MinStackSize {
		t.Fatalf("Size() = %d, want %d", got, constants.MinStackSize)
	}
	if top := r.Top(); top == 0 {
		t.Fatal("Top() returned zero address")
	}
}

func TestAllocateRejectsBadSizes(t *testing.T) {
	cases := []int{0, constants.PageSize, constants.MinStackSize + 1, constants.MinStackSize - constants.PageSize}
	for _, size := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Allocate(%d) did not panic", size)
				}
			}()
			Allocate(size)
		}()
	}
}

func TestReleaseTwicePanics(t *testing.T) {
	r := Allocate(constants.MinStackSize)
	r.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("second Release did not panic")
		}
	}()
	r.Release()
}
