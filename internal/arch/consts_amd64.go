//go:build amd64

package arch

// amd64 callee-saved set per the System V AMD64 ABI: rbx, rbp, r12-r15
// (6 integer registers). There is no callee-saved FP/SSE state under
// System V, so the float bank is unused but kept for a uniform struct
// layout across architectures.
const (
	numIntRegs   = 6
	numFloatRegs = 1
)
