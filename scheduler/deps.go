package scheduler

// DepsEqual compares two captured dependency sequences. Implementations
// only see non-nil slices: the "no dependency array" and first-render cases
// are decided before the strategy is consulted.
type DepsEqual func(prev, next []any) bool

// DefaultDepsEqual compares element-wise with ==. Primitives compare by
// value, composites by reference. Length mismatch is unequal. Operands that
// == cannot handle (slices, maps, funcs held directly in the interface)
// compare unequal rather than panic.
func DefaultDepsEqual(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !identical(prev[i], next[i]) {
			return false
		}
	}
	return true
}

func identical(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
