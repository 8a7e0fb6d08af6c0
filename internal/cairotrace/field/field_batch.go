package field

import "fmt"

// BatchInversion inverts a slice of elements using Montgomery's trick:
// one field inversion plus O(n) multiplications instead of n inversions.
// The builder uses this when resolving res = dst^(-1) across all Jnz
// instructions in a trace at once (spec.md §4.1).
//
// Algorithm:
//  1. Compute accumulative products: acc[i] = elements[0] * ... * elements[i]
//  2. Invert the final accumulator: acc[n-1]^(-1)
//  3. Back-substitute to recover each individual inverse
func BatchInversion(elements []*Element) ([]*Element, error) {
	n := len(elements)
	if n == 0 {
		return []*Element{}, nil
	}
	if n == 1 {
		inv, err := elements[0].Inv()
		if err != nil {
			return nil, err
		}
		return []*Element{inv}, nil
	}

	for i, elem := range elements {
		if elem.IsZero() {
			return nil, fmt.Errorf("field: cannot invert zero element at index %d", i)
		}
	}

	acc := make([]*Element, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Mul(elements[i])
	}

	accInv, err := acc[n-1].Inv()
	if err != nil {
		return nil, fmt.Errorf("field: failed to invert accumulator: %w", err)
	}

	results := make([]*Element, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv

	return results, nil
}
