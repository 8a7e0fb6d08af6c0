package trace

import (
	"fmt"
	"math/big"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

const (
	limbCount     = 8
	limbBits      = 16
	limbMask      = (1 << limbBits) - 1
	limbTotalBits = limbCount * limbBits
)

// DecomposeLimbs splits a field element's full big-integer representative
// into eight 16-bit limbs, least-significant first (§4.5). The
// representative can span the whole ~251-bit Cairo field, far past 64
// bits, so this works directly off Representative() rather than any
// 64-bit-truncated view. It is an auxiliary range-check helper, not part
// of the main assembly pipeline: callers that need to range-check an
// auxiliary quantity (rather than an instruction offset, which is already
// 16 bits wide) decompose it into limbs this way before feeding each limb
// through the same range-check argument.
func DecomposeLimbs(e *field.Element) ([limbCount]uint16, error) {
	rep := e.Representative()
	if rep.BitLen() > limbTotalBits {
		return [limbCount]uint16{}, fmt.Errorf("trace: cannot decompose a %d-bit value into %d limbs of %d bits", rep.BitLen(), limbCount, limbBits)
	}

	var limbs [limbCount]uint16
	chunk := new(big.Int).Set(rep)
	mask := big.NewInt(limbMask)
	for i := 0; i < limbCount; i++ {
		var limb big.Int
		limb.And(chunk, mask)
		limbs[i] = uint16(limb.Uint64())
		chunk.Rsh(chunk, limbBits)
	}
	return limbs, nil
}

// RecomposeLimbs reverses DecomposeLimbs, reconstructing the original value
// from its eight 16-bit limbs.
func RecomposeLimbs(limbs [limbCount]uint16) *field.Element {
	rep := new(big.Int)
	for i := limbCount - 1; i >= 0; i-- {
		rep.Lsh(rep, limbBits)
		rep.Or(rep, big.NewInt(int64(limbs[i])))
	}
	return field.Cairo().NewElement(rep)
}
