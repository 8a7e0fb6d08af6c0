package vm

import "github.com/vybium/cairo-trace/internal/cairotrace/field"

// VirtualColumns holds the derived per-step quantities that have no
// direct VM-register counterpart: the jump-not-zero helper terms and the
// op0*op1 witness (§4.2).
type VirtualColumns struct {
	T0  field.Element
	T1  field.Element
	Mul field.Element
}

// DeriveVirtualColumns computes t0, t1 and mul for one step from its
// decoded flags and resolved operands. t0 isolates the Jnz bit of the
// pc_update flag from the bit-prefix encoding: bitPrefix[9] - 2*bitPrefix[10]
// recovers bit 9 of the raw flags word, which is exactly the Jnz bit.
func DeriveVirtualColumns(flags Flags, operands StepOperands) VirtualColumns {
	bitPrefix := flags.ToTraceRepresentation()

	jnzBit := bitPrefix[9].Sub(bitPrefix[10].Add(&bitPrefix[10]))
	t0 := jnzBit.Mul(&operands.DstVal)
	t1 := t0.Mul(&operands.Res)
	mul := operands.Op0Val.Mul(&operands.Op1Val)

	return VirtualColumns{T0: *t0, T1: *t1, Mul: *mul}
}
