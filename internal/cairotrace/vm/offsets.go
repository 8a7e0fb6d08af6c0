package vm

import (
	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

// offsetBias is added to each signed offset before it is packed into an
// instruction word's 16-bit slot (so the wire value is always unsigned).
const offsetBias = 1 << 15

// Offsets holds the three signed 16-bit operand offsets of a step, already
// unbiased.
type Offsets struct {
	Dst int16
	Op0 int16
	Op1 int16
}

// decodeOffset removes the bias from a packed 16-bit offset field.
func decodeOffset(biased uint16) int16 {
	return int16(int32(biased) - offsetBias)
}

// Biased re-adds the encoding bias, recovering the raw unsigned 16-bit wire
// value of each offset. The range-check argument operates on this form: it
// is what the instruction word actually carries in its offset slots, and it
// is what keeps rc_min/rc_max representable as the plain u16 the public
// inputs contract requires (a signed offset cannot be).
func (o Offsets) Biased() (dst, op0, op1 uint16) {
	return uint16(int32(o.Dst) + offsetBias), uint16(int32(o.Op0) + offsetBias), uint16(int32(o.Op1) + offsetBias)
}

// ToTraceRepresentation lifts the three offsets into field elements, in
// (off_dst, off_op1, off_op0) order to match their placement in §4.3
// (sub-rows 0, 4, 8 of column 0). The values placed are the biased wire
// offsets so the same cells can feed the range-check hole-filling pass
// directly, without a second decoded copy of the offsets.
func (o Offsets) ToTraceRepresentation() (field.Element, field.Element, field.Element) {
	fld := field.Cairo()
	dst, op0, op1 := o.Biased()
	return *fld.FromUint64(uint64(dst)), *fld.FromUint64(uint64(op1)), *fld.FromUint64(uint64(op0))
}
