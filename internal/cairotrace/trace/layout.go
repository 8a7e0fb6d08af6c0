// Package trace assembles per-step register/flag/operand data into the
// dense execution trace table the prover consumes, and runs the
// post-processing passes (range-check hole filling, memory hole filling,
// public-memory padding, power-of-two padding) that bring the table to its
// final shape.
package trace

// Column layout. Each execution step occupies StepRows consecutive rows;
// within a step, individual quantities live at a fixed sub-row of a fixed
// column. The table is kept as a single declarative placement list rather
// than scattered magic numbers through the assembly code, so the layout can
// be read and audited in one place.
const (
	StepRows   = 16
	NumColumns = 8
)

// Column indices. Columns 2 and 4 hold post-processing output; columns 6
// and 7 are reserved for other AIR bookkeeping not modeled by this builder.
const (
	ColOffsets         = 0 // off_dst, off_op1, off_op0 (biased wire form)
	ColFlags           = 1 // 16-cell bit-prefix decomposition of the flags word
	ColRangeCheckHoles = 2 // RC_HOLES: one value per final trace row
	ColMemory          = 3 // pc/instr/op0/dst/op1 addresses and values
	ColExtraAddr       = 4 // EXTRA_ADDR: one value per final trace row
	ColRegisters       = 5 // ap, t0, mul, fp, t1, res
	ColReserved6       = 6
	ColReserved7       = 7
)

// Exported column-index aliases matching the AIR's fixed naming contract.
// Several share a column: the contract names a logical quantity, not a
// unique storage location, and FRAME_PC/FRAME_DST_ADDR/FRAME_OP0_ADDR/
// FRAME_OP1_ADDR are all sub-rows of the single memory-access column.
const (
	FramePC      = ColMemory
	FrameDstAddr = ColMemory
	FrameOp0Addr = ColMemory
	FrameOp1Addr = ColMemory
	OffDst       = ColOffsets
	OffOp0       = ColOffsets
	OffOp1       = ColOffsets
	RcHoles      = ColRangeCheckHoles
	ExtraAddr    = ColExtraAddr
)

// Sub-row placements within a 16-row step. Values not listed here (for
// example every row of ColFlags, which holds one bit-prefix cell per
// sub-row) are filled by dedicated loops rather than a table entry.
const (
	subRowOffDst  = 0
	subRowPC      = 0
	subRowAP      = 0
	subRowInstr   = 1
	subRowT0      = 2
	subRowOffOp1  = 4
	subRowOp0Addr = 4
	subRowMul     = 4
	subRowOp0Val  = 5
	subRowOffOp0  = 8
	subRowDstAddr = 8
	subRowFP      = 8
	subRowDstVal  = 9
	subRowT1      = 10
	subRowOp1Addr = 12
	subRowRes     = 12
	subRowOp1Val  = 13
)
