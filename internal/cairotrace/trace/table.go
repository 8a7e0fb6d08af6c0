package trace

import (
	"fmt"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
	"github.com/vybium/cairo-trace/internal/cairotrace/mathutil"
	"github.com/vybium/cairo-trace/internal/cairotrace/vm"
)

// Table is the dense execution trace: Rows() rows of NumColumns field
// elements each.
type Table [][]field.Element

// NewTable allocates a zero-filled table of the given row count.
func NewTable(rows int) Table {
	zero := field.Cairo().Zero()
	t := make(Table, rows)
	for r := range t {
		row := make([]field.Element, NumColumns)
		for c := range row {
			row[c] = *zero
		}
		t[r] = row
	}
	return t
}

// Rows returns the number of rows currently in the table.
func (t Table) Rows() int { return len(t) }

// Log2Rows returns the base-2 logarithm of the table's row count, the
// padded-height figure a STARK prover publishes alongside the trace
// itself (the teacher's CLI reports this same quantity as "max log2
// padded height"). It is only meaningful once post-processing's final
// power-of-two padding pass has run; it returns -1 on a row count that
// isn't a power of two.
func (t Table) Log2Rows() int { return mathutil.Log2(t.Rows()) }

// Assemble lays out the decoded flags, offsets and resolved operands of
// every step into a freshly allocated table, following the fixed placement
// declared in layout.go. The returned table has exactly steps*StepRows
// rows; padding to a power of two happens in a later post-processing pass.
func Assemble(states vm.RegisterStates, decodes []vm.StepDecode, operands []vm.StepOperands, virtual []vm.VirtualColumns) (Table, error) {
	steps := states.Steps()
	if len(decodes) != steps || len(operands) != steps || len(virtual) != steps {
		return nil, fmt.Errorf("trace: mismatched input lengths (states=%d decodes=%d operands=%d virtual=%d)",
			steps, len(decodes), len(operands), len(virtual))
	}

	t := NewTable(steps * StepRows)
	fld := field.Cairo()

	for step := 0; step < steps; step++ {
		base := step * StepRows
		state := states[step]
		decode := decodes[step]
		op := operands[step]
		vc := virtual[step]

		bitPrefix := decode.Flags.ToTraceRepresentation()
		for k := 0; k < StepRows; k++ {
			t[base+k][ColFlags] = bitPrefix[k]
		}

		offDst, offOp1, offOp0 := decode.Offsets.ToTraceRepresentation()
		t[base+subRowOffDst][ColOffsets] = offDst
		t[base+subRowOffOp1][ColOffsets] = offOp1
		t[base+subRowOffOp0][ColOffsets] = offOp0

		t[base+subRowPC][ColMemory] = *fld.FromUint64(state.PC)
		t[base+subRowInstr][ColMemory] = op.Instruction
		t[base+subRowOp0Addr][ColMemory] = *fld.FromUint64(op.Op0Addr)
		t[base+subRowOp0Val][ColMemory] = op.Op0Val
		t[base+subRowDstAddr][ColMemory] = *fld.FromUint64(op.DstAddr)
		t[base+subRowDstVal][ColMemory] = op.DstVal
		t[base+subRowOp1Addr][ColMemory] = *fld.FromUint64(op.Op1Addr)
		t[base+subRowOp1Val][ColMemory] = op.Op1Val

		t[base+subRowAP][ColRegisters] = *fld.FromUint64(state.AP)
		t[base+subRowFP][ColRegisters] = *fld.FromUint64(state.FP)
		t[base+subRowT0][ColRegisters] = vc.T0
		t[base+subRowT1][ColRegisters] = vc.T1
		t[base+subRowMul][ColRegisters] = vc.Mul
		t[base+subRowRes][ColRegisters] = op.Res
	}

	return t, nil
}
