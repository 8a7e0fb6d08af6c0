package trace

import (
	"testing"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
	"github.com/vybium/cairo-trace/internal/cairotrace/vm"
)

func TestNewTableIsZeroFilled(t *testing.T) {
	tbl := NewTable(StepRows)
	for r := 0; r < StepRows; r++ {
		for c := 0; c < NumColumns; c++ {
			if !tbl[r][c].IsZero() {
				t.Fatalf("cell (%d,%d) = %s, expected zero", r, c, &tbl[r][c])
			}
		}
	}
}

func TestAssembleSingleStep(t *testing.T) {
	fld := field.Cairo()
	flags := vm.Flags{DstReg: vm.AP, Op0Reg: vm.FP, Op1Src: vm.Op1SrcFP, ResLogic: vm.ResLogicAdd, PcUpdate: vm.PcUpdateRegular, ApUpdate: vm.ApUpdateAdd1, Opcode: vm.OpcodeAssertEq}
	offsets := vm.Offsets{Dst: 0, Op0: -2, Op1: -1}

	states := vm.RegisterStates{{PC: 10, AP: 20, FP: 20}}
	decodes := []vm.StepDecode{{Flags: flags, Offsets: offsets}}

	mem := vm.Memory{
		10: *fld.FromUint64(999),
		18: *fld.FromUint64(3),
		19: *fld.FromUint64(4),
		20: *fld.FromUint64(7),
	}
	operands, err := vm.ResolveOperands(states, decodes, mem)
	if err != nil {
		t.Fatalf("ResolveOperands failed: %v", err)
	}
	virtual := []vm.VirtualColumns{vm.DeriveVirtualColumns(flags, operands[0])}

	tbl, err := Assemble(states, decodes, operands, virtual)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if tbl.Rows() != StepRows {
		t.Fatalf("Rows() = %d, expected %d", tbl.Rows(), StepRows)
	}

	if !tbl[0][ColMemory].Equal(fld.FromUint64(10)) {
		t.Errorf("pc cell = %s, expected 10", &tbl[0][ColMemory])
	}
	if !tbl[8][ColMemory].Equal(fld.FromUint64(20)) {
		t.Errorf("dst_addr cell = %s, expected 20", &tbl[8][ColMemory])
	}
	if !tbl[9][ColMemory].Equal(fld.FromUint64(7)) {
		t.Errorf("dst_val cell = %s, expected 7 (memory at ap+0 = 20)", &tbl[9][ColMemory])
	}
	if !tbl[12][ColRegisters].Equal(&operands[0].Res) {
		t.Errorf("res cell = %s, expected %s", &tbl[12][ColRegisters], &operands[0].Res)
	}
	if !tbl[0][ColRegisters].Equal(fld.FromUint64(20)) {
		t.Errorf("ap cell = %s, expected 20", &tbl[0][ColRegisters])
	}
}

func TestAssembleRejectsMismatchedLengths(t *testing.T) {
	states := vm.RegisterStates{{PC: 10, AP: 20, FP: 20}}
	if _, err := Assemble(states, nil, nil, nil); err == nil {
		t.Error("Assemble should reject mismatched input lengths")
	}
}

func TestLog2Rows(t *testing.T) {
	cases := []struct {
		rows     int
		expected int
	}{
		{rows: 1, expected: 0},
		{rows: StepRows, expected: 4},
		{rows: 32, expected: 5},
		{rows: 3, expected: -1},
	}
	for _, c := range cases {
		tbl := NewTable(c.rows)
		if got := tbl.Log2Rows(); got != c.expected {
			t.Errorf("Log2Rows() with %d rows = %d, expected %d", c.rows, got, c.expected)
		}
	}
}
