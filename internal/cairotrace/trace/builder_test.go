package trace

import (
	"testing"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
	"github.com/vybium/cairo-trace/internal/cairotrace/publicinput"
	"github.com/vybium/cairo-trace/internal/cairotrace/vm"
)

// encodeInstruction mirrors the wire layout vm.DecodeInstruction expects:
// three biased 16-bit offsets followed by the 15-bit flags word, packed
// low-to-high into a 64-bit word. Kept local to this test package, the same
// way the vm package's own tests build instruction words from flags.
func encodeInstruction(f vm.Flags, o vm.Offsets) uint64 {
	const bias = 1 << 15
	dst := uint16(int32(o.Dst) + bias)
	op0 := uint16(int32(o.Op0) + bias)
	op1 := uint16(int32(o.Op1) + bias)

	var flagsWord uint16
	if f.DstReg == vm.FP {
		flagsWord |= 1 << 0
	}
	if f.Op0Reg == vm.FP {
		flagsWord |= 1 << 1
	}
	switch f.Op1Src {
	case vm.Op1SrcImm:
		flagsWord |= 1 << 2
	case vm.Op1SrcFP:
		flagsWord |= 1 << 3
	case vm.Op1SrcAP:
		flagsWord |= 1 << 4
	}
	switch f.ResLogic {
	case vm.ResLogicAdd:
		flagsWord |= 1 << 5
	case vm.ResLogicMul:
		flagsWord |= 1 << 6
	case vm.ResLogicUnconstrained:
		flagsWord |= (1 << 5) | (1 << 6)
	}
	switch f.PcUpdate {
	case vm.PcUpdateJump:
		flagsWord |= 1 << 7
	case vm.PcUpdateJumpRel:
		flagsWord |= 1 << 8
	case vm.PcUpdateJnz:
		flagsWord |= 1 << 9
	}
	switch f.ApUpdate {
	case vm.ApUpdateAdd:
		flagsWord |= 1 << 10
	case vm.ApUpdateAdd1:
		flagsWord |= 1 << 11
	case vm.ApUpdateAdd2:
		flagsWord |= (1 << 10) | (1 << 11)
	}
	switch f.Opcode {
	case vm.OpcodeCall:
		flagsWord |= 1 << 12
	case vm.OpcodeRet:
		flagsWord |= 1 << 13
	case vm.OpcodeAssertEq:
		flagsWord |= 1 << 14
	}

	word := uint64(dst)
	word |= uint64(op0) << 16
	word |= uint64(op1) << 32
	word |= uint64(flagsWord) << 48
	return word
}

func TestBuildSingleAssertEqStep(t *testing.T) {
	fld := field.Cairo()
	flags := vm.Flags{DstReg: vm.AP, Op0Reg: vm.FP, Op1Src: vm.Op1SrcFP, ResLogic: vm.ResLogicAdd, PcUpdate: vm.PcUpdateRegular, ApUpdate: vm.ApUpdateAdd1, Opcode: vm.OpcodeAssertEq}
	offsets := vm.Offsets{Dst: 0, Op0: -2, Op1: -1}
	word := encodeInstruction(flags, offsets)

	states := vm.RegisterStates{{PC: 10, AP: 20, FP: 20}}
	mem := vm.Memory{
		10: *fld.FromUint64(word),
		18: *fld.FromUint64(3),
		19: *fld.FromUint64(4),
		20: *fld.FromUint64(7),
	}
	pub := &publicinput.PublicInputs{PublicMemory: map[uint64]field.Element{}, CodeLen: 0}

	tbl, err := Build(states, mem, pub)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if tbl.Rows() == 0 || tbl.Rows()&(tbl.Rows()-1) != 0 {
		t.Errorf("Rows() = %d, expected a positive power of two", tbl.Rows())
	}
	if pub.RangeCheckMin == nil || pub.RangeCheckMax == nil {
		t.Fatal("Build should populate RangeCheckMin/Max")
	}
	if !tbl[9][ColMemory].Equal(fld.FromUint64(7)) {
		t.Errorf("dst_val cell = %s, expected 7", &tbl[9][ColMemory])
	}
}

func TestBuildRejectsZeroSteps(t *testing.T) {
	pub := &publicinput.PublicInputs{}
	if _, err := Build(vm.RegisterStates{}, vm.Memory{}, pub); err == nil {
		t.Error("Build should reject an empty register-state sequence")
	}
}

func TestBuildPropagatesDecodeErrors(t *testing.T) {
	states := vm.RegisterStates{{PC: 10, AP: 20, FP: 20}}
	pub := &publicinput.PublicInputs{}
	if _, err := Build(states, vm.Memory{}, pub); err == nil {
		t.Error("Build should surface a memory-miss error from the decode stage")
	}
}

func TestBuildWithPublicMemoryExtendsExtraAddr(t *testing.T) {
	fld := field.Cairo()
	flags := vm.Flags{DstReg: vm.AP, Op0Reg: vm.FP, Op1Src: vm.Op1SrcFP, ResLogic: vm.ResLogicAdd, PcUpdate: vm.PcUpdateRegular, ApUpdate: vm.ApUpdateAdd1, Opcode: vm.OpcodeAssertEq}
	offsets := vm.Offsets{Dst: 0, Op0: -2, Op1: -1}
	word := encodeInstruction(flags, offsets)

	states := vm.RegisterStates{{PC: 10, AP: 20, FP: 20}}
	mem := vm.Memory{
		10: *fld.FromUint64(word),
		18: *fld.FromUint64(3),
		19: *fld.FromUint64(4),
		20: *fld.FromUint64(7),
	}
	pub := &publicinput.PublicInputs{
		PublicMemory: map[uint64]field.Element{1: *fld.FromUint64(0), 2: *fld.FromUint64(0)},
		CodeLen:      2,
	}

	tbl, err := Build(states, mem, pub)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// Sorted addresses are 10, 18, 19, 20 with CodeLen 2, so the memory holes
	// 11..17 fill EXTRA_ADDR rows 0..6 and the two dummies follow at rows 7, 8.
	if !tbl[7][ColExtraAddr].IsZero() || !tbl[8][ColExtraAddr].IsZero() {
		t.Errorf("public-memory dummy rows should be zero in EXTRA_ADDR")
	}
}
