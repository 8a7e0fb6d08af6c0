package vm

import (
	"testing"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

func TestRegisterStatesFlagsAndOffsets(t *testing.T) {
	flags := Flags{DstReg: AP, Op0Reg: FP, Op1Src: Op1SrcImm, ResLogic: ResLogicAdd, PcUpdate: PcUpdateRegular, ApUpdate: ApUpdateAdd1, Opcode: OpcodeAssertEq}
	offsets := Offsets{Dst: 0, Op0: -2, Op1: 1}
	word := encodeInstruction(flags, offsets)

	states := RegisterStates{{PC: 100, AP: 20, FP: 20}}
	mem := make(Memory)
	mem[100] = *field.Cairo().FromUint64(word)

	decodes, err := states.FlagsAndOffsets(mem)
	if err != nil {
		t.Fatalf("FlagsAndOffsets failed: %v", err)
	}
	if len(decodes) != 1 {
		t.Fatalf("expected 1 decode, got %d", len(decodes))
	}
	if decodes[0].Flags != flags {
		t.Errorf("flags mismatch: got %+v, expected %+v", decodes[0].Flags, flags)
	}
	if decodes[0].Offsets != offsets {
		t.Errorf("offsets mismatch: got %+v, expected %+v", decodes[0].Offsets, offsets)
	}
}

func TestRegisterStatesSteps(t *testing.T) {
	states := RegisterStates{{PC: 1, AP: 2, FP: 2}, {PC: 2, AP: 3, FP: 2}}
	if states.Steps() != 2 {
		t.Errorf("Steps() = %d, expected 2", states.Steps())
	}
}

func TestRegisterStatesFlagsAndOffsetsMemoryMiss(t *testing.T) {
	states := RegisterStates{{PC: 100, AP: 20, FP: 20}}
	mem := make(Memory)

	if _, err := states.FlagsAndOffsets(mem); err == nil {
		t.Error("FlagsAndOffsets should fail when pc is not in memory")
	}
}
