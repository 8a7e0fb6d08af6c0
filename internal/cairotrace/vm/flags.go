// Package vm decodes raw Cairo instruction words into their flag/offset
// representation and resolves the operand values a Cairo VM step produced,
// adapted from the teacher's internal/vybium-starks-vm/vm instruction
// decoder.
package vm

import (
	"fmt"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

// Register selects which VM pointer (ap or fp) an address is relative to.
type Register int

const (
	AP Register = iota
	FP
)

func (r Register) String() string {
	switch r {
	case AP:
		return "ap"
	case FP:
		return "fp"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Op1Src selects the source register op1's address is computed from.
type Op1Src int

const (
	Op1SrcOp0 Op1Src = iota
	Op1SrcImm
	Op1SrcFP
	Op1SrcAP
)

func (s Op1Src) String() string {
	switch s {
	case Op1SrcOp0:
		return "op0"
	case Op1SrcImm:
		return "imm"
	case Op1SrcFP:
		return "fp"
	case Op1SrcAP:
		return "ap"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ResLogic selects how res is derived from op0 and op1.
type ResLogic int

const (
	ResLogicOp1 ResLogic = iota
	ResLogicAdd
	ResLogicMul
	ResLogicUnconstrained
)

func (r ResLogic) String() string {
	switch r {
	case ResLogicOp1:
		return "op1"
	case ResLogicAdd:
		return "add"
	case ResLogicMul:
		return "mul"
	case ResLogicUnconstrained:
		return "unconstrained"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// PcUpdate selects how the program counter advances after a step.
type PcUpdate int

const (
	PcUpdateRegular PcUpdate = iota
	PcUpdateJump
	PcUpdateJumpRel
	PcUpdateJnz
)

func (p PcUpdate) String() string {
	switch p {
	case PcUpdateRegular:
		return "regular"
	case PcUpdateJump:
		return "jump"
	case PcUpdateJumpRel:
		return "jump_rel"
	case PcUpdateJnz:
		return "jnz"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ApUpdate selects how the allocation pointer advances after a step.
type ApUpdate int

const (
	ApUpdateRegular ApUpdate = iota
	ApUpdateAdd
	ApUpdateAdd1
	ApUpdateAdd2
)

func (a ApUpdate) String() string {
	switch a {
	case ApUpdateRegular:
		return "regular"
	case ApUpdateAdd:
		return "add"
	case ApUpdateAdd1:
		return "add1"
	case ApUpdateAdd2:
		return "add2"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// Opcode selects the instruction's high-level semantics.
type Opcode int

const (
	OpcodeNOp Opcode = iota
	OpcodeCall
	OpcodeRet
	OpcodeAssertEq
)

func (o Opcode) String() string {
	switch o {
	case OpcodeNOp:
		return "nop"
	case OpcodeCall:
		return "call"
	case OpcodeRet:
		return "ret"
	case OpcodeAssertEq:
		return "assert_eq"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// Flags is the decoded flag word of a single Cairo instruction: seven
// categorical fields packed into 15 bits of the instruction's high half.
type Flags struct {
	DstReg    Register
	Op0Reg    Register
	Op1Src    Op1Src
	ResLogic  ResLogic
	PcUpdate  PcUpdate
	ApUpdate  ApUpdate
	Opcode    Opcode
}

// Bit positions within the 15-bit flags word.
const (
	bitDstReg = iota
	bitOp0Reg
	bitOp1Imm
	bitOp1FP
	bitOp1AP
	bitResAdd
	bitResMul
	bitPcJumpAbs
	bitPcJumpRel
	bitPcJnz
	bitApAdd
	bitApAdd1
	bitOpcodeCall
	bitOpcodeRet
	bitOpcodeAssertEq
)

// rawWord packs the flags back into their 15-bit instruction encoding.
func (f Flags) rawWord() uint16 {
	var w uint16
	if f.DstReg == FP {
		w |= 1 << bitDstReg
	}
	if f.Op0Reg == FP {
		w |= 1 << bitOp0Reg
	}
	switch f.Op1Src {
	case Op1SrcImm:
		w |= 1 << bitOp1Imm
	case Op1SrcFP:
		w |= 1 << bitOp1FP
	case Op1SrcAP:
		w |= 1 << bitOp1AP
	}
	switch f.ResLogic {
	case ResLogicAdd:
		w |= 1 << bitResAdd
	case ResLogicMul:
		w |= 1 << bitResMul
	case ResLogicUnconstrained:
		w |= (1 << bitResAdd) | (1 << bitResMul)
	}
	switch f.PcUpdate {
	case PcUpdateJump:
		w |= 1 << bitPcJumpAbs
	case PcUpdateJumpRel:
		w |= 1 << bitPcJumpRel
	case PcUpdateJnz:
		w |= 1 << bitPcJnz
	}
	switch f.ApUpdate {
	case ApUpdateAdd:
		w |= 1 << bitApAdd
	case ApUpdateAdd1:
		w |= 1 << bitApAdd1
	case ApUpdateAdd2:
		w |= (1 << bitApAdd) | (1 << bitApAdd1)
	}
	switch f.Opcode {
	case OpcodeCall:
		w |= 1 << bitOpcodeCall
	case OpcodeRet:
		w |= 1 << bitOpcodeRet
	case OpcodeAssertEq:
		w |= 1 << bitOpcodeAssertEq
	}
	return w
}

// DecodeFlags unpacks a 15-bit flags word. Combinations with more than one
// bit set among a field's mutually exclusive bits are a decode failure
// (§7 "Decode failure"), except ap_update and res_logic's all-ones state,
// which are valid (ResLogicUnconstrained, ApUpdateAdd2).
func DecodeFlags(word uint16) (Flags, error) {
	bit := func(pos uint) bool { return word&(1<<pos) != 0 }

	var f Flags
	if bit(bitDstReg) {
		f.DstReg = FP
	} else {
		f.DstReg = AP
	}
	if bit(bitOp0Reg) {
		f.Op0Reg = FP
	} else {
		f.Op0Reg = AP
	}

	switch {
	case bit(bitOp1Imm) && !bit(bitOp1FP) && !bit(bitOp1AP):
		f.Op1Src = Op1SrcImm
	case bit(bitOp1FP) && !bit(bitOp1Imm) && !bit(bitOp1AP):
		f.Op1Src = Op1SrcFP
	case bit(bitOp1AP) && !bit(bitOp1Imm) && !bit(bitOp1FP):
		f.Op1Src = Op1SrcAP
	case !bit(bitOp1Imm) && !bit(bitOp1FP) && !bit(bitOp1AP):
		f.Op1Src = Op1SrcOp0
	default:
		return Flags{}, fmt.Errorf("vm: decode failure: invalid op1_src bit pattern in flags word %#x", word)
	}

	switch {
	case bit(bitResAdd) && bit(bitResMul):
		f.ResLogic = ResLogicUnconstrained
	case bit(bitResAdd):
		f.ResLogic = ResLogicAdd
	case bit(bitResMul):
		f.ResLogic = ResLogicMul
	default:
		f.ResLogic = ResLogicOp1
	}

	switch {
	case bit(bitPcJumpAbs) && !bit(bitPcJumpRel) && !bit(bitPcJnz):
		f.PcUpdate = PcUpdateJump
	case bit(bitPcJumpRel) && !bit(bitPcJumpAbs) && !bit(bitPcJnz):
		f.PcUpdate = PcUpdateJumpRel
	case bit(bitPcJnz) && !bit(bitPcJumpAbs) && !bit(bitPcJumpRel):
		f.PcUpdate = PcUpdateJnz
	case !bit(bitPcJumpAbs) && !bit(bitPcJumpRel) && !bit(bitPcJnz):
		f.PcUpdate = PcUpdateRegular
	default:
		return Flags{}, fmt.Errorf("vm: decode failure: invalid pc_update bit pattern in flags word %#x", word)
	}

	switch {
	case bit(bitApAdd) && bit(bitApAdd1):
		f.ApUpdate = ApUpdateAdd2
	case bit(bitApAdd):
		f.ApUpdate = ApUpdateAdd
	case bit(bitApAdd1):
		f.ApUpdate = ApUpdateAdd1
	default:
		f.ApUpdate = ApUpdateRegular
	}

	switch {
	case bit(bitOpcodeCall) && !bit(bitOpcodeRet) && !bit(bitOpcodeAssertEq):
		f.Opcode = OpcodeCall
	case bit(bitOpcodeRet) && !bit(bitOpcodeCall) && !bit(bitOpcodeAssertEq):
		f.Opcode = OpcodeRet
	case bit(bitOpcodeAssertEq) && !bit(bitOpcodeCall) && !bit(bitOpcodeRet):
		f.Opcode = OpcodeAssertEq
	case !bit(bitOpcodeCall) && !bit(bitOpcodeRet) && !bit(bitOpcodeAssertEq):
		f.Opcode = OpcodeNOp
	default:
		return Flags{}, fmt.Errorf("vm: decode failure: invalid opcode bit pattern in flags word %#x", word)
	}

	return f, nil
}

// ToTraceRepresentation returns the 16-element bit-prefix encoding the AIR
// consumes: cell k holds floor(rawWord/2^k), so cell[k] - 2*cell[k+1]
// recovers bit k of the flags word for any constraint that needs to
// isolate a single flag bit (e.g. the Jnz bit used by t0, §4.2).
func (f Flags) ToTraceRepresentation() [16]field.Element {
	fld := field.Cairo()
	word := uint64(f.rawWord())

	var out [16]field.Element
	for k := 0; k < 16; k++ {
		out[k] = *fld.FromUint64(word >> uint(k))
	}
	return out
}
