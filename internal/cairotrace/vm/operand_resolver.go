package vm

import (
	"fmt"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

// StepOperands holds every quantity the operand resolver derives for one
// step: the three operand addresses and values, the arithmetic result,
// and the instruction word fetched from pc (§4.1, §4.2).
type StepOperands struct {
	Instruction field.Element

	DstAddr uint64
	DstVal  field.Element

	Op0Addr uint64
	Op0Val  field.Element

	Op1Addr uint64
	Op1Val  field.Element

	Res field.Element
}

func regValue(reg Register, state RegisterState) uint64 {
	if reg == FP {
		return state.FP
	}
	return state.AP
}

// addAddress performs a signed add of a 16-bit offset into a 64-bit base
// address, failing on overflow or underflow (§7 "Address arithmetic
// overflow").
func addAddress(base uint64, offset int16) (uint64, error) {
	if offset >= 0 {
		delta := uint64(offset)
		result := base + delta
		if result < base {
			return 0, fmt.Errorf("vm: address arithmetic overflow: %d + %d", base, offset)
		}
		return result, nil
	}

	delta := uint64(-int64(offset))
	if delta > base {
		return 0, fmt.Errorf("vm: address arithmetic overflow: %d + %d", base, offset)
	}
	return base - delta, nil
}

// ResolveOperands derives dst/op0/op1/res for every step, applies the
// Call/AssertEq opcode overrides, and returns the per-step operands in
// step order. All Jnz-branch inversions are deferred and performed as a
// single batch (§11 digest on field.BatchInversion) since each step's
// resolution depends only on that step's inputs (§5).
func ResolveOperands(states RegisterStates, decodes []StepDecode, mem Memory) ([]StepOperands, error) {
	if len(states) != len(decodes) {
		return nil, fmt.Errorf("vm: register state count (%d) does not match decode count (%d)", len(states), len(decodes))
	}

	fld := field.Cairo()
	n := len(states)
	operands := make([]StepOperands, n)

	jnzSteps := make([]int, 0, n)
	jnzDst := make([]*field.Element, 0, n)

	for i := 0; i < n; i++ {
		state := states[i]
		flags := decodes[i].Flags
		offsets := decodes[i].Offsets

		instruction, err := mem.Get(state.PC)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: %w", i, err)
		}

		dstAddr, err := addAddress(regValue(flags.DstReg, state), offsets.Dst)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: dst: %w", i, err)
		}
		dstVal, err := mem.Get(dstAddr)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: dst: %w", i, err)
		}

		op0Addr, err := addAddress(regValue(flags.Op0Reg, state), offsets.Op0)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: op0: %w", i, err)
		}
		op0Val, err := mem.Get(op0Addr)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: op0: %w", i, err)
		}

		var op1Base uint64
		switch flags.Op1Src {
		case Op1SrcOp0:
			op1Base, err = op0Val.LastLimb()
			if err != nil {
				return nil, fmt.Errorf("vm: step %d: op1 address from op0: %w", i, err)
			}
		case Op1SrcImm:
			op1Base = state.PC
		case Op1SrcAP:
			op1Base = state.AP
		case Op1SrcFP:
			op1Base = state.FP
		default:
			return nil, fmt.Errorf("vm: step %d: unrecognized op1_src %v", i, flags.Op1Src)
		}
		op1Addr, err := addAddress(op1Base, offsets.Op1)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: op1: %w", i, err)
		}
		op1Val, err := mem.Get(op1Addr)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: op1: %w", i, err)
		}

		op := StepOperands{
			Instruction: instruction,
			DstAddr:     dstAddr,
			DstVal:      dstVal,
			Op0Addr:     op0Addr,
			Op0Val:      op0Val,
			Op1Addr:     op1Addr,
			Op1Val:      op1Val,
		}

		switch flags.PcUpdate {
		case PcUpdateJnz:
			if flags.ResLogic != ResLogicOp1 || flags.Opcode != OpcodeNOp ||
				(flags.ApUpdate != ApUpdateRegular && flags.ApUpdate != ApUpdateAdd1 && flags.ApUpdate != ApUpdateAdd2) {
				return nil, fmt.Errorf("vm: step %d: undefined-behavior instruction: jnz requires res_logic=op1, opcode=nop, ap_update in {regular,add1,add2}", i)
			}
			if dstVal.IsZero() {
				op.Res = *fld.Zero()
			} else {
				jnzSteps = append(jnzSteps, i)
				jnzDst = append(jnzDst, &dstVal)
			}
		case PcUpdateRegular, PcUpdateJump, PcUpdateJumpRel:
			switch flags.ResLogic {
			case ResLogicOp1:
				op.Res = op1Val
			case ResLogicAdd:
				op.Res = *op0Val.Add(&op1Val)
			case ResLogicMul:
				op.Res = *op0Val.Mul(&op1Val)
			default:
				return nil, fmt.Errorf("vm: step %d: undefined-behavior instruction: res_logic=%v is unconstrained for pc_update=%v", i, flags.ResLogic, flags.PcUpdate)
			}
		default:
			return nil, fmt.Errorf("vm: step %d: unrecognized pc_update %v", i, flags.PcUpdate)
		}

		operands[i] = op
	}

	if len(jnzDst) > 0 {
		inverses, err := field.BatchInversion(jnzDst)
		if err != nil {
			return nil, fmt.Errorf("vm: batch-inverting jnz dst values: %w", err)
		}
		for k, stepIdx := range jnzSteps {
			operands[stepIdx].Res = *inverses[k]
		}
	}

	for i := 0; i < n; i++ {
		flags := decodes[i].Flags
		state := states[i]
		switch flags.Opcode {
		case OpcodeCall:
			instructionSize := uint64(1)
			if flags.Op1Src == Op1SrcImm {
				instructionSize = 2
			}
			operands[i].Op0Val = *fld.FromUint64(state.PC + instructionSize)
			operands[i].DstVal = *fld.FromUint64(state.FP)
		case OpcodeAssertEq:
			operands[i].Res = operands[i].DstVal
		}
	}

	return operands, nil
}
