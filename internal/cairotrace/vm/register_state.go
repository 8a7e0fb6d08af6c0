package vm

import "fmt"

// RegisterState is the VM's pointer triple at one executed step.
type RegisterState struct {
	PC uint64
	AP uint64
	FP uint64
}

// RegisterStates is the ordered, non-empty sequence of register states
// produced by a VM run, one per executed instruction.
type RegisterStates []RegisterState

// Steps reports the number of executed instructions.
func (r RegisterStates) Steps() int {
	return len(r)
}

// StepDecode bundles the decoded flags and offsets of a single step.
type StepDecode struct {
	Flags   Flags
	Offsets Offsets
}

// FlagsAndOffsets decodes the instruction word at each step's pc, in
// order. A memory miss or malformed instruction word aborts the whole
// call (§7 "Decode failure" / "Memory miss").
func (r RegisterStates) FlagsAndOffsets(mem Memory) ([]StepDecode, error) {
	decoded := make([]StepDecode, len(r))

	for i, state := range r {
		instruction, err := mem.Get(state.PC)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: %w", i, err)
		}

		word, err := instruction.LastLimb()
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: instruction word does not fit in 64 bits: %w", i, err)
		}

		flags, offsets, err := DecodeInstruction(word)
		if err != nil {
			return nil, fmt.Errorf("vm: step %d: %w", i, err)
		}

		decoded[i] = StepDecode{Flags: flags, Offsets: offsets}
	}

	return decoded, nil
}
