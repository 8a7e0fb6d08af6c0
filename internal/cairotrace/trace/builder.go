package trace

import (
	"fmt"

	"github.com/vybium/cairo-trace/internal/cairotrace/publicinput"
	"github.com/vybium/cairo-trace/internal/cairotrace/vm"
)

// Build runs the full pipeline — decode, resolve operands, derive virtual
// columns, assemble, post-process — producing a finished trace table and
// updating pub with the range-check bounds the builder discovered. mem and
// states are read-only; pub is the only mutated input.
func Build(states vm.RegisterStates, mem vm.Memory, pub *publicinput.PublicInputs) (Table, error) {
	if states.Steps() == 0 {
		return nil, fmt.Errorf("trace: cannot build a trace with zero steps")
	}

	decodes, err := states.FlagsAndOffsets(mem)
	if err != nil {
		return nil, fmt.Errorf("trace: decoding instructions: %w", err)
	}

	operands, err := vm.ResolveOperands(states, decodes, mem)
	if err != nil {
		return nil, fmt.Errorf("trace: resolving operands: %w", err)
	}

	virtual := make([]vm.VirtualColumns, len(decodes))
	for i := range decodes {
		virtual[i] = vm.DeriveVirtualColumns(decodes[i].Flags, operands[i])
	}

	t, err := Assemble(states, decodes, operands, virtual)
	if err != nil {
		return nil, fmt.Errorf("trace: assembling columns: %w", err)
	}

	t, err = PostProcess(t, states.Steps(), pub)
	if err != nil {
		return nil, fmt.Errorf("trace: post-processing: %w", err)
	}

	return t, nil
}
