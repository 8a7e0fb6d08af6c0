package cairotrace

import (
	"github.com/vybium/cairo-trace/internal/cairotrace/config"
	"github.com/vybium/cairo-trace/internal/cairotrace/field"
	"github.com/vybium/cairo-trace/internal/cairotrace/publicinput"
	"github.com/vybium/cairo-trace/internal/cairotrace/trace"
	"github.com/vybium/cairo-trace/internal/cairotrace/vm"
)

// FieldElement is an element of the prime field the trace is built over.
type FieldElement = field.Element

// RegisterState is the VM's pointer triple (pc, ap, fp) at one executed
// step.
type RegisterState = vm.RegisterState

// RegisterStates is the ordered sequence of register states a VM run
// produced, one per executed instruction.
type RegisterStates = vm.RegisterStates

// Memory is the total, address-indexed map of field elements a VM run
// touched.
type Memory = vm.Memory

// Config controls how a trace is assembled; see DefaultConfig.
type Config = config.Config

// PublicInputs is the public-memory, code-length and range-check record a
// verifier needs alongside a built trace.
type PublicInputs = publicinput.PublicInputs

// Table is the assembled, post-processed execution trace.
type Table = trace.Table

// DefaultConfig returns the builder's default configuration.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// FromUint64 lifts an unsigned 64-bit integer into the Cairo field, for
// callers assembling Memory/PublicInputs without importing the internal
// field package directly.
func FromUint64(value uint64) FieldElement {
	return *field.Cairo().FromUint64(value)
}
