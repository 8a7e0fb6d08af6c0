package vm

import (
	"fmt"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

// Memory is a partial mapping from a Cairo address to the field element
// stored there. It is total only over the addresses the VM run actually
// accessed; any other lookup is a fatal inconsistency (§7 "Memory miss").
type Memory map[uint64]field.Element

// Get looks up addr, failing fatally if the VM run never touched it.
func (m Memory) Get(addr uint64) (field.Element, error) {
	val, ok := m[addr]
	if !ok {
		return field.Element{}, fmt.Errorf("vm: memory miss at address %d", addr)
	}
	return val, nil
}
