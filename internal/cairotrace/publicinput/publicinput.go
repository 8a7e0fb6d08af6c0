// Package publicinput holds the values a verifier needs alongside a trace:
// the program's public memory segment, its length, and the range-check
// bounds the builder derived while assembling the trace.
package publicinput

import (
	"fmt"
	"sort"

	vcfield "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

// PublicInputs is the external-facing summary of a built trace. CodeLen is
// the number of consecutive addresses, starting at address 1, that hold
// program instructions rather than execution data; gaps at or below
// address CodeLen are not reported as memory holes.
type PublicInputs struct {
	PublicMemory  map[uint64]field.Element
	CodeLen       int
	RangeCheckMin *uint16
	RangeCheckMax *uint16

	// ProgramDigest is populated only when attestation is enabled; see
	// the attestation package.
	ProgramDigest *[5]vcfield.Element
}

// Validate checks the internal consistency of a set of public inputs
// before they are handed to a verifier.
func (p *PublicInputs) Validate() error {
	if p.CodeLen < 0 {
		return fmt.Errorf("publicinput: code length %d must not be negative", p.CodeLen)
	}
	if p.RangeCheckMin != nil && p.RangeCheckMax != nil && *p.RangeCheckMin > *p.RangeCheckMax {
		return fmt.Errorf("publicinput: range_check_min %d exceeds range_check_max %d", *p.RangeCheckMin, *p.RangeCheckMax)
	}
	return nil
}

// SortedAddresses returns the public memory addresses in ascending order.
func (p *PublicInputs) SortedAddresses() []uint64 {
	addrs := make([]uint64, 0, len(p.PublicMemory))
	for addr := range p.PublicMemory {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
