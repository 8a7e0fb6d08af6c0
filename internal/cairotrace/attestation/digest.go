// Package attestation computes an optional TIP-0006-style program
// attestation digest over a trace's program segment, for callers doing
// recursive-verification bookkeeping. It changes no trace invariant; it is
// pure metadata surfaced on PublicInputs.ProgramDigest when requested.
package attestation

import (
	"fmt"

	vcfield "github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

// ProgramDigest hashes the program segment of public memory — addresses
// 1..codeLen, in order — into a single Poseidon hash element, returned in
// the first slot of a 5-element digest whose other four slots are zero. Each
// Cairo field element's 64-bit representative is projected into a
// vybium-crypto field element before hashing; a program word wider than 64
// bits cannot be attested this way and is a fatal error.
func ProgramDigest(publicMemory map[uint64]field.Element, codeLen int) ([5]vcfield.Element, error) {
	if codeLen < 0 {
		return [5]vcfield.Element{}, fmt.Errorf("attestation: negative code length %d", codeLen)
	}

	elements := make([]vcfield.Element, 0, codeLen)
	for addr := uint64(1); addr <= uint64(codeLen); addr++ {
		word, ok := publicMemory[addr]
		if !ok {
			return [5]vcfield.Element{}, fmt.Errorf("attestation: program segment address %d is missing from public memory", addr)
		}
		limb, err := word.LastLimb()
		if err != nil {
			return [5]vcfield.Element{}, fmt.Errorf("attestation: program word at address %d does not fit in 64 bits: %w", addr, err)
		}
		elements = append(elements, vcfield.New(limb))
	}

	digestElement := hash.PoseidonHash(elements)
	return [5]vcfield.Element{digestElement, vcfield.Zero, vcfield.Zero, vcfield.Zero, vcfield.Zero}, nil
}
