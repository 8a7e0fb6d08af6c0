// Package cairotrace builds a Cairo-style execution trace table from a
// VM run's register states and memory, ready for a STARK prover's
// permutation and range-check arguments.
//
// # Features
//
//   - Decodes raw 63-bit Cairo instruction words into flags and offsets.
//   - Resolves per-step operand addresses/values and the derived res,
//     t0, t1 and mul quantities, batch-inverting every jump-not-zero
//     branch's dst in one pass.
//   - Assembles the decoded and resolved quantities into the "plain"
//     8-column, 16-row-per-step AIR layout.
//   - Runs every post-processing pass the permutation arguments need:
//     address sorting, range-check hole filling, memory hole filling,
//     public-memory dummy accesses, and power-of-two padding.
//   - Optionally computes a TIP-0006-style program attestation digest.
//
// # Quick start
//
//	pub := &cairotrace.PublicInputs{
//		PublicMemory: map[uint64]cairotrace.FieldElement{ /* ... */ },
//		CodeLen:      len(program),
//	}
//	table, err := cairotrace.Build(states, memory, pub, cairotrace.DefaultConfig())
//	if err != nil {
//		var be *cairotrace.BuilderError
//		if errors.As(err, &be) {
//			// be.Code identifies which §7 fatal condition occurred
//		}
//	}
//
// # Architecture
//
// Build is a thin, validating wrapper around four internal packages: vm
// (decode + operand resolution + virtual columns), trace (column assembly +
// post-processing), publicinput (the verifier record), and attestation (the
// optional program digest). The internal fingerprint package is not called
// by Build. The pipeline is single-pass and synchronous: it takes
// exclusive ownership of the trace under construction and mutates only
// the public-input record among its inputs.
package cairotrace
