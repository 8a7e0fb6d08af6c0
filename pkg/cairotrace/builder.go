package cairotrace

import (
	"fmt"
	"strings"

	"github.com/vybium/cairo-trace/internal/cairotrace/attestation"
	"github.com/vybium/cairo-trace/internal/cairotrace/field"
	"github.com/vybium/cairo-trace/internal/cairotrace/trace"
)

// Build decodes states against mem, assembles the execution trace, runs
// every post-processing pass, and writes range_check_min/max (and,
// depending on cfg, a program attestation digest) into pub. mem and states
// are read-only; pub and the returned table are the only mutated/produced
// values.
//
// Build is the sole entry point this package exposes: it takes ownership
// of the whole pipeline described in spec.md §2, from instruction decode
// through power-of-two padding.
func Build(states RegisterStates, mem Memory, pub *PublicInputs, cfg *Config) (Table, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &BuilderError{Code: ErrInvalidConfig, Message: "invalid configuration", Cause: err}
	}
	if cfg.FieldModulus.Cmp(field.CairoPrime) != 0 {
		return nil, &BuilderError{Code: ErrInvalidConfig, Message: "this builder only supports the Cairo prime field"}
	}

	t, err := trace.Build(states, mem, pub)
	if err != nil {
		return nil, classifyBuildError(err)
	}

	if cfg.AssertedRangeCheckMin != nil {
		if pub.RangeCheckMin == nil || pub.RangeCheckMax == nil ||
			*pub.RangeCheckMin != *cfg.AssertedRangeCheckMin || *pub.RangeCheckMax != *cfg.AssertedRangeCheckMax {
			return nil, &BuilderError{
				Code: ErrAssertedBoundsMismatch,
				Message: fmt.Sprintf("derived range-check bounds [%d, %d] do not match asserted bounds [%d, %d]",
					derefOrZero(pub.RangeCheckMin), derefOrZero(pub.RangeCheckMax),
					*cfg.AssertedRangeCheckMin, *cfg.AssertedRangeCheckMax),
			}
		}
	}

	if cfg.EnableProgramDigest {
		digest, err := attestation.ProgramDigest(pub.PublicMemory, pub.CodeLen)
		if err != nil {
			return nil, &BuilderError{Code: ErrAttestationFailure, Message: "computing program attestation digest", Cause: err}
		}
		pub.ProgramDigest = &digest
	}

	return t, nil
}

func derefOrZero(v *uint16) uint16 {
	if v == nil {
		return 0
	}
	return *v
}

// classifyBuildError maps an internal pipeline error to the best-fitting
// ErrorCode. The internal packages wrap every failure with fmt.Errorf, so
// classification here is necessarily best-effort string matching on the
// well-known prefixes those packages use, rather than typed sentinel
// errors — acceptable since this boundary exists purely to give external
// callers a stable Code to switch on, not to drive internal control flow.
func classifyBuildError(err error) *BuilderError {
	msg := err.Error()
	code := ErrUnknown
	switch {
	case strings.Contains(msg, "decode failure"):
		code = ErrDecodeFailure
	case strings.Contains(msg, "not in memory"), strings.Contains(msg, "memory miss"), strings.Contains(msg, "does not fit in 64 bits"):
		code = ErrMemoryMiss
	case strings.Contains(msg, "overflow"):
		code = ErrAddressOverflow
	case strings.Contains(msg, "undefined-behavior"):
		code = ErrUndefinedBehavior
	}
	return &BuilderError{Code: code, Message: "building execution trace", Cause: err}
}
