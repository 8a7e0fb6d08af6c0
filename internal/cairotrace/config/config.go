// Package config holds the builder's tunable parameters, adapted from the
// teacher's internal/utils configuration.
package config

import (
	"fmt"
	"math/big"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

// Config controls how a trace is assembled.
type Config struct {
	// FieldModulus is the prime the trace is built over. Defaults to the
	// Cairo prime; cairotrace.Build rejects any other modulus.
	FieldModulus *big.Int

	// AssertedRangeCheckMin/Max, when both non-nil, are checked against the
	// bounds the builder derives from the offsets actually present in the
	// trace (spec.md §9 "future public input" hook) instead of being
	// overwritten by them.
	AssertedRangeCheckMin *uint16
	AssertedRangeCheckMax *uint16

	// EnableProgramDigest toggles the optional TIP-0006-style attestation
	// digest enrichment (§11).
	EnableProgramDigest bool
}

// DefaultConfig returns the builder's default configuration: the Cairo
// prime, no asserted range-check bounds, digest enrichment disabled.
func DefaultConfig() *Config {
	return &Config{
		FieldModulus:          new(big.Int).Set(field.CairoPrime),
		AssertedRangeCheckMin: nil,
		AssertedRangeCheckMax: nil,
		EnableProgramDigest:   false,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.FieldModulus == nil || c.FieldModulus.Cmp(big.NewInt(2)) <= 0 {
		return fmt.Errorf("config: field modulus must be greater than 2")
	}

	if (c.AssertedRangeCheckMin == nil) != (c.AssertedRangeCheckMax == nil) {
		return fmt.Errorf("config: asserted range-check bounds must be set together")
	}
	if c.AssertedRangeCheckMin != nil && *c.AssertedRangeCheckMin > *c.AssertedRangeCheckMax {
		return fmt.Errorf("config: asserted range-check min (%d) exceeds max (%d)",
			*c.AssertedRangeCheckMin, *c.AssertedRangeCheckMax)
	}

	return nil
}

// WithFieldModulus sets the field modulus.
func (c *Config) WithFieldModulus(modulus *big.Int) *Config {
	c.FieldModulus = new(big.Int).Set(modulus)
	return c
}

// WithAssertedRangeCheckBounds sets the bounds the builder must reproduce.
func (c *Config) WithAssertedRangeCheckBounds(min, max uint16) *Config {
	c.AssertedRangeCheckMin = &min
	c.AssertedRangeCheckMax = &max
	return c
}

// WithProgramDigest toggles the attestation digest enrichment.
func (c *Config) WithProgramDigest(enabled bool) *Config {
	c.EnableProgramDigest = enabled
	return c
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	clone := &Config{
		FieldModulus:        new(big.Int).Set(c.FieldModulus),
		EnableProgramDigest: c.EnableProgramDigest,
	}
	if c.AssertedRangeCheckMin != nil {
		min := *c.AssertedRangeCheckMin
		max := *c.AssertedRangeCheckMax
		clone.AssertedRangeCheckMin = &min
		clone.AssertedRangeCheckMax = &max
	}
	return clone
}
