package config

import (
	"math/big"
	"testing"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}
	if cfg.FieldModulus.Cmp(field.CairoPrime) != 0 {
		t.Error("DefaultConfig() should use the Cairo prime")
	}
	if cfg.AssertedRangeCheckMin != nil || cfg.AssertedRangeCheckMax != nil {
		t.Error("DefaultConfig() should not assert range-check bounds")
	}
	if cfg.EnableProgramDigest {
		t.Error("DefaultConfig() should not enable the digest enrichment")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	validMin, validMax := uint16(1), uint16(10)
	invalidMin, invalidMax := uint16(10), uint16(1)

	tests := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{"valid default", DefaultConfig(), false},
		{
			name: "modulus too small",
			config: &Config{
				FieldModulus: big.NewInt(1),
			},
			expectErr: true,
		},
		{
			name: "nil modulus",
			config: &Config{
				FieldModulus: nil,
			},
			expectErr: true,
		},
		{
			name: "one-sided asserted bounds",
			config: &Config{
				FieldModulus:          field.CairoPrime,
				AssertedRangeCheckMin: &validMin,
			},
			expectErr: true,
		},
		{
			name: "asserted min exceeds max",
			config: &Config{
				FieldModulus:          field.CairoPrime,
				AssertedRangeCheckMin: &invalidMin,
				AssertedRangeCheckMax: &invalidMax,
			},
			expectErr: true,
		},
		{
			name: "valid asserted bounds",
			config: &Config{
				FieldModulus:          field.CairoPrime,
				AssertedRangeCheckMin: &validMin,
				AssertedRangeCheckMax: &validMax,
			},
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Validate() error = %v, expectErr = %v", err, tt.expectErr)
			}
		})
	}
}

func TestConfigWithMethodsChaining(t *testing.T) {
	cfg := DefaultConfig().
		WithFieldModulus(big.NewInt(101)).
		WithAssertedRangeCheckBounds(2, 8).
		WithProgramDigest(true)

	if cfg.FieldModulus.Cmp(big.NewInt(101)) != 0 {
		t.Errorf("FieldModulus: expected 101, got %v", cfg.FieldModulus)
	}
	if cfg.AssertedRangeCheckMin == nil || *cfg.AssertedRangeCheckMin != 2 {
		t.Error("AssertedRangeCheckMin: expected 2")
	}
	if cfg.AssertedRangeCheckMax == nil || *cfg.AssertedRangeCheckMax != 8 {
		t.Error("AssertedRangeCheckMax: expected 8")
	}
	if !cfg.EnableProgramDigest {
		t.Error("EnableProgramDigest: expected true")
	}
}

func TestConfigClone(t *testing.T) {
	original := DefaultConfig().WithAssertedRangeCheckBounds(3, 9)
	clone := original.Clone()

	if clone.FieldModulus.Cmp(original.FieldModulus) != 0 {
		t.Error("cloned FieldModulus doesn't match")
	}
	if *clone.AssertedRangeCheckMin != *original.AssertedRangeCheckMin {
		t.Error("cloned AssertedRangeCheckMin doesn't match")
	}

	clone.FieldModulus.SetInt64(999999)
	if original.FieldModulus.Cmp(big.NewInt(999999)) == 0 {
		t.Error("modifying cloned FieldModulus affected original")
	}

	*clone.AssertedRangeCheckMin = 255
	if *original.AssertedRangeCheckMin == 255 {
		t.Error("modifying cloned bounds affected original")
	}
}

func TestConfigImmutabilityOfDefault(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg2 := DefaultConfig()

	cfg1.FieldModulus.SetInt64(7)

	if cfg2.FieldModulus.Cmp(big.NewInt(7)) == 0 {
		t.Error("DefaultConfig() returns shared FieldModulus instances")
	}
}
