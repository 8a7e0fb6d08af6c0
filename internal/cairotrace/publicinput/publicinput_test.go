package publicinput

import (
	"testing"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
)

func uint16Ptr(v uint16) *uint16 { return &v }

func TestValidateRejectsNegativeCodeLen(t *testing.T) {
	p := &PublicInputs{CodeLen: -1}
	if err := p.Validate(); err == nil {
		t.Error("Validate should reject a negative code length")
	}
}

func TestValidateRejectsInvertedRangeCheckBounds(t *testing.T) {
	p := &PublicInputs{CodeLen: 0, RangeCheckMin: uint16Ptr(10), RangeCheckMax: uint16Ptr(5)}
	if err := p.Validate(); err == nil {
		t.Error("Validate should reject range_check_min > range_check_max")
	}
}

func TestValidateAcceptsWellFormedInputs(t *testing.T) {
	p := &PublicInputs{CodeLen: 4, RangeCheckMin: uint16Ptr(1), RangeCheckMax: uint16Ptr(7)}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate rejected well-formed inputs: %v", err)
	}
}

func TestSortedAddresses(t *testing.T) {
	fld := field.Cairo()
	p := &PublicInputs{PublicMemory: map[uint64]field.Element{
		30: *fld.FromUint64(0),
		10: *fld.FromUint64(0),
		20: *fld.FromUint64(0),
	}}
	got := p.SortedAddresses()
	expected := []uint64{10, 20, 30}
	if len(got) != len(expected) {
		t.Fatalf("SortedAddresses() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("SortedAddresses()[%d] = %d, expected %d", i, got[i], expected[i])
		}
	}
}
