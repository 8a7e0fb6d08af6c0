package trace

import (
	"fmt"
	"sort"

	"github.com/vybium/cairo-trace/internal/cairotrace/field"
	"github.com/vybium/cairo-trace/internal/cairotrace/mathutil"
	"github.com/vybium/cairo-trace/internal/cairotrace/publicinput"
)

// sortedAddresses implements pass (a): it merges the pc, dst_addr, op0_addr
// and op1_addr columns of every step into one ascending sequence.
func sortedAddresses(t Table, steps int) ([]uint64, error) {
	addrs := make([]uint64, 0, steps*4)
	for step := 0; step < steps; step++ {
		base := step * StepRows
		for _, subRow := range [...]int{subRowPC, subRowDstAddr, subRowOp0Addr, subRowOp1Addr} {
			cell := t[base+subRow][ColMemory]
			v, err := cell.LastLimb()
			if err != nil {
				return nil, fmt.Errorf("trace: address column holds a value wider than 64 bits: %w", err)
			}
			addrs = append(addrs, v)
		}
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs, nil
}

// rangeCheckHoles implements the pure part of pass (b): given the flat,
// unsorted sequence of every offset in the trace, it returns the sorted
// bounds and the padded list of missing values.
func rangeCheckHoles(offsets []uint16) (rcMin, rcMax uint16, holes []uint16) {
	sorted := append([]uint16(nil), offsets...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rcMin = sorted[0]
	rcMax = sorted[len(sorted)-1]

	holes = make([]uint16, 0)
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		for v := a + 1; v < b; v++ {
			holes = append(holes, v)
		}
	}
	for len(holes)%3 != 0 {
		holes = append(holes, rcMax)
	}
	return rcMin, rcMax, holes
}

// fillRangeCheckHoles implements pass (b): it merges the three offset
// columns, computes the gaps between consecutive distinct offsets, pads the
// gap list to a multiple of three, writes it into RC_HOLES, and backfills
// the rest of RC_HOLES with the greatest offset.
func fillRangeCheckHoles(t Table, steps int) (uint16, uint16, error) {
	fld := field.Cairo()

	offsets := make([]uint16, 0, steps*3)
	for step := 0; step < steps; step++ {
		base := step * StepRows
		for _, subRow := range [...]int{subRowOffDst, subRowOffOp1, subRowOffOp0} {
			cell := t[base+subRow][ColOffsets]
			v, err := cell.LastLimb()
			if err != nil {
				return 0, 0, fmt.Errorf("trace: offset column holds a value wider than 64 bits: %w", err)
			}
			offsets = append(offsets, uint16(v))
		}
	}
	if len(offsets) == 0 {
		return 0, 0, fmt.Errorf("trace: cannot fill range-check holes of an empty trace")
	}
	rcMin, rcMax, holes := rangeCheckHoles(offsets)

	rows := t.Rows()
	if len(holes) > rows {
		return 0, 0, fmt.Errorf("trace: %d range-check holes do not fit in %d trace rows", len(holes), rows)
	}
	for i, v := range holes {
		t[i][ColRangeCheckHoles] = *fld.FromUint64(uint64(v))
	}
	fillValue := rcMax
	if len(holes) > 0 {
		greatest := holes[len(holes)-1]
		if greatest > fillValue {
			fillValue = greatest
		}
	}
	fillCell := *fld.FromUint64(uint64(fillValue))
	for i := len(holes); i < rows; i++ {
		t[i][ColRangeCheckHoles] = fillCell
	}

	return rcMin, rcMax, nil
}

// fillMemoryHoles implements pass (c). It returns the hole addresses so the
// caller can grow the table and write them into EXTRA_ADDR alongside the
// public-memory dummy accesses of pass (d).
func fillMemoryHoles(addrs []uint64, codeLen int) []uint64 {
	holes := make([]uint64, 0)
	codeLenU := uint64(codeLen)
	for i := 1; i < len(addrs); i++ {
		prev, cur := addrs[i-1], addrs[i]
		diff := cur - prev
		if diff == 0 || diff == 1 {
			continue
		}
		if cur <= codeLenU {
			continue
		}
		for v := prev + 1; v < cur; v++ {
			if v > codeLenU {
				holes = append(holes, v)
			}
		}
	}
	return holes
}

// growTo appends zero-filled rows until the table has at least n rows.
func growTo(t Table, n int) Table {
	zero := field.Cairo().Zero()
	for len(t) < n {
		row := make([]field.Element, NumColumns)
		for c := range row {
			row[c] = *zero
		}
		t = append(t, row)
	}
	return t
}

// writeExtraAddr implements passes (c) and (d) together: memory holes
// followed by |public_memory| dummy zero accesses, both written into
// EXTRA_ADDR starting at row 0.
func writeExtraAddr(t Table, holes []uint64, publicMemoryCount int) Table {
	fld := field.Cairo()
	needed := len(holes) + publicMemoryCount
	t = growTo(t, needed)

	for i, addr := range holes {
		t[i][ColExtraAddr] = *fld.FromUint64(addr)
	}
	zero := *fld.Zero()
	for i := len(holes); i < needed; i++ {
		t[i][ColExtraAddr] = zero
	}
	return t
}

// padToPowerOfTwo implements pass (e): it replicates the final row until
// the row count is a power of two.
func padToPowerOfTwo(t Table) Table {
	l := t.Rows()
	if l == 0 {
		return t
	}
	target := mathutil.NextPowerOfTwo(l)
	if target == l {
		return t
	}
	last := t[l-1]
	for len(t) < target {
		row := make([]field.Element, NumColumns)
		copy(row, last)
		t = append(t, row)
	}
	return t
}

// PostProcess runs all five passes over an assembled table in order,
// mutating it in place (growing it where the hole-filling and padding
// passes require), and writes range_check_min/max into pub.
func PostProcess(t Table, steps int, pub *publicinput.PublicInputs) (Table, error) {
	addrs, err := sortedAddresses(t, steps)
	if err != nil {
		return nil, err
	}

	rcMin, rcMax, err := fillRangeCheckHoles(t, steps)
	if err != nil {
		return nil, err
	}
	pub.RangeCheckMin = &rcMin
	pub.RangeCheckMax = &rcMax

	holes := fillMemoryHoles(addrs, pub.CodeLen)
	t = writeExtraAddr(t, holes, len(pub.PublicMemory))

	t = padToPowerOfTwo(t)
	return t, nil
}
