package vm

import "fmt"

// DecodeInstruction splits a raw Cairo instruction word into its flags and
// offsets. The word's low 48 bits hold three biased 16-bit offsets
// (off_dst, off_op0, off_op1, low-to-high) and bits 48-62 hold the 15-bit
// flags word; bit 63 is reserved and must be zero.
func DecodeInstruction(word uint64) (Flags, Offsets, error) {
	if word>>63 != 0 {
		return Flags{}, Offsets{}, fmt.Errorf("vm: decode failure: instruction word %#x has reserved bit 63 set", word)
	}

	offDst := uint16(word)
	offOp0 := uint16(word >> 16)
	offOp1 := uint16(word >> 32)
	flagsWord := uint16((word >> 48) & 0x7FFF)

	flags, err := DecodeFlags(flagsWord)
	if err != nil {
		return Flags{}, Offsets{}, err
	}

	offsets := Offsets{
		Dst: decodeOffset(offDst),
		Op0: decodeOffset(offOp0),
		Op1: decodeOffset(offOp1),
	}

	return flags, offsets, nil
}
