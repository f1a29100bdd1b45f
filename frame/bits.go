// Package frame implements the 80-bit LTC frame layout: bit-level field
// accessors, BCD packing, sync-word detection, and parity.
package frame

import "math/bits"

// FrameBitCount is the number of bits in one LTC frame, per SMPTE.
const FrameBitCount = 80

const frameByteCount = FrameBitCount / 8

// SyncWord is the LTC sync pattern as transmitted, MSB-first, over the wire.
const SyncWord = 0x3FFD

// syncWordLE is the same pattern as it sits in the little-endian in-memory
// bit layout below: bits 64-79 hold this 16-bit value LSB-first, which
// reproduces the wire sequence 0,0,1,1,1,1,1,1,1,1,1,1,1,1,0,1 when the 80
// bits are read in ascending order.
const syncWordLE = 0xBFFC

// FrameBits is the raw 80-bit LTC frame, stored as 10 bytes. Bit i (0-79,
// LSB-first) lives at byte i/8, position i%8.
type FrameBits [frameByteCount]byte

func (fb *FrameBits) bit(i int) int {
	return int(fb[i/8]>>uint(i%8)) & 1
}

func (fb *FrameBits) setBit(i int, v int) {
	mask := byte(1) << uint(i%8)
	if v != 0 {
		fb[i/8] |= mask
	} else {
		fb[i/8] &^= mask
	}
}

func (fb *FrameBits) field(start, count int) uint32 {
	var v uint32
	for i := 0; i < count; i++ {
		if fb.bit(start+i) != 0 {
			v |= 1 << uint(i)
		}
	}
	return v
}

func (fb *FrameBits) setField(start, count int, v uint32) {
	for i := 0; i < count; i++ {
		fb.setBit(start+i, int((v>>uint(i))&1))
	}
}

// Named field accessors, bit positions per the LTC frame layout.

func (fb *FrameBits) FrameUnits() int { return int(fb.field(0, 4)) }
func (fb *FrameBits) SetFrameUnits(v int) { fb.setField(0, 4, uint32(v)) }
func (fb *FrameBits) User1() int { return int(fb.field(4, 4)) }
func (fb *FrameBits) SetUser1(v int) { fb.setField(4, 4, uint32(v)) }
func (fb *FrameBits) FrameTens() int { return int(fb.field(8, 2)) }
func (fb *FrameBits) SetFrameTens(v int) { fb.setField(8, 2, uint32(v)) }
func (fb *FrameBits) DropFrame() bool { return fb.bit(10) != 0 }
func (fb *FrameBits) SetDropFrame(v bool) { fb.setBit(10, boolBit(v)) }
func (fb *FrameBits) ColourFrame() bool { return fb.bit(11) != 0 }
func (fb *FrameBits) SetColourFrame(v bool) { fb.setBit(11, boolBit(v)) }
func (fb *FrameBits) User2() int { return int(fb.field(12, 4)) }
func (fb *FrameBits) SetUser2(v int) { fb.setField(12, 4, uint32(v)) }
func (fb *FrameBits) SecsUnits() int { return int(fb.field(16, 4)) }
func (fb *FrameBits) SetSecsUnits(v int) { fb.setField(16, 4, uint32(v)) }
func (fb *FrameBits) User3() int { return int(fb.field(20, 4)) }
func (fb *FrameBits) SetUser3(v int) { fb.setField(20, 4, uint32(v)) }
func (fb *FrameBits) SecsTens() int { return int(fb.field(24, 3)) }
func (fb *FrameBits) SetSecsTens(v int) { fb.setField(24, 3, uint32(v)) }
func (fb *FrameBits) Parity() bool { return fb.bit(27) != 0 }
func (fb *FrameBits) User4() int { return int(fb.field(28, 4)) }
func (fb *FrameBits) SetUser4(v int) { fb.setField(28, 4, uint32(v)) }
func (fb *FrameBits) MinsUnits() int { return int(fb.field(32, 4)) }
func (fb *FrameBits) SetMinsUnits(v int) { fb.setField(32, 4, uint32(v)) }
func (fb *FrameBits) User5() int { return int(fb.field(36, 4)) }
func (fb *FrameBits) SetUser5(v int) { fb.setField(36, 4, uint32(v)) }
func (fb *FrameBits) MinsTens() int { return int(fb.field(40, 3)) }
func (fb *FrameBits) SetMinsTens(v int) { fb.setField(40, 3, uint32(v)) }
func (fb *FrameBits) BinaryGroupFlag1() bool { return fb.bit(43) != 0 }
func (fb *FrameBits) SetBinaryGroupFlag1(v bool) { fb.setBit(43, boolBit(v)) }
func (fb *FrameBits) User6() int { return int(fb.field(44, 4)) }
func (fb *FrameBits) SetUser6(v int) { fb.setField(44, 4, uint32(v)) }
func (fb *FrameBits) HoursUnits() int { return int(fb.field(48, 4)) }
func (fb *FrameBits) SetHoursUnits(v int) { fb.setField(48, 4, uint32(v)) }
func (fb *FrameBits) User7() int { return int(fb.field(52, 4)) }
func (fb *FrameBits) SetUser7(v int) { fb.setField(52, 4, uint32(v)) }
func (fb *FrameBits) HoursTens() int { return int(fb.field(56, 2)) }
func (fb *FrameBits) SetHoursTens(v int) { fb.setField(56, 2, uint32(v)) }
func (fb *FrameBits) BinaryGroupFlag2() bool { return fb.bit(59) != 0 }
func (fb *FrameBits) SetBinaryGroupFlag2(v bool) { fb.setBit(59, boolBit(v)) }
func (fb *FrameBits) User8() int { return int(fb.field(60, 4)) }
func (fb *FrameBits) SetUser8(v int) { fb.setField(60, 4, uint32(v)) }
func (fb *FrameBits) SyncWordField() uint32 { return fb.field(64, 16) }
func (fb *FrameBits) setSyncWordField(v uint32) { fb.setField(64, 16, v) }

func boolBit(v bool) int {
	if v {
		return 1
	}
	return 0
}

// Reset zeroes all fields except the sync word, which is set to its
// canonical value.
func Reset() FrameBits {
	var fb FrameBits
	fb.setSyncWordField(syncWordLE)
	return fb
}

// SetParity clears bit 27, then sets it so that the total number of one
// bits across all 80 bits (including the now-cleared bit 27) is even.
func (fb *FrameBits) SetParity() {
	fb.setBit(27, 0)
	var x byte
	for _, b := range fb {
		x ^= b
	}
	fb.setBit(27, bits.OnesCount8(x)&1)
}

// timezoneCode returns the raw 8-bit (6 significant bits) timezone code
// packed into user7/user8.
func (fb *FrameBits) timezoneCode() byte {
	return byte(fb.User7()) | byte(fb.User8())<<4
}

func (fb *FrameBits) setTimezoneCode(code byte) {
	fb.SetUser7(int(code & 0xF))
	fb.SetUser8(int((code >> 4) & 0xF))
}
