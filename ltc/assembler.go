package ltc

import "github.com/x42/libltc/frame"

// frameAssembler packs decoded bits into 80-bit frames, scanning a 16-bit
// shift register for the sync word and emitting completed frames into a
// bounded ring buffer.
type frameAssembler struct {
	syncSR        uint16
	buf           frame.FrameBits
	bitCtr        int
	startOff      int64
	havePrevBit   bool
	prevBitOffset int64
	writeEnd      int64
	tics          [frame.FrameBitCount]float32

	ring     []frame.FrameBitsExt
	ringLen  int
	writePos int
	readPos  int
	count    int
}

func newFrameAssembler(queueLen int) *frameAssembler {
	if queueLen < 1 {
		queueLen = 1
	}
	return &frameAssembler{
		ring:    make([]frame.FrameBitsExt, queueLen),
		ringLen: queueLen,
	}
}

// feed processes one decoded bit at absolute sample offset off, and its
// current symbol-period estimate (for the per-bit timing scratch array).
func (a *frameAssembler) feed(bit int, off int64, symbolPeriod float64) {
	if a.bitCtr == 0 {
		a.buf = frame.FrameBits{}
		if a.havePrevBit {
			// the previous frame's closing edge is its last sample; this
			// frame begins one sample later
			a.startOff = a.prevBitOffset + 1
		} else {
			a.startOff = off - int64(symbolPeriod+0.999999)
		}
	}

	if a.bitCtr >= frame.FrameBitCount {
		shiftFrameRight(&a.buf)
		a.startOff += int64(symbolPeriod)
		a.bitCtr--
	}

	a.syncSR = (a.syncSR << 1) | uint16(bit)

	if bit != 0 && a.bitCtr < frame.FrameBitCount {
		byteIdx := a.bitCtr / 8
		bitIdx := uint(a.bitCtr % 8)
		a.buf[byteIdx] |= 1 << bitIdx
	}
	if a.bitCtr < frame.FrameBitCount {
		a.tics[a.bitCtr] = float32(symbolPeriod)
	}
	a.bitCtr++

	a.havePrevBit = true
	a.prevBitOffset = off

	switch a.syncSR {
	case frame.SyncWord:
		if a.bitCtr == frame.FrameBitCount {
			a.enqueue(off, false)
		}
		a.bitCtr = 0
	case syncWordMirrored:
		if a.bitCtr == frame.FrameBitCount {
			unmirrorFrame(&a.buf)
			a.enqueue(off, true)
		}
		a.bitCtr = 0
	}
}

// syncWordMirrored is the sync pattern as it arrives when the audio is
// played backwards: the wire bit sequence reversed, which lands in the shift
// register as 0xBFFC instead of 0x3FFD.
const syncWordMirrored = 0xBFFC

// unmirrorFrame rewrites a frame captured from a reversed stream into the
// standard layout. The 64 payload bits arrived last-bit-first, so bit i of
// the capture is payload bit 63-i; the 16 bits after them are the previous
// stream frame's mirrored sync word, replaced by the canonical one.
func unmirrorFrame(fb *frame.FrameBits) {
	in := *fb
	out := frame.Reset()
	for i := 0; i < 64; i++ {
		src := 63 - i
		if in[src/8]>>(uint(src%8))&1 != 0 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	*fb = out
}

func (a *frameAssembler) enqueue(endOff int64, reverse bool) {
	ext := frame.FrameBitsExt{
		FrameBits: a.buf,
		OffStart:  a.startOff,
		OffEnd:    endOff,
		Reverse:   reverse,
	}
	if a.writeEnd > endOff {
		ext.Delayed = int(a.writeEnd - endOff)
	}
	copy(ext.BiphaseTics[:], a.tics[:])

	a.ring[a.writePos] = ext
	a.writePos = (a.writePos + 1) % a.ringLen
	if a.count == a.ringLen {
		// overwrite the oldest unread frame; overflow is silent by design
		a.readPos = (a.readPos + 1) % a.ringLen
	} else {
		a.count++
	}
}

func (a *frameAssembler) read() (frame.FrameBitsExt, bool) {
	if a.count == 0 {
		return frame.FrameBitsExt{}, false
	}
	ext := a.ring[a.readPos]
	a.readPos = (a.readPos + 1) % a.ringLen
	a.count--
	return ext, true
}

func (a *frameAssembler) queueLength() int { return a.count }

func (a *frameAssembler) queueFlush() {
	a.readPos = 0
	a.writePos = 0
	a.count = 0
}

// shiftFrameRight shifts the 80-bit buffer right by one bit position (toward
// higher byte indices' low bits), dropping bit 0 and letting each byte's bit
// 7 vacancy be filled from the next byte's bit 0. This realigns the 80 bits
// immediately preceding a detected sync word when bitCtr has overrun 80.
func shiftFrameRight(fb *frame.FrameBits) {
	const maxBytePos = frame.FrameBitCount / 8
	for k := 0; k < maxBytePos; k++ {
		bi := fb[k]
		var bo byte
		bo |= (bi & 0x80) >> 1
		bo |= (bi & 0x40) >> 1
		bo |= (bi & 0x20) >> 1
		bo |= (bi & 0x10) >> 1
		bo |= (bi & 0x08) >> 1
		bo |= (bi & 0x04) >> 1
		bo |= (bi & 0x02) >> 1
		if k+1 < maxBytePos {
			if fb[k+1]&0x01 != 0 {
				bo |= 0x80
			}
		}
		fb[k] = bo
	}
}
