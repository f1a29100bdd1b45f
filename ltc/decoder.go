package ltc

import (
	"math"

	"github.com/x42/libltc/frame"
)

// Decoder turns a stream of audio samples into decoded LTC frames. It wraps
// the envelope tracker, biphase symbol decoder, and frame assembler into one
// stateful, single-threaded object: callers must externally serialise
// writes and reads, wrapping it in a mutex if they span goroutines.
type Decoder struct {
	envelope  *envelopeTracker
	biphase   biphaseDecoder
	assembler *frameAssembler
}

// NewDecoder creates a Decoder. samplesPerFrame is the audio-frames-per-
// video-frame hint (sampleRate/fps) used to seed the initial symbol-period
// estimate; once real edges arrive the envelope tracker adapts. queueLen
// sets the ring buffer capacity.
func NewDecoder(samplesPerFrame int, queueLen int) *Decoder {
	samplesPerSymbol := float64(samplesPerFrame) / float64(frame.FrameBitCount)
	return &Decoder{
		envelope:  newEnvelopeTracker(samplesPerSymbol),
		assembler: newFrameAssembler(queueLen),
	}
}

func (d *Decoder) writeSample(x uint8, off int64) {
	t, ok := d.envelope.step(x)
	if !ok {
		return
	}
	var bits []int
	bits = d.biphase.feed(t, bits)
	for _, b := range bits {
		d.assembler.feed(b, off, d.envelope.period)
	}
}

// WriteUint8 feeds 8-bit unsigned PCM samples, centred at 0x80. pos is the
// absolute stream offset of buf[0].
func (d *Decoder) WriteUint8(buf []uint8, pos int64) {
	d.assembler.writeEnd = pos + int64(len(buf))
	for i, x := range buf {
		d.writeSample(x, pos+int64(i))
	}
}

// WriteInt16 feeds signed 16-bit PCM samples, normalised to 8-bit unsigned
// via x_u8 = 128 + (x_s16 >> 8).
func (d *Decoder) WriteInt16(buf []int16, pos int64) {
	d.assembler.writeEnd = pos + int64(len(buf))
	for i, x := range buf {
		v := 128 + (int(x) >> 8)
		d.writeSample(uint8(clampInt(v, 0, 255)), pos+int64(i))
	}
}

// WriteFloat32 feeds float32 PCM samples in [-1,1], normalised to 8-bit
// unsigned via x_u8 = 128 + round(x_f32*127).
func (d *Decoder) WriteFloat32(buf []float32, pos int64) {
	d.assembler.writeEnd = pos + int64(len(buf))
	for i, x := range buf {
		v := 128 + int(math.Round(float64(x)*127))
		d.writeSample(uint8(clampInt(v, 0, 255)), pos+int64(i))
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Read dequeues the oldest decoded frame. ok is false if the queue is empty.
func (d *Decoder) Read() (frame.FrameBitsExt, bool) {
	return d.assembler.read()
}

// QueueLength returns the number of frames currently readable.
func (d *Decoder) QueueLength() int { return d.assembler.queueLength() }

// QueueFlush discards all unread frames.
func (d *Decoder) QueueFlush() { d.assembler.queueFlush() }
