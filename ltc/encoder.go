package ltc

import (
	"math"

	"github.com/x42/libltc/frame"
)

// Encoder renders a FrameBits into filtered 8-bit unsigned PCM at a given
// sample rate, fps, and playback speed (including reverse). It is a single-
// threaded, externally-serialized object: no internal locking is performed.
type Encoder struct {
	sampleRate int
	fps        float64
	standard   TVStandard
	useDate    bool

	f frame.FrameBits

	samplesPerSymbol float64
	samplesPerHalf   float64
	carry            float64
	state            int // current output polarity, 0 or 1

	riseTimeMicros float64
	alpha          float64 // one-pole filter coefficient; 0 means pure square
	hi, lo         byte

	buf []byte
}

// NewEncoder creates an Encoder for the given sample rate and fps. The
// output buffer is sized to hold exactly one video frame of audio
// (⌈sampleRate/fps⌉+1 bytes); callers drain it between frames.
func NewEncoder(sampleRate int, fps float64, standard TVStandard, useDate bool) (*Encoder, error) {
	if sampleRate <= 0 || fps <= 0 {
		return nil, ErrInvalidArgument
	}
	baud := fps * 80
	bufSize := int(math.Ceil(float64(sampleRate)/fps)) + 1
	if bufSize <= 0 {
		return nil, ErrAllocationFailure
	}
	e := &Encoder{
		sampleRate:       sampleRate,
		fps:              fps,
		standard:         standard,
		useDate:          useDate,
		f:                frame.Reset(),
		samplesPerSymbol: float64(sampleRate) / baud,
		carry:            0.5,
		hi:               218,
		lo:               38,
		buf:              make([]byte, 0, bufSize),
	}
	e.samplesPerHalf = e.samplesPerSymbol / 2
	e.f.SetDropFrame(isDropFrameFPS(fps))
	e.SetFilter(defaultRiseTimeMicros(standard))
	return e, nil
}

// Reinit reconfigures the encoder in place for a new sample rate, fps, TV
// standard, and date mode. The output buffer is resized and any pending
// samples are discarded; the queued frame is reset.
func (e *Encoder) Reinit(sampleRate int, fps float64, standard TVStandard, useDate bool) error {
	if sampleRate <= 0 || fps <= 0 {
		return ErrInvalidArgument
	}
	e.sampleRate = sampleRate
	e.fps = fps
	e.standard = standard
	e.useDate = useDate
	e.f = frame.Reset()
	e.f.SetDropFrame(isDropFrameFPS(fps))
	e.samplesPerSymbol = float64(sampleRate) / (fps * 80)
	e.samplesPerHalf = e.samplesPerSymbol / 2
	e.carry = 0.5
	e.state = 0
	e.SetFilter(defaultRiseTimeMicros(standard))
	return e.SetBufferSize(sampleRate, fps)
}

// SetBufferSize resizes the output buffer to hold one video frame of audio
// at the given sample rate and fps, discarding any pending samples. It does
// not change the encoding rate; use Reinit for that.
func (e *Encoder) SetBufferSize(sampleRate int, fps float64) error {
	if sampleRate <= 0 || fps <= 0 {
		return ErrInvalidArgument
	}
	bufSize := int(math.Ceil(float64(sampleRate)/fps)) + 1
	if bufSize <= 0 {
		return ErrAllocationFailure
	}
	e.buf = make([]byte, 0, bufSize)
	return nil
}

func isDropFrameFPS(fps float64) bool {
	return math.Abs(fps-29.97) < 0.01 || math.Abs(fps-30000.0/1001.0) < 0.001
}

// SetFilter sets the one-pole low-pass filter's rise time (10%-90%), in
// microseconds. A non-positive value disables filtering and produces a pure
// square wave.
func (e *Encoder) SetFilter(riseTimeMicros float64) {
	e.riseTimeMicros = riseTimeMicros
	if riseTimeMicros <= 0 {
		e.alpha = 0
		return
	}
	halfRise := riseTimeMicros * 1e-6 / 2
	e.alpha = 1 - math.Exp(-1/(float64(e.sampleRate)*halfRise/math.E))
}

// SetVolume recomputes the hi/lo target sample values for a peak deviation
// of dBFS relative to the default ±90 (≈ −3dBFS symmetric about centre).
func (e *Encoder) SetVolume(dBFS float64) {
	amp := math.Round(math.Pow(10, dBFS/20) * 90)
	e.hi = clampByte(128 + amp)
	e.lo = clampByte(128 - amp)
}

// SetTimecode packs tc into the frame to be encoded next.
func (e *Encoder) SetTimecode(tc frame.Timecode) { e.f = frame.TimecodeToFrame(tc, e.useDate) }

// GetTimecode unpacks the current frame's timecode.
func (e *Encoder) GetTimecode() frame.Timecode { return frame.FrameToTimecode(e.f, e.useDate) }

// SetFrame installs fb as the frame to be encoded next.
func (e *Encoder) SetFrame(fb frame.FrameBits) { e.f = fb }

// GetFrame returns the frame currently queued for encoding.
func (e *Encoder) GetFrame() frame.FrameBits { return e.f }

// EncodeByte renders the 8 bits of frame byte byteIndex (0..9) into the
// output buffer. speed selects direction and length: positive plays the bits
// LSB-first, negative plays them MSB-first (reverse), and each bit spans the
// nominal symbol length in samples multiplied by |speed|.
func (e *Encoder) EncodeByte(byteIndex int, speed float64) error {
	if byteIndex < 0 || byteIndex >= len(e.f) {
		return ErrInvalidArgument
	}
	if speed == 0 {
		return ErrInvalidArgument
	}
	c := e.f[byteIndex]
	absSpeed := math.Abs(speed)

	mask := byte(0x01)
	msbFirst := speed < 0
	if msbFirst {
		mask = 0x80
	}

	for i := 0; i < 8; i++ {
		if c&mask == 0 {
			n := int(e.samplesPerSymbol*absSpeed + e.carry)
			e.carry = e.samplesPerSymbol*absSpeed + e.carry - float64(n)
			e.state = 1 - e.state
			if err := e.renderSegment(n); err != nil {
				return err
			}
		} else {
			n1 := int(e.samplesPerHalf*absSpeed + e.carry)
			e.carry = e.samplesPerHalf*absSpeed + e.carry - float64(n1)
			e.state = 1 - e.state
			if err := e.renderSegment(n1); err != nil {
				return err
			}

			n2 := int(e.samplesPerHalf*absSpeed + e.carry)
			e.carry = e.samplesPerHalf*absSpeed + e.carry - float64(n2)
			e.state = 1 - e.state
			if err := e.renderSegment(n2); err != nil {
				return err
			}
		}
		if msbFirst {
			mask >>= 1
		} else {
			mask <<= 1
		}
	}
	return nil
}

// EncodeFrame renders all 10 bytes of the current frame at normal speed.
func (e *Encoder) EncodeFrame() error {
	for i := 0; i < len(e.f); i++ {
		if err := e.EncodeByte(i, 1.0); err != nil {
			return err
		}
	}
	return nil
}

// EndEncode appends one final polarity transition so the waveform ends on a
// clean symbol boundary instead of stopping mid-segment. Buffer overflow at
// this point is not reported; callers are expected to flush before the
// buffer is full.
func (e *Encoder) EndEncode() {
	n := int(e.samplesPerSymbol + e.carry)
	e.state = 1 - e.state
	_ = e.renderSegment(n)
}

// renderSegment appends n filtered samples converging toward the target
// value for the current polarity, symmetric about the segment's midpoint:
// the one-pole filter state resets to centre at the start of every segment
// and the leading ramp is mirrored onto the trailing half.
func (e *Encoder) renderSegment(n int) error {
	if n <= 0 {
		return nil
	}
	if len(e.buf)+n > cap(e.buf) {
		return ErrBufferOverflow
	}
	tgt := float64(e.lo) - 128
	if e.state != 0 {
		tgt = float64(e.hi) - 128
	}

	seg := make([]byte, n)
	if e.alpha <= 0 {
		b := clampByte(128 + tgt)
		for i := range seg {
			seg[i] = b
		}
	} else {
		val := 0.0
		m := (n + 1) / 2
		for i := 0; i < m; i++ {
			val += e.alpha * (tgt - val)
			b := clampByte(128 + val)
			seg[i] = b
			seg[n-1-i] = b
		}
	}
	e.buf = append(e.buf, seg...)
	return nil
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// BufferSize returns the encoder's fixed output buffer capacity in bytes.
func (e *Encoder) BufferSize() int { return cap(e.buf) }

// Buffer returns a copy of the bytes written so far. If flush is true the
// internal buffer is emptied afterward.
func (e *Encoder) Buffer(flush bool) []byte {
	out := make([]byte, len(e.buf))
	copy(out, e.buf)
	if flush {
		e.buf = e.buf[:0]
	}
	return out
}

// CopyBuffer copies as many written bytes as fit into dst and returns the
// count copied. It does not drain the internal buffer.
func (e *Encoder) CopyBuffer(dst []byte) int {
	return copy(dst, e.buf)
}

// BufferFlush empties the internal buffer without returning its contents.
func (e *Encoder) BufferFlush() { e.buf = e.buf[:0] }

// IncrementTimecode advances the queued frame by one tick, reporting
// whether the 24-hour boundary wrapped.
func (e *Encoder) IncrementTimecode() bool { return e.f.Increment(e.fps, e.useDate) }

// DecrementTimecode retreats the queued frame by one tick.
func (e *Encoder) DecrementTimecode() bool { return e.f.Decrement(e.fps, e.useDate) }
