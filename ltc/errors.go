// Package ltc implements the Linear Timecode signal-processing engine: the
// envelope/biphase decoder, frame assembler, and the filtered-PCM encoder.
package ltc

import "errors"

var (
	// ErrInvalidArgument is returned for an out-of-range byte index, a zero
	// encode speed, or a non-positive sample rate or fps.
	ErrInvalidArgument = errors.New("ltc: invalid argument")

	// ErrBufferOverflow is returned by EncodeByte/EncodeFrame when the
	// rendered waveform would exceed the encoder's output buffer.
	ErrBufferOverflow = errors.New("ltc: encoder buffer overflow")

	// ErrAllocationFailure is returned by NewEncoder when the computed
	// buffer size is non-positive. Go cannot fail a slice allocation the
	// way C can fail malloc, but the sentinel is kept for API parity.
	ErrAllocationFailure = errors.New("ltc: allocation failure")

	// ErrEmpty indicates a read was attempted against an empty queue. The
	// Decoder.Read method reports this condition via its bool return
	// instead of this error; it is exported for callers composing their own
	// queue wrappers.
	ErrEmpty = errors.New("ltc: queue empty")
)
