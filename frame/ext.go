package frame

// FrameBitsExt is a decoded frame together with its position in the audio
// stream that produced it.
type FrameBitsExt struct {
	FrameBits

	// OffStart and OffEnd are the absolute sample offsets of the frame's
	// first and last bit, inclusive.
	OffStart int64
	OffEnd   int64

	// Reverse is set when the frame was recovered from audio played
	// backwards: the sync word arrived in the shift register as its mirrored
	// bit pattern instead of the forward one.
	Reverse bool

	// BiphaseTics holds the symbol-period estimate (in samples) recorded at
	// the moment each of the 80 bits was decoded.
	BiphaseTics [FrameBitCount]float32

	// Delayed is the number of trailing samples between the sync word's
	// last bit and the end of the write buffer that produced it, informational
	// only and not reflected in OffEnd.
	Delayed int
}
