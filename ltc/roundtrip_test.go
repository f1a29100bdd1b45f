package ltc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x42/libltc/frame"
)

// feedFrame drains the encoder's buffer into the decoder at the running
// stream position.
func feedFrame(t *testing.T, enc *Encoder, dec *Decoder, pos *int64) {
	t.Helper()
	pcm := enc.Buffer(true)
	dec.WriteUint8(pcm, *pos)
	*pos += int64(len(pcm))
}

// endStream emits the final polarity transition and feeds it, so the last
// encoded bit's closing edge reaches the decoder.
func endStream(t *testing.T, enc *Encoder, dec *Decoder, pos *int64) {
	t.Helper()
	enc.EndEncode()
	feedFrame(t, enc, dec, pos)
}

// TestEncodeDecodeRoundTrip exercises the encode→decode identity: encoding
// a timecode and decoding the resulting PCM recovers exactly that timecode.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	tc := frame.Timecode{Hours: 12, Minutes: 34, Seconds: 56, Frame: 7}
	enc.SetTimecode(tc)
	require.NoError(t, enc.EncodeFrame())

	dec := NewDecoder(sampleRate/int(fps), 4)
	var pos int64
	feedFrame(t, enc, dec, &pos)
	endStream(t, enc, dec, &pos)

	got, ok := dec.Read()
	require.True(t, ok, "expected a decoded frame")
	require.False(t, got.Reverse)

	gotTC := frame.FrameToTimecode(got.FrameBits, false)
	require.Equal(t, tc.Hours, gotTC.Hours)
	require.Equal(t, tc.Minutes, gotTC.Minutes)
	require.Equal(t, tc.Seconds, gotTC.Seconds)
	require.Equal(t, tc.Frame, gotTC.Frame)
}

// TestRoundTrip44k1 pins down the decoded frame's sample offsets at
// 44.1kHz/30fps: one frame spans 1470 samples starting at the head of the
// stream.
func TestRoundTrip44k1(t *testing.T) {
	const sampleRate = 44100
	const fps = 30.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	tc := frame.Timecode{Hours: 12, Minutes: 34, Seconds: 56, Frame: 7}
	enc.SetTimecode(tc)
	require.NoError(t, enc.EncodeFrame())

	dec := NewDecoder(sampleRate/int(fps), 4)
	var pos int64
	feedFrame(t, enc, dec, &pos)
	endStream(t, enc, dec, &pos)

	got, ok := dec.Read()
	require.True(t, ok)
	gotTC := frame.FrameToTimecode(got.FrameBits, false)
	require.Equal(t, tc.Hours, gotTC.Hours)
	require.Equal(t, tc.Minutes, gotTC.Minutes)
	require.Equal(t, tc.Seconds, gotTC.Seconds)
	require.Equal(t, tc.Frame, gotTC.Frame)
	require.InDelta(t, 0, float64(got.OffStart), 80)
	require.InDelta(t, 1470, float64(got.OffEnd), 80)
}

// TestFiftyFramesAcrossMidnight encodes 50 consecutive frames starting just
// before midnight on 2008-12-31 and expects the decoded stream to cross into
// 2009-01-01, ending at 00:00:01:00.
func TestFiftyFramesAcrossMidnight(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0
	const numFrames = 50

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, true)
	require.NoError(t, err)
	enc.SetTimecode(frame.Timecode{
		Year: 8, Month: 12, Day: 31,
		Hours: 23, Minutes: 59, Seconds: 59, Frame: 0,
		Timezone: "+0100",
	})

	dec := NewDecoder(sampleRate/int(fps), numFrames+1)
	var pos int64
	for i := 0; i < numFrames; i++ {
		enc.IncrementTimecode()
		require.NoError(t, enc.EncodeFrame())
		feedFrame(t, enc, dec, &pos)
	}
	endStream(t, enc, dec, &pos)

	var frames []frame.FrameBitsExt
	for {
		ext, ok := dec.Read()
		if !ok {
			break
		}
		frames = append(frames, ext)
	}
	require.Len(t, frames, numFrames)

	first := frame.FrameToTimecode(frames[0].FrameBits, true)
	require.Equal(t, 23, first.Hours)
	require.Equal(t, 8, first.Year)
	require.Equal(t, 12, first.Month)
	require.Equal(t, 31, first.Day)

	last := frame.FrameToTimecode(frames[numFrames-1].FrameBits, true)
	require.Equal(t, 0, last.Hours)
	require.Equal(t, 0, last.Minutes)
	require.Equal(t, 1, last.Seconds)
	require.Equal(t, 0, last.Frame)
	require.Equal(t, 9, last.Year)
	require.Equal(t, 1, last.Month)
	require.Equal(t, 1, last.Day)
	require.Equal(t, "+0100", last.Timezone)
}

// TestDecodedOffsetsAreMonotone checks that adjacent decoded frames from a
// contiguous write abut each other: each frame ends before the next starts,
// and the gap never exceeds one symbol period.
func TestDecodedOffsetsAreMonotone(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	enc.SetTimecode(frame.Timecode{Hours: 1})
	dec := NewDecoder(sampleRate/int(fps), 16)

	var pos int64
	for i := 0; i < 6; i++ {
		require.NoError(t, enc.EncodeFrame())
		feedFrame(t, enc, dec, &pos)
		enc.IncrementTimecode()
	}
	endStream(t, enc, dec, &pos)

	symbolPeriod := float64(sampleRate) / (fps * frame.FrameBitCount)
	prevEnd := int64(-1)
	n := 0
	for {
		ext, ok := dec.Read()
		if !ok {
			break
		}
		if n > 0 {
			require.Greater(t, ext.OffStart, prevEnd)
			require.LessOrEqual(t, float64(ext.OffStart-prevEnd), symbolPeriod+1)
		}
		prevEnd = ext.OffEnd
		n++
	}
	require.Equal(t, 6, n)
}

// TestReverseEncodeSetsReverseFlag plays the frame bytes MSB-first in
// descending byte order, the bitstream a reverse-played tape would produce.
// The decoder must recover the timecode and flag the frame as reversed.
func TestReverseEncodeSetsReverseFlag(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	tc := frame.Timecode{Hours: 3, Minutes: 21, Seconds: 45, Frame: 12}
	enc.SetTimecode(tc)

	dec := NewDecoder(sampleRate/int(fps), 4)
	var pos int64
	for rep := 0; rep < 2; rep++ {
		for i := 9; i >= 0; i-- {
			require.NoError(t, enc.EncodeByte(i, -1.0))
		}
		feedFrame(t, enc, dec, &pos)
	}
	endStream(t, enc, dec, &pos)

	got, ok := dec.Read()
	require.True(t, ok, "expected a decoded frame from reversed stream")
	require.True(t, got.Reverse)

	gotTC := frame.FrameToTimecode(got.FrameBits, false)
	require.Equal(t, tc.Hours, gotTC.Hours)
	require.Equal(t, tc.Minutes, gotTC.Minutes)
	require.Equal(t, tc.Seconds, gotTC.Seconds)
	require.Equal(t, tc.Frame, gotTC.Frame)
}

// TestCorruptedFrameDoesNotPoisonNeighbours blanks out a stretch of samples
// inside the middle frame of three; the surrounding frames must still be
// recovered, with sync re-acquired in time for the last one.
func TestCorruptedFrameDoesNotPoisonNeighbours(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	enc.SetTimecode(frame.Timecode{Hours: 10, Minutes: 20, Seconds: 30, Frame: 0})

	var pcm []byte
	var last frame.Timecode
	for i := 0; i < 3; i++ {
		last = enc.GetTimecode()
		require.NoError(t, enc.EncodeFrame())
		pcm = append(pcm, enc.Buffer(true)...)
		enc.IncrementTimecode()
	}
	enc.EndEncode()
	pcm = append(pcm, enc.Buffer(true)...)

	// flatten ~two symbols in the middle of the second frame
	mid := 1920 + 960
	for i := mid; i < mid+48; i++ {
		pcm[i] = 0x80
	}

	dec := NewDecoder(sampleRate/int(fps), 8)
	dec.WriteUint8(pcm, 0)

	var frames []frame.FrameBitsExt
	for {
		ext, ok := dec.Read()
		if !ok {
			break
		}
		frames = append(frames, ext)
	}
	require.GreaterOrEqual(t, len(frames), 2)

	gotLast := frame.FrameToTimecode(frames[len(frames)-1].FrameBits, false)
	require.Equal(t, last.Seconds, gotLast.Seconds)
	require.Equal(t, last.Frame, gotLast.Frame)
}

// TestDelayedCountsTrailingSamples feeds a whole multi-frame stream in one
// write and checks each frame reports how far its sync word sat from the end
// of that write buffer.
func TestDelayedCountsTrailingSamples(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	enc.SetTimecode(frame.Timecode{Hours: 4})

	var pcm []byte
	for i := 0; i < 2; i++ {
		require.NoError(t, enc.EncodeFrame())
		pcm = append(pcm, enc.Buffer(true)...)
		enc.IncrementTimecode()
	}
	enc.EndEncode()
	pcm = append(pcm, enc.Buffer(true)...)

	dec := NewDecoder(sampleRate/int(fps), 4)
	dec.WriteUint8(pcm, 0)

	first, ok := dec.Read()
	require.True(t, ok)
	require.Equal(t, int(int64(len(pcm))-first.OffEnd), first.Delayed)
	require.Greater(t, first.Delayed, 0)
}

// TestInt16AndFloat32InputsDecode runs the same encoded stream through the
// s16 and f32 write paths to exercise the sample-format normalisation.
func TestInt16AndFloat32InputsDecode(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	tc := frame.Timecode{Hours: 7, Minutes: 8, Seconds: 9, Frame: 10}
	enc.SetTimecode(tc)

	var pcm []byte
	require.NoError(t, enc.EncodeFrame())
	pcm = append(pcm, enc.Buffer(true)...)
	enc.EndEncode()
	pcm = append(pcm, enc.Buffer(true)...)

	s16 := make([]int16, len(pcm))
	f32 := make([]float32, len(pcm))
	for i, b := range pcm {
		s16[i] = int16(int(b)-128) << 8
		f32[i] = float32(int(b)-128) / 128
	}

	decS16 := NewDecoder(sampleRate/int(fps), 4)
	decS16.WriteInt16(s16, 0)
	got, ok := decS16.Read()
	require.True(t, ok, "s16 stream should decode")
	require.Equal(t, tc.Frame, frame.FrameToTimecode(got.FrameBits, false).Frame)

	decF32 := NewDecoder(sampleRate/int(fps), 4)
	decF32.WriteFloat32(f32, 0)
	got, ok = decF32.Read()
	require.True(t, ok, "f32 stream should decode")
	require.Equal(t, tc.Frame, frame.FrameToTimecode(got.FrameBits, false).Frame)
}

// TestChunkedWritesMatchSingleWrite feeds the same stream in small chunks
// and expects the same frame boundaries as a single contiguous write.
func TestChunkedWritesMatchSingleWrite(t *testing.T) {
	const sampleRate = 48000
	const fps = 25.0

	enc, err := NewEncoder(sampleRate, fps, Standard525_60, false)
	require.NoError(t, err)
	enc.SetTimecode(frame.Timecode{Hours: 5, Minutes: 6, Seconds: 7, Frame: 8})

	var pcm []byte
	for i := 0; i < 2; i++ {
		require.NoError(t, enc.EncodeFrame())
		pcm = append(pcm, enc.Buffer(true)...)
		enc.IncrementTimecode()
	}
	enc.EndEncode()
	pcm = append(pcm, enc.Buffer(true)...)

	whole := NewDecoder(sampleRate/int(fps), 8)
	whole.WriteUint8(pcm, 0)

	chunked := NewDecoder(sampleRate/int(fps), 8)
	const chunk = 113
	for off := 0; off < len(pcm); off += chunk {
		end := off + chunk
		if end > len(pcm) {
			end = len(pcm)
		}
		chunked.WriteUint8(pcm[off:end], int64(off))
	}

	for {
		a, okA := whole.Read()
		b, okB := chunked.Read()
		require.Equal(t, okA, okB)
		if !okA {
			break
		}
		require.Equal(t, a.FrameBits, b.FrameBits)
		require.Equal(t, a.OffStart, b.OffStart)
		require.Equal(t, a.OffEnd, b.OffEnd)
	}
}
