// Package wavio reads and writes mono 8-bit unsigned PCM WAV files, the
// wire format the ltc decoder and encoder operate on, via go-audio/wav.
package wavio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// audioFormatPCM is the WAV "format tag" for uncompressed linear PCM.
const audioFormatPCM = 1

// WriteMono8 encodes pcm (8-bit unsigned, centre 0x80, mono) as a WAV file
// at sampleRate to w.
func WriteMono8(w io.WriteSeeker, pcm []byte, sampleRate int) error {
	enc := wav.NewEncoder(w, sampleRate, 8, 1, audioFormatPCM)

	data := make([]int, len(pcm))
	for i, b := range pcm {
		data[i] = int(b)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 8,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write: %w", err)
	}
	return enc.Close()
}

// ReadMono8 decodes a mono WAV file into 8-bit unsigned PCM samples,
// downmixing multi-channel input by taking the first channel and re-scaling
// bit depths other than 8 to the decoder's native 0..255 range.
func ReadMono8(r io.ReadSeeker) (pcm []byte, sampleRate int, err error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wavio: not a valid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: decode: %w", err)
	}

	numChans := buf.Format.NumChannels
	if numChans < 1 {
		numChans = 1
	}
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 8
	}

	n := len(buf.Data) / numChans
	pcm = make([]byte, n)
	for i := 0; i < n; i++ {
		sample := buf.Data[i*numChans]
		pcm[i] = to8BitUnsigned(sample, bitDepth)
	}
	return pcm, int(dec.SampleRate), nil
}

func to8BitUnsigned(sample, bitDepth int) byte {
	if bitDepth <= 8 {
		return clampByte(sample)
	}
	shift := uint(bitDepth - 8)
	return clampByte((sample >> shift) + 0x80)
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
