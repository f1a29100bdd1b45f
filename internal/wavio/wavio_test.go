package wavio

import (
	"os"
	"testing"
)

func TestWriteReadMono8RoundTrip(t *testing.T) {
	pcm := make([]byte, 4096)
	for i := range pcm {
		if i%2 == 0 {
			pcm[i] = 218
		} else {
			pcm[i] = 38
		}
	}

	f, err := os.CreateTemp(t.TempDir(), "ltc-*.wav")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := WriteMono8(f, pcm, 48000); err != nil {
		t.Fatalf("WriteMono8: %v", err)
	}

	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}

	got, sampleRate, err := ReadMono8(f)
	if err != nil {
		t.Fatalf("ReadMono8: %v", err)
	}
	if sampleRate != 48000 {
		t.Fatalf("sample rate = %d, want 48000", sampleRate)
	}
	if len(got) != len(pcm) {
		t.Fatalf("sample count = %d, want %d", len(got), len(pcm))
	}
	for i := range pcm {
		if got[i] != pcm[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], pcm[i])
			break
		}
	}
}
