package ltc

import "testing"

func TestBiphaseDecoderLongIntervalEmitsZero(t *testing.T) {
	var b biphaseDecoder
	// Prime with one short edge so prevState differs from the long edge's
	// state, matching a real bitstream's alternating polarity.
	b.feed(transition{state: 0, long: false}, nil)
	bits := b.feed(transition{state: 1, long: true}, nil)
	found := false
	for _, v := range bits {
		if v == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("long interval did not emit a 0 bit: %v", bits)
	}
	if b.phase != 1 {
		t.Fatalf("phase after long interval = %d, want 1 (realigned)", b.phase)
	}
}

func TestBiphaseDecoderShortIntervalPairEmitsOne(t *testing.T) {
	var b biphaseDecoder
	b.prevState = 0
	b.phase = 1
	var bits []int
	bits = b.feed(transition{state: 1, long: false}, bits)
	bits = b.feed(transition{state: 0, long: false}, bits)
	if len(bits) != 1 || bits[0] != 1 {
		t.Fatalf("two short intervals = %v, want exactly [1]", bits)
	}
	if b.phase != 1 {
		t.Fatalf("phase after a completed 1-bit = %d, want 1", b.phase)
	}
}
