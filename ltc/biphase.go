package ltc

// biphaseDecoder converts the state sequence produced by envelopeTracker
// into LTC data bits. A long interval is fed as two identical virtual
// half-symbols (no real mid-symbol edge occurred); a short interval is fed
// as one. Two consecutive matching states always decode to 0 and realign the
// internal phase; two consecutive differing states toggle the phase and
// surface a 1 only when the phase lands back on the aligned half.
type biphaseDecoder struct {
	prevState int
	phase     int
}

// feed processes one transition (see envelopeTracker.step) and appends any
// decoded bits to dst: 0 or 1 of them for a short interval; for a long
// interval a 0, which is the only bit when the state differs from the
// previous one and the phase was aligned (as in a continuous stream), and
// otherwise follows one extra bit from the first virtual half-symbol.
func (b *biphaseDecoder) feed(t transition, dst []int) []int {
	states := [2]int{t.state, t.state}
	n := 1
	if t.long {
		n = 2
	}
	for i := 0; i < n; i++ {
		st := states[i]
		if st == b.prevState {
			b.phase = 1
			dst = append(dst, 0)
		} else {
			b.phase = 1 - b.phase
			if b.phase == 1 {
				dst = append(dst, 1)
			}
		}
		b.prevState = st
	}
	return dst
}
