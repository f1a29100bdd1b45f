package ltc

// sampleCenter is the mid-point of the 8-bit unsigned PCM range the decoder
// operates on internally.
const sampleCenter = 0x80

// envelopeTracker is the adaptive min/max edge detector: it tracks the
// running dynamic range of the incoming signal and reports a biphase state
// change whenever a sample crosses the hysteresis threshold opposite its
// current polarity. Relaxing the envelope toward centre every sample keeps
// the thresholds tracking slow level drift without a fixed AGC stage.
type envelopeTracker struct {
	minEnv, maxEnv int
	state          int // 0 or 1, the polarity active since the last transition
	cnt            int // samples elapsed since the last transition
	period         float64
	limit          float64 // cnt beyond this marks a "long" (no mid-symbol edge) interval
}

func newEnvelopeTracker(samplesPerSymbol float64) *envelopeTracker {
	return &envelopeTracker{
		minEnv: sampleCenter,
		maxEnv: sampleCenter,
		period: samplesPerSymbol,
		limit:  samplesPerSymbol * 13 / 16,
	}
}

// transition reports one biphase-mark state change. long is true when the
// preceding interval exceeded the half-symbol limit, meaning the symbol
// carried no real mid-symbol edge and collapses to a single binary 0.
type transition struct {
	state int
	long  bool
}

// step feeds one 8-bit unsigned PCM sample and reports whether it produced a
// state transition.
func (e *envelopeTracker) step(x uint8) (transition, bool) {
	e.minEnv = sampleCenter - ((sampleCenter - e.minEnv) * 15 / 16)
	e.maxEnv = sampleCenter + ((e.maxEnv - sampleCenter) * 15 / 16)

	v := int(x)
	if v < e.minEnv {
		e.minEnv = v
	}
	if v > e.maxEnv {
		e.maxEnv = v
	}

	minThreshold := sampleCenter - ((sampleCenter - e.minEnv) * 8 / 16)
	maxThreshold := sampleCenter + ((e.maxEnv - sampleCenter) * 8 / 16)

	changed := (e.state != 0 && v > maxThreshold) || (e.state == 0 && v < minThreshold)
	if !changed {
		e.cnt++
		return transition{}, false
	}

	t := transition{state: e.state, long: float64(e.cnt) > e.limit}
	if !t.long {
		// A short interval is half of a biphase-1; doubling cnt before the
		// period update makes it weigh in as a full-length interval.
		e.cnt *= 2
	}
	e.period = (e.period*3 + float64(e.cnt)) / 4
	e.limit = e.period * 13 / 16
	e.cnt = 1
	e.state = 1 - e.state
	return t, true
}
