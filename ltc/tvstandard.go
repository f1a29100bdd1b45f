package ltc

// TVStandard selects the encoder's default filter rise-time. It does not
// affect the 80-bit frame layout, only the PCM waveform shaping.
type TVStandard int

const (
	// Standard525_60 is NTSC-style 525-line/60-field video (25 µs rise-time).
	Standard525_60 TVStandard = iota
	// Standard625_50 is PAL-style 625-line/50-field video (25 µs rise-time).
	Standard625_50
	// Standard1125_60 is HD 1125-line/60-field video (10 µs rise-time).
	Standard1125_60
	// StandardFilm is 24fps film transfer (40 µs rise-time).
	StandardFilm
)

// defaultRiseTimeMicros returns the filter rise-time a freshly created
// Encoder uses before any explicit SetFilter call.
func defaultRiseTimeMicros(std TVStandard) float64 {
	switch std {
	case Standard1125_60:
		return 10
	case StandardFilm:
		return 40
	default:
		return 25
	}
}
