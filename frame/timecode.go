package frame

// Timecode is the human-readable decomposition of an LTC frame: wall-clock
// fields plus the optional embedded date and timezone carried in the user
// bits when a frame is built with use_date set.
type Timecode struct {
	Year, Month, Day          int
	Hours, Minutes, Seconds, Frame int
	DropFrame                 bool
	Timezone                  string
}

// TimecodeToFrame packs tc into an 80-bit FrameBits. When useDate is set,
// year/month/day and timezone are packed into the user bits (user1-user8);
// otherwise those bits are left zero.
func TimecodeToFrame(tc Timecode, useDate bool) FrameBits {
	fb := Reset()

	fTens, fUnits := tc.Frame/10, tc.Frame%10
	sTens, sUnits := tc.Seconds/10, tc.Seconds%10
	mTens, mUnits := tc.Minutes/10, tc.Minutes%10
	hTens, hUnits := tc.Hours/10, tc.Hours%10

	fb.SetFrameUnits(fUnits)
	fb.SetFrameTens(fTens)
	fb.SetSecsUnits(sUnits)
	fb.SetSecsTens(sTens)
	fb.SetMinsUnits(mUnits)
	fb.SetMinsTens(mTens)
	fb.SetHoursUnits(hUnits)
	fb.SetHoursTens(hTens)
	fb.SetDropFrame(tc.DropFrame)

	if useDate {
		yTens, yUnits := (tc.Year%100)/10, tc.Year%10
		moTens, moUnits := tc.Month/10, tc.Month%10
		dTens, dUnits := tc.Day/10, tc.Day%10
		fb.SetUser1(dUnits)
		fb.SetUser2(dTens)
		fb.SetUser3(moUnits)
		fb.SetUser4(moTens)
		fb.SetUser5(yUnits)
		fb.SetUser6(yTens)
		fb.setTimezoneCode(timezoneCodeForString(tc.Timezone))
	}

	if tc.DropFrame {
		skipDropFrames(&fb)
	}
	fb.SetParity()
	return fb
}

// FrameToTimecode is the inverse of TimecodeToFrame.
func FrameToTimecode(fb FrameBits, useDate bool) Timecode {
	tc := Timecode{
		Hours:     fb.HoursTens()*10 + fb.HoursUnits(),
		Minutes:   fb.MinsTens()*10 + fb.MinsUnits(),
		Seconds:   fb.SecsTens()*10 + fb.SecsUnits(),
		Frame:     fb.FrameTens()*10 + fb.FrameUnits(),
		DropFrame: fb.DropFrame(),
	}
	if useDate {
		tc.Day = fb.User2()*10 + fb.User1()
		tc.Month = fb.User4()*10 + fb.User3()
		tc.Year = fb.User6()*10 + fb.User5()
		tc.Timezone = timezoneString(fb.timezoneCode())
	}
	return tc
}

// skipDropFrames applies the drop-frame rule: at the start of every minute
// whose units digit is nonzero (every minute except multiples of ten), frame
// counts 0 and 1 are skipped.
func skipDropFrames(fb *FrameBits) {
	if fb.MinsUnits() != 0 && fb.SecsUnits() == 0 && fb.SecsTens() == 0 &&
		fb.FrameUnits() == 0 && fb.FrameTens() == 0 {
		fb.SetFrameUnits(fb.FrameUnits() + 2)
	}
}
