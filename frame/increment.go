package frame

import "math"

// daysPerMonth is indexed 0 (January) through 11 (December); February is
// patched for leap years by isLeapYear.
var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return year%4 == 0 && year != 0
}

func daysInMonth(year, month int) int {
	if month == 2 && isLeapYear(year) {
		return 29
	}
	if month < 1 || month > 12 {
		return 31
	}
	return daysPerMonth[month-1]
}

func nominalFPS(fps float64, dropFrame bool) int {
	if dropFrame {
		return 30
	}
	return int(math.Round(fps))
}

// Increment advances fb by one LTC frame (1/fps seconds), honouring
// drop-frame skip rules and, when useDate is set, the packed date. It
// returns true iff the 24-hour boundary wrapped.
func (fb *FrameBits) Increment(fps float64, useDate bool) bool {
	fpsN := nominalFPS(fps, fb.DropFrame())
	wrapped := false

	frameUnits := fb.FrameUnits() + 1
	frameTens := fb.FrameTens()
	if frameUnits == 10 {
		frameUnits = 0
		frameTens++
	}
	fb.SetFrameUnits(frameUnits)
	fb.SetFrameTens(frameTens)

	if frameTens*10+frameUnits >= fpsN {
		fb.SetFrameUnits(0)
		fb.SetFrameTens(0)

		secsUnits := fb.SecsUnits() + 1
		secsTens := fb.SecsTens()
		if secsUnits == 10 {
			secsUnits = 0
			secsTens++
		}
		fb.SetSecsUnits(secsUnits)
		fb.SetSecsTens(secsTens)

		if secsTens == 6 {
			fb.SetSecsUnits(0)
			fb.SetSecsTens(0)

			minsUnits := fb.MinsUnits() + 1
			minsTens := fb.MinsTens()
			if minsUnits == 10 {
				minsUnits = 0
				minsTens++
			}
			fb.SetMinsUnits(minsUnits)
			fb.SetMinsTens(minsTens)

			if minsTens == 6 {
				fb.SetMinsUnits(0)
				fb.SetMinsTens(0)

				hoursUnits := fb.HoursUnits() + 1
				hoursTens := fb.HoursTens()
				if hoursUnits == 10 {
					hoursUnits = 0
					hoursTens++
				}
				if hoursTens == 2 && hoursUnits == 4 {
					// 24:00:00:00 reached; wrap to 00:00:00:00.
					hoursUnits = 0
					hoursTens = 0
					wrapped = true
					if useDate {
						advanceDate(fb)
					}
				}
				fb.SetHoursUnits(hoursUnits)
				fb.SetHoursTens(hoursTens)
			}
		}
	}

	if fb.DropFrame() {
		skipDropFrames(fb)
	}
	fb.SetParity()
	return wrapped
}

// Decrement retreats fb by one LTC frame, the inverse of Increment. When
// the result would land on a frame count the drop-frame rule skips, it
// retreats past it to the previous second's last frame.
func (fb *FrameBits) Decrement(fps float64, useDate bool) bool {
	fpsN := nominalFPS(fps, fb.DropFrame())
	wrapped := fb.decrementOnce(fpsN, useDate)

	if fb.DropFrame() && fb.FrameTens() == 0 && fb.FrameUnits() <= 1 &&
		fb.SecsUnits() == 0 && fb.SecsTens() == 0 && fb.MinsUnits() != 0 {
		fb.SetFrameUnits(0)
		fb.SetFrameTens(0)
		if fb.decrementOnce(fpsN, useDate) {
			wrapped = true
		}
	}
	fb.SetParity()
	return wrapped
}

func (fb *FrameBits) decrementOnce(fpsN int, useDate bool) bool {
	wrapped := false

	frameUnits := fb.FrameUnits() - 1
	frameTens := fb.FrameTens()
	if frameUnits < 0 {
		frameTens--
		frameUnits = 9
		if frameTens < 0 {
			frameTens = (fpsN - 1) / 10
			frameUnits = (fpsN - 1) % 10

			secsUnits := fb.SecsUnits() - 1
			secsTens := fb.SecsTens()
			if secsUnits < 0 {
				secsUnits = 9
				secsTens--
				if secsTens < 0 {
					secsTens = 5
					secsUnits = 9

					minsUnits := fb.MinsUnits() - 1
					minsTens := fb.MinsTens()
					if minsUnits < 0 {
						minsUnits = 9
						minsTens--
						if minsTens < 0 {
							minsTens = 5
							minsUnits = 9

							hoursUnits := fb.HoursUnits() - 1
							hoursTens := fb.HoursTens()
							if hoursUnits < 0 {
								hoursUnits = 9
								hoursTens--
							}
							if hoursTens < 0 {
								// 00:00:00:00 decremented past midnight.
								hoursTens = 2
								hoursUnits = 3
								wrapped = true
								if useDate {
									retreatDate(fb)
								}
							}
							fb.SetHoursUnits(hoursUnits)
							fb.SetHoursTens(hoursTens)
						}
					}
					fb.SetMinsUnits(minsUnits)
					fb.SetMinsTens(minsTens)
				}
			}
			fb.SetSecsUnits(secsUnits)
			fb.SetSecsTens(secsTens)
		}
	}
	fb.SetFrameUnits(frameUnits)
	fb.SetFrameTens(frameTens)
	return wrapped
}

func advanceDate(fb *FrameBits) {
	year := fb.User6()*10 + fb.User5()
	month := fb.User4()*10 + fb.User3()
	day := fb.User2()*10 + fb.User1()
	if month < 1 || month > 12 {
		return
	}
	day++
	if day > daysInMonth(year, month) {
		day = 1
		month++
		if month > 12 {
			month = 1
			year = (year + 1) % 100
		}
	}
	fb.SetUser1(day % 10)
	fb.SetUser2(day / 10)
	fb.SetUser3(month % 10)
	fb.SetUser4(month / 10)
	fb.SetUser5(year % 10)
	fb.SetUser6(year / 10)
}

func retreatDate(fb *FrameBits) {
	year := fb.User6()*10 + fb.User5()
	month := fb.User4()*10 + fb.User3()
	day := fb.User2()*10 + fb.User1()
	if month < 1 || month > 12 {
		return
	}
	day--
	if day < 1 {
		month--
		if month < 1 {
			month = 12
			if year == 0 {
				year = 99
			} else {
				year--
			}
		}
		day = daysInMonth(year, month)
	}
	fb.SetUser1(day % 10)
	fb.SetUser2(day / 10)
	fb.SetUser3(month % 10)
	fb.SetUser4(month / 10)
	fb.SetUser5(year % 10)
	fb.SetUser6(year / 10)
}
