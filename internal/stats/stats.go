// Package stats tracks frame send/drop/duplicate counters and inter-frame
// timing for the ltcgen example program's live status line.
package stats

import (
	"container/ring"
	"fmt"
	"math"
	"time"
)

// DurationStatistics accumulates a running mean/variance over a stream of
// durations using Welford's online algorithm.
type DurationStatistics struct {
	n        int
	average  time.Duration
	variance int64
	minMax   MinMaxDuration
}

func (s *DurationStatistics) Update(d time.Duration) {
	s.n++
	oldAvg := s.average
	s.average = oldAvg + (d-oldAvg)/time.Duration(s.n)
	s.variance += (d - s.average).Nanoseconds() * (d - oldAvg).Nanoseconds()
	s.minMax.Update(d)
}

func (s DurationStatistics) Variance() time.Duration {
	if s.n > 1 {
		return time.Duration(s.variance / int64(s.n-1))
	}
	return 0
}

// Slow reports whether d exceeds the running average by more than 100µs.
func (s DurationStatistics) Slow(d time.Duration) bool {
	return d > s.average+100*time.Microsecond
}

func (s DurationStatistics) StdDev() time.Duration {
	return time.Duration(math.Sqrt(float64(s.Variance().Nanoseconds())))
}

func (s DurationStatistics) String() string {
	return fmt.Sprintf("(min/mean/stddev/max): %s/%s/%s/%s", s.minMax.Min(), s.average, s.StdDev(), s.minMax.Max())
}

// MinMaxDuration tracks the smallest and largest duration seen so far.
type MinMaxDuration struct {
	min, max, current time.Duration
}

func (m *MinMaxDuration) Update(d time.Duration) {
	if d < m.min || m.min == 0 {
		m.min = d
	}
	if d > m.max {
		m.max = d
	}
	m.current = d
}

func (m MinMaxDuration) Min() time.Duration { return m.min }
func (m MinMaxDuration) Max() time.Duration { return m.max }

func (m MinMaxDuration) String() string {
	return fmt.Sprintf("(min/current/max): %s/%s/%s", m.min, m.current, m.max)
}

// TimeRing is a fixed-size ring of timestamps used to derive a trailing
// average frame rate.
type TimeRing struct {
	*ring.Ring
	marked int
}

func NewTimeRing(length int) *TimeRing {
	r := &TimeRing{}
	r.Ring = ring.New(length)
	return r
}

func (r *TimeRing) Mark(now time.Time) {
	r.Ring = r.Next()
	r.marked = int(math.Min(float64(r.marked+1), float64(r.Ring.Len())))
	r.Ring.Value = now
}

func (r TimeRing) Latest() time.Time {
	return r.Value.(time.Time)
}

func (r TimeRing) First() time.Time {
	val, _ := r.Move(r.Len() - r.marked).Next().Value.(time.Time)
	return val
}

func (r *TimeRing) AvgRate() float64 {
	elapsed := r.Latest().Sub(r.First())
	if elapsed <= 0 {
		return 0
	}
	return float64(r.marked-1) / elapsed.Seconds()
}

// FrameStats tracks how many LTC frames were sent on time, dropped, sent as
// duplicates, or sent with an unusually large scheduling offset, for a live
// encoder loop's status line.
type FrameStats struct {
	sent        int64
	dropped     int64
	duplicate   int64
	largeOffset int64
	times       *TimeRing
	offset      DurationStatistics
}

// New creates a FrameStats tracking a trailing window of rateLen frame
// timestamps for its frame-rate estimate.
func New(rateLen int) *FrameStats {
	return &FrameStats{times: NewTimeRing(rateLen)}
}

// Sent records one frame successfully written, along with how far its write
// time drifted from its scheduled slot.
func (s *FrameStats) Sent(now time.Time, offset time.Duration) {
	s.times.Mark(now)
	s.sent++
	s.offset.Update(offset)
	if offset > time.Millisecond {
		s.largeOffset++
	}
}

// Dropped records n frames that could not be written in time.
func (s *FrameStats) Dropped(n int) { s.dropped += int64(n) }

// Duplicate records one frame re-sent because no new timecode was ready.
func (s *FrameStats) Duplicate() { s.duplicate++ }

// FPS returns the trailing average frame rate actually achieved.
func (s FrameStats) FPS() float64 { return s.times.AvgRate() }

func (s FrameStats) String() string {
	var pct float64
	if s.sent > 0 {
		pct = 100 * (1 - float64(s.largeOffset+s.dropped+s.duplicate)/float64(s.sent))
	}
	return fmt.Sprintf("%d frames sent - %0.2f%% perfect %d/%d/%d drop/dup/slow - frame start offset %s",
		s.sent, pct, s.dropped, s.duplicate, s.largeOffset, s.offset)
}
