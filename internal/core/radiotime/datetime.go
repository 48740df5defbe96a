// Package radiotime holds the calendar state shared by the time-signal decoders.
// Fields are individually optional; a decoder predicts the next minute with
// AddMinute and then overwrites whatever the new telegram proves, flagging
// every field that disagrees with the prediction as a jump
package radiotime

// DST is a set of daylight-saving flags
type DST uint8

const (
	// DSTSummer is set while summer time is in effect
	DSTSummer DST = 1 << iota
	// DSTAnnounced is set while a change is announced; never together with DSTProcessed
	DSTAnnounced
	// DSTProcessed is set on the minute a change took effect
	DSTProcessed
	// DSTJump is set while the decoded summer bit disagrees with the prediction
	DSTJump
)

// Has reports whether all bits of f are set
func (d DST) Has(f DST) bool { return d&f == f }

// Jumps records which fields disagreed with the previous minute's prediction
type Jumps struct {
	Year    bool
	Month   bool
	Day     bool
	Weekday bool
	Hour    bool
	Minute  bool
}

// Any reports whether at least one field jumped
func (j Jumps) Any() bool {
	return j.Year || j.Month || j.Day || j.Weekday || j.Hour || j.Minute
}

// Announcement counts a warning bit over the minutes of one hour. Minute 0
// still carries the warning for a change that has just taken effect and is
// not counted. A minute that does not continue the previous one restarts the
// count, and the warning is not trusted until the next minute confirms it
type Announcement struct {
	hour  Maybe[uint8]
	seen  int
	set   int
	fresh bool
}

// Observe records the warning bit of the minute dt describes. continues is
// false for the first minute and after an hour or date jump
func (a *Announcement) Observe(bit Maybe[bool], dt *DateTime, continues bool) {
	if !continues || dt.Hour != a.hour || Is(dt.Minute, 0) {
		a.seen, a.set = 0, 0
	}
	a.hour = dt.Hour
	a.fresh = !continues
	if Is(dt.Minute, 0) {
		return
	}
	v, ok := bit.Get()
	if !ok {
		return
	}
	a.seen++
	if v {
		a.set++
	}
}

// Trusted reports whether the warning was set in at least half of the
// counted minutes of a continuous run
func (a *Announcement) Trusted() bool { return !a.fresh && a.set > 0 && 2*a.set >= a.seen }

// Reset forgets the counts
func (a *Announcement) Reset() { *a = Announcement{} }

// DateTime is the decoded (or predicted) calendar state of one minute
type DateTime struct {
	Year    Maybe[uint8] // two digits, 2000-based
	Month   Maybe[uint8]
	Day     Maybe[uint8]
	Weekday Maybe[uint8]
	Hour    Maybe[uint8]
	Minute  Maybe[uint8]
	DST     Maybe[DST]
	Jumps   Jumps

	weekdayBase uint8
	dstWarn     Announcement
}

// New returns an empty DateTime whose weekdays run from base to base+6
func New(weekdayBase uint8) *DateTime { return &DateTime{weekdayBase: weekdayBase} }

// ClearFlags drops the per-minute flags: jumps and the transient DST bits
func (dt *DateTime) ClearFlags() {
	dt.Jumps = Jumps{}
	if f, ok := dt.DST.Get(); ok {
		dt.DST = Some(f & DSTSummer)
	}
}

// Continues reports whether the minute follows on from the previous one:
// jumps were checked and neither the hour nor any date field jumped
func (dt *DateTime) Continues(checkJump bool) bool {
	j := dt.Jumps
	return checkJump && !j.Year && !j.Month && !j.Day && !j.Weekday && !j.Hour
}

// AddMinute advances the prediction by one minute. It returns false when
// minute or hour are unknown, in which case nothing changes. Date fields only
// roll over when day, month and year are all known
func (dt *DateTime) AddMinute() bool {
	minute, okMin := dt.Minute.Get()
	hour, okHour := dt.Hour.Get()
	if !okMin || !okHour {
		return false
	}

	minute++
	if minute == 60 {
		minute = 0
		hour++
		if hour == 24 {
			hour = 0
			dt.addDay()
		}
	}
	if minute == 0 {
		if dt.dstWarn.Trusted() {
			hour = dt.applyDSTChange(hour)
		}
		dt.dstWarn.Reset()
	}

	dt.Minute = Some(minute)
	dt.Hour = Some(hour)
	return true
}

func (dt *DateTime) applyDSTChange(hour uint8) uint8 {
	f, ok := dt.DST.Get()
	if !ok {
		return hour
	}
	if f.Has(DSTSummer) {
		hour = (hour + 23) % 24
		f &^= DSTSummer
	} else {
		hour = (hour + 1) % 24
		f |= DSTSummer
	}
	f &^= DSTAnnounced
	dt.DST = Some(f | DSTProcessed)
	return hour
}

func (dt *DateTime) addDay() {
	if wd, ok := dt.Weekday.Get(); ok {
		wd++
		if wd > dt.weekdayBase+6 {
			wd = dt.weekdayBase
		}
		dt.Weekday = Some(wd)
	}

	year, okY := dt.Year.Get()
	month, okM := dt.Month.Get()
	day, okD := dt.Day.Get()
	if !okY || !okM || !okD {
		return
	}
	day++
	if day > LastDay(year, month) {
		day = 1
		month++
		if month > 12 {
			month = 1
			year = (year + 1) % 100
		}
	}
	dt.Year = Some(year)
	dt.Month = Some(month)
	dt.Day = Some(day)
}

// LastDay returns the number of days in month of the two-digit year
func LastDay(year, month uint8) uint8 {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// SetYear stores a decoded year when valid
func (dt *DateTime) SetYear(v Maybe[uint8], valid, checkJump bool) {
	store(&dt.Year, &dt.Jumps.Year, v, valid && inRange(v, 0, 99), checkJump)
}

// SetMonth stores a decoded month when valid
func (dt *DateTime) SetMonth(v Maybe[uint8], valid, checkJump bool) {
	store(&dt.Month, &dt.Jumps.Month, v, valid && inRange(v, 1, 12), checkJump)
}

// SetDay stores a decoded day-of-month when valid
func (dt *DateTime) SetDay(v Maybe[uint8], valid, checkJump bool) {
	store(&dt.Day, &dt.Jumps.Day, v, valid && inRange(v, 1, 31), checkJump)
}

// SetWeekday stores a decoded weekday when valid
func (dt *DateTime) SetWeekday(v Maybe[uint8], valid, checkJump bool) {
	store(&dt.Weekday, &dt.Jumps.Weekday, v, valid && inRange(v, dt.weekdayBase, dt.weekdayBase+6), checkJump)
}

// SetHour stores a decoded hour when valid
func (dt *DateTime) SetHour(v Maybe[uint8], valid, checkJump bool) {
	store(&dt.Hour, &dt.Jumps.Hour, v, valid && inRange(v, 0, 23), checkJump)
}

// SetMinute stores a decoded minute when valid
func (dt *DateTime) SetMinute(v Maybe[uint8], valid, checkJump bool) {
	store(&dt.Minute, &dt.Jumps.Minute, v, valid && inRange(v, 0, 59), checkJump)
}

// SetDST merges the decoded summer-time and announcement bits into the flags.
// Call it after the date and time setters. A summer/winter flip that no
// processed change explains keeps the prediction and raises DSTJump on every
// minute until the telegrams agree with it again. An undetermined summer bit
// keeps the prediction. DSTAnnounced follows the trusted warning count, never
// a single bit
func (dt *DateTime) SetDST(summer, announced Maybe[bool], checkJump bool) {
	dt.dstWarn.Observe(announced, dt, dt.Continues(checkJump))

	f, had := dt.DST.Get()
	if s, ok := summer.Get(); ok {
		switch {
		case !had || !checkJump:
			if s {
				f |= DSTSummer
			} else {
				f &^= DSTSummer
			}
			had = true
		case f.Has(DSTSummer) != s:
			f |= DSTJump
		}
	}
	if !had {
		return
	}
	if dt.dstWarn.Trusted() && !f.Has(DSTProcessed) {
		f |= DSTAnnounced
	}
	dt.DST = Some(f)
}

func store(field *Maybe[uint8], jump *bool, v Maybe[uint8], valid, checkJump bool) {
	nv, ok := v.Get()
	if !valid || !ok {
		return
	}
	if old, had := field.Get(); checkJump && had && old != nv {
		*jump = true
	}
	*field = Some(nv)
}

func inRange(v Maybe[uint8], lo, hi uint8) bool {
	x, ok := v.Get()
	return ok && x >= lo && x <= hi
}
