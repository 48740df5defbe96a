// Package dcf77 decodes DCF77 telegrams, one bit per second.
//
// Layout: bit 0 is always 0, 1-14 carry third-party data, 15 is the call
// bit, 16 announces a DST change, 17/18 are CEST/CET, 19 announces a leap
// second, 20 is always 1. Minute (21-27), hour (29-34) and the date (36-57)
// are LSB-first BCD with even parity in 28, 35 and 58. Second 59 carries no
// pulse except in a leap-second minute, where it is a 0 bit.
//
// A telegram describes the minute that starts at its own minute marker
package dcf77

import "rdtlog/internal/core/radiotime"

// BitBufferSize is the number of seconds a minute may hold, leap second included
const BitBufferSize = 61

const (
	nominalLength = 60
	leapLength    = 61
)

var (
	minuteWeights  = []uint8{1, 2, 4, 8, 10, 20, 40}
	hourWeights    = []uint8{1, 2, 4, 8, 10, 20}
	dayWeights     = hourWeights
	weekdayWeights = []uint8{1, 2, 4}
	monthWeights   = []uint8{1, 2, 4, 8, 10}
	yearWeights    = []uint8{1, 2, 4, 8, 10, 20, 40, 80}
)

// Leap is a set of leap-second flags
type Leap uint8

const (
	// LeapAnnounced is set once bit 19 is trusted to announce a leap second
	LeapAnnounced Leap = 1 << iota
	// LeapProcessed is set on the minute that carried the leap second
	LeapProcessed
	// LeapOne is set when the inserted leap-second bit was not 0
	LeapOne
)

// Has reports whether all bits of f are set
func (l Leap) Has(f Leap) bool { return l&f == f }

// Result is one decoded minute
type Result struct {
	FirstMinute      bool
	Second           int
	ThisMinuteLength int
	NextMinuteLength int
	DateTime         radiotime.DateTime

	// parity results, Some(true) when the check passed
	MinuteParity radiotime.Maybe[bool]
	HourParity   radiotime.Maybe[bool]
	DateParity   radiotime.Maybe[bool]

	// Bit0OK and Bit20OK check the two constant bits
	Bit0OK  radiotime.Maybe[bool]
	Bit20OK radiotime.Maybe[bool]

	Call       radiotime.Maybe[bool]
	ThirdParty radiotime.Maybe[uint16]
	Leap       Leap
}

// Decoder accumulates one minute of bits and decodes it
type Decoder struct {
	bits      [BitBufferSize]radiotime.Maybe[bool]
	second    int
	newMinute bool

	firstMinute      bool
	thisMinuteLength int
	nextMinuteLength int
	decoded          bool

	dt       *radiotime.DateTime
	leapWarn radiotime.Announcement
}

// New returns a decoder waiting for the first second of a minute. Weekdays
// are numbered from weekdayBase, 1 (Monday) on air
func New(weekdayBase uint8) *Decoder {
	return &Decoder{
		firstMinute:      true,
		thisMinuteLength: nominalLength,
		nextMinuteLength: nominalLength,
		dt:               radiotime.New(weekdayBase),
	}
}

// SetCurrentBit stores the value of the current second; out of range is dropped
func (d *Decoder) SetCurrentBit(v radiotime.Maybe[bool]) {
	if d.second < BitBufferSize {
		d.bits[d.second] = v
	}
}

// IncreaseSecond moves to the next second, or to second 0 after ForceNewMinute.
// It returns false once the counter sits past the last buffer slot
func (d *Decoder) IncreaseSecond() bool {
	if d.newMinute {
		d.second = 0
		d.newMinute = false
		return true
	}
	if d.second >= BitBufferSize {
		return false
	}
	d.second++
	return true
}

// Second is the index of the second being received
func (d *Decoder) Second() int { return d.second }

// NextMinuteLength is the expected length of the minute being received
func (d *Decoder) NextMinuteLength() int { return d.nextMinuteLength }

// ForceNewMinute drops the bits and makes the next IncreaseSecond start at 0.
// A minute that was not decoded resets the length expectation
func (d *Decoder) ForceNewMinute() {
	if !d.decoded {
		d.nextMinuteLength = nominalLength
	}
	d.decoded = false
	d.newMinute = true
	d.bits = [BitBufferSize]radiotime.Maybe[bool]{}
}

// DecodeTime decodes the buffered minute. Call it only when Second matches
// NextMinuteLength
func (d *Decoder) DecodeTime() Result {
	b := d.bits[:]
	length := d.second
	check := !d.firstMinute

	d.dt.ClearFlags()
	if check {
		d.dt.AddMinute()
	}

	res := Result{
		FirstMinute:  d.firstMinute,
		Second:       length,
		MinuteParity: radiotime.Parity(b[21:29], false),
		HourParity:   radiotime.Parity(b[29:36], false),
		DateParity:   radiotime.Parity(b[36:59], false),
		Bit0OK:       invert(b[0]),
		Bit20OK:      b[20],
		Call:         b[15],
		ThirdParty:   word(b[1:15]),
	}

	frame := radiotime.Is(res.Bit0OK, true) && radiotime.Is(res.Bit20OK, true)
	timeOK := frame && radiotime.Is(res.MinuteParity, true)
	hourOK := frame && radiotime.Is(res.HourParity, true)
	dateOK := frame && radiotime.Is(res.DateParity, true)

	d.dt.SetMinute(radiotime.BCD(b[21:28], minuteWeights), timeOK, check)
	d.dt.SetHour(radiotime.BCD(b[29:35], hourWeights), hourOK, check)
	d.dt.SetDay(radiotime.BCD(b[36:42], dayWeights), dateOK, check)
	d.dt.SetWeekday(radiotime.BCD(b[42:45], weekdayWeights), dateOK, check)
	d.dt.SetMonth(radiotime.BCD(b[45:50], monthWeights), dateOK, check)
	d.dt.SetYear(radiotime.BCD(b[50:58], yearWeights), dateOK, check)

	d.dt.SetDST(zone(b[17], b[18]), b[16], check)

	d.leapWarn.Observe(b[19], d.dt, d.dt.Continues(check))
	if length == leapLength {
		res.Leap |= LeapProcessed
		if radiotime.Is(b[59], true) {
			res.Leap |= LeapOne
		}
	} else if d.leapWarn.Trusted() {
		res.Leap |= LeapAnnounced
	}

	d.thisMinuteLength = length
	d.nextMinuteLength = nominalLength
	if radiotime.Is(d.dt.Minute, 59) && d.leapWarn.Trusted() {
		d.nextMinuteLength = leapLength
	}
	res.ThisMinuteLength = d.thisMinuteLength
	res.NextMinuteLength = d.nextMinuteLength
	res.DateTime = *d.dt

	d.firstMinute = false
	d.decoded = true
	return res
}

// zone returns the summer-time bit when CEST and CET disagree, as they must
func zone(cest, cet radiotime.Maybe[bool]) radiotime.Maybe[bool] {
	s, ok1 := cest.Get()
	w, ok2 := cet.Get()
	if !ok1 || !ok2 || s == w {
		return radiotime.None[bool]()
	}
	return radiotime.Some(s)
}

func invert(b radiotime.Maybe[bool]) radiotime.Maybe[bool] {
	v, ok := b.Get()
	if !ok {
		return b
	}
	return radiotime.Some(!v)
}

// word packs bits LSB first
func word(bits []radiotime.Maybe[bool]) radiotime.Maybe[uint16] {
	var w uint16
	for i, b := range bits {
		v, ok := b.Get()
		if !ok {
			return radiotime.None[uint16]()
		}
		if v {
			w |= 1 << i
		}
	}
	return radiotime.Some(w)
}
