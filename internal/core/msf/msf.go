// Package msf decodes MSF telegrams, two bits (A and B) per second.
//
// Bit A carries the time: year 17-24, month 25-29, day 30-35, weekday 36-38
// (0 is Sunday), hour 39-44 and minute 45-51, MSB-first BCD, then the
// end-of-minute marker 01111110 in 52-59. Bit B carries DUT1 in 1-16, the
// DST warning in 53, odd parity in 54-57 and summer time in 58.
//
// A leap second is inserted after second 16, so every index from 17 on
// moves with the minute length
package msf

import "rdtlog/internal/core/radiotime"

// BitBufferSize is the number of seconds a minute may hold, leap second included
const BitBufferSize = 61

const nominalLength = 60

var (
	marker = []bool{false, true, true, true, true, true, true, false}

	yearWeights    = []uint8{80, 40, 20, 10, 8, 4, 2, 1}
	monthWeights   = []uint8{10, 8, 4, 2, 1}
	dayWeights     = []uint8{20, 10, 8, 4, 2, 1}
	weekdayWeights = []uint8{4, 2, 1}
	hourWeights    = dayWeights
	minuteWeights  = []uint8{40, 20, 10, 8, 4, 2, 1}
)

// Result is one decoded minute
type Result struct {
	FirstMinute  bool
	Second       int
	MinuteLength int
	DateTime     radiotime.DateTime

	// parity results, Some(true) when the check passed
	YearParity       radiotime.Maybe[bool]
	MonthDayParity   radiotime.Maybe[bool]
	WeekdayParity    radiotime.Maybe[bool]
	HourMinuteParity radiotime.Maybe[bool]

	// DUT1 in tenths of a second
	DUT1              radiotime.Maybe[int8]
	EndOfMinuteMarker bool
}

// Decoder accumulates one minute of bit pairs and decodes it
type Decoder struct {
	a, b      [BitBufferSize]radiotime.Maybe[bool]
	second    int
	newMinute bool

	firstMinute bool
	dt          *radiotime.DateTime
}

// New returns a decoder waiting for the first second of a minute. Weekdays
// are numbered from weekdayBase, 0 (Sunday) on air
func New(weekdayBase uint8) *Decoder {
	return &Decoder{firstMinute: true, dt: radiotime.New(weekdayBase)}
}

// SetCurrentBits stores bits A and B of the current second; out of range is dropped
func (d *Decoder) SetCurrentBits(a, b radiotime.Maybe[bool]) {
	if d.second < BitBufferSize {
		d.a[d.second] = a
		d.b[d.second] = b
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

// MinuteLength is the expected length of the minute being received: the
// position right after an end-of-minute marker found at 59, 60 or 61, else 60
func (d *Decoder) MinuteLength() int {
	switch n := d.second; n {
	case nominalLength - 1, nominalLength, nominalLength + 1:
		if d.markerEndsAt(n) {
			return n
		}
	}
	return nominalLength
}

// EndOfMinuteMarkerPresent reports whether the marker ends right before the current second
func (d *Decoder) EndOfMinuteMarkerPresent() bool { return d.markerEndsAt(d.second) }

func (d *Decoder) markerEndsAt(n int) bool {
	start := n - len(marker)
	if start < 0 || n > BitBufferSize {
		return false
	}
	for i, want := range marker {
		if !radiotime.Is(d.a[start+i], want) {
			return false
		}
	}
	return true
}

// ForceNewMinute drops the bits and makes the next IncreaseSecond start at 0
func (d *Decoder) ForceNewMinute() {
	d.clear()
	d.newMinute = true
}

// ForcePastNewMinute treats the current second as second 0 of a new minute
func (d *Decoder) ForcePastNewMinute() {
	d.clear()
	d.newMinute = false
	d.second = 0
}

func (d *Decoder) clear() {
	d.a = [BitBufferSize]radiotime.Maybe[bool]{}
	d.b = [BitBufferSize]radiotime.Maybe[bool]{}
}

// DecodeTime decodes the buffered minute. Call it only when Second matches MinuteLength
func (d *Decoder) DecodeTime() Result {
	length := d.second
	check := !d.firstMinute
	off := length - nominalLength
	if off < -1 || off > 1 {
		off = 0
	}
	a := func(from, to int) []radiotime.Maybe[bool] { return d.a[from+off : to+off] }
	b := func(i int) radiotime.Maybe[bool] { return d.b[i+off] }

	d.dt.ClearFlags()
	if check {
		d.dt.AddMinute()
	}

	res := Result{
		FirstMinute:       d.firstMinute,
		Second:            length,
		MinuteLength:      length,
		YearParity:        radiotime.Parity(append(clone(a(17, 25)), b(54)), true),
		MonthDayParity:    radiotime.Parity(append(clone(a(25, 36)), b(55)), true),
		WeekdayParity:     radiotime.Parity(append(clone(a(36, 39)), b(56)), true),
		HourMinuteParity:  radiotime.Parity(append(clone(a(39, 52)), b(57)), true),
		DUT1:              dut1(d.b[1:9], d.b[9:17]),
		EndOfMinuteMarker: d.markerEndsAt(length),
	}

	d.dt.SetYear(radiotime.BCD(a(17, 25), yearWeights), radiotime.Is(res.YearParity, true), check)
	monthDay := radiotime.Is(res.MonthDayParity, true)
	d.dt.SetMonth(radiotime.BCD(a(25, 30), monthWeights), monthDay, check)
	d.dt.SetDay(radiotime.BCD(a(30, 36), dayWeights), monthDay, check)
	d.dt.SetWeekday(radiotime.BCD(a(36, 39), weekdayWeights), radiotime.Is(res.WeekdayParity, true), check)
	hourMinute := radiotime.Is(res.HourMinuteParity, true)
	d.dt.SetHour(radiotime.BCD(a(39, 45), hourWeights), hourMinute, check)
	d.dt.SetMinute(radiotime.BCD(a(45, 52), minuteWeights), hourMinute, check)

	d.dt.SetDST(b(58), b(53), check)

	res.DateTime = *d.dt
	d.firstMinute = false
	return res
}

func clone(s []radiotime.Maybe[bool]) []radiotime.Maybe[bool] {
	return append(make([]radiotime.Maybe[bool], 0, len(s)+1), s...)
}

// dut1 counts the unary positive and negative DUT1 bits; both set is invalid
func dut1(pos, neg []radiotime.Maybe[bool]) radiotime.Maybe[int8] {
	count := func(bits []radiotime.Maybe[bool]) (int8, bool) {
		var n int8
		for _, b := range bits {
			v, ok := b.Get()
			if !ok {
				return 0, false
			}
			if v {
				n++
			}
		}
		return n, true
	}
	p, ok1 := count(pos)
	n, ok2 := count(neg)
	if !ok1 || !ok2 || (p > 0 && n > 0) {
		return radiotime.None[int8]()
	}
	return radiotime.Some(p - n)
}
