package decoder

import (
	"rdtlog/internal/core/msf"
	"rdtlog/internal/core/station"
)

// msfAdapter serves MSF and legacy NPL logs; they differ only in their alphabet
type msfAdapter struct {
	d *msf.Decoder
}

func newMSF(weekdayBase uint8) *msfAdapter { return &msfAdapter{d: msf.New(weekdayBase)} }

func (a *msfAdapter) PushSecond(slot station.Slot) { a.d.SetCurrentBits(slot.A, slot.B) }
func (a *msfAdapter) AdvanceSecond() bool           { return a.d.IncreaseSecond() }
func (a *msfAdapter) CurrentSecond() int            { return a.d.Second() }
func (a *msfAdapter) ExpectedMinuteLength() int     { return a.d.MinuteLength() }
func (a *msfAdapter) ForceResync()                  { a.d.ForceNewMinute() }
func (a *msfAdapter) BeginMinute()                  { a.d.ForcePastNewMinute() }

func (a *msfAdapter) DecodeAndFinalize() Minute {
	r := a.d.DecodeTime()
	return Minute{
		FirstMinute: r.FirstMinute,
		Seconds:     r.Second,
		DateTime:    r.DateTime,
		Parities: []Parity{
			{Name: "Year", OK: r.YearParity},
			{Name: "Month/day-of-month", OK: r.MonthDayParity},
			{Name: "Day-of-week", OK: r.WeekdayParity},
			{Name: "Hour/minute", OK: r.HourMinuteParity},
		},
		MSF: &MSFFields{
			MinuteLength:      r.MinuteLength,
			DUT1:              r.DUT1,
			EndOfMinuteMarker: r.EndOfMinuteMarker,
		},
	}
}
