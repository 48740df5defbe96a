package decoder

import (
	"rdtlog/internal/core/dcf77"
	"rdtlog/internal/core/station"
)

type dcf77Adapter struct {
	d *dcf77.Decoder
}

func newDCF77(weekdayBase uint8) *dcf77Adapter {
	return &dcf77Adapter{d: dcf77.New(weekdayBase)}
}

func (a *dcf77Adapter) PushSecond(slot station.Slot) { a.d.SetCurrentBit(slot.A) }
func (a *dcf77Adapter) AdvanceSecond() bool           { return a.d.IncreaseSecond() }
func (a *dcf77Adapter) CurrentSecond() int            { return a.d.Second() }
func (a *dcf77Adapter) ExpectedMinuteLength() int     { return a.d.NextMinuteLength() }
func (a *dcf77Adapter) ForceResync()                  { a.d.ForceNewMinute() }

// BeginMinute is unreachable: the DCF77 alphabet has no begin-of-minute marker
func (a *dcf77Adapter) BeginMinute() {}

func (a *dcf77Adapter) DecodeAndFinalize() Minute {
	r := a.d.DecodeTime()
	return Minute{
		FirstMinute: r.FirstMinute,
		Seconds:     r.Second,
		DateTime:    r.DateTime,
		Parities: []Parity{
			{Name: "Minute", OK: r.MinuteParity},
			{Name: "Hour", OK: r.HourParity},
			{Name: "Date", OK: r.DateParity},
		},
		DCF77: &DCF77Fields{
			ThisMinuteLength: r.ThisMinuteLength,
			NextMinuteLength: r.NextMinuteLength,
			Leap: Leap{
				Announced: r.Leap.Has(dcf77.LeapAnnounced),
				Processed: r.Leap.Has(dcf77.LeapProcessed),
				One:       r.Leap.Has(dcf77.LeapOne),
			},
			Call:       r.Call,
			ThirdParty: r.ThirdParty,
			Bit0OK:     r.Bit0OK,
			Bit20OK:    r.Bit20OK,
		},
	}
}
