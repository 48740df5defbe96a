// Package decoder is the narrow facade the replay engine drives, whatever the
// station. Each adapter wraps one protocol decoder and turns its result into
// a station-neutral Minute
package decoder

import (
	"rdtlog/internal/core/radiotime"
	"rdtlog/internal/core/station"
	perr "rdtlog/internal/platform/errors"
)

// Adapter pushes seconds into a decoder and reads back decoded minutes
type Adapter interface {
	// PushSecond records the value of the current second
	PushSecond(slot station.Slot)
	// AdvanceSecond completes the current second; false when the counter is saturated
	AdvanceSecond() bool
	// CurrentSecond is how far into the minute the decoder is
	CurrentSecond() int
	// ExpectedMinuteLength is the predicted length of the current minute
	ExpectedMinuteLength() int
	// DecodeAndFinalize decodes a minute whose length matched the expectation
	DecodeAndFinalize() Minute
	// ForceResync drops the partial minute; the next advance starts at second 0
	ForceResync()
	// BeginMinute makes the current second the first second of a fresh minute
	BeginMinute()
}

// Parity is one parity group's result. OK is Some(true) when the check passed
type Parity struct {
	Name string
	OK   radiotime.Maybe[bool]
}

// DCF77Fields are the DCF77-only parts of a minute
type DCF77Fields struct {
	ThisMinuteLength int
	NextMinuteLength int
	Leap             Leap
	Call             radiotime.Maybe[bool]
	ThirdParty       radiotime.Maybe[uint16]
	Bit0OK           radiotime.Maybe[bool]
	Bit20OK          radiotime.Maybe[bool]
}

// MSFFields are the MSF-only parts of a minute
type MSFFields struct {
	MinuteLength      int
	DUT1              radiotime.Maybe[int8]
	EndOfMinuteMarker bool
}

// Leap mirrors the DCF77 leap-second flags
type Leap struct {
	Announced bool
	Processed bool
	One       bool
}

// Minute is one decoded minute. Exactly one of DCF77 and MSF is set
type Minute struct {
	FirstMinute bool
	Seconds     int
	DateTime    radiotime.DateTime
	Parities    []Parity

	DCF77 *DCF77Fields
	MSF   *MSFFields
}

// New returns a fresh adapter for the station
func New(st *station.Station) (Adapter, error) {
	switch st.ID {
	case station.DCF77:
		return newDCF77(st.WeekdayBase), nil
	case station.MSF, station.NPL:
		return newMSF(st.WeekdayBase), nil
	}
	return nil, perr.InvalidArgf("no decoder for station %s", st.ID)
}
