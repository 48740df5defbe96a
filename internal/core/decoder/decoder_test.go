package decoder

import (
	"testing"

	"rdtlog/internal/core/logtest"
	"rdtlog/internal/core/station"
	perr "rdtlog/internal/platform/errors"
)

var (
	_ Adapter = (*dcf77Adapter)(nil)
	_ Adapter = (*msfAdapter)(nil)
)

func mustAdapter(t *testing.T, id station.ID) (Adapter, *station.Station) {
	t.Helper()
	st, err := station.MustLoad().Get(id)
	if err != nil {
		t.Fatalf("station: %v", err)
	}
	ad, err := New(st)
	if err != nil {
		t.Fatalf("New(%s): %v", id, err)
	}
	return ad, st
}

// push classifies and pushes a line without the boundary handling
func push(t *testing.T, ad Adapter, st *station.Station, line string) {
	t.Helper()
	for _, c := range line {
		sym, err := st.Classify(c)
		if err != nil {
			t.Fatalf("classify %q: %v", c, err)
		}
		switch sym.Kind {
		case station.BeginOfMinute:
			ad.BeginMinute()
		case station.Ignored:
			continue
		default:
			ad.PushSecond(sym.Slot)
		}
		ad.AdvanceSecond()
	}
}

func TestNew_UnknownStation(t *testing.T) {
	_, err := New(&station.Station{ID: station.Unknown})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestDCF77Adapter_Minute(t *testing.T) {
	ad, st := mustAdapter(t, station.DCF77)
	push(t, ad, st, logtest.DCF77(logtest.Minute{Year: 24, Month: 6, Day: 15, Weekday: 6, Hour: 10, Minute: 41, Call: true}))
	ad.PushSecond(station.Slot{})
	ad.AdvanceSecond()
	if ad.CurrentSecond() != ad.ExpectedMinuteLength() {
		t.Fatalf("length %d, want %d", ad.CurrentSecond(), ad.ExpectedMinuteLength())
	}

	m := ad.DecodeAndFinalize()
	if m.DCF77 == nil || m.MSF != nil {
		t.Fatalf("wrong variant: %+v", m)
	}
	if len(m.Parities) != 3 || m.Parities[1].Name != "Hour" {
		t.Fatalf("parities: %+v", m.Parities)
	}
	if v, _ := m.DCF77.Call.Get(); !v || m.DCF77.ThisMinuteLength != 60 {
		t.Fatalf("fields: %+v", m.DCF77)
	}

	ad.ForceResync()
	if !ad.AdvanceSecond() || ad.CurrentSecond() != 0 {
		t.Fatalf("resync should restart at second 0, got %d", ad.CurrentSecond())
	}
}

func TestMSFAdapter_BeginMinuteResyncs(t *testing.T) {
	ad, st := mustAdapter(t, station.MSF)
	push(t, ad, st, "0123") // stray partial minute
	line := logtest.MSF(logtest.Minute{Year: 20, Month: 3, Day: 28, Weekday: 6, Hour: 23, Minute: 59})
	push(t, ad, st, line)
	if ad.CurrentSecond() != 60 || ad.ExpectedMinuteLength() != 60 {
		t.Fatalf("second=%d expected=%d", ad.CurrentSecond(), ad.ExpectedMinuteLength())
	}
	m := ad.DecodeAndFinalize()
	if m.MSF == nil || !m.MSF.EndOfMinuteMarker || len(m.Parities) != 4 {
		t.Fatalf("minute: %+v", m)
	}
	if v, _ := m.DateTime.Hour.Get(); v != 23 {
		t.Fatalf("hour = %d", v)
	}
}

func TestNPLAdapter_MarkerIsPlainSecond(t *testing.T) {
	ad, st := mustAdapter(t, station.NPL)
	push(t, ad, st, "0123")
	line := logtest.MSF(logtest.Minute{Year: 20, Month: 3, Day: 28, Weekday: 6, Hour: 23, Minute: 59})
	push(t, ad, st, line)
	if ad.CurrentSecond() != 61 {
		t.Fatalf("second = %d, want saturation at 61", ad.CurrentSecond())
	}
	if ad.ExpectedMinuteLength() != 60 {
		t.Fatalf("no marker alignment expected, got %d", ad.ExpectedMinuteLength())
	}
}

func TestNew_UsesStationWeekdayBase(t *testing.T) {
	_, st := mustAdapter(t, station.DCF77)
	sunday := logtest.DCF77(logtest.Minute{Year: 17, Month: 1, Day: 1, Weekday: 7, Hour: 10, Minute: 41})

	decode := func(st *station.Station) Minute {
		t.Helper()
		ad, err := New(st)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		push(t, ad, st, sunday)
		ad.PushSecond(station.Slot{})
		ad.AdvanceSecond()
		return ad.DecodeAndFinalize()
	}

	if wd, ok := decode(st).DateTime.Weekday.Get(); !ok || wd != 7 {
		t.Fatalf("weekday = %d %v, want 7", wd, ok)
	}
	// numbered from 0, code 7 is out of range
	zero := *st
	zero.WeekdayBase = 0
	if wd, ok := decode(&zero).DateTime.Weekday.Get(); ok {
		t.Fatalf("weekday = %d, want undetermined", wd)
	}
}
