// Package report renders decoded minutes as text lines. Lines carry no
// terminator; the replay engine separates minute blocks with an empty line
package report

import (
	"fmt"
	"strings"

	"rdtlog/internal/core/decoder"
	"rdtlog/internal/core/radiotime"
	"rdtlog/internal/core/station"
)

// Placeholder renders a two-digit field that was never determined
const Placeholder = "**"

// Decoded renders one decoded minute: bit echo, metadata, date/time line,
// station annotations and jump lines
func Decoded(st *station.Station, chars []rune, m decoder.Minute) []string {
	lines := []string{BitEcho(st, chars, m.Seconds)}
	dt := DateTime(st, m.DateTime)

	switch {
	case m.DCF77 != nil:
		f := m.DCF77
		lines = append(lines,
			fmt.Sprintf("first_minute=%t second=%d this_minute_length=%d next_minute_length=%d",
				m.FirstMinute, m.Seconds, f.ThisMinuteLength, f.NextMinuteLength),
			fmt.Sprintf("%s [%s] [%s]", dt, leapText(f.Leap), callText(f.Call)),
			"Third-party buffer="+hex16(f.ThirdParty),
		)
		lines = append(lines, parityLines(m.Parities)...)
		lines = appendCheck(lines, 0, f.Bit0OK)
		lines = appendCheck(lines, 20, f.Bit20OK)
	case m.MSF != nil:
		f := m.MSF
		lines = append(lines,
			fmt.Sprintf("first_minute=%t seconds=%d minute_length=%d", m.FirstMinute, m.Seconds, f.MinuteLength),
			fmt.Sprintf("%s DUT1=%s", dt, dut1Text(f.DUT1)),
		)
		lines = append(lines, parityLines(m.Parities)...)
		if !f.EndOfMinuteMarker {
			lines = append(lines, "End-of-minute marker absent")
		}
	default:
		lines = append(lines, fmt.Sprintf("first_minute=%t seconds=%d", m.FirstMinute, m.Seconds), dt)
		lines = append(lines, parityLines(m.Parities)...)
	}

	return append(lines, JumpLines(m.DateTime.Jumps)...)
}

// Mismatch is the diagnostic for a minute whose length was not the expected one
func Mismatch(actual, wanted int) string {
	return fmt.Sprintf("Minute is %d seconds instead of %d seconds long", actual, wanted)
}

// Overflow is the informational line for a saturated second counter
func Overflow(second int) string {
	return fmt.Sprintf("Second counter could not advance past %d", second)
}

// BitEcho writes the minute's characters with a space before every grouping index
func BitEcho(st *station.Station, chars []rune, length int) string {
	starts := st.Groups.Starts(length, st.NominalLength)
	var sb strings.Builder
	sb.Grow(len(chars) + len(starts))
	next := 0
	for i, c := range chars {
		for next < len(starts) && starts[next] < i {
			next++
		}
		if next < len(starts) && starts[next] == i {
			sb.WriteByte(' ')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// DateTime renders "YY-MM-DD Weekday HH:MM [dst]"
func DateTime(st *station.Station, dt radiotime.DateTime) string {
	return fmt.Sprintf("%s-%s-%s %s %s:%s [%s]",
		two(dt.Year), two(dt.Month), two(dt.Day),
		st.WeekdayName(dt.Weekday),
		two(dt.Hour), two(dt.Minute),
		DSTText(dt.DST))
}

// DSTText renders the DST flags, empty when DST was never determined
func DSTText(dst radiotime.Maybe[radiotime.DST]) string {
	f, ok := dst.Get()
	if !ok {
		return ""
	}
	var sb strings.Builder
	if f.Has(radiotime.DSTAnnounced) {
		sb.WriteString("announced,")
	}
	if f.Has(radiotime.DSTProcessed) {
		sb.WriteString("processed,")
	}
	if f.Has(radiotime.DSTJump) {
		sb.WriteString("jump,")
	}
	if f.Has(radiotime.DSTSummer) {
		sb.WriteString("summer")
	} else {
		sb.WriteString("winter")
	}
	return sb.String()
}

// JumpLines lists the jumped fields in year, month, day, weekday, hour, minute order
func JumpLines(j radiotime.Jumps) []string {
	var out []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{j.Year, "Year"},
		{j.Month, "Month"},
		{j.Day, "Day-of-month"},
		{j.Weekday, "Day-of-week"},
		{j.Hour, "Hour"},
		{j.Minute, "Minute"},
	} {
		if f.on {
			out = append(out, f.name+" jumped")
		}
	}
	return out
}

func parityLines(ps []decoder.Parity) []string {
	var out []string
	for _, p := range ps {
		ok, known := p.OK.Get()
		switch {
		case !known:
			out = append(out, p.Name+" parity undetermined")
		case !ok:
			out = append(out, p.Name+" parity bad")
		}
	}
	return out
}

func appendCheck(lines []string, bit int, ok radiotime.Maybe[bool]) []string {
	v, known := ok.Get()
	switch {
	case !known:
		return append(lines, fmt.Sprintf("Bit %d is undetermined", bit))
	case !v:
		return append(lines, fmt.Sprintf("Bit %d is wrong", bit))
	}
	return lines
}

func two(v radiotime.Maybe[uint8]) string {
	x, ok := v.Get()
	if !ok {
		return Placeholder
	}
	return fmt.Sprintf("%02d", x)
}

func leapText(l decoder.Leap) string {
	var parts []string
	if l.Announced {
		parts = append(parts, "announced")
	}
	if l.Processed {
		parts = append(parts, "processed")
	}
	if l.One {
		parts = append(parts, "one")
	}
	return strings.Join(parts, ",")
}

func callText(c radiotime.Maybe[bool]) string {
	v, ok := c.Get()
	switch {
	case !ok:
		return "?"
	case v:
		return "call"
	}
	return ""
}

func hex16(w radiotime.Maybe[uint16]) string {
	v, ok := w.Get()
	if !ok {
		return "0x****"
	}
	return fmt.Sprintf("0x%04x", v)
}

func dut1Text(d radiotime.Maybe[int8]) string {
	v, ok := d.Get()
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%d", v)
}
