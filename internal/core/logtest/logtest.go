// Package logtest synthesizes receiver log lines for tests. It encodes a
// calendar minute the way a conforming receiver would have logged it
package logtest

import "strings"

// Minute describes one telegram to encode
type Minute struct {
	Year, Month, Day int
	Weekday          int // station numbering: DCF77 1..7 from Monday, MSF 0..6 from Sunday
	Hour, Minute     int

	Summer       bool
	DSTAnnounce  bool
	LeapAnnounce bool   // DCF77 bit 19
	Call         bool   // DCF77 bit 15
	ThirdParty   uint16 // DCF77 bits 1-14, LSB first
	DUT1         int    // MSF, tenths of a second, -8..8

	// BrokenMarker clears one bit of the MSF end-of-minute marker
	BrokenMarker bool
}

// DCF77 returns the 59 characters of a DCF77 minute, without the boundary
func DCF77(m Minute) string {
	var b [59]bool
	for i := range 14 {
		b[1+i] = m.ThirdParty&(1<<i) != 0
	}
	b[15] = m.Call
	b[16] = m.DSTAnnounce
	b[17] = m.Summer
	b[18] = !m.Summer
	b[19] = m.LeapAnnounce
	b[20] = true
	put(b[21:28], m.Minute, 1, 2, 4, 8, 10, 20, 40)
	put(b[29:35], m.Hour, 1, 2, 4, 8, 10, 20)
	put(b[36:42], m.Day, 1, 2, 4, 8, 10, 20)
	put(b[42:45], m.Weekday, 1, 2, 4)
	put(b[45:50], m.Month, 1, 2, 4, 8, 10)
	put(b[50:58], m.Year, 1, 2, 4, 8, 10, 20, 40, 80)
	b[28] = odd(b[21:28])
	b[35] = odd(b[29:35])
	b[58] = odd(b[36:58])

	var sb strings.Builder
	for _, v := range b {
		sb.WriteByte(bit(v))
	}
	return sb.String()
}

// MSF returns the 60 characters of an MSF minute, marker "4" first, without the boundary
func MSF(m Minute) string {
	var a, b [60]bool
	put(a[17:25], m.Year, 80, 40, 20, 10, 8, 4, 2, 1)
	put(a[25:30], m.Month, 10, 8, 4, 2, 1)
	put(a[30:36], m.Day, 20, 10, 8, 4, 2, 1)
	put(a[36:39], m.Weekday, 4, 2, 1)
	put(a[39:45], m.Hour, 20, 10, 8, 4, 2, 1)
	put(a[45:52], m.Minute, 40, 20, 10, 8, 4, 2, 1)
	copy(a[52:60], []bool{false, true, true, true, true, true, true, false})
	if m.BrokenMarker {
		a[57] = false
	}

	switch {
	case m.DUT1 > 0:
		for i := range m.DUT1 {
			b[1+i] = true
		}
	case m.DUT1 < 0:
		for i := range -m.DUT1 {
			b[9+i] = true
		}
	}
	b[53] = m.DSTAnnounce
	b[54] = !odd(a[17:25])
	b[55] = !odd(a[25:36])
	b[56] = !odd(a[36:39])
	b[57] = !odd(a[39:52])
	b[58] = m.Summer

	var sb strings.Builder
	sb.WriteByte('4')
	for i := 1; i < 60; i++ {
		c := byte('0')
		if a[i] {
			c++
		}
		if b[i] {
			c += 2
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// MSFLength returns an MSF minute stretched to 61 seconds (an extra "0"
// after second 16) or shortened to 59 (second 16 dropped)
func MSFLength(m Minute, length int) string {
	s := MSF(m)
	switch length {
	case 61:
		return s[:17] + "0" + s[17:]
	case 59:
		return s[:16] + s[17:]
	}
	return s
}

// Undetermined returns n underscores
func Undetermined(n int) string { return strings.Repeat("_", n) }

func put(dst []bool, v int, weights ...int) {
	units, tens := v%10, v/10
	for i, w := range weights {
		if w < 10 {
			dst[i] = units&w != 0
		} else {
			dst[i] = tens&(w/10) != 0
		}
	}
}

// odd reports whether an odd number of bits is set
func odd(bits []bool) bool {
	n := 0
	for _, v := range bits {
		if v {
			n++
		}
	}
	return n%2 == 1
}

func bit(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}
