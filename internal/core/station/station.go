// Package station describes the supported time-signal stations: their log
// alphabet, bit-echo grouping and weekday names. Tables are loaded once from
// the embedded stations.yaml and are immutable afterwards
package station

import (
	"sort"
	"strings"

	"rdtlog/internal/core/radiotime"
	perr "rdtlog/internal/platform/errors"
)

// ID tags a station
type ID uint8

const (
	// Unknown is the zero ID
	Unknown ID = iota
	// DCF77 is the German longwave station, one bit per second
	DCF77
	// MSF is the British station, two bits per second and a begin-of-minute marker
	MSF
	// NPL reads legacy MSF logs where the begin-of-minute marker does not resynchronize
	NPL
)

var idNames = map[ID]string{DCF77: "dcf77", MSF: "msf", NPL: "npl"}

// String returns the lowercase station id
func (id ID) String() string {
	if s, ok := idNames[id]; ok {
		return s
	}
	return "unknown"
}

// ParseID resolves a case-insensitive station name
func ParseID(name string) (ID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for id, s := range idNames {
		if s == n {
			return id, nil
		}
	}
	return Unknown, perr.InvalidArgf("unknown station %q (want one of %s)", name, strings.Join(Names(), ", "))
}

// Names lists the station ids in a stable order
func Names() []string {
	out := make([]string, 0, len(idNames))
	for _, s := range idNames {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Encoding is the number of bits a station sends per second
type Encoding uint8

const (
	// Single is one bit per second
	Single Encoding = iota + 1
	// Pair is two independent bits (A and B) per second
	Pair
)

func (e Encoding) String() string {
	switch e {
	case Single:
		return "single"
	case Pair:
		return "pair"
	}
	return "unknown"
}

// Groups are the second indices before which the bit echo inserts a space.
// Shifted indices follow the minute length around a leap second, fixed ones do not
type Groups struct {
	Fixed   []int
	Shifted []int
}

// Starts returns the sorted grouping indices for a minute of the given length
func (g Groups) Starts(length, nominal int) []int {
	off := length - nominal
	if off < -1 || off > 1 {
		off = 0
	}
	out := make([]int, 0, len(g.Fixed)+len(g.Shifted))
	out = append(out, g.Fixed...)
	for _, i := range g.Shifted {
		out = append(out, i+off)
	}
	sort.Ints(out)
	return out
}

// Station is one immutable station table
type Station struct {
	ID            ID
	Name          string
	Encoding      Encoding
	NominalLength int
	// MaxSeconds bounds the decoder's second counter
	MaxSeconds int
	// ForceFeedEOM adds the never-transmitted last second at each minute boundary
	ForceFeedEOM bool
	WeekdayBase  uint8
	Groups       Groups

	weekdays []string
	symbols  map[rune]Symbol
}

// WeekdayName renders a weekday code, "?" when undetermined or out of range
func (s *Station) WeekdayName(wd radiotime.Maybe[uint8]) string {
	v, ok := wd.Get()
	if !ok || v < s.WeekdayBase || int(v-s.WeekdayBase) >= len(s.weekdays) {
		return "?"
	}
	return s.weekdays[v-s.WeekdayBase]
}

// Alphabet returns the admissible characters in ascending order
func (s *Station) Alphabet() []rune {
	out := make([]rune, 0, len(s.symbols))
	for c := range s.symbols {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
