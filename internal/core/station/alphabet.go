package station

import (
	"rdtlog/internal/core/radiotime"
	perr "rdtlog/internal/platform/errors"
)

// Kind classifies one log character
type Kind uint8

const (
	// Ignored characters leave the decoder and the minute buffer untouched
	Ignored Kind = iota
	// Bit is a single-bit second
	Bit
	// BitPair is a two-bit second; either bit may be undetermined
	BitPair
	// Undetermined is a second whose value was not received
	Undetermined
	// BeginOfMinute is the long marker that resynchronizes two-bit decoders
	BeginOfMinute
	// EndOfMinute is the minute boundary sentinel
	EndOfMinute
)

var kindNames = map[Kind]string{
	Ignored:       "ignored",
	Bit:           "bit",
	BitPair:       "pair",
	Undetermined:  "undetermined",
	BeginOfMinute: "begin_of_minute",
	EndOfMinute:   "end_of_minute",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Slot is the value of one second: bit A alone for single-bit stations,
// bits A and B for two-bit stations
type Slot struct {
	A radiotime.Maybe[bool]
	B radiotime.Maybe[bool]
}

// Symbol is the classification of one character
type Symbol struct {
	Kind Kind
	Slot Slot
}

// Classify maps c to its symbol. Characters outside the alphabet are Ignored.
// An entry whose kind cannot occur for the station's encoding means the table
// is corrupt and is returned as an error
func (s *Station) Classify(c rune) (Symbol, error) {
	sym, ok := s.symbols[c]
	if !ok {
		return Symbol{Kind: Ignored}, nil
	}
	if !s.admits(sym.Kind) {
		return Symbol{}, perr.Internalf("station %s: %s symbol %q is impossible for %s encoding", s.ID, sym.Kind, c, s.Encoding)
	}
	return sym, nil
}

func (s *Station) admits(k Kind) bool {
	switch k {
	case Undetermined, EndOfMinute:
		return true
	case Bit:
		return s.Encoding == Single
	case BitPair, BeginOfMinute:
		return s.Encoding == Pair
	default:
		return false
	}
}
