// Package replay runs a receiver log through a station's decoder and
// collects the report lines a live receiver would have printed. A replay is
// a deterministic fold over the characters: the same input always yields the
// same lines
package replay

import (
	"rdtlog/internal/core/decoder"
	"rdtlog/internal/core/report"
	"rdtlog/internal/core/station"
)

// bufferCap bounds the minute buffer; every station's counter saturates below it
const bufferCap = 64

// State is where the engine is within a minute
type State uint8

const (
	// AwaitingSecond accumulates seconds of the current minute
	AwaitingSecond State = iota
	// AtMinuteBoundary validates and reports a finished minute
	AtMinuteBoundary
)

// Stats counts what one replay saw
type Stats struct {
	Characters int `json:"characters"`
	Ignored    int `json:"ignored"`
	Minutes    int `json:"minutes"`
	Decoded    int `json:"decoded"`
	Mismatched int `json:"mismatched"`
	Overflows  int `json:"overflows"`
}

// Engine replays one log. It is not safe for concurrent use
type Engine struct {
	st    *station.Station
	ad    decoder.Adapter
	state State

	buf [bufferCap]rune
	n   int

	lines []string
	stats Stats
}

// New returns an engine with a fresh decoder for the station
func New(st *station.Station) (*Engine, error) {
	ad, err := decoder.New(st)
	if err != nil {
		return nil, err
	}
	return NewWithAdapter(st, ad), nil
}

// NewWithAdapter returns an engine driving the given adapter
func NewWithAdapter(st *station.Station, ad decoder.Adapter) *Engine {
	return &Engine{st: st, ad: ad}
}

// Run replays the whole text and returns the report lines
func Run(st *station.Station, text string) ([]string, Stats, error) {
	e, err := New(st)
	if err != nil {
		return nil, Stats{}, err
	}
	if err := e.FeedString(text); err != nil {
		return e.Lines(), e.Stats(), err
	}
	return e.Lines(), e.Stats(), nil
}

// FeedString feeds every character of s, stopping at the first classification error
func (e *Engine) FeedString(s string) error {
	for _, c := range s {
		if err := e.Feed(c); err != nil {
			return err
		}
	}
	return nil
}

// Feed processes one character
func (e *Engine) Feed(c rune) error {
	sym, err := e.st.Classify(c)
	if err != nil {
		return err
	}
	if sym.Kind == station.Ignored {
		e.stats.Ignored++
		return nil
	}
	e.stats.Characters++

	switch sym.Kind {
	case station.EndOfMinute:
		e.boundary()
	case station.BeginOfMinute:
		e.ad.BeginMinute()
		e.n = 0
		e.put(c)
	default:
		e.put(c)
		e.ad.PushSecond(sym.Slot)
	}
	e.advance()
	return nil
}

// Lines returns the report lines so far
func (e *Engine) Lines() []string { return e.lines }

// Stats returns the counters so far
func (e *Engine) Stats() Stats { return e.stats }

// State returns the engine state
func (e *Engine) State() State { return e.state }

func (e *Engine) boundary() {
	e.state = AtMinuteBoundary
	defer func() { e.state = AwaitingSecond }()

	// the last second of a single-bit minute is never transmitted
	if e.st.ForceFeedEOM {
		e.ad.PushSecond(station.Slot{})
		e.advance()
	}

	actual := e.ad.CurrentSecond()
	wanted := e.ad.ExpectedMinuteLength()
	e.stats.Minutes++
	if actual == wanted {
		m := e.ad.DecodeAndFinalize()
		e.stats.Decoded++
		e.lines = append(e.lines, report.Decoded(e.st, e.buf[:e.n], m)...)
	} else {
		e.stats.Mismatched++
		e.lines = append(e.lines, report.Mismatch(actual, wanted))
	}

	e.ad.ForceResync()
	e.n = 0
	e.lines = append(e.lines, "")
}

func (e *Engine) advance() {
	if !e.ad.AdvanceSecond() {
		e.stats.Overflows++
		e.lines = append(e.lines, report.Overflow(e.ad.CurrentSecond()))
	}
}

// put stores c at the decoder's current second
func (e *Engine) put(c rune) {
	i := e.ad.CurrentSecond()
	if i < 0 || i >= bufferCap {
		return
	}
	e.buf[i] = c
	if i+1 > e.n {
		e.n = i + 1
	}
}
