package station

import (
	_ "embed"
	"sync"
	"unicode/utf8"

	"rdtlog/internal/core/radiotime"
	perr "rdtlog/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

//go:embed stations.yaml
var embedded []byte

type rawSymbol struct {
	Char string `yaml:"char"`
	Kind string `yaml:"kind"`
	A    *bool  `yaml:"a"`
	B    *bool  `yaml:"b"`
}

type rawGroups struct {
	Fixed   []int `yaml:"fixed"`
	Shifted []int `yaml:"shifted"`
}

type rawStation struct {
	ID            string      `yaml:"id"`
	Name          string      `yaml:"name"`
	Encoding      string      `yaml:"encoding"`
	NominalLength int         `yaml:"nominal_length"`
	MaxSeconds    int         `yaml:"max_seconds"`
	ForceFeedEOM  bool        `yaml:"force_feed_eom"`
	WeekdayBase   uint8       `yaml:"weekday_base"`
	Weekdays      []string    `yaml:"weekdays"`
	Groups        rawGroups   `yaml:"groups"`
	Symbols       []rawSymbol `yaml:"symbols"`
}

type rawCatalog struct {
	Version  int          `yaml:"version"`
	Stations []rawStation `yaml:"stations"`
}

// Catalog is the set of loaded stations
type Catalog struct {
	byID  map[ID]*Station
	order []ID
}

// Get returns the station for id
func (c *Catalog) Get(id ID) (*Station, error) {
	if s, ok := c.byID[id]; ok {
		return s, nil
	}
	return nil, perr.NotFoundf("station %s not in catalog", id)
}

// Lookup resolves a station by name
func (c *Catalog) Lookup(name string) (*Station, error) {
	id, err := ParseID(name)
	if err != nil {
		return nil, err
	}
	return c.Get(id)
}

// All returns the stations in table order
func (c *Catalog) All() []*Station {
	out := make([]*Station, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) { return Parse(embedded) })

// Load returns the catalog built from the embedded stations.yaml
func Load() (*Catalog, error) { return loadDefault() }

// MustLoad is Load for program start-up; a broken embedded table panics
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from a YAML document and validates every table
func Parse(data []byte) (*Catalog, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "station: parse tables")
	}
	if rc.Version != 1 {
		return nil, perr.Internalf("station: unsupported table version %d (want 1)", rc.Version)
	}

	c := &Catalog{byID: make(map[ID]*Station, len(rc.Stations))}
	for _, rs := range rc.Stations {
		s, err := build(rs)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, perr.Internalf("station: %s defined twice", s.ID)
		}
		c.byID[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c, nil
}

func build(rs rawStation) (*Station, error) {
	id, err := ParseID(rs.ID)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "station: table %q", rs.ID)
	}

	s := &Station{
		ID:            id,
		Name:          rs.Name,
		NominalLength: rs.NominalLength,
		MaxSeconds:    rs.MaxSeconds,
		ForceFeedEOM:  rs.ForceFeedEOM,
		WeekdayBase:   rs.WeekdayBase,
		Groups:        Groups{Fixed: rs.Groups.Fixed, Shifted: rs.Groups.Shifted},
		weekdays:      rs.Weekdays,
		symbols:       make(map[rune]Symbol, len(rs.Symbols)),
	}
	switch rs.Encoding {
	case "single":
		s.Encoding = Single
	case "pair":
		s.Encoding = Pair
	default:
		return nil, perr.Internalf("station %s: unknown encoding %q", id, rs.Encoding)
	}
	if s.NominalLength <= 0 || s.MaxSeconds < s.NominalLength+1 {
		return nil, perr.Internalf("station %s: bad lengths nominal=%d max=%d", id, s.NominalLength, s.MaxSeconds)
	}
	if len(s.weekdays) != 7 {
		return nil, perr.Internalf("station %s: want 7 weekday names, got %d", id, len(s.weekdays))
	}

	for _, sym := range rs.Symbols {
		c, size := utf8.DecodeRuneInString(sym.Char)
		if c == utf8.RuneError || size != len(sym.Char) {
			return nil, perr.Internalf("station %s: symbol %q is not a single character", id, sym.Char)
		}
		if _, dup := s.symbols[c]; dup {
			return nil, perr.Internalf("station %s: symbol %q defined twice", id, sym.Char)
		}
		parsed, err := parseSymbol(sym)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "station %s: symbol %q", id, sym.Char)
		}
		if !s.admits(parsed.Kind) {
			return nil, perr.Internalf("station %s: %s symbol %q is impossible for %s encoding", id, parsed.Kind, sym.Char, s.Encoding)
		}
		s.symbols[c] = parsed
	}
	return s, nil
}

func parseSymbol(rs rawSymbol) (Symbol, error) {
	opt := func(p *bool) radiotime.Maybe[bool] {
		if p == nil {
			return radiotime.None[bool]()
		}
		return radiotime.Some(*p)
	}
	switch rs.Kind {
	case "bit":
		if rs.A == nil || rs.B != nil {
			return Symbol{}, perr.Internalf("bit symbols carry exactly bit a")
		}
		return Symbol{Kind: Bit, Slot: Slot{A: opt(rs.A)}}, nil
	case "pair":
		return Symbol{Kind: BitPair, Slot: Slot{A: opt(rs.A), B: opt(rs.B)}}, nil
	case "undetermined":
		return Symbol{Kind: Undetermined}, nil
	case "begin_of_minute":
		return Symbol{Kind: BeginOfMinute}, nil
	case "end_of_minute":
		return Symbol{Kind: EndOfMinute}, nil
	}
	return Symbol{}, perr.Internalf("unknown kind %q", rs.Kind)
}
