package station

import "maps"

// WithSymbol returns a copy of s whose table also maps c to sym. The entry is
// not validated, so tests can build tables that Parse would reject
func WithSymbol(s *Station, c rune, sym Symbol) *Station {
	cp := *s
	cp.symbols = maps.Clone(s.symbols)
	cp.symbols[c] = sym
	return &cp
}
