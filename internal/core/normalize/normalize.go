// Package normalize prepares raw receiver logs for replay. The pipeline is
// deterministic and only removes characters that no station admits, so a
// normalized log replays to the same report as the raw one:
//  1. drop a leading UTF-8 byte-order mark
//  2. rewrite "\r\n" to "\n"; a lone "\r" is left for the classifier
//  3. replace invalid UTF-8 with U+FFFD
//  4. drop control characters other than newline, tab and CR
//  5. drop format characters (Cf) such as zero-width spaces
//
// Nothing is ever mapped onto an admissible character: "０" stays "０"
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const bom = "\ufeff"

// Normalizer is concurrency safe; transformer chains come from a pool
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the replayable form of a raw log
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, bom)
	s = LineEndings(s)
	s = strings.ToValidUTF8(s, string(unicode.ReplacementChar))
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// the chain only drops runes; keep the sanitized text
		return s
	}
	return ns
}

// LineEndings rewrites CRLF pairs to LF. A lone CR is not a line ending in
// any receiver log and is kept
func LineEndings(s string) string {
	if !strings.Contains(s, "\r\n") {
		return s
	}
	return strings.ReplaceAll(s, "\r\n", "\n")
}
