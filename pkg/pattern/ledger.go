package pattern

import "strings"

// ledger is the offset accumulator of a single compilation. It pairs the read
// position in the pattern source with the write position in the generated
// expression so every emitted group knows both of its spans.
type ledger struct {
	src string
	out strings.Builder
	dsl int
}

func newLedger(src string) *ledger {
	l := &ledger{src: src}
	l.out.Grow(len(src) + len(src)/2)
	return l
}

// regex is the current length of the generated expression
func (l *ledger) regex() int { return l.out.Len() }

// delta is the running length difference between generated and source text
func (l *ledger) delta() int { return l.regex() - l.dsl }

func (l *ledger) done() bool { return l.dsl >= len(l.src) }

func (l *ledger) rest() string { return l.src[l.dsl:] }

func (l *ledger) hasPrefix(prefix string) bool {
	return strings.HasPrefix(l.rest(), prefix)
}

// emit consumes n source bytes and writes s to the generated expression
func (l *ledger) emit(consumed int, s string) {
	l.dsl += consumed
	l.out.WriteString(s)
}

// copyRaw consumes n source bytes and writes them unchanged
func (l *ledger) copyRaw(n int) {
	if l.dsl+n > len(l.src) {
		n = len(l.src) - l.dsl
	}
	l.out.WriteString(l.src[l.dsl : l.dsl+n])
	l.dsl += n
}

// mark returns the current position pair
func (l *ledger) mark() (dsl, regex int) {
	return l.dsl, l.regex()
}

func (l *ledger) String() string { return l.out.String() }
