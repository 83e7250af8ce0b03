package main

// Gap buffer that stores the document's runes. Edits clustered around one
// location cost O(1) amortized because the unused region (the gap) travels
// with the edit point.

import (
	"iter"
	"unicode/utf8"
)

// TextStore is the minimal storage contract the line index and the document
// rely on. Positions and lengths are expressed in runes.
type TextStore interface {
	Insert(ch rune, at int)
	Delete(at int) (rune, bool)
	RuneAt(i int) rune
	Slice(start, end int) []rune
	ByteLen(start, end int) int
	Len() int
	All() iter.Seq2[int, rune]
	String() string
}

// defaultGapSize is used when the configured gap size is not positive.
const defaultGapSize = 64

// GapBuffer keeps runes in buf with an unused region between gapStart
// (inclusive) and gapEnd (exclusive).
type GapBuffer struct {
	buf       []rune
	gapStart  int
	gapEnd    int
	increment int // Runes added to storage every time the gap runs out.
}

// NewGapBuffer creates a buffer holding text with a gap of gapSize runes
// placed after it.
func NewGapBuffer(text string, gapSize int) *GapBuffer {
	if gapSize < 1 {
		gapSize = defaultGapSize
	}
	runes := []rune(text)
	buf := make([]rune, len(runes)+gapSize)
	copy(buf, runes)
	return &GapBuffer{
		buf:       buf,
		gapStart:  len(runes),
		gapEnd:    len(buf),
		increment: gapSize,
	}
}

// Len returns the logical length (excluding the gap).
func (g *GapBuffer) Len() int {
	return len(g.buf) - g.gapLen()
}

func (g *GapBuffer) gapLen() int {
	return g.gapEnd - g.gapStart
}

// Translate converts a logical position into an index of the underlying
// storage, skipping over the gap for positions on its right side.
func (g *GapBuffer) Translate(pos int) int {
	if pos < g.gapStart {
		return pos
	}
	return pos + g.gapLen()
}

// moveGap relocates the gap so that gapStart == pos. Runes are shifted one at
// a time across the gap, so the cost is the distance travelled.
func (g *GapBuffer) moveGap(pos int) {
	for g.gapStart > pos {
		g.gapStart--
		g.gapEnd--
		g.buf[g.gapEnd] = g.buf[g.gapStart]
	}
	for g.gapStart < pos {
		g.buf[g.gapStart] = g.buf[g.gapEnd]
		g.gapStart++
		g.gapEnd++
	}
}

// grow extends storage by the increment. The left segment keeps its place,
// the right segment moves right by the increment.
func (g *GapBuffer) grow() {
	newBuf := make([]rune, len(g.buf)+g.increment)
	copy(newBuf, g.buf[:g.gapStart])
	copy(newBuf[g.gapEnd+g.increment:], g.buf[g.gapEnd:])
	g.buf = newBuf
	g.gapEnd += g.increment
}

func (g *GapBuffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if n := g.Len(); pos > n {
		return n
	}
	return pos
}

// Insert writes ch at logical position at. Out of range positions are
// clamped, so Insert always succeeds.
func (g *GapBuffer) Insert(ch rune, at int) {
	g.moveGap(g.clamp(at))
	if g.gapStart == g.gapEnd {
		g.grow()
	}
	g.buf[g.gapStart] = ch
	g.gapStart++
}

// Delete removes the rune immediately before at (backspace semantics) and
// returns it. Deleting at the start of the buffer does nothing.
func (g *GapBuffer) Delete(at int) (rune, bool) {
	at = g.clamp(at)
	if at == 0 {
		return 0, false
	}
	g.moveGap(at)
	g.gapStart--
	return g.buf[g.gapStart], true
}

// RuneAt returns the rune at logical index i, or 0 when i is out of range.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < 0 || i >= g.Len() {
		return 0
	}
	return g.buf[g.Translate(i)]
}

// Slice returns a copy of the runes in [start, end).
func (g *GapBuffer) Slice(start, end int) []rune {
	start, end = g.clamp(start), g.clamp(end)
	if start >= end {
		return []rune{}
	}
	out := make([]rune, 0, end-start)
	if start < g.gapStart {
		out = append(out, g.buf[start:min(end, g.gapStart)]...)
	}
	if end > g.gapStart {
		from := max(start, g.gapStart)
		out = append(out, g.buf[g.Translate(from):g.Translate(end-1)+1]...)
	}
	return out
}

// ByteLen returns the UTF-8 encoded size of the runes in [start, end).
func (g *GapBuffer) ByteLen(start, end int) int {
	start, end = g.clamp(start), g.clamp(end)
	n := 0
	for i := start; i < end; i++ {
		n += utf8.RuneLen(g.buf[g.Translate(i)])
	}
	return n
}

// All yields every logical position and rune. The sequence can be ranged
// over any number of times.
func (g *GapBuffer) All() iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		for i := 0; i < g.Len(); i++ {
			if !yield(i, g.buf[g.Translate(i)]) {
				return
			}
		}
	}
}

// String returns the logical content.
func (g *GapBuffer) String() string {
	return string(g.buf[:g.gapStart]) + string(g.buf[g.gapEnd:])
}
