package main

// Text objects: words, paragraphs and delimiter pairs. These are read-only
// queries over a document; the results are handed to a Cursor or used as a
// deletion range.

import "unicode"

// Granularity selects how words are delimited.
type Granularity int

const (
	GranularityWord    Granularity = iota // Runs of word characters or of punctuation.
	GranularityBigWord                    // Runs of anything that is not whitespace.
)

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
)

// isWordChar reports whether r belongs to an identifier-like word.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func classify(r rune, g Granularity) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case g == GranularityBigWord || isWordChar(r):
		return classWord
	default:
		return classPunct
	}
}

// NextWordBoundary returns the start of the next word after p, or the end of
// the document. Line terminators count as whitespace.
func NextWordBoundary(doc *Document, p Point, g Granularity) Point {
	pos, n := doc.OffsetOf(p), doc.Len()
	if pos >= n {
		return doc.PointAt(n)
	}
	if cls := classify(doc.RuneAt(pos), g); cls != classSpace {
		for pos < n && classify(doc.RuneAt(pos), g) == cls {
			pos++
		}
	}
	for pos < n && classify(doc.RuneAt(pos), g) == classSpace {
		pos++
	}
	return doc.PointAt(pos)
}

// PrevWordBoundary returns the start of the word before p, or the start of
// the document.
func PrevWordBoundary(doc *Document, p Point, g Granularity) Point {
	pos := doc.OffsetOf(p)
	if pos == 0 {
		return doc.PointAt(0)
	}
	pos--
	for pos > 0 && classify(doc.RuneAt(pos), g) == classSpace {
		pos--
	}
	cls := classify(doc.RuneAt(pos), g)
	if cls == classSpace {
		return doc.PointAt(0)
	}
	for pos > 0 && classify(doc.RuneAt(pos-1), g) == cls {
		pos--
	}
	return doc.PointAt(pos)
}

// WordEnd returns the position just past the run of p's class on p's line.
// On whitespace, or at the end of the line, p itself is returned.
func WordEnd(doc *Document, p Point, g Granularity) Point {
	rec, ok := doc.Line(p.Row)
	if !ok {
		return p
	}
	pos, end := doc.OffsetOf(p), rec.Start+doc.LineLength(p.Row)
	if pos >= end {
		return p
	}
	cls := classify(doc.RuneAt(pos), g)
	if cls == classSpace {
		return p
	}
	for pos < end && classify(doc.RuneAt(pos), g) == cls {
		pos++
	}
	return doc.PointAt(pos)
}

var (
	openers = map[rune]rune{'(': ')', '[': ']', '{': '}'}
	closers = map[rune]rune{')': '(', ']': '[', '}': '{'}
)

// scanForward returns the offset of the close matching the open at from, or
// -1.
func scanForward(doc *Document, from int, open, close rune) int {
	depth := 0
	for i := from; i < doc.Len(); i++ {
		switch doc.RuneAt(i) {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// scanBackward returns the offset of the open matching the close at from, or
// -1.
func scanBackward(doc *Document, from int, open, close rune) int {
	depth := 0
	for i := from; i >= 0; i-- {
		switch doc.RuneAt(i) {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// MatchingDelimiter finds the first bracket at or after p on p's line and
// returns the position of its partner. When there is no bracket, or it is
// unbalanced, p is returned unchanged.
func MatchingDelimiter(doc *Document, p Point) Point {
	rec, ok := doc.Line(p.Row)
	if !ok {
		return p
	}
	end := rec.Start + doc.LineLength(p.Row)
	for i := doc.OffsetOf(p); i < end; i++ {
		r := doc.RuneAt(i)
		if close, ok := openers[r]; ok {
			if j := scanForward(doc, i, r, close); j >= 0 {
				return doc.PointAt(j)
			}
			return p
		}
		if open, ok := closers[r]; ok {
			if j := scanBackward(doc, i, open, r); j >= 0 {
				return doc.PointAt(j)
			}
			return p
		}
	}
	return p
}

// InnerDelimiterRange returns the text strictly between the innermost
// open/close pair surrounding p. Quotes (open == close) are paired left to
// right on p's line only.
func InnerDelimiterRange(doc *Document, p Point, open, close rune) (Range, bool) {
	pos := doc.OffsetOf(p)
	if open == close {
		return innerQuoteRange(doc, p, open)
	}

	start := -1
	switch doc.RuneAt(pos) {
	case open:
		start = pos
	case close:
		start = scanBackward(doc, pos, open, close)
	default:
		depth := 0
		for i := pos - 1; i >= 0; i-- {
			r := doc.RuneAt(i)
			if r == close {
				depth++
			} else if r == open {
				if depth == 0 {
					start = i
					break
				}
				depth--
			}
		}
	}
	if start < 0 {
		return Range{}, false
	}
	end := scanForward(doc, start, open, close)
	if end < 0 {
		return Range{}, false
	}
	return Range{Start: start + 1, End: end}, true
}

func innerQuoteRange(doc *Document, p Point, quote rune) (Range, bool) {
	rec, ok := doc.Line(p.Row)
	if !ok {
		return Range{}, false
	}
	pos := doc.OffsetOf(p)
	var quotes []int
	for i := rec.Start; i < rec.Start+doc.LineLength(p.Row); i++ {
		if doc.RuneAt(i) == quote {
			quotes = append(quotes, i)
		}
	}
	for i := 0; i+1 < len(quotes); i += 2 {
		if pos >= quotes[i] && pos <= quotes[i+1] {
			return Range{Start: quotes[i] + 1, End: quotes[i+1]}, true
		}
	}
	return Range{}, false
}

// FirstNonSpace returns the column of the first non-blank rune of row, or 0
// when the line is blank.
func FirstNonSpace(doc *Document, row int) int {
	rec, ok := doc.Line(row)
	if !ok {
		return 0
	}
	for col := 0; col < doc.LineLength(row); col++ {
		if !unicode.IsSpace(doc.RuneAt(rec.Start + col)) {
			return col
		}
	}
	return 0
}

// LastNonSpace returns the column of the last non-blank rune of row, or 0
// when the line is blank.
func LastNonSpace(doc *Document, row int) int {
	rec, ok := doc.Line(row)
	if !ok {
		return 0
	}
	for col := doc.LineLength(row) - 1; col >= 0; col-- {
		if !unicode.IsSpace(doc.RuneAt(rec.Start + col)) {
			return col
		}
	}
	return 0
}

// isBlankLine reports whether row consists of nothing but its terminator.
func isBlankLine(doc *Document, row int) bool {
	rec, ok := doc.Line(row)
	return ok && rec.Length == 1 && doc.HasTerminator(rec)
}

// NextParagraph returns the next blank row after row, or the last row.
func NextParagraph(doc *Document, row int) int {
	for r := row + 1; r < doc.LineCount(); r++ {
		if isBlankLine(doc, r) {
			return r
		}
	}
	return doc.LineCount() - 1
}

// PrevParagraph returns the previous blank row before row, or 0.
func PrevParagraph(doc *Document, row int) int {
	for r := min(row, doc.LineCount()) - 1; r >= 0; r-- {
		if isBlankLine(doc, r) {
			return r
		}
	}
	return 0
}

func foldRunes(s string) []rune {
	q := []rune(s)
	for i, r := range q {
		q[i] = unicode.ToLower(r)
	}
	return q
}

// hasFoldedPrefix reports whether text starts with q, ignoring case. q must
// already be lowercased.
func hasFoldedPrefix(text, q []rune) bool {
	if len(text) < len(q) {
		return false
	}
	for i, r := range q {
		if unicode.ToLower(text[i]) != r {
			return false
		}
	}
	return true
}

// FindText returns the start of the next case-insensitive occurrence of
// query after p, or before it when forward is false. The search wraps
// around the document and finds the occurrence at p only when it is the
// sole one.
func FindText(doc *Document, p Point, query string, forward bool) (Point, bool) {
	q := foldRunes(query)
	n := doc.Len()
	if len(q) == 0 || len(q) > n {
		return p, false
	}
	text := doc.store.Slice(0, n)
	candidates := n - len(q) + 1
	from := doc.OffsetOf(p)
	for k := 1; k <= candidates; k++ {
		i := (from + k) % candidates
		if !forward {
			i = ((from-k)%candidates + candidates) % candidates
		}
		if hasFoldedPrefix(text[i:], q) {
			return doc.PointAt(i), true
		}
	}
	return p, false
}
