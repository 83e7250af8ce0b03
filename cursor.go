package main

// Cursor motion state machine. A cursor refers to a document only for the
// duration of a call; panes own their cursor and pass the document in.

import "strings"

// Action is a cursor motion.
type Action int

const (
	MoveUp Action = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveToLineStart
	MoveToLineEnd
	MoveToFirstNonSpace
	MoveToLastNonSpace
	MoveToTop
	MoveToBottom
	PageUp
	PageDown
	WordForward
	BigWordForward
	WordBackward
	BigWordBackward
	ParagraphForward
	ParagraphBackward
	MatchDelimiter
)

// Cursor is a caret position. Absolute is always the offset of (Row, Col).
type Cursor struct {
	Absolute   int
	Row        int
	Col        int
	VirtualCol int // Column to return to when moving vertically through shorter lines.
	PageHeight int // Rows moved by PageUp/PageDown, Config.PageSize when zero.
}

// modeOffset is the number of trailing positions of rec the caret cannot
// reach in mode.
func modeOffset(doc *Document, rec LineRecord, mode Mode) int {
	terminated := doc.HasTerminator(rec)
	switch {
	case mode == ModeInsert && terminated:
		return Config.Motion.InsertTerminated
	case mode == ModeInsert:
		return Config.Motion.InsertFinal
	case terminated:
		return Config.Motion.NormalTerminated
	default:
		return Config.Motion.NormalFinal
	}
}

// maxCol returns the last column the caret may rest on in row.
func maxCol(doc *Document, row int, mode Mode) int {
	rec, ok := doc.Line(row)
	if !ok {
		return 0
	}
	return max(rec.Length-modeOffset(doc, rec, mode), 0)
}

func (c *Cursor) lastRow(doc *Document) int {
	return doc.LineCount() - 1
}

func (c *Cursor) pageHeight() int {
	if c.PageHeight > 0 {
		return c.PageHeight
	}
	return max(Config.PageSize, 1)
}

// Position returns the cursor's row and column.
func (c *Cursor) Position() Point {
	return Point{Row: c.Row, Col: c.Col}
}

// Apply performs action on the cursor.
func (c *Cursor) Apply(action Action, doc *Document, mode Mode) {
	if doc == nil {
		return
	}
	c.Sync(doc, mode)

	switch action {
	case MoveLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Row > 0 {
			c.Row--
			c.Col = maxCol(doc, c.Row, mode)
		}
		c.VirtualCol = c.Col
	case MoveRight:
		if c.Col < maxCol(doc, c.Row, mode) {
			c.Col++
		} else if c.Row < c.lastRow(doc) {
			c.Row++
			c.Col = 0
		}
		c.VirtualCol = c.Col
	case MoveUp:
		if c.Row == 0 {
			c.Col, c.VirtualCol = 0, 0
		} else {
			c.moveVertical(doc, c.Row-1, mode)
		}
	case MoveDown:
		if c.Row == c.lastRow(doc) {
			c.Col = maxCol(doc, c.Row, mode)
			c.VirtualCol = c.Col
		} else {
			c.moveVertical(doc, c.Row+1, mode)
		}
	case MoveToLineStart:
		c.Col, c.VirtualCol = 0, 0
	case MoveToLineEnd:
		c.Col = maxCol(doc, c.Row, mode)
		c.VirtualCol = c.Col
	case MoveToFirstNonSpace:
		c.moveTo(doc, Point{Row: c.Row, Col: FirstNonSpace(doc, c.Row)}, mode)
	case MoveToLastNonSpace:
		c.moveTo(doc, Point{Row: c.Row, Col: LastNonSpace(doc, c.Row)}, mode)
	case MoveToTop:
		c.moveVertical(doc, 0, mode)
	case MoveToBottom:
		c.moveVertical(doc, c.lastRow(doc), mode)
	case PageUp:
		c.moveVertical(doc, c.Row-c.pageHeight(), mode)
	case PageDown:
		c.moveVertical(doc, c.Row+c.pageHeight(), mode)
	case WordForward:
		c.moveTo(doc, NextWordBoundary(doc, c.Position(), GranularityWord), mode)
	case BigWordForward:
		c.moveTo(doc, NextWordBoundary(doc, c.Position(), GranularityBigWord), mode)
	case WordBackward:
		c.moveTo(doc, PrevWordBoundary(doc, c.Position(), GranularityWord), mode)
	case BigWordBackward:
		c.moveTo(doc, PrevWordBoundary(doc, c.Position(), GranularityBigWord), mode)
	case ParagraphForward:
		c.moveTo(doc, Point{Row: NextParagraph(doc, c.Row)}, mode)
	case ParagraphBackward:
		c.moveTo(doc, Point{Row: PrevParagraph(doc, c.Row)}, mode)
	case MatchDelimiter:
		c.moveTo(doc, MatchingDelimiter(doc, c.Position()), mode)
	}

	c.Sync(doc, mode)
}

// moveVertical goes to row keeping the virtual column when the line is long
// enough. VirtualCol itself is left alone.
func (c *Cursor) moveVertical(doc *Document, row int, mode Mode) {
	c.Row = min(max(row, 0), c.lastRow(doc))
	if limit := maxCol(doc, c.Row, mode); c.VirtualCol > limit {
		c.Col = limit
	} else {
		c.Col = c.VirtualCol
	}
}

// moveTo repositions the cursor explicitly, which resets the virtual column.
func (c *Cursor) moveTo(doc *Document, p Point, mode Mode) {
	c.Row, c.Col = p.Row, p.Col
	c.Sync(doc, mode)
	c.VirtualCol = c.Col
}

func (c *Cursor) moveToOffset(doc *Document, offset int, mode Mode) {
	c.moveTo(doc, doc.PointAt(offset), mode)
}

// Sync clamps Row and Col to the document and recomputes Absolute. Cursors
// of other panes are synced after the document they show was edited.
func (c *Cursor) Sync(doc *Document, mode Mode) {
	c.Row = min(max(c.Row, 0), c.lastRow(doc))
	c.Col = min(max(c.Col, 0), maxCol(doc, c.Row, mode))
	rec, _ := doc.Line(c.Row)
	c.Absolute = rec.Start + c.Col
}

// InsertRune types r at the cursor and moves past it.
func (c *Cursor) InsertRune(doc *Document, r rune, mode Mode) EditDelta {
	c.Sync(doc, mode)
	delta := doc.InsertChar(r, c.Absolute)
	c.moveToOffset(doc, delta.NewEndOffset, mode)
	return delta
}

// Backspace removes the rune before the cursor, joining lines at column 0.
func (c *Cursor) Backspace(doc *Document, mode Mode) (EditDelta, bool) {
	c.Sync(doc, mode)
	delta, ok := doc.DeleteChar(c.Absolute)
	if ok {
		c.moveToOffset(doc, delta.StartOffset, mode)
	}
	return delta, ok
}

// DeleteUnder removes the rune under the cursor. Line terminators are left
// alone.
func (c *Cursor) DeleteUnder(doc *Document, mode Mode) (EditDelta, bool) {
	c.Sync(doc, mode)
	if c.Col >= doc.LineLength(c.Row) {
		return EditDelta{}, false
	}
	delta, ok := doc.DeleteChar(c.Absolute + 1)
	if ok {
		c.moveToOffset(doc, delta.StartOffset, mode)
	}
	return delta, ok
}

// OpenLineBelow inserts an empty line under the cursor and moves onto it.
func (c *Cursor) OpenLineBelow(doc *Document, mode Mode) EditDelta {
	delta := doc.InsertLine(c.Row + 1)
	c.moveTo(doc, Point{Row: c.Row + 1}, mode)
	return delta
}

// OpenLineAbove inserts an empty line above the cursor and moves onto it.
func (c *Cursor) OpenLineAbove(doc *Document, mode Mode) EditDelta {
	delta := doc.InsertLine(c.Row)
	c.moveTo(doc, Point{Row: c.Row}, mode)
	return delta
}

// DeleteLine removes the cursor's line and lands on the first non-blank
// column of the line that takes its place.
func (c *Cursor) DeleteLine(doc *Document, mode Mode) (EditDelta, bool) {
	delta, ok := doc.DeleteLine(c.Row)
	if ok {
		c.Sync(doc, mode)
		c.moveTo(doc, Point{Row: c.Row, Col: FirstNonSpace(doc, c.Row)}, mode)
	}
	return delta, ok
}

// DeleteRange removes r and places the cursor at its start.
func (c *Cursor) DeleteRange(doc *Document, r Range, mode Mode) (EditDelta, bool) {
	delta, ok := doc.DeleteRange(r)
	if ok {
		c.moveToOffset(doc, delta.StartOffset, mode)
	}
	return delta, ok
}

// DeleteMotion removes the text between the cursor and where action would
// take it. A forward word motion that lands on a later line stops at the end
// of the cursor's line, so the last word of a line is deleted without
// joining the next one.
func (c *Cursor) DeleteMotion(doc *Document, action Action, mode Mode) (EditDelta, bool) {
	c.Sync(doc, mode)
	target := *c
	target.Apply(action, doc, ModeInsert)
	r := Range{Start: min(c.Absolute, target.Absolute), End: max(c.Absolute, target.Absolute)}
	if (action == WordForward || action == BigWordForward) && target.Row > c.Row {
		rec, _ := doc.Line(c.Row)
		r.End = rec.Start + doc.LineLength(c.Row)
	}
	return c.DeleteRange(doc, r, mode)
}

// ChangeWord removes the rest of the word under the cursor but not the
// whitespace after it. On whitespace it behaves like a word deletion.
func (c *Cursor) ChangeWord(doc *Document, g Granularity, mode Mode) (EditDelta, bool) {
	c.Sync(doc, mode)
	end := WordEnd(doc, c.Position(), g)
	if end == c.Position() {
		action := WordForward
		if g == GranularityBigWord {
			action = BigWordForward
		}
		return c.DeleteMotion(doc, action, mode)
	}
	return c.DeleteRange(doc, Range{Start: c.Absolute, End: doc.OffsetOf(end)}, mode)
}

// PutLines inserts text, whole lines each ending in '\n', below or above the
// cursor's line and moves to the first non-blank column of the first one.
func (c *Cursor) PutLines(doc *Document, text string, below bool, mode Mode) (EditDelta, bool) {
	if text == "" {
		return EditDelta{}, false
	}
	c.Sync(doc, mode)
	rec, _ := doc.Line(c.Row)
	row := c.Row
	var delta EditDelta
	switch {
	case !below:
		delta = doc.Replace(Range{Start: rec.Start, End: rec.Start}, text)
	case doc.HasTerminator(rec):
		delta = doc.Replace(Range{Start: rec.End(), End: rec.End()}, text)
		row++
	default:
		// The last line has no terminator to put the text after.
		delta = doc.Replace(Range{Start: rec.End(), End: rec.End()}, "\n"+strings.TrimSuffix(text, "\n"))
		row++
	}
	c.moveTo(doc, Point{Row: row, Col: FirstNonSpace(doc, row)}, mode)
	return delta, true
}

// DeleteInside removes the text between the innermost open/close pair
// around the cursor.
func (c *Cursor) DeleteInside(doc *Document, open, close rune, mode Mode) (EditDelta, bool) {
	c.Sync(doc, mode)
	r, ok := InnerDelimiterRange(doc, c.Position(), open, close)
	if !ok || r.Empty() {
		return EditDelta{}, false
	}
	return c.DeleteRange(doc, r, mode)
}
