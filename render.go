package main

// Screen rendering. The active pane fills the window above the status bar
// and the command bar; the debug log is drawn over it when toggled.

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"github.com/rivo/uniseg"
)

// clusterWidth returns how many screen columns a grapheme cluster occupies
// when drawn at screen column currentX. Tabs stop at multiples of tabWidth.
// Combining marks belong to their base's cluster and add nothing; a cluster
// that measures zero on its own still takes one cell.
func clusterWidth(cluster string, currentX, tabWidth int) int {
	if cluster == "\t" {
		return tabWidth - (currentX % tabWidth)
	}
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 1)
}

// bufferToVisual converts a rune column to its screen column. A column in
// the middle of a cluster maps past the cluster.
func bufferToVisual(line []rune, col, tabWidth int) int {
	visualX, idx := 0, 0
	g := uniseg.NewGraphemes(string(line))
	for idx < col && g.Next() {
		visualX += clusterWidth(g.Str(), visualX, tabWidth)
		idx += len(g.Runes())
	}
	return visualX
}

// scrollTo keeps the cursor of p inside a text area of the given size.
func (p *Pane) scrollTo(visualX, textWidth, visibleHeight int) {
	if p.cursor.Row < p.scrollY {
		p.scrollY = p.cursor.Row
	}
	if p.cursor.Row >= p.scrollY+visibleHeight {
		p.scrollY = p.cursor.Row - visibleHeight + 1
	}
	if visualX < p.scrollX {
		p.scrollX = visualX
	}
	if visualX >= p.scrollX+textWidth {
		p.scrollX = visualX - textWidth + 1
	}
}

// matchedBracket returns the offset of the partner of the bracket under the
// cursor, or -1.
func matchedBracket(doc *Document, c Cursor) int {
	r := doc.RuneAt(c.Absolute)
	if _, ok := openers[r]; !ok {
		if _, ok := closers[r]; !ok {
			return -1
		}
	}
	m := MatchingDelimiter(doc, c.Position())
	if m == c.Position() {
		return -1
	}
	return doc.OffsetOf(m)
}

// searchMatches marks every rune of line covered by a case-insensitive
// occurrence of query.
func searchMatches(line []rune, query string) func(int) bool {
	q := foldRunes(query)
	if len(q) == 0 || len(q) > len(line) {
		return func(int) bool { return false }
	}
	marked := make([]bool, len(line))
	for i := 0; i+len(q) <= len(line); i++ {
		if hasFoldedPrefix(line[i:], q) {
			for k := range q {
				marked[i+k] = true
			}
		}
	}
	return func(i int) bool { return i < len(marked) && marked[i] }
}

func (e *Editor) draw() {
	_, defaultBg := GetThemeColor(ColorDefault)
	termbox.Clear(termbox.ColorDefault, defaultBg)
	w, h := termbox.Size()
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		termbox.Flush()
		return
	}

	textWidth := max(w-Config.GutterWidth, 1)
	visibleHeight := max(h-2, 1)
	tabWidth := e.tabWidth()

	p.cursor.PageHeight = visibleHeight
	p.cursor.Sync(doc, e.mode)
	cursorLine := []rune(doc.LineFromRecord(mustLine(doc, p.cursor.Row)))
	visualCursorX := bufferToVisual(cursorLine, p.cursor.Col, tabWidth)
	p.scrollTo(visualCursorX, textWidth, visibleHeight)

	bracket := -1
	if e.mode == ModeNormal {
		bracket = matchedBracket(doc, p.cursor)
	}
	highlighter := e.highlighters[p.doc]

	screenY := 0
	for line := range doc.ContentFrom(p.scrollY, visibleHeight) {
		row := p.scrollY + screenY
		runes := []rune(line)

		// Gutter line number rendering.
		lineNum := strconv.Itoa(row + 1)
		gutterColor := ColorGutterLineNumber
		if row == p.cursor.Row {
			gutterColor = ColorGutterCurrent
		}
		gutterFg, gutterBg := GetThemeColor(gutterColor)
		for i, r := range lineNum {
			termbox.SetCell(Config.GutterWidth-len(lineNum)-1+i, screenY, r, gutterFg, gutterBg)
		}

		var fgAttrs []termbox.Attribute
		if highlighter != nil {
			fgAttrs = highlighter.Highlight(row, runes)
		} else {
			fgAttrs = make([]termbox.Attribute, len(runes))
			for k := range fgAttrs {
				fgAttrs[k], _ = GetThemeColor(ColorDefault)
			}
		}

		isMatch := searchMatches(runes, e.lastSearch)

		_, bg := GetThemeColor(ColorDefault)
		if row == p.cursor.Row {
			_, bg = GetThemeColor(ColorHighlightedLine)
			fg, _ := GetThemeColor(ColorDefault)
			for x := 0; x < textWidth; x++ {
				termbox.SetCell(x+Config.GutterWidth, screenY, ' ', fg, bg)
			}
		}

		rec, _ := doc.Line(row)
		visualX, idx := 0, 0
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			cluster := g.Runes()
			width := clusterWidth(g.Str(), visualX, tabWidth)
			fg, charBg := fgAttrs[idx], bg
			if bracket >= rec.Start+idx && bracket < rec.Start+idx+len(cluster) {
				fg, charBg = GetThemeColor(ColorMatchedBracket)
			} else if isMatch(idx) {
				fg, charBg = GetThemeColor(ColorSearchMatch)
			}
			r := cluster[0]
			if r == '\t' {
				for i := 0; i < width; i++ {
					if screenX := visualX + i - p.scrollX; screenX >= 0 && screenX < textWidth {
						termbox.SetCell(screenX+Config.GutterWidth, screenY, ' ', fg, charBg)
					}
				}
			} else if screenX := visualX - p.scrollX; screenX >= 0 && screenX+width <= textWidth {
				if r < ' ' {
					// Stray control characters such as a lone '\r'.
					r = '?'
				}
				// Wide runes take the following cell too; termbox fills it.
				// Combining marks are not drawn on their own.
				termbox.SetCell(screenX+Config.GutterWidth, screenY, r, fg, charBg)
			}
			visualX += width
			idx += len(cluster)
		}
		screenY++
	}

	for ; screenY < visibleHeight; screenY++ {
		fg, bg := GetThemeColor(ColorEmptyLineMarker)
		termbox.SetCell(0, screenY, '~', fg, bg)
	}

	if e.showIntro() {
		e.drawIntro()
	}

	e.drawStatusBar(h - 2)
	e.drawCommandBar(h - 1)

	if e.showDebugLog {
		e.drawDebugLog()
	}

	// Synchronize terminal cursor with editor focus.
	if e.mode == ModeCommand {
		termbox.SetCursor(e.commandCursorX+1, h-1)
	} else if e.mode == ModeSearch {
		termbox.SetCursor(len(e.searchBuffer)+1, h-1)
	} else {
		termbox.SetCursor(visualCursorX-p.scrollX+Config.GutterWidth, p.cursor.Row-p.scrollY)
	}
	termbox.Flush()
}

func mustLine(doc *Document, row int) LineRecord {
	rec, _ := doc.Line(row)
	return rec
}

// statusText returns the left and right parts of the status bar.
func (e *Editor) statusText() (string, string) {
	p, doc := e.pane(), e.activeDocument()

	fileStr := "[no file]"
	if doc.Path != "" {
		fileStr = doc.Path
	}
	if doc.Modified() {
		fileStr += " [+]"
	}

	lineNum := p.cursor.Row + 1
	line := []rune(doc.LineFromRecord(mustLine(doc, p.cursor.Row)))
	visualCol := bufferToVisual(line, p.cursor.Col, e.tabWidth()) + 1
	totalLines := doc.LineCount()
	percent := (lineNum * 100) / totalLines
	right := fmt.Sprintf("(%s) [%d/%d] %d,%d %d%% ",
		strings.ToLower(doc.Language), e.activePane+1, len(e.panes), lineNum, visualCol, percent)
	return fileStr, right
}

func (e *Editor) drawStatusBar(statusY int) {
	w, _ := termbox.Size()
	if e.activeDocument() == nil {
		return
	}

	// Fill background for the entire status line.
	for x := 0; x < w; x++ {
		fg, bg := GetThemeColor(ColorStatusBar)
		termbox.SetCell(x, statusY, ' ', fg, bg)
	}

	// Draw the primary mode indicator.
	modeStr := e.mode.String()
	var fg, bg termbox.Attribute
	switch e.mode {
	case ModeInsert:
		fg, bg = GetThemeColor(ColorInsertMode)
	case ModeCommand, ModeSearch:
		fg, bg = GetThemeColor(ColorCommandMode)
	default:
		fg, bg = GetThemeColor(ColorNormalMode)
	}
	termbox.SetCell(0, statusY, ' ', fg, bg)
	for i, r := range modeStr {
		termbox.SetCell(i+1, statusY, r, fg, bg)
	}
	termbox.SetCell(len(modeStr)+1, statusY, ' ', fg, bg)

	left, right := e.statusText()
	fileX := len(modeStr) + 3
	fg, bg = GetThemeColor(ColorStatusBar)
	for i, r := range left {
		termbox.SetCell(fileX+i, statusY, r, fg, bg)
	}
	rightX := w - runewidth.StringWidth(right)
	for i, r := range right {
		termbox.SetCell(rightX+i, statusY, r, fg, bg)
	}
}

func (e *Editor) drawCommandBar(cmdY int) {
	w, _ := termbox.Size()
	fg, bg := GetThemeColor(ColorDefault)
	for x := 0; x < w; x++ {
		termbox.SetCell(x, cmdY, ' ', fg, bg)
	}

	text := []rune(e.message)
	if e.mode == ModeCommand {
		text = append([]rune{':'}, e.commandBuffer...)
	} else if e.mode == ModeSearch {
		text = append([]rune{'/'}, e.searchBuffer...)
	} else if e.pendingKey != 0 {
		text = []rune(string(e.pendingKey) + string(e.pendingOp))
	}
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		termbox.SetCell(x, cmdY, r, fg, bg)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

func (e *Editor) drawDebugLog() {
	w, h := termbox.Size()
	lines := []string{}
	if p, doc := e.pane(), e.activeDocument(); doc != nil {
		name := "[no file]"
		if doc.Path != "" {
			name = filepath.Base(doc.Path)
		}
		lines = append(lines, fmt.Sprintf("%s: %d runes, %d lines, cursor %d (%d:%d) vcol %d",
			name, doc.Len(), doc.LineCount(), p.cursor.Absolute, p.cursor.Row+1, p.cursor.Col+1, p.cursor.VirtualCol))
	}
	lines = append(lines, e.logMessages...)

	height := len(lines) + 1
	startY := max(h-2-height, 0)

	for y := startY; y < h-2; y++ {
		for x := 0; x < w; x++ {
			fg, bg := GetThemeColor(ColorDebugWindow)
			termbox.SetCell(x, y, ' ', fg, bg)
		}
	}

	title := "[DEBUG LOG]"
	titleX := (w - len(title)) / 2
	fg, bg := GetThemeColor(ColorDebugTitle)
	for i, r := range title {
		termbox.SetCell(titleX+i, startY, r, fg, bg)
	}

	fg, bg = GetThemeColor(ColorDebugWindow)
	for i, line := range lines {
		y := startY + 1 + i
		if y >= h-2 {
			break
		}
		x := 1
		for _, r := range line {
			if x >= w {
				break
			}
			termbox.SetCell(x, y, r, fg, bg)
			x += max(runewidth.RuneWidth(r), 1)
		}
	}
}
