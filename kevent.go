package main

// Input processing engine. It contains the main event loop and dispatches
// keyboard events to mode-specific handlers (Normal, Insert, Command,
// Search).

import (
	"github.com/nsf/termbox-go"
)

// operatorMotions are the motions that can follow the d and c operators.
var operatorMotions = map[rune]Action{
	'h': MoveLeft,
	'l': MoveRight,
	'0': MoveToLineStart,
	'^': MoveToFirstNonSpace,
	'w': WordForward,
	'W': BigWordForward,
	'b': WordBackward,
	'B': BigWordBackward,
	'}': ParagraphForward,
	'{': ParagraphBackward,
	'G': MoveToBottom,
	'%': MatchDelimiter,
}

// textObject maps the key after "di" or "ci" to a delimiter pair.
func textObject(ch rune) (open, close rune, ok bool) {
	switch ch {
	case '(', ')', 'b':
		return '(', ')', true
	case '[', ']':
		return '[', ']', true
	case '{', '}', 'B':
		return '{', '}', true
	case '<', '>':
		return '<', '>', true
	case '"', '\'', '`':
		return ch, ch, true
	}
	return 0, 0, false
}

// HandleEvents is the central loop that waits for and processes all user input.
func (e *Editor) HandleEvents() {
	for !e.quit {
		// Redraw the screen before waiting for the next event.
		e.draw()
		e.handleEvent(termbox.PollEvent())
	}
}

func (e *Editor) handleEvent(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventInterrupt:
		// Woken up by PeriodicFileChangesCheck.
		e.CheckFilesOnDisk()
	case termbox.EventError:
		e.addLog("Editor", ev.Err.Error())
	case termbox.EventKey:
		// Clear message on any key press unless specifically set.
		e.message = ""

		// If dev mode, exit the editor with Ctrl+C.
		if ev.Key == termbox.KeyCtrlC && e.devMode {
			e.quit = true
			return
		}

		switch e.mode {
		case ModeNormal:
			e.handleNormalMode(ev)
		case ModeInsert:
			e.handleInsertMode(ev)
		case ModeCommand:
			e.handleCommandMode(ev)
		case ModeSearch:
			e.handleSearchMode(ev)
		}
	}
}

// handleNormalMode processes keyboard input when the editor is in Normal mode.
func (e *Editor) handleNormalMode(ev termbox.Event) {
	if ev.Key != 0 {
		// Special keys cancel any pending multi-key command.
		e.pendingKey, e.pendingOp = 0, 0
	}

	switch ev.Key {
	case termbox.KeyEsc:
		return
	case termbox.KeyArrowLeft:
		e.move(MoveLeft)
	case termbox.KeyArrowRight:
		e.move(MoveRight)
	case termbox.KeyArrowUp:
		e.move(MoveUp)
	case termbox.KeyArrowDown:
		e.move(MoveDown)
	case termbox.KeyHome:
		e.move(MoveToLineStart)
	case termbox.KeyEnd:
		e.move(MoveToLineEnd)
	case termbox.KeyPgup, termbox.KeyCtrlB:
		e.move(PageUp)
	case termbox.KeyPgdn, termbox.KeyCtrlF:
		e.move(PageDown)
	case termbox.KeyCtrlP:
		e.prevPane()
	case termbox.KeyCtrlN:
		e.nextPane()
	}

	// Prevent key event fallthrough.
	if ev.Key != 0 {
		return
	}

	if e.pendingKey != 0 {
		e.handlePendingKey(ev.Ch)
		return
	}

	switch ev.Ch {
	case 'h':
		e.move(MoveLeft)
	case 'j':
		e.move(MoveDown)
	case 'k':
		e.move(MoveUp)
	case 'l':
		e.move(MoveRight)
	case '0':
		e.move(MoveToLineStart)
	case '$':
		e.move(MoveToLineEnd)
	case '^':
		e.move(MoveToFirstNonSpace)
	case 'w':
		e.move(WordForward)
	case 'W':
		e.move(BigWordForward)
	case 'b':
		e.move(WordBackward)
	case 'B':
		e.move(BigWordBackward)
	case '}':
		e.move(ParagraphForward)
	case '{':
		e.move(ParagraphBackward)
	case '%':
		e.move(MatchDelimiter)
	case 'G':
		e.move(MoveToBottom)
	case 'g', 'd', 'c', 'y', 'z', Config.LeaderKey:
		e.pendingKey = ev.Ch
	case 'p':
		e.putLines(true)
	case 'P':
		e.putLines(false)
	case 'n':
		e.search(true)
	case 'N':
		e.search(false)
	case '/':
		e.mode = ModeSearch
		e.searchBuffer = []rune{}
	case 'x':
		e.DeleteChar()
	case 'D':
		e.deleteToLineEnd()
	case 'C':
		e.enterInsert()
		e.deleteToLineEnd()
	case 's':
		e.enterInsert()
		e.DeleteChar()
	case 'J':
		e.JoinLines()
	case 'i':
		e.enterInsert()
	case 'a':
		e.enterInsert()
		if p, doc := e.pane(), e.activeDocument(); doc != nil {
			p.cursor.moveTo(doc, Point{Row: p.cursor.Row, Col: p.cursor.Col + 1}, e.mode)
		}
	case 'A':
		e.enterInsert()
		e.move(MoveToLineEnd)
	case 'I':
		e.enterInsert()
		e.move(MoveToFirstNonSpace)
	case 'o':
		e.openLine(true)
	case 'O':
		e.openLine(false)
	case ':':
		e.mode = ModeCommand
		e.commandBuffer = []rune{}
		e.commandCursorX = 0
		e.commandHistoryIdx = -1
	}
}

// handlePendingKey completes a multi-key command started by g, d, c, y, z or
// the leader key.
func (e *Editor) handlePendingKey(ch rune) {
	key, op := e.pendingKey, e.pendingOp
	e.pendingKey, e.pendingOp = 0, 0

	switch key {
	case 'g':
		switch ch {
		case 'g':
			e.move(MoveToTop)
		case '_':
			e.move(MoveToLastNonSpace)
		}
	case Config.LeaderKey:
		if ch == 'l' {
			e.toggleDebugWindow()
		}
	case 'y':
		if ch == 'y' {
			e.yankLine()
			e.message = "Line yanked"
		}
	case 'z':
		if ch == 'x' {
			e.toggleComment()
		}
	case 'd', 'c':
		e.handleOperator(key, op, ch)
	}
}

// handleOperator runs the delete or change operator over the motion or text
// object named by ch.
func (e *Editor) handleOperator(key, op, ch rune) {
	change := key == 'c'

	if op == 'i' {
		open, close, ok := textObject(ch)
		if !ok {
			return
		}
		if change {
			e.enterInsert()
		}
		e.deleteInside(open, close)
		return
	}

	if ch == 'i' {
		e.pendingKey, e.pendingOp = key, 'i'
		return
	}

	switch {
	case ch == key && change:
		// cc keeps the indentation and clears the rest of the line.
		e.enterInsert()
		e.move(MoveToFirstNonSpace)
		e.deleteToLineEnd()
	case ch == key:
		e.deleteLine()
	case ch == '$':
		if change {
			e.enterInsert()
		}
		e.deleteToLineEnd()
	case change && (ch == 'w' || ch == 'W'):
		// Like vi, cw stops at the end of the word.
		e.enterInsert()
		g := GranularityWord
		if ch == 'W' {
			g = GranularityBigWord
		}
		e.changeWord(g)
	default:
		action, ok := operatorMotions[ch]
		if !ok {
			return
		}
		if change {
			e.enterInsert()
		}
		e.deleteMotion(action)
	}
}

// handleInsertMode processes keyboard input when the editor is in Insert mode.
func (e *Editor) handleInsertMode(ev termbox.Event) {
	switch ev.Key {
	case termbox.KeyEsc:
		e.exitInsert()
	case termbox.KeyEnter:
		e.insertNewline()
	case termbox.KeySpace:
		e.insertRune(' ')
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		e.backspace()
	case termbox.KeyDelete:
		e.DeleteChar()
	case termbox.KeyTab:
		e.insertTab()
	case termbox.KeyArrowLeft:
		e.move(MoveLeft)
	case termbox.KeyArrowRight:
		e.move(MoveRight)
	case termbox.KeyArrowUp:
		e.move(MoveUp)
	case termbox.KeyArrowDown:
		e.move(MoveDown)
	case termbox.KeyHome:
		e.move(MoveToLineStart)
	case termbox.KeyEnd:
		e.move(MoveToLineEnd)
	case termbox.KeyCtrlW:
		e.deleteMotion(WordBackward)
	default:
		// If a character key was pressed, insert the character.
		if ev.Ch != 0 {
			e.insertRune(ev.Ch)
		}
	}
}

// handleCommandMode processes keyboard input for the colon command line.
func (e *Editor) handleCommandMode(ev termbox.Event) {
	switch ev.Key {
	case termbox.KeyEsc:
		// Cancel command entry.
		e.mode = ModeNormal
		e.commandBuffer = []rune{}
		e.commandCursorX = 0
		e.commandHistoryIdx = -1
	case termbox.KeyEnter:
		e.commands.HandleAndSaveToHistory(string(e.commandBuffer))
		e.commandHistoryIdx = -1
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		if e.commandCursorX > 0 {
			e.commandBuffer = append(e.commandBuffer[:e.commandCursorX-1], e.commandBuffer[e.commandCursorX:]...)
			e.commandCursorX--
		} else if len(e.commandBuffer) == 0 {
			// If buffer is empty, backspace returns to Normal mode.
			e.mode = ModeNormal
		}
		e.commandHistoryIdx = -1
	case termbox.KeySpace:
		e.insertCommandRune(' ')
	case termbox.KeyArrowLeft:
		if e.commandCursorX > 0 {
			e.commandCursorX--
		}
	case termbox.KeyArrowRight:
		if e.commandCursorX < len(e.commandBuffer) {
			e.commandCursorX++
		}
	case termbox.KeyArrowUp:
		e.commands.NavigateHistoryUp()
	case termbox.KeyArrowDown:
		e.commands.NavigateHistoryDown()
	default:
		if ev.Ch != 0 {
			e.insertCommandRune(ev.Ch)
		}
	}
}

// handleSearchMode processes keyboard input while a / pattern is typed.
// Enter with an empty pattern repeats the last search.
func (e *Editor) handleSearchMode(ev termbox.Event) {
	switch ev.Key {
	case termbox.KeyEsc:
		e.mode = ModeNormal
		e.searchBuffer = []rune{}
	case termbox.KeyEnter:
		e.mode = ModeNormal
		if len(e.searchBuffer) > 0 {
			e.lastSearch = string(e.searchBuffer)
		}
		e.searchBuffer = []rune{}
		e.search(true)
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		if len(e.searchBuffer) > 0 {
			e.searchBuffer = e.searchBuffer[:len(e.searchBuffer)-1]
		} else {
			e.mode = ModeNormal
		}
	case termbox.KeySpace:
		e.searchBuffer = append(e.searchBuffer, ' ')
	default:
		if ev.Ch != 0 {
			e.searchBuffer = append(e.searchBuffer, ev.Ch)
		}
	}
}

func (e *Editor) insertCommandRune(r rune) {
	e.commandBuffer = append(e.commandBuffer[:e.commandCursorX], append([]rune{r}, e.commandBuffer[e.commandCursorX:]...)...)
	e.commandCursorX++
	e.commandHistoryIdx = -1
}
