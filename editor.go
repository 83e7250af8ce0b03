package main

// Core of the application. Owns every open document, the panes looking at
// them, the current mode and the transient UI state. Edits made through a
// pane are fanned out to the syntax highlighter and to the other panes that
// show the same document.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nsf/termbox-go"
)

// Mode represents the current operational state of the editor.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand // Colon command line mode
	ModeSearch  // Typing a / search pattern
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	case ModeSearch:
		return "SEARCH"
	default:
		return "NORMAL"
	}
}

// DocID identifies a document owned by the editor.
type DocID int

// Pane is a view into one document with its own cursor and scroll state.
type Pane struct {
	doc     DocID
	cursor  Cursor
	scrollX int
	scrollY int
}

// Editor is the global application state.
type Editor struct {
	docs         map[DocID]*Document
	highlighters map[DocID]*SyntaxHighlighter
	nextID       DocID

	panes      []*Pane
	activePane int

	mode       Mode
	pendingKey rune // First key of a multi-key normal mode command.
	pendingOp  rune // Operator waiting for a text object, e.g. 'i' after 'd'.
	message    string

	commandBuffer     []rune
	commandCursorX    int
	commandHistory    []string
	commandHistoryIdx int
	commands          *Command

	searchBuffer []rune
	lastSearch   string // Highlighted and repeated by n and N.
	register     string // Lines yanked or deleted, ending in '\n'.

	logMessages    []string
	maxLogMessages int
	showDebugLog   bool
	devMode        bool
	quit           bool
}

// NewEditor creates a new editor instance with an empty scratch document.
func NewEditor(devMode bool) *Editor {
	e := &Editor{
		docs:              make(map[DocID]*Document),
		highlighters:      make(map[DocID]*SyntaxHighlighter),
		mode:              ModeNormal,
		commandHistoryIdx: -1,
		maxLogMessages:    max(Config.NumLogsInWindow, 1),
		devMode:           devMode,
	}
	id := e.addDocument(NewDocument("", ""))
	e.panes = append(e.panes, &Pane{doc: id})
	e.commands = &Command{e: e}
	return e
}

func (e *Editor) addLog(group, msg string) {
	t := time.Now()
	timestamp := fmt.Sprintf("[%02d:%02d:%02d]", t.Hour(), t.Minute(), t.Second())
	logMsg := fmt.Sprintf("%s [%s] %s", timestamp, group, msg)
	e.logMessages = append(e.logMessages, logMsg)

	if len(e.logMessages) > e.maxLogMessages {
		e.logMessages = e.logMessages[len(e.logMessages)-e.maxLogMessages:]
	}

	if Config.UseLogFile {
		f, err := os.OpenFile(Config.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			f.WriteString(logMsg + "\n")
		}
	}
}

func (e *Editor) toggleDebugWindow() {
	e.showDebugLog = !e.showDebugLog
}

// addDocument registers doc and starts highlighting it.
func (e *Editor) addDocument(doc *Document) DocID {
	id := e.nextID
	e.nextID++
	e.docs[id] = doc
	e.startHighlighter(id)
	return id
}

func (e *Editor) startHighlighter(id DocID) {
	doc := e.docs[id]
	s := NewSyntaxHighlighter(fileTypeByName(doc.Language), e.addLog)
	if s == nil {
		delete(e.highlighters, id)
		return
	}
	s.Parse([]byte(doc.String()))
	e.highlighters[id] = s
}

// releaseDocument drops id when no pane shows it anymore.
func (e *Editor) releaseDocument(id DocID) {
	for _, p := range e.panes {
		if p.doc == id {
			return
		}
	}
	delete(e.docs, id)
	delete(e.highlighters, id)
}

func (e *Editor) pane() *Pane {
	if len(e.panes) == 0 {
		return nil
	}
	return e.panes[e.activePane]
}

func (e *Editor) activeDocument() *Document {
	p := e.pane()
	if p == nil {
		return nil
	}
	return e.docs[p.doc]
}

// isScratch reports whether the pane shows an untouched unnamed document
// that can be replaced by a loaded file.
func (e *Editor) isScratch(p *Pane) bool {
	doc := e.docs[p.doc]
	return doc != nil && doc.Path == "" && doc.Len() == 0 && !doc.Modified()
}

// findDocument returns the id of the document backed by path.
func (e *Editor) findDocument(path string) (DocID, bool) {
	abs, _ := filepath.Abs(path)
	for id, doc := range e.docs {
		if doc.Path == "" {
			continue
		}
		if p, _ := filepath.Abs(doc.Path); p == abs {
			return id, true
		}
	}
	return 0, false
}

// LoadFile opens filename in the active pane, or in a new pane when the
// active one already holds work. A missing file starts an empty document
// that will be created on save.
func (e *Editor) LoadFile(filename string) error {
	if id, ok := e.findDocument(filename); ok {
		for i, p := range e.panes {
			if p.doc == id {
				e.activePane = i
				return nil
			}
		}
		e.showDocument(id)
		return nil
	}

	doc, err := Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		doc = NewDocument("", filename)
		e.message = fmt.Sprintf("\"%s\" [New]", filename)
	} else if err != nil {
		e.addLog("File", err.Error())
		return err
	} else {
		e.message = fmt.Sprintf("\"%s\" %dL", filename, doc.LineCount())
	}

	id := e.addDocument(doc)
	e.showDocument(id)
	e.addLog("File", fmt.Sprintf("Loaded %s (%s, %d lines)", filename, doc.Language, doc.LineCount()))
	return nil
}

// showDocument points the active pane at id, reusing it if it only held a
// scratch document.
func (e *Editor) showDocument(id DocID) {
	p := e.pane()
	if p != nil && e.isScratch(p) && p.doc != id {
		old := p.doc
		p.doc, p.cursor, p.scrollX, p.scrollY = id, Cursor{}, 0, 0
		e.releaseDocument(old)
		return
	}
	e.panes = append(e.panes, &Pane{doc: id})
	e.activePane = len(e.panes) - 1
}

// SaveFile writes the active document to path, or to its own file when path
// is empty. Unless force is set, a file that changed on disk is not
// overwritten.
func (e *Editor) SaveFile(path string, force bool) error {
	p := e.pane()
	doc := e.activeDocument()
	if doc == nil {
		return nil
	}
	if !force && (path == "" || path == doc.Path) && doc.ChangedOnDisk() {
		return fmt.Errorf("\"%s\" changed on disk, use :w! to overwrite", filepath.Base(doc.Path))
	}

	lang := doc.Language
	if err := doc.Save(path); err != nil {
		e.addLog("File", err.Error())
		return err
	}
	if doc.Language != lang {
		e.startHighlighter(p.doc)
	}

	target := path
	if target == "" {
		target = doc.Path
	}
	e.message = fmt.Sprintf("\"%s\" %dL written", target, doc.LineCount())
	e.addLog("File", fmt.Sprintf("Saved %s", target))
	return nil
}

// ReloadDocument re-reads the document from disk, keeping panes on it near
// their previous positions.
func (e *Editor) ReloadDocument(id DocID) error {
	old := e.docs[id]
	if old == nil || old.Path == "" {
		return nil
	}
	doc, err := Open(old.Path)
	if err != nil {
		return err
	}
	e.docs[id] = doc
	e.startHighlighter(id)
	for _, p := range e.panes {
		if p.doc == id {
			p.cursor.Sync(doc, ModeNormal)
		}
	}
	return nil
}

// CheckFilesOnDisk reloads unmodified documents whose files changed and
// warns about modified ones.
func (e *Editor) CheckFilesOnDisk() {
	active := e.pane()
	for id, doc := range e.docs {
		if !doc.ChangedOnDisk() {
			continue
		}
		isActive := active != nil && active.doc == id
		name := filepath.Base(doc.Path)
		if doc.Modified() {
			if isActive {
				e.message = fmt.Sprintf("WARNING: \"%s\" changed on disk. Use :e! to reload.", name)
			}
			continue
		}
		if err := e.ReloadDocument(id); err != nil {
			e.addLog("File", fmt.Sprintf("Failed to auto-reload \"%s\": %v", doc.Path, err))
			continue
		}
		e.addLog("File", fmt.Sprintf("Auto-reloaded \"%s\" (changed on disk)", name))
		if isActive {
			e.message = fmt.Sprintf("\"%s\" reloaded from disk", name)
		}
	}
}

// PeriodicFileChangesCheck wakes the event loop so it can look for files
// changed by other programs.
func (e *Editor) PeriodicFileChangesCheck() {
	if Config.FileCheckInterval <= 0 {
		return
	}
	go func() {
		for {
			time.Sleep(Config.FileCheckInterval)
			termbox.Interrupt()
		}
	}()
}

// splitPane opens a second pane on the active document.
func (e *Editor) splitPane() {
	p := e.pane()
	if p == nil {
		return
	}
	np := *p
	e.panes = append(e.panes, &np)
	e.activePane = len(e.panes) - 1
}

// closePane closes the active pane. It reports false when it was the last
// one.
func (e *Editor) closePane() bool {
	if len(e.panes) <= 1 {
		return false
	}
	id := e.panes[e.activePane].doc
	e.panes = append(e.panes[:e.activePane], e.panes[e.activePane+1:]...)
	if e.activePane >= len(e.panes) {
		e.activePane = len(e.panes) - 1
	}
	e.releaseDocument(id)
	return true
}

func (e *Editor) nextPane() {
	if len(e.panes) > 1 {
		e.activePane = (e.activePane + 1) % len(e.panes)
		e.syncActiveCursor()
	}
}

func (e *Editor) prevPane() {
	if len(e.panes) > 1 {
		e.activePane = (e.activePane - 1 + len(e.panes)) % len(e.panes)
		e.syncActiveCursor()
	}
}

func (e *Editor) syncActiveCursor() {
	if p, doc := e.pane(), e.activeDocument(); doc != nil {
		p.cursor.Sync(doc, e.mode)
	}
}

// unsavedDocuments returns the names of modified documents.
func (e *Editor) unsavedDocuments() []string {
	var names []string
	for _, doc := range e.docs {
		if doc.Modified() {
			name := doc.Path
			if name == "" {
				name = "[no file]"
			}
			names = append(names, name)
		}
	}
	return names
}

// move applies a cursor motion in the active pane.
func (e *Editor) move(action Action) {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	p.cursor.Apply(action, doc, e.mode)
}

// applyDelta publishes an edit of the active pane's document.
func (e *Editor) applyDelta(delta EditDelta) {
	e.applyDeltas(delta)
}

// applyDeltas publishes a batch of edits of the active pane's document, in
// the order they were made. The highlighter re-parses once per batch.
func (e *Editor) applyDeltas(deltas ...EditDelta) {
	p := e.pane()
	doc := e.docs[p.doc]
	if s := e.highlighters[p.doc]; s != nil {
		s.Edit([]byte(doc.String()), deltas...)
	}
	for _, other := range e.panes {
		if other != p && other.doc == p.doc {
			other.cursor.Sync(doc, ModeNormal)
		}
	}
	if e.devMode {
		for _, delta := range deltas {
			e.addLog("Editor", fmt.Sprintf("edit %d..%d -> %d at %d:%d",
				delta.StartOffset, delta.OldEndOffset, delta.NewEndOffset, delta.StartPoint.Row+1, delta.StartPoint.Col+1))
		}
	}
}

// edit runs fn against the active pane and publishes its delta if it made
// one.
func (e *Editor) edit(fn func(c *Cursor, doc *Document) (EditDelta, bool)) {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	if delta, ok := fn(&p.cursor, doc); ok {
		e.applyDelta(delta)
	}
}

func (e *Editor) insertRune(r rune) {
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.InsertRune(doc, r, e.mode), true
	})
}

func (e *Editor) insertText(text []rune) {
	for _, r := range text {
		e.insertRune(r)
	}
}

func (e *Editor) backspace() {
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.Backspace(doc, e.mode)
	})
}

// DeleteChar removes the character under the cursor.
func (e *Editor) DeleteChar() {
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.DeleteUnder(doc, e.mode)
	})
}

// deleteLine removes the cursor's line and keeps it in the register.
func (e *Editor) deleteLine() {
	e.yankLine()
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.DeleteLine(doc, e.mode)
	})
}

// yankLine copies the cursor's line, with a terminator, into the register.
func (e *Editor) yankLine() {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	rec, _ := doc.Line(p.cursor.Row)
	e.register = doc.LineFromRecord(rec) + "\n"
}

// putLines pastes the register below or above the cursor's line.
func (e *Editor) putLines(below bool) {
	if e.register == "" {
		e.message = "Nothing to paste"
		return
	}
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.PutLines(doc, e.register, below, e.mode)
	})
}

func (e *Editor) changeWord(g Granularity) {
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.ChangeWord(doc, g, e.mode)
	})
}

func (e *Editor) deleteMotion(action Action) {
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.DeleteMotion(doc, action, e.mode)
	})
}

func (e *Editor) deleteInside(open, close rune) {
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.DeleteInside(doc, open, close, e.mode)
	})
}

// deleteToLineEnd removes everything from the cursor to the end of its
// line.
func (e *Editor) deleteToLineEnd() {
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		c.Sync(doc, e.mode)
		rec, _ := doc.Line(c.Row)
		return c.DeleteRange(doc, Range{Start: c.Absolute, End: rec.Start + doc.LineLength(c.Row)}, e.mode)
	})
}

// toggleComment comments out the cursor's line with the language's comment
// prefix, or uncomments it when it already starts with one. The space after
// the prefix is added and removed along with it.
func (e *Editor) toggleComment() {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	prefix := e.fileType().Comment
	if prefix == "" {
		e.message = fmt.Sprintf("No comment syntax for %s", doc.Language)
		return
	}
	rec, _ := doc.Line(p.cursor.Row)
	line := doc.LineFromRecord(rec)
	if line == "" {
		return
	}

	r, text := Range{Start: rec.Start, End: rec.Start}, prefix+" "
	if strings.HasPrefix(line, prefix) {
		n := len([]rune(prefix))
		if strings.HasPrefix(line[len(prefix):], " ") {
			n++
		}
		r.End, text = rec.Start+n, ""
	}
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		delta := doc.Replace(r, text)
		c.Sync(doc, e.mode)
		return delta, true
	})
}

// search moves to the next occurrence of the last search, or the previous
// one when forward is false.
func (e *Editor) search(forward bool) {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	if e.lastSearch == "" {
		e.message = "No previous search"
		return
	}
	at, ok := FindText(doc, p.cursor.Position(), e.lastSearch, forward)
	if !ok {
		e.message = fmt.Sprintf("Pattern not found: %s", e.lastSearch)
		return
	}
	p.cursor.moveTo(doc, at, e.mode)
}

// fileType returns the language settings of the active document.
func (e *Editor) fileType() *FileType {
	doc := e.activeDocument()
	if doc == nil {
		return getFileType("")
	}
	return fileTypeByName(doc.Language)
}

func (e *Editor) tabWidth() int {
	if ft := e.fileType(); ft.TabWidth > 0 {
		return ft.TabWidth
	}
	return max(Config.DefaultTabWidth, 1)
}

// indentUnit is one level of indentation for the active language.
func (e *Editor) indentUnit() []rune {
	if e.fileType().UseTabs {
		return []rune{'\t'}
	}
	return []rune(strings.Repeat(" ", e.tabWidth()))
}

// insertTab inserts either a literal tab character or an equivalent number of spaces.
func (e *Editor) insertTab() {
	e.insertText(e.indentUnit())
}

func getIndentation(line []rune) []rune {
	var indent []rune
	for _, r := range line {
		if r == ' ' || r == '\t' {
			indent = append(indent, r)
		} else {
			break
		}
	}
	return indent
}

// insertNewline breaks the line at the cursor and handles auto-indentation.
func (e *Editor) insertNewline() {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	p.cursor.Sync(doc, e.mode)
	rec, _ := doc.Line(p.cursor.Row)
	before := []rune(doc.LineFromRecord(rec))[:p.cursor.Col]

	// Inherit indentation from the current line.
	indent := getIndentation(before)

	// Auto-indent after opening braces.
	if n := len(before); n > 0 && before[n-1] == '{' {
		indent = append(indent, e.indentUnit()...)
	}

	e.insertRune('\n')
	e.insertText(indent)
}

// openLine starts a new line below or above the cursor with the current
// line's indentation and enters insert mode.
func (e *Editor) openLine(below bool) {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	rec, _ := doc.Line(p.cursor.Row)
	indent := getIndentation([]rune(doc.LineFromRecord(rec)))

	e.mode = ModeInsert
	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		if below {
			return c.OpenLineBelow(doc, e.mode), true
		}
		return c.OpenLineAbove(doc, e.mode), true
	})
	e.insertText(indent)
}

// JoinLines joins the current line with the next one, separated by a single
// space.
func (e *Editor) JoinLines() {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil || p.cursor.Row >= doc.LineCount()-1 {
		return
	}
	row := p.cursor.Row
	rec, _ := doc.Line(row)
	next, _ := doc.Line(row + 1)
	current := doc.LineFromRecord(rec)

	// Trim leading whitespace from next line. A blank line goes entirely.
	r := Range{Start: rec.Start + doc.LineLength(row), End: next.Start + FirstNonSpace(doc, row+1)}
	if strings.TrimSpace(doc.LineFromRecord(next)) == "" {
		r.End = next.Start + doc.LineLength(row+1)
	}
	needsSpace := current != "" && !strings.HasSuffix(current, " ") && r.End < next.Start+doc.LineLength(row+1)

	e.edit(func(c *Cursor, doc *Document) (EditDelta, bool) {
		return c.DeleteRange(doc, r, e.mode)
	})
	if needsSpace {
		saved := e.mode
		e.mode = ModeInsert
		e.insertRune(' ')
		e.mode = saved
		p.cursor.moveToOffset(doc, r.Start, e.mode)
	}
}

// gotoLine moves to the 1-based line n.
func (e *Editor) gotoLine(n int) {
	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return
	}
	p.cursor.moveTo(doc, Point{Row: n - 1, Col: 0}, e.mode)
	p.cursor.moveTo(doc, Point{Row: p.cursor.Row, Col: FirstNonSpace(doc, p.cursor.Row)}, e.mode)
}

// enterInsert switches to insert mode.
func (e *Editor) enterInsert() {
	e.mode = ModeInsert
	e.message = ""
}

// exitInsert returns to normal mode. Like vi the caret steps back onto the
// last typed character.
func (e *Editor) exitInsert() {
	p, doc := e.pane(), e.activeDocument()
	e.mode = ModeNormal
	if doc == nil {
		return
	}
	if p.cursor.Col > 0 {
		p.cursor.Col--
	}
	p.cursor.Sync(doc, e.mode)
	p.cursor.VirtualCol = p.cursor.Col
}
