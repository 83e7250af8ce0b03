package main

// Document owns the text of one file (or scratch buffer): the gap buffer
// holding the runes and the line index derived from it. All mutations go
// through edit, which keeps both in step and reports what changed as an
// EditDelta for the syntax highlighter.

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"
	"time"
)

// Point is a 0-based row/column position, columns counted in runes.
type Point struct {
	Row int
	Col int
}

// Range is a half-open span [Start, End) of rune offsets.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// EditDelta describes one mutation in the shape an incremental parser
// expects: where it started, where the replaced text ended before the edit,
// and where the new text ends after it. Rune and UTF-8 byte forms are kept
// side by side.
type EditDelta struct {
	StartOffset  int
	OldEndOffset int
	NewEndOffset int
	StartPoint   Point
	OldEndPoint  Point
	NewEndPoint  Point

	StartByte     int
	OldEndByte    int
	NewEndByte    int
	StartColByte  int // Byte column of StartPoint within its line.
	OldEndColByte int
	NewEndColByte int
}

// IOError reports a failure to read or write a document's file.
type IOError struct {
	Op   string // "open" or "save".
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

var errNoPath = errors.New("no file name")

// Document is a text buffer with its line index, optional file path and
// language.
type Document struct {
	store    TextStore
	lines    *LineIndex
	Path     string    // File on disk, empty for scratch buffers.
	Language string    // File type name used for indentation and highlighting.
	crlf     bool      // Every line of the file ended in "\r\n" when it was read.
	modified bool      // True if changes haven't been saved.
	modTime  time.Time // Modification time of the file when last read or written.
}

// NewDocument creates a document holding text. The path only determines the
// language; nothing is read from disk.
func NewDocument(text, path string) *Document {
	store := NewGapBuffer(text, Config.GapSize)
	return &Document{
		store:    store,
		lines:    NewLineIndex(store),
		Path:     path,
		Language: getFileType(path).Name,
	}
}

// Open reads the file at path into a new document.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	// Only files terminated by "\r\n" throughout are converted. Mixed
	// endings are kept as they are so saving doesn't rewrite them.
	pairs := bytes.Count(data, []byte("\r\n"))
	crlf := pairs > 0 && pairs == bytes.Count(data, []byte("\n"))
	if crlf {
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	}
	d := NewDocument(string(data), path)
	d.crlf = crlf
	if info, err := os.Stat(path); err == nil {
		d.modTime = info.ModTime()
	}
	return d, nil
}

// Save writes the logical content to path, or to the document's own path
// when path is empty. A document without a path adopts the one it was
// saved to.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.Path
	}
	if path == "" {
		return &IOError{Op: "save", Err: errNoPath}
	}
	content := d.String()
	if d.crlf {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	if d.Path == "" {
		d.Path = path
		d.Language = getFileType(path).Name
	}
	if path == d.Path {
		d.modified = false
		if info, err := os.Stat(path); err == nil {
			d.modTime = info.ModTime()
		}
	}
	return nil
}

// ChangedOnDisk reports whether the backing file was modified after the
// document last read or wrote it.
func (d *Document) ChangedOnDisk() bool {
	if d.Path == "" || d.modTime.IsZero() {
		return false
	}
	info, err := os.Stat(d.Path)
	return err == nil && info.ModTime().After(d.modTime)
}

func (d *Document) Modified() bool { return d.modified }

func (d *Document) Len() int { return d.store.Len() }

func (d *Document) String() string { return d.store.String() }

func (d *Document) RuneAt(i int) rune { return d.store.RuneAt(i) }

func (d *Document) LineCount() int { return d.lines.Count() }

// Line returns the record of the 0-based row.
func (d *Document) Line(row int) (LineRecord, bool) {
	return d.lines.ByLine(row + 1)
}

// LineByOffset returns the record of the line containing pos.
func (d *Document) LineByOffset(pos int) (LineRecord, bool) {
	return d.lines.ByOffset(pos)
}

// HasTerminator reports whether the record ends with '\n'. Only the final
// line lacks one.
func (d *Document) HasTerminator(rec LineRecord) bool {
	return rec.Index < d.lines.Count()
}

// textLen is the rune count of the line without its terminator.
func (d *Document) textLen(rec LineRecord) int {
	if d.HasTerminator(rec) {
		return rec.Length - 1
	}
	return rec.Length
}

// LineLength returns the rune count of row without its terminator, or 0 for
// rows that don't exist.
func (d *Document) LineLength(row int) int {
	rec, ok := d.Line(row)
	if !ok {
		return 0
	}
	return d.textLen(rec)
}

// LineFromRecord returns the text of a line without its terminator.
func (d *Document) LineFromRecord(rec LineRecord) string {
	return string(d.store.Slice(rec.Start, rec.Start+d.textLen(rec)))
}

// ContentFrom yields up to count lines starting at the 0-based startRow.
func (d *Document) ContentFrom(startRow, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for row := max(startRow, 0); row < startRow+count; row++ {
			rec, ok := d.Line(row)
			if !ok {
				return
			}
			if !yield(d.LineFromRecord(rec)) {
				return
			}
		}
	}
}

// PointAt converts an offset into a row/column position.
func (d *Document) PointAt(pos int) Point {
	pos = min(max(pos, 0), d.Len())
	rec, _ := d.LineByOffset(pos)
	return Point{Row: rec.Index - 1, Col: pos - rec.Start}
}

// OffsetOf converts a position into an offset. The row is clamped to the
// document and the column to the line's terminator.
func (d *Document) OffsetOf(p Point) int {
	row := min(max(p.Row, 0), d.LineCount()-1)
	rec, _ := d.Line(row)
	col := min(max(p.Col, 0), d.textLen(rec))
	return rec.Start + col
}

// InsertChar inserts ch at offset at, clamped to the document.
func (d *Document) InsertChar(ch rune, at int) EditDelta {
	at = min(max(at, 0), d.Len())
	return d.edit(at, at, []rune{ch})
}

// DeleteChar removes the rune before offset at. Deleting at the start of the
// document is a no-op and reports false.
func (d *Document) DeleteChar(at int) (EditDelta, bool) {
	at = min(at, d.Len())
	if at <= 0 {
		return EditDelta{}, false
	}
	return d.edit(at-1, at, nil), true
}

// DeleteRange removes the runes in r.
func (d *Document) DeleteRange(r Range) (EditDelta, bool) {
	start, end := max(r.Start, 0), min(r.End, d.Len())
	if end <= start {
		return EditDelta{}, false
	}
	return d.edit(start, end, nil), true
}

// Replace swaps the runes in r for text.
func (d *Document) Replace(r Range, text string) EditDelta {
	start := min(max(r.Start, 0), d.Len())
	end := min(max(r.End, start), d.Len())
	return d.edit(start, end, []rune(text))
}

// InsertLine inserts an empty line so that it becomes the 0-based row. A
// row past the last line appends one.
func (d *Document) InsertLine(row int) EditDelta {
	if rec, ok := d.Line(max(row, 0)); ok {
		return d.edit(rec.Start, rec.Start, []rune{'\n'})
	}
	return d.edit(d.Len(), d.Len(), []rune{'\n'})
}

// DeleteLine removes row together with one line terminator. Removing the
// only line clears it.
func (d *Document) DeleteLine(row int) (EditDelta, bool) {
	rec, ok := d.Line(row)
	if !ok {
		return EditDelta{}, false
	}
	r := Range{Start: rec.Start, End: rec.End()}
	if !d.HasTerminator(rec) && row > 0 {
		r.Start--
	}
	return d.DeleteRange(r)
}

// locate returns the point and byte column of pos.
func (d *Document) locate(pos int) (Point, int) {
	rec, _ := d.LineByOffset(pos)
	return Point{Row: rec.Index - 1, Col: pos - rec.Start}, d.store.ByteLen(rec.Start, pos)
}

// edit replaces the runes in [start, end) with ins.
func (d *Document) edit(start, end int, ins []rune) EditDelta {
	var delta EditDelta
	delta.StartOffset, delta.OldEndOffset = start, end
	delta.StartPoint, delta.StartColByte = d.locate(start)
	delta.OldEndPoint, delta.OldEndColByte = d.locate(end)
	delta.StartByte = d.store.ByteLen(0, start)
	delta.OldEndByte = delta.StartByte + d.store.ByteLen(start, end)

	for i := end; i > start; i-- {
		if ch, ok := d.store.Delete(i); ok {
			d.lines.deleteRune(i-1, ch)
		}
	}
	for i, ch := range ins {
		d.store.Insert(ch, start+i)
		d.lines.insertRune(start+i, ch)
	}

	delta.NewEndOffset = start + len(ins)
	delta.NewEndPoint, delta.NewEndColByte = d.locate(delta.NewEndOffset)
	delta.NewEndByte = delta.StartByte + len(string(ins))
	d.modified = true

	if debugAssertions {
		if err := d.lines.Validate(d.store.Len()); err != nil {
			panic(fmt.Sprintf("line index out of sync: %v", err))
		}
	}
	return delta
}
