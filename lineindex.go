package main

// Per-line index over a TextStore. Every line has a record with its starting
// offset and length, so looking a line up by number is O(1). The price is a
// renumbering pass over the following records whenever one is added,
// removed or resized.

import (
	"fmt"
	"sort"
)

// LineRecord describes one line of a document.
type LineRecord struct {
	Start  int // Offset of the first rune of the line.
	Index  int // 1-based line number.
	Length int // Rune count, including the trailing '\n' if present.
}

// End returns the offset just past the line, terminator included.
func (r LineRecord) End() int {
	return r.Start + r.Length
}

// LineIndex maps line numbers to offsets and back.
type LineIndex struct {
	records []LineRecord
}

// NewLineIndex builds an index for the given store.
func NewLineIndex(store TextStore) *LineIndex {
	li := &LineIndex{}
	li.Rebuild(store)
	return li
}

// Rebuild scans the whole content and produces one record per line. A line
// is terminated by '\n'; whatever follows the last terminator (possibly
// nothing) is the final line.
func (li *LineIndex) Rebuild(store TextStore) {
	li.records = li.records[:0]
	start := 0
	for i, r := range store.All() {
		if r == '\n' {
			li.records = append(li.records, LineRecord{Start: start, Index: len(li.records) + 1, Length: i + 1 - start})
			start = i + 1
		}
	}
	li.records = append(li.records, LineRecord{Start: start, Index: len(li.records) + 1, Length: store.Len() - start})
}

// Count returns the number of lines.
func (li *LineIndex) Count() int {
	return len(li.records)
}

// ByLine returns the record of the 1-based line n.
func (li *LineIndex) ByLine(n int) (LineRecord, bool) {
	if n < 1 || n > len(li.records) {
		return LineRecord{}, false
	}
	return li.records[n-1], true
}

// ByOffset returns the record of the line containing pos. The offset just
// past the end of the content belongs to the last line.
func (li *LineIndex) ByOffset(pos int) (LineRecord, bool) {
	if len(li.records) == 0 || pos < 0 {
		return LineRecord{}, false
	}
	last := li.records[len(li.records)-1]
	if pos >= last.Start {
		if pos > last.End() {
			return LineRecord{}, false
		}
		return last, true
	}
	i := sort.Search(len(li.records), func(i int) bool {
		return li.records[i].End() > pos
	})
	return li.records[i], true
}

// InsertRecord places rec at the 0-based slot at and renumbers the records
// that follow it.
func (li *LineIndex) InsertRecord(at int, rec LineRecord) {
	if at < 0 {
		at = 0
	}
	if at > len(li.records) {
		at = len(li.records)
	}
	li.records = append(li.records, LineRecord{})
	copy(li.records[at+1:], li.records[at:])
	li.records[at] = rec
	li.renumber(at)
}

// RemoveRecord drops the record in the 0-based slot at and renumbers the
// records that follow it. The last remaining record is never removed.
func (li *LineIndex) RemoveRecord(at int) {
	if at < 0 || at >= len(li.records) || len(li.records) == 1 {
		return
	}
	li.records = append(li.records[:at], li.records[at+1:]...)
	li.renumber(at)
}

// renumber recomputes Start and Index of every record from slot from on,
// using the record before it as the anchor.
func (li *LineIndex) renumber(from int) {
	for i := max(from, 0); i < len(li.records); i++ {
		if i == 0 {
			li.records[i].Start = 0
		} else {
			li.records[i].Start = li.records[i-1].End()
		}
		li.records[i].Index = i + 1
	}
}

// slotOf returns the 0-based slot of the record containing pos.
func (li *LineIndex) slotOf(pos int) int {
	rec, ok := li.ByOffset(pos)
	if !ok {
		return len(li.records) - 1
	}
	return rec.Index - 1
}

// insertRune updates the index after ch was inserted at offset at.
func (li *LineIndex) insertRune(at int, ch rune) {
	slot := li.slotOf(at)
	rec := &li.records[slot]
	if ch != '\n' {
		rec.Length++
		li.renumber(slot + 1)
		return
	}
	head := at - rec.Start + 1
	tail := rec.Length - (at - rec.Start)
	rec.Length = head
	li.InsertRecord(slot+1, LineRecord{Length: tail})
}

// deleteRune updates the index after ch, which lived at offset at, was
// removed.
func (li *LineIndex) deleteRune(at int, ch rune) {
	slot := li.slotOf(at)
	rec := &li.records[slot]
	if ch != '\n' || slot+1 >= len(li.records) {
		rec.Length--
		li.renumber(slot + 1)
		return
	}
	rec.Length += li.records[slot+1].Length - 1
	li.RemoveRecord(slot + 1)
}

// Validate checks the structural invariants of the index against a
// document of total runes.
func (li *LineIndex) Validate(total int) error {
	if len(li.records) == 0 {
		return fmt.Errorf("line index is empty")
	}
	sum := 0
	for i, rec := range li.records {
		if rec.Index != i+1 {
			return fmt.Errorf("record %d has index %d", i, rec.Index)
		}
		if rec.Length < 0 {
			return fmt.Errorf("line %d has negative length %d", rec.Index, rec.Length)
		}
		if i > 0 && rec.Start != li.records[i-1].End() {
			return fmt.Errorf("line %d starts at %d, want %d", rec.Index, rec.Start, li.records[i-1].End())
		}
		sum += rec.Length
	}
	if li.records[0].Start != 0 {
		return fmt.Errorf("first line starts at %d", li.records[0].Start)
	}
	if sum != total {
		return fmt.Errorf("line lengths sum to %d, content has %d runes", sum, total)
	}
	return nil
}
