package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_InsertCharDelta(t *testing.T) {
	doc := NewDocument("héllo\nwörld", "")

	delta := doc.InsertChar('X', 8)
	assert.Equal(t, "héllo\nwöXrld", doc.String())
	assert.True(t, doc.Modified())

	assert.Equal(t, 8, delta.StartOffset)
	assert.Equal(t, 8, delta.OldEndOffset)
	assert.Equal(t, 9, delta.NewEndOffset)
	assert.Equal(t, Point{Row: 1, Col: 2}, delta.StartPoint)
	assert.Equal(t, Point{Row: 1, Col: 3}, delta.NewEndPoint)

	// "héllo\n" is 7 bytes, "wö" another 3.
	assert.Equal(t, 10, delta.StartByte)
	assert.Equal(t, 10, delta.OldEndByte)
	assert.Equal(t, 11, delta.NewEndByte)
	assert.Equal(t, 3, delta.StartColByte)
	assert.Equal(t, 4, delta.NewEndColByte)
}

func TestDocument_InsertNewlineDelta(t *testing.T) {
	doc := NewDocument("abcd", "")
	delta := doc.InsertChar('\n', 2)

	assert.Equal(t, "ab\ncd", doc.String())
	assert.Equal(t, 2, doc.LineCount())
	assert.Equal(t, Point{Row: 0, Col: 2}, delta.StartPoint)
	assert.Equal(t, Point{Row: 1, Col: 0}, delta.NewEndPoint)
	assert.Equal(t, 0, delta.NewEndColByte)
}

func TestDocument_DeleteCharDelta(t *testing.T) {
	doc := NewDocument("ab\ncd", "")

	delta, ok := doc.DeleteChar(3)
	require.True(t, ok)
	assert.Equal(t, "abcd", doc.String())
	assert.Equal(t, 2, delta.StartOffset)
	assert.Equal(t, 3, delta.OldEndOffset)
	assert.Equal(t, 2, delta.NewEndOffset)
	assert.Equal(t, Point{Row: 0, Col: 2}, delta.StartPoint)
	assert.Equal(t, Point{Row: 1, Col: 0}, delta.OldEndPoint)
	assert.Equal(t, Point{Row: 0, Col: 2}, delta.NewEndPoint)

	_, ok = doc.DeleteChar(0)
	assert.False(t, ok)
	assert.Equal(t, "abcd", doc.String())
}

func TestDocument_Lines(t *testing.T) {
	doc := NewDocument("alpha\nbeta\n\ngamma", "")

	assert.Equal(t, 4, doc.LineCount())
	assert.Equal(t, 4, doc.LineLength(1))
	assert.Equal(t, 0, doc.LineLength(2))
	assert.Equal(t, 5, doc.LineLength(3))
	assert.Equal(t, 0, doc.LineLength(9))

	rec, ok := doc.Line(1)
	require.True(t, ok)
	assert.Equal(t, "beta", doc.LineFromRecord(rec))
	assert.True(t, doc.HasTerminator(rec))

	last, _ := doc.Line(3)
	assert.False(t, doc.HasTerminator(last))
	assert.Equal(t, "gamma", doc.LineFromRecord(last))

	got := slices.Collect(doc.ContentFrom(1, 2))
	assert.Equal(t, []string{"beta", ""}, got)

	got = slices.Collect(doc.ContentFrom(2, 10))
	assert.Equal(t, []string{"", "gamma"}, got, "count past the end stops at the last line")
}

func TestDocument_PointOffset(t *testing.T) {
	doc := NewDocument("ab\ncde\n", "")

	assert.Equal(t, Point{Row: 1, Col: 1}, doc.PointAt(4))
	assert.Equal(t, Point{Row: 2, Col: 0}, doc.PointAt(7))
	assert.Equal(t, Point{Row: 2, Col: 0}, doc.PointAt(100))

	assert.Equal(t, 4, doc.OffsetOf(Point{Row: 1, Col: 1}))
	assert.Equal(t, 6, doc.OffsetOf(Point{Row: 1, Col: 50}), "column clamps to the terminator")
	assert.Equal(t, 7, doc.OffsetOf(Point{Row: 9, Col: 0}))
}

func TestDocument_InsertDeleteLine(t *testing.T) {
	doc := NewDocument("one\ntwo\nthree", "")

	doc.InsertLine(1)
	assert.Equal(t, "one\n\ntwo\nthree", doc.String())

	doc.InsertLine(10)
	assert.Equal(t, "one\n\ntwo\nthree\n", doc.String())

	_, ok := doc.DeleteLine(1)
	require.True(t, ok)
	assert.Equal(t, "one\ntwo\nthree\n", doc.String())

	// The final line takes the preceding terminator with it.
	_, ok = doc.DeleteLine(3)
	require.True(t, ok)
	assert.Equal(t, "one\ntwo\nthree", doc.String())
	_, ok = doc.DeleteLine(2)
	require.True(t, ok)
	assert.Equal(t, "one\ntwo", doc.String())

	_, ok = doc.DeleteLine(7)
	assert.False(t, ok)

	single := NewDocument("only", "")
	_, ok = single.DeleteLine(0)
	require.True(t, ok)
	assert.Equal(t, "", single.String())
	assert.Equal(t, 1, single.LineCount())
}

func TestDocument_Replace(t *testing.T) {
	doc := NewDocument("foo bar", "")
	delta := doc.Replace(Range{Start: 4, End: 7}, "baz\nqux")

	assert.Equal(t, "foo baz\nqux", doc.String())
	assert.Equal(t, 2, doc.LineCount())
	assert.Equal(t, 7, delta.OldEndOffset)
	assert.Equal(t, 11, delta.NewEndOffset)
	assert.Equal(t, Point{Row: 1, Col: 3}, delta.NewEndPoint)
}

func TestDocument_ReplaceByteDelta(t *testing.T) {
	doc := NewDocument("ab\nçé€x", "")
	delta := doc.Replace(Range{Start: 4, End: 6}, "日本語")

	assert.Equal(t, "ab\nç日本語x", doc.String())
	// "ab\nç" is 5 bytes; "é€" is 5 more and "日本語" is 9.
	assert.Equal(t, 5, delta.StartByte)
	assert.Equal(t, 10, delta.OldEndByte)
	assert.Equal(t, 14, delta.NewEndByte)
	assert.Equal(t, 2, delta.StartColByte)
	assert.Equal(t, 7, delta.OldEndColByte)
	assert.Equal(t, 11, delta.NewEndColByte)
}

func TestDocument_OpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	doc, err := Open(path)
	assert.Nil(t, doc)
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "open", ioErr.Op)
	assert.Equal(t, path, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDocument_SaveWithoutPath(t *testing.T) {
	doc := NewDocument("text", "")
	err := doc.Save("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoPath))
}

func TestDocument_OpenSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Go", doc.Language)
	assert.Equal(t, 4, doc.LineCount())
	assert.False(t, doc.Modified())
	assert.False(t, doc.ChangedOnDisk())

	doc.InsertChar('/', 0)
	doc.InsertChar('/', 0)
	require.NoError(t, doc.Save(""))
	assert.False(t, doc.Modified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "//package main\n\nfunc main() {}\n", string(data))
}

func TestDocument_CRLFRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dos.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\r\n"), 0644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", doc.String())
	assert.Equal(t, 3, doc.LineCount())

	doc.InsertChar('!', 3)
	require.NoError(t, doc.Save(""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one!\r\ntwo\r\n", string(data))
}

func TestDocument_MixedLineEndingsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb\nc\n"), 0644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\nc\n", doc.String())

	doc.InsertChar('!', doc.OffsetOf(Point{Row: 2}))
	require.NoError(t, doc.Save(""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\n!c\n", string(data), "bare newlines are not rewritten")
}

func TestDocument_SaveAdoptsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.py")
	doc := NewDocument("print(1)\n", "")
	assert.Equal(t, "Text", doc.Language)

	require.NoError(t, doc.Save(path))
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "Python", doc.Language)
}
