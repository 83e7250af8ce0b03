package main

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndex_Rebuild(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []LineRecord
	}{
		{
			name: "empty document has one empty line",
			text: "",
			want: []LineRecord{{Start: 0, Index: 1, Length: 0}},
		},
		{
			name: "single line without terminator",
			text: "abc",
			want: []LineRecord{{Start: 0, Index: 1, Length: 3}},
		},
		{
			name: "trailing terminator opens an empty last line",
			text: "abc\n",
			want: []LineRecord{{Start: 0, Index: 1, Length: 4}, {Start: 4, Index: 2, Length: 0}},
		},
		{
			name: "blank lines",
			text: "a\n\nb",
			want: []LineRecord{
				{Start: 0, Index: 1, Length: 2},
				{Start: 2, Index: 2, Length: 1},
				{Start: 3, Index: 3, Length: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewGapBuffer(tt.text, 4)
			li := NewLineIndex(store)
			assert.Equal(t, tt.want, li.records)
			assert.Equal(t, strings.Count(tt.text, "\n")+1, li.Count())
			assert.NoError(t, li.Validate(store.Len()))
		})
	}
}

func TestLineIndex_Lookups(t *testing.T) {
	store := NewGapBuffer("one\ntwo\n\nfour", 8)
	li := NewLineIndex(store)

	rec, ok := li.ByLine(2)
	require.True(t, ok)
	assert.Equal(t, LineRecord{Start: 4, Index: 2, Length: 4}, rec)

	_, ok = li.ByLine(0)
	assert.False(t, ok)
	_, ok = li.ByLine(5)
	assert.False(t, ok)

	offsets := map[int]int{0: 1, 3: 1, 4: 2, 7: 2, 8: 3, 9: 4, 13: 4}
	for pos, line := range offsets {
		rec, ok := li.ByOffset(pos)
		require.True(t, ok, "offset %d", pos)
		assert.Equal(t, line, rec.Index, "offset %d", pos)
	}

	_, ok = li.ByOffset(14)
	assert.False(t, ok)
	_, ok = li.ByOffset(-1)
	assert.False(t, ok)
}

func TestLineIndex_InsertRemoveRecord(t *testing.T) {
	store := NewGapBuffer("ab\ncd", 4)
	li := NewLineIndex(store)

	li.InsertRecord(1, LineRecord{Length: 3})
	require.Equal(t, 3, li.Count())
	rec, _ := li.ByLine(2)
	assert.Equal(t, LineRecord{Start: 3, Index: 2, Length: 3}, rec)
	rec, _ = li.ByLine(3)
	assert.Equal(t, LineRecord{Start: 6, Index: 3, Length: 2}, rec)

	li.RemoveRecord(1)
	assert.Equal(t, 2, li.Count())
	assert.NoError(t, li.Validate(store.Len()))

	li.RemoveRecord(0)
	li.RemoveRecord(0)
	assert.Equal(t, 1, li.Count(), "the last record is never removed")
}

func TestLineIndex_IncrementalUpdates(t *testing.T) {
	doc := NewDocument("first\nsecond\nthird", "")

	doc.InsertChar('\n', 2)
	doc.InsertChar('x', 0)
	doc.DeleteChar(doc.Len())
	doc.InsertLine(1)
	doc.DeleteLine(3)

	require.NoError(t, doc.lines.Validate(doc.Len()))

	fresh := NewLineIndex(doc.store)
	assert.Equal(t, fresh.records, doc.lines.records)
}

// Deleting the rune before offset 6 removes the terminator at index 5 and
// joins both lines.
func TestLineIndex_JoinWithSmallGap(t *testing.T) {
	Config.GapSize = 5
	defer func() { Config = DefaultConfiguration() }()

	doc := NewDocument("Hello\nWorld!", "")
	require.Equal(t, 2, doc.LineCount())

	_, ok := doc.DeleteChar(6)
	require.True(t, ok)

	assert.Equal(t, "HelloWorld!", doc.String())
	assert.Equal(t, 1, doc.LineCount())
	rec, ok := doc.Line(0)
	require.True(t, ok)
	assert.Equal(t, LineRecord{Start: 0, Index: 1, Length: 11}, rec)
}

func TestLineIndex_ValidateDetectsCorruption(t *testing.T) {
	store := NewGapBuffer("ab\ncd", 4)
	li := NewLineIndex(store)

	li.records[1].Start = 7
	assert.Error(t, li.Validate(store.Len()))

	li.Rebuild(store)
	li.records[0].Length = 9
	assert.Error(t, li.Validate(store.Len()))

	li.Rebuild(store)
	li.records[1].Index = 5
	assert.Error(t, li.Validate(store.Len()))
}

// TestLineIndex_TracksMixedEdits checks the incrementally maintained index
// against one rebuilt from scratch after every edit.
func TestLineIndex_TracksMixedEdits(t *testing.T) {
	defer func() { Config = DefaultConfiguration() }()
	alphabet := []rune("ab \n\n€")

	randomText := func(rng *rand.Rand) string {
		text := make([]rune, rng.Intn(5))
		for i := range text {
			text[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(text)
	}

	for _, gap := range []int{1, 5, 64} {
		t.Run(fmt.Sprintf("gap %d", gap), func(t *testing.T) {
			Config.GapSize = gap
			rng := rand.New(rand.NewSource(int64(gap)))
			doc := NewDocument("one\ntwo\n\nthree", "")
			model := []rune(doc.String())

			for step := 0; step < 400; step++ {
				a := rng.Intn(len(model) + 1)
				b := a + rng.Intn(len(model)-a+1)
				switch rng.Intn(4) {
				case 0:
					r := alphabet[rng.Intn(len(alphabet))]
					doc.InsertChar(r, a)
					model = append(model[:a], append([]rune{r}, model[a:]...)...)
				case 1:
					if _, ok := doc.DeleteChar(a); ok {
						model = append(model[:a-1], model[a:]...)
					}
				case 2:
					text := randomText(rng)
					doc.Replace(Range{Start: a, End: b}, text)
					model = append(model[:a], append([]rune(text), model[b:]...)...)
				case 3:
					if _, ok := doc.DeleteRange(Range{Start: a, End: b}); ok {
						model = append(model[:a], model[b:]...)
					}
				}

				require.Equal(t, string(model), doc.String(), "step %d", step)
				require.Equal(t, NewLineIndex(doc.store).records, doc.lines.records, "step %d", step)
			}
		})
	}
}
