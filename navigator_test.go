package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextWordBoundary(t *testing.T) {
	doc := NewDocument("local function create_inspector(opts)\n", "")

	tests := []struct {
		name string
		from Point
		g    Granularity
		want Point
	}{
		{"from line start", Point{0, 0}, GranularityWord, Point{0, 6}},
		{"from mid identifier", Point{0, 20}, GranularityWord, Point{0, 31}},
		{"punctuation is its own word", Point{0, 31}, GranularityWord, Point{0, 32}},
		{"big word skips punctuation", Point{0, 15}, GranularityBigWord, Point{1, 0}},
		{"past the last word", Point{0, 36}, GranularityWord, Point{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextWordBoundary(doc, tt.from, tt.g))
		})
	}
}

func TestNextWordBoundary_CrossesLines(t *testing.T) {
	doc := NewDocument("end\n  next", "")
	assert.Equal(t, Point{1, 2}, NextWordBoundary(doc, Point{0, 0}, GranularityWord))
}

func TestPrevWordBoundary(t *testing.T) {
	doc := NewDocument("foo.bar baz\nqux", "")

	assert.Equal(t, Point{0, 8}, PrevWordBoundary(doc, Point{0, 10}, GranularityWord))
	assert.Equal(t, Point{0, 4}, PrevWordBoundary(doc, Point{0, 8}, GranularityWord))
	assert.Equal(t, Point{0, 3}, PrevWordBoundary(doc, Point{0, 4}, GranularityWord))
	assert.Equal(t, Point{0, 0}, PrevWordBoundary(doc, Point{0, 8}, GranularityBigWord))
	assert.Equal(t, Point{0, 8}, PrevWordBoundary(doc, Point{1, 0}, GranularityWord))
	assert.Equal(t, Point{0, 0}, PrevWordBoundary(doc, Point{0, 0}, GranularityWord))
}

func TestMatchingDelimiter(t *testing.T) {
	doc := NewDocument("if (a[1] + {b}) {\n  call(x)\n}", "")

	tests := []struct {
		from Point
		want Point
	}{
		{Point{0, 3}, Point{0, 14}},
		{Point{0, 14}, Point{0, 3}},
		{Point{0, 5}, Point{0, 7}},
		{Point{0, 11}, Point{0, 13}},
		{Point{0, 16}, Point{2, 0}},
		{Point{2, 0}, Point{0, 16}},
		// Not on a bracket: the first one later on the line is used.
		{Point{0, 0}, Point{0, 14}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchingDelimiter(doc, tt.from), "from %v", tt.from)
	}

	// Matching twice returns to the start.
	for _, p := range []Point{{0, 3}, {0, 5}, {0, 11}, {0, 16}, {1, 6}} {
		assert.Equal(t, p, MatchingDelimiter(doc, MatchingDelimiter(doc, p)), "from %v", p)
	}
}

func TestMatchingDelimiter_NoMatch(t *testing.T) {
	doc := NewDocument("plain text\n(unbalanced", "")
	assert.Equal(t, Point{0, 2}, MatchingDelimiter(doc, Point{0, 2}))
	assert.Equal(t, Point{1, 0}, MatchingDelimiter(doc, Point{1, 0}))
}

func TestInnerDelimiterRange(t *testing.T) {
	doc := NewDocument(`call(a, (b), "str") [x]`, "")

	r, ok := InnerDelimiterRange(doc, Point{0, 6}, '(', ')')
	require.True(t, ok)
	assert.Equal(t, `a, (b), "str"`, string(doc.store.Slice(r.Start, r.End)))

	r, ok = InnerDelimiterRange(doc, Point{0, 9}, '(', ')')
	require.True(t, ok)
	assert.Equal(t, "b", string(doc.store.Slice(r.Start, r.End)))

	r, ok = InnerDelimiterRange(doc, Point{0, 15}, '"', '"')
	require.True(t, ok)
	assert.Equal(t, "str", string(doc.store.Slice(r.Start, r.End)))

	r, ok = InnerDelimiterRange(doc, Point{0, 20}, '[', ']')
	require.True(t, ok)
	assert.Equal(t, "x", string(doc.store.Slice(r.Start, r.End)))

	_, ok = InnerDelimiterRange(doc, Point{0, 1}, '{', '}')
	assert.False(t, ok)
}

func TestNonSpaceColumns(t *testing.T) {
	doc := NewDocument("   indented text  \n\n\t", "")

	assert.Equal(t, 3, FirstNonSpace(doc, 0))
	assert.Equal(t, 15, LastNonSpace(doc, 0))
	assert.Equal(t, 0, FirstNonSpace(doc, 1))
	assert.Equal(t, 0, LastNonSpace(doc, 1))
	assert.Equal(t, 0, FirstNonSpace(doc, 2))
	assert.Equal(t, 0, FirstNonSpace(doc, 7))
}

func TestParagraphs(t *testing.T) {
	doc := NewDocument("a\nb\n\nc\n\n\nd", "")

	assert.Equal(t, 2, NextParagraph(doc, 0))
	assert.Equal(t, 4, NextParagraph(doc, 2))
	assert.Equal(t, 5, NextParagraph(doc, 4))
	assert.Equal(t, 6, NextParagraph(doc, 5), "no blank line left: last row")

	assert.Equal(t, 5, PrevParagraph(doc, 6))
	assert.Equal(t, 2, PrevParagraph(doc, 4))
	assert.Equal(t, 0, PrevParagraph(doc, 2), "no blank line left: first row")
}

func TestWordEnd(t *testing.T) {
	doc := NewDocument("foo.bar  baz\nx", "")

	assert.Equal(t, Point{0, 3}, WordEnd(doc, Point{0, 0}, GranularityWord))
	assert.Equal(t, Point{0, 4}, WordEnd(doc, Point{0, 3}, GranularityWord))
	assert.Equal(t, Point{0, 7}, WordEnd(doc, Point{0, 1}, GranularityBigWord))
	assert.Equal(t, Point{0, 7}, WordEnd(doc, Point{0, 7}, GranularityWord), "whitespace")
	assert.Equal(t, Point{0, 12}, WordEnd(doc, Point{0, 9}, GranularityWord), "stops at the line end")
}

func TestFindText(t *testing.T) {
	doc := NewDocument("Go go\nGOPHER", "")

	tests := []struct {
		name    string
		from    Point
		forward bool
		want    Point
	}{
		{"next", Point{0, 0}, true, Point{0, 3}},
		{"next line", Point{0, 3}, true, Point{1, 0}},
		{"wraps forward", Point{1, 0}, true, Point{0, 0}},
		{"previous", Point{1, 0}, false, Point{0, 3}},
		{"wraps backward", Point{0, 0}, false, Point{1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindText(doc, tt.from, "go", tt.forward)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	got, ok := FindText(doc, Point{0, 0}, "pher", true)
	require.True(t, ok)
	assert.Equal(t, Point{1, 2}, got)

	single := NewDocument("abc", "")
	got, ok = FindText(single, Point{0, 0}, "ABC", true)
	require.True(t, ok, "the only occurrence is found from itself")
	assert.Equal(t, Point{0, 0}, got)

	_, ok = FindText(doc, Point{0, 0}, "rust", true)
	assert.False(t, ok)
	_, ok = FindText(doc, Point{0, 0}, "", true)
	assert.False(t, ok)
	_, ok = FindText(single, Point{0, 0}, "abcd", true)
	assert.False(t, ok)
}
