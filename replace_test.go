package main

import (
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplaceCommand(t *testing.T) {
	tests := []struct {
		input string
		want  substitution
	}{
		{"s/foo/bar/", substitution{pattern: "foo", replacement: "bar"}},
		{"s/foo/bar", substitution{pattern: "foo", replacement: "bar"}},
		{"s/foo//g", substitution{pattern: "foo", global: true}},
		{"%s/a/b/gi", substitution{pattern: "a", replacement: "b", global: true, ignoreCase: true, wholeFile: true}},
		{`s/a\/b/c\/d/`, substitution{pattern: "a/b", replacement: "c/d"}},
		{`s/\d+/N/`, substitution{pattern: `\d+`, replacement: "N"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseReplaceCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, input := range []string{"s/foo", "s//x/", "x/a/b/"} {
		_, err := parseReplaceCommand(input)
		assert.Error(t, err, input)
	}
}

func TestExecuteReplace(t *testing.T) {
	e := newTestEditor(t, "foo bar foo\nfoo")
	n, err := e.executeReplace("%s/foo/x/g")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "x bar x\nx", e.activeDocument().String())

	e = newTestEditor(t, "foo foo\nfoo")
	n, err = e.executeReplace("s/FOO/y/i")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the first match on the cursor line")
	assert.Equal(t, "y foo\nfoo", e.activeDocument().String())

	e = newTestEditor(t, "hello world")
	_, err = e.executeReplace(`s/(\w+) (\w+)/$2 $1/`)
	require.NoError(t, err)
	assert.Equal(t, "world hello", e.activeDocument().String())

	e = newTestEditor(t, "café é")
	n, err = e.executeReplace("%s/é/e/g")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "cafe e", e.activeDocument().String())

	_, err = e.executeReplace("s/(/x/")
	assert.Error(t, err)
}

func TestSubstituteCommand(t *testing.T) {
	e := newTestEditor(t, "a-b-c")

	typeKeys(e, ":s/-/+/g")
	pressKey(e, termbox.KeyEnter)
	assert.Equal(t, "a+b+c", e.activeDocument().String())
	assert.Equal(t, "2 replacements made", e.message)

	typeKeys(e, ":s/z/y/")
	pressKey(e, termbox.KeyEnter)
	assert.Equal(t, "Pattern not found", e.message)
}

func TestExecuteReplace_HighlighterSeesBatch(t *testing.T) {
	e := NewEditor(false)
	e.showDocument(e.addDocument(NewDocument("package main\nvar a = 1\nvar b = 2\n", "main.go")))

	n, err := e.executeReplace("%s/var/const/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	doc := e.activeDocument()
	require.Equal(t, "package main\nconst a = 1\nconst b = 2\n", doc.String())
	s := e.highlighters[e.pane().doc]
	require.NotNil(t, s)
	for _, row := range []int{1, 2} {
		attrs := s.Highlight(row, lineRunes(doc, row))
		assert.Equal(t, themeFg(ColorTSKeyword), attrs[0], "row %d", row)
		assert.Equal(t, themeFg(ColorTSNumber), attrs[10], "row %d", row)
	}
}
