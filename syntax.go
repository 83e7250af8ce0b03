package main

// Syntax highlighting using tree-sitter. The document's edit deltas are fed
// to the previous tree so the parser can reuse everything outside the edited
// range, then the highlight query is re-run to find semantic tokens and map
// them to theme colors.

import (
	"context"
	"embed"
	"fmt"

	sitter "github.com/mitjafelicijan/go-tree-sitter"
	"github.com/mitjafelicijan/go-tree-sitter/bash"
	"github.com/mitjafelicijan/go-tree-sitter/c"
	"github.com/mitjafelicijan/go-tree-sitter/golang"
	"github.com/mitjafelicijan/go-tree-sitter/javascript"
	"github.com/mitjafelicijan/go-tree-sitter/lua"
	"github.com/mitjafelicijan/go-tree-sitter/python"
	"github.com/nsf/termbox-go"
)

// QueriesFS holds the highlight queries, one per grammar.
//
//go:embed queries/*.scm
var QueriesFS embed.FS

// highlightSpan colors the byte columns [start, end) of a line.
type highlightSpan struct {
	start int
	end   int // -1 means up to the end of the line.
	attr  termbox.Attribute
}

// SyntaxHighlighter manages the tree-sitter parser, tree, and calculated highlights for a document.
type SyntaxHighlighter struct {
	Parser     *sitter.Parser
	Tree       *sitter.Tree
	Lang       *sitter.Language
	Query      *sitter.Query
	Language   string
	Highlights map[int][]highlightSpan // Cached spans: Line -> byte ranges.
	Log        func(string, string)    // Debug logging function.
}

// grammarLanguage maps a grammar name to its tree-sitter language.
func grammarLanguage(grammar string) *sitter.Language {
	switch grammar {
	case "go":
		return golang.GetLanguage()
	case "c":
		return c.GetLanguage()
	case "javascript":
		return javascript.GetLanguage()
	case "python":
		return python.GetLanguage()
	case "bash":
		return bash.GetLanguage()
	case "lua":
		return lua.GetLanguage()
	}
	return nil
}

// grammarAvailable reports whether grammar has a parser and a query.
func grammarAvailable(grammar string) bool {
	if grammarLanguage(grammar) == nil {
		return false
	}
	_, err := QueriesFS.ReadFile(fmt.Sprintf("queries/%s.scm", grammar))
	return err == nil
}

// NewSyntaxHighlighter initializes a parser for the given file type. It
// returns nil for file types without a grammar.
func NewSyntaxHighlighter(ft *FileType, log func(string, string)) *SyntaxHighlighter {
	if ft == nil || ft.Grammar == "" {
		return nil
	}
	lang := grammarLanguage(ft.Grammar)
	if lang == nil {
		return nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	s := &SyntaxHighlighter{
		Parser:     parser,
		Lang:       lang,
		Language:   ft.Grammar,
		Highlights: make(map[int][]highlightSpan),
		Log:        log,
	}

	s.LoadQuery(fmt.Sprintf("queries/%s.scm", ft.Grammar))
	return s
}

func (s *SyntaxHighlighter) logf(format string, args ...any) {
	if s.Log != nil {
		s.Log("TS", fmt.Sprintf(format, args...))
	}
}

// LoadQuery reads and compiles a tree-sitter query from the embedded filesystem.
func (s *SyntaxHighlighter) LoadQuery(path string) {
	s.logf("Loading query for %s", path)

	content, err := QueriesFS.ReadFile(path)
	if err != nil {
		s.logf("LoadQuery failed to read %s: %v", path, err)
		return
	}

	q, err := sitter.NewQuery(content, s.Lang)
	if err != nil {
		s.logf("LoadQuery failed to compile query for %s: %v", path, err)
		return
	}
	s.Query = q
}

// Parse runs a full parse of the content and updates the highlight cache.
func (s *SyntaxHighlighter) Parse(content []byte) {
	s.parse(nil, content)
}

// Edit tells the current tree about deltas, in the order they were made, and
// re-parses content once, reusing the unchanged parts of the old tree.
func (s *SyntaxHighlighter) Edit(content []byte, deltas ...EditDelta) {
	if s.Tree == nil {
		s.Parse(content)
		return
	}
	for _, delta := range deltas {
		s.Tree.Edit(editInput(delta))
	}
	s.parse(s.Tree, content)
}

func (s *SyntaxHighlighter) parse(old *sitter.Tree, content []byte) {
	if s.Parser == nil {
		return
	}
	tree, err := s.Parser.ParseCtx(context.Background(), old, content)
	if err != nil {
		s.logf("Parse failed: %v", err)
		return
	}
	s.Tree = tree
	s.updateHighlights()
}

// editInput converts a document edit delta into tree-sitter's byte-based form.
func editInput(d EditDelta) sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  uint32(d.StartByte),
		OldEndIndex: uint32(d.OldEndByte),
		NewEndIndex: uint32(d.NewEndByte),
		StartPoint:  sitter.Point{Row: uint32(d.StartPoint.Row), Column: uint32(d.StartColByte)},
		OldEndPoint: sitter.Point{Row: uint32(d.OldEndPoint.Row), Column: uint32(d.OldEndColByte)},
		NewEndPoint: sitter.Point{Row: uint32(d.NewEndPoint.Row), Column: uint32(d.NewEndColByte)},
	}
}

// updateHighlights executes the query on the syntax tree and rebuilds the
// per-line spans.
func (s *SyntaxHighlighter) updateHighlights() {
	// Always clear previous highlights to prevent ghosting.
	s.Highlights = make(map[int][]highlightSpan)

	if s.Tree == nil || s.Query == nil {
		return
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(s.Query, s.Tree.RootNode())

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}

		for _, c := range m.Captures {
			attr := getTermboxAttr(s.Query.CaptureNameForId(c.Index))

			startRow := int(c.Node.StartPoint().Row)
			startCol := int(c.Node.StartPoint().Column)
			endRow := int(c.Node.EndPoint().Row)
			endCol := int(c.Node.EndPoint().Column)

			for r := startRow; r <= endRow; r++ {
				span := highlightSpan{start: 0, end: -1, attr: attr}
				if r == startRow {
					span.start = startCol
				}
				if r == endRow {
					span.end = endCol
				}
				s.Highlights[r] = append(s.Highlights[r], span)
			}
		}
	}
}

// getTermboxAttr maps a tree-sitter capture name to a color name from our theme.
func getTermboxAttr(captureName string) termbox.Attribute {
	var cn ColorName
	switch captureName {
	case "function":
		cn = ColorTSFunction
	case "constant":
		cn = ColorTSConstant
	case "variable":
		cn = ColorTSVariable
	case "type":
		cn = ColorTSType
	case "string":
		cn = ColorTSString
	case "keyword":
		cn = ColorTSKeyword
	case "comment":
		cn = ColorTSComment
	case "number":
		cn = ColorTSNumber
	case "boolean":
		cn = ColorTSBoolean
	case "null":
		cn = ColorTSNull
	case "property":
		cn = ColorTSProperty
	default:
		return termbox.ColorDefault
	}

	fg, _ := GetThemeColor(cn)
	return fg
}

// Highlight returns the foreground attribute of every rune in a line. Spans
// are stored in byte columns, so the line is walked in its UTF-8 encoding.
func (s *SyntaxHighlighter) Highlight(lineIdx int, line []rune) []termbox.Attribute {
	attrs := make([]termbox.Attribute, len(line))
	defaultFg, _ := GetThemeColor(ColorDefault)
	for i := range attrs {
		attrs[i] = defaultFg
	}

	spans := s.Highlights[lineIdx]
	if len(spans) == 0 {
		return attrs
	}

	byteCol := 0
	for i, r := range line {
		for _, span := range spans {
			if byteCol >= span.start && (span.end < 0 || byteCol < span.end) {
				attrs[i] = span.attr
			}
		}
		byteCol += len(string(r))
	}
	return attrs
}
