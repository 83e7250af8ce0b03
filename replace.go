package main

// Vim-style substitution (:s/pattern/replacement/flags). Works on the cursor's
// line, or on the whole document when prefixed with %, and supports regex
// patterns with $1-style group references.

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// substitution is a parsed :s command.
type substitution struct {
	pattern     string
	replacement string
	global      bool // Replace every match on a line, not just the first.
	ignoreCase  bool
	wholeFile   bool
}

// parseReplaceCommand splits the raw input into pattern, replacement, and
// flags. It expects "s/pattern/replacement/[flags]" optionally prefixed
// with %.
func parseReplaceCommand(input string) (substitution, error) {
	var sub substitution
	if strings.HasPrefix(input, "%") {
		sub.wholeFile = true
		input = input[1:]
	}
	if !strings.HasPrefix(input, "s/") {
		return sub, fmt.Errorf("not a substitution: %q", input)
	}

	var parts []string
	var current strings.Builder
	escaped := false

	// Escaped slashes stay part of the pattern or replacement.
	for _, ch := range input[2:] {
		switch {
		case escaped:
			if ch != '/' {
				current.WriteRune('\\')
			}
			current.WriteRune(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '/' && len(parts) < 2:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	parts = append(parts, current.String())

	if len(parts) < 2 || parts[0] == "" {
		return sub, fmt.Errorf("no pattern specified")
	}

	sub.pattern, sub.replacement = parts[0], parts[1]
	if len(parts) == 3 {
		sub.global = strings.Contains(parts[2], "g")
		sub.ignoreCase = strings.Contains(parts[2], "i")
	}
	return sub, nil
}

// executeReplace runs a substitution on the active document and reports the
// number of replacements.
func (e *Editor) executeReplace(input string) (int, error) {
	sub, err := parseReplaceCommand(input)
	if err != nil {
		return 0, err
	}

	pattern := sub.pattern
	if sub.ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid regex pattern: %w", err)
	}

	p, doc := e.pane(), e.activeDocument()
	if doc == nil {
		return 0, nil
	}

	first, last := p.cursor.Row, p.cursor.Row
	if sub.wholeFile {
		first, last = 0, doc.LineCount()-1
	}

	limit := 1
	if sub.global {
		limit = -1
	}

	var deltas []EditDelta
	// Bottom-up so that rows above an edit keep their offsets.
	for row := last; row >= first; row-- {
		rec, ok := doc.Line(row)
		if !ok {
			continue
		}
		line := doc.LineFromRecord(rec)
		matches := re.FindAllStringSubmatchIndex(line, limit)

		// Right to left within the line for the same reason.
		for i := len(matches) - 1; i >= 0; i-- {
			m := matches[i]
			text := string(re.ExpandString(nil, sub.replacement, line, m))
			start := rec.Start + utf8.RuneCountInString(line[:m[0]])
			end := rec.Start + utf8.RuneCountInString(line[:m[1]])
			deltas = append(deltas, doc.Replace(Range{Start: start, End: end}, text))
		}
	}
	count := len(deltas)
	if count > 0 {
		e.applyDeltas(deltas...)
	}

	p.cursor.Sync(doc, ModeNormal)
	e.addLog("Editor", fmt.Sprintf("Substituted %q -> %q: %d replacements", sub.pattern, sub.replacement, count))
	return count, nil
}
