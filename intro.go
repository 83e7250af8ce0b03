package main

// Handles drawing the splash screen (introduction) that appears when the editor
// starts with no files.

import (
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
)

// showIntro reports whether the splash screen should cover the active pane.
func (e *Editor) showIntro() bool {
	p := e.pane()
	return p != nil && len(e.panes) == 1 && e.mode == ModeNormal && e.isScratch(p)
}

// drawIntro draws an informational box with version and basic commands.
func (e *Editor) drawIntro() {
	w, h := termbox.Size()

	// Define specific attributes for the intro screen elements.
	const (
		cTitle   = termbox.Attribute(254) | termbox.AttrBold
		cText    = termbox.Attribute(248)
		cVersion = termbox.Attribute(239)
		cKey     = termbox.Attribute(254)
	)

	lines := []struct {
		text string
		fg   termbox.Attribute
	}{
		{"kite", cTitle},
		{Version, cVersion},
		{"", cText},
		{"Small modal text editor", cText},
		{"", cText},
		{" type  i                    to start typing", cKey},
		{" type  :e file<Enter>       to open a file", cKey},
		{" type  :q<Enter>            to exit", cKey},
	}

	// Calculate the maximum line width to center the box.
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, runewidth.StringWidth(line.text))
	}

	startX := (w - maxLen) / 2
	startY := (h - len(lines)) / 2

	_, bg := GetThemeColor(ColorDefault)
	for i, line := range lines {
		// Center each line individually within the box.
		lineX := startX + (maxLen-runewidth.StringWidth(line.text))/2
		for j, char := range []rune(line.text) {
			termbox.SetCell(lineX+j, startY+i, char, line.fg, bg)
		}
	}
}
