package main

// Color palette used by the renderer. Semantic color names map to a pair of
// 256-color terminal attributes.

import "github.com/nsf/termbox-go"

// Color represents a pair of foreground and background terminal attributes.
type Color struct {
	Background termbox.Attribute
	Foreground termbox.Attribute
}

// ColorName is an enum-like type for semantic color identifiers.
type ColorName int

const (
	ColorDefault ColorName = iota // Default terminal colors.

	ColorStatusBar       // Main status bar at the bottom.
	ColorNormalMode      // Status bar indicator for Normal mode.
	ColorInsertMode      // Status bar indicator for Insert mode.
	ColorCommandMode     // Status bar indicator while typing a : command.
	ColorHighlightedLine // Background for the line where the cursor is.
	ColorMatchedBracket  // The partner of the bracket under the cursor.
	ColorSearchMatch     // Occurrences of the last search.

	ColorGutterLineNumber // Line numbers in the left gutter.
	ColorGutterCurrent    // Line number of the cursor's line.
	ColorEmptyLineMarker  // The '~' marker for lines beyond EOF.

	ColorDebugWindow // Overlay window for logs.
	ColorDebugTitle  // Header for the debug window.

	// Colors for Tree-sitter syntax highlighting.
	ColorTSFunction
	ColorTSVariable
	ColorTSType
	ColorTSString
	ColorTSKeyword
	ColorTSComment
	ColorTSNumber
	ColorTSBoolean
	ColorTSNull
	ColorTSProperty
	ColorTSConstant
)

// Theme maps each ColorName to its actual visual attributes.
var Theme = map[ColorName]Color{
	ColorDefault: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(254)},

	ColorStatusBar:       {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1)},
	ColorNormalMode:      {Background: termbox.Attribute(250), Foreground: termbox.Attribute(1)},
	ColorInsertMode:      {Background: termbox.Attribute(58), Foreground: termbox.Attribute(255)},
	ColorCommandMode:     {Background: termbox.Attribute(30), Foreground: termbox.Attribute(16)},
	ColorHighlightedLine: {Background: termbox.Attribute(235), Foreground: termbox.ColorDefault},
	ColorMatchedBracket:  {Background: termbox.Attribute(240), Foreground: termbox.Attribute(255)},
	ColorSearchMatch:     {Background: termbox.Attribute(166), Foreground: termbox.Attribute(1)},

	ColorGutterLineNumber: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(244)},
	ColorGutterCurrent:    {Background: termbox.ColorDefault, Foreground: termbox.Attribute(254)},
	ColorEmptyLineMarker:  {Background: termbox.ColorDefault, Foreground: termbox.Attribute(244)},

	ColorDebugWindow: {Background: termbox.Attribute(19), Foreground: termbox.Attribute(16)},
	ColorDebugTitle:  {Background: termbox.Attribute(19), Foreground: termbox.Attribute(215)},

	ColorTSFunction: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(3)},
	ColorTSVariable: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(255)},
	ColorTSType:     {Background: termbox.ColorDefault, Foreground: termbox.Attribute(112)},
	ColorTSString:   {Background: termbox.ColorDefault, Foreground: termbox.Attribute(37)},
	ColorTSKeyword:  {Background: termbox.ColorDefault, Foreground: termbox.Attribute(178)},
	ColorTSComment:  {Background: termbox.ColorDefault, Foreground: termbox.Attribute(244)},
	ColorTSNumber:   {Background: termbox.ColorDefault, Foreground: termbox.Attribute(135)},
	ColorTSBoolean:  {Background: termbox.ColorDefault, Foreground: termbox.Attribute(2)},
	ColorTSNull:     {Background: termbox.ColorDefault, Foreground: termbox.Attribute(135)},
	ColorTSProperty: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(230)},
	ColorTSConstant: {Background: termbox.ColorDefault, Foreground: termbox.Attribute(254)},
}

// GetThemeColor returns the foreground and background attributes for a given semantic name.
func GetThemeColor(name ColorName) (termbox.Attribute, termbox.Attribute) {
	if c, ok := Theme[name]; ok {
		return c.Foreground, c.Background
	}
	return termbox.ColorDefault, termbox.ColorDefault
}
