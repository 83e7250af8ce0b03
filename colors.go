package main

// Prints the theme palette. Each semantic color is shown with a sample using
// ANSI 256-color escapes so a theme can be checked without starting the
// editor.

import (
	"fmt"
	"io"

	"github.com/nsf/termbox-go"
)

// colorNames lists the theme entries in display order.
var colorNames = []struct {
	name  string
	color ColorName
}{
	{"default", ColorDefault},
	{"status-bar", ColorStatusBar},
	{"normal-mode", ColorNormalMode},
	{"insert-mode", ColorInsertMode},
	{"command-mode", ColorCommandMode},
	{"highlighted-line", ColorHighlightedLine},
	{"matched-bracket", ColorMatchedBracket},
	{"search-match", ColorSearchMatch},
	{"gutter-line-number", ColorGutterLineNumber},
	{"gutter-current", ColorGutterCurrent},
	{"empty-line-marker", ColorEmptyLineMarker},
	{"debug-window", ColorDebugWindow},
	{"debug-title", ColorDebugTitle},
	{"ts-function", ColorTSFunction},
	{"ts-variable", ColorTSVariable},
	{"ts-type", ColorTSType},
	{"ts-string", ColorTSString},
	{"ts-keyword", ColorTSKeyword},
	{"ts-comment", ColorTSComment},
	{"ts-number", ColorTSNumber},
	{"ts-boolean", ColorTSBoolean},
	{"ts-null", ColorTSNull},
	{"ts-property", ColorTSProperty},
	{"ts-constant", ColorTSConstant},
}

// ansi256 converts a termbox attribute in Output256 mode to an SGR parameter
// for the given layer (38 foreground, 48 background). The default color
// resets the layer.
func ansi256(attr termbox.Attribute, layer int) string {
	// Strip style bits like bold or underline.
	attr &= 0x1ff
	if attr == termbox.ColorDefault {
		return fmt.Sprintf("%d", layer+1)
	}
	return fmt.Sprintf("%d;5;%d", layer, int(attr)-1)
}

// PrintColors writes every theme entry with its attributes and a sample.
func PrintColors(w io.Writer) {
	for _, c := range colorNames {
		fg, bg := GetThemeColor(c.color)
		fmt.Fprintf(w, "%-20s fg=%-4d bg=%-4d \x1b[%s;%sm sample \x1b[0m\n",
			c.name, fg&0x1ff, bg&0x1ff, ansi256(fg, 38), ansi256(bg, 48))
	}
}
