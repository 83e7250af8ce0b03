package main

// Provides a way to view all detected file types and how they are indented
// and highlighted.

import (
	"fmt"
	"io"
	"strings"
)

// PrintInfo writes a summary table of all supported languages.
func PrintInfo(w io.Writer) {
	fmt.Fprintf(w, "%-12s %-24s %-8s %-12s\n", "Name", "Extensions", "Indent", "Grammar")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, ft := range fileTypes {
		indent := "spaces"
		if ft.UseTabs {
			indent = "tabs"
		}

		grammar := ft.Grammar
		if grammar == "" {
			grammar = "-"
		} else if !grammarAvailable(grammar) {
			grammar += " (no query)"
		}

		fmt.Fprintf(w, "%-12s %-24s %-8s %-12s\n", ft.Name, strings.Join(ft.Extensions, " "), indent, grammar)
	}
}
