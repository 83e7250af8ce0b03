package main

// The entry point of the kite editor. It handles command-line flags,
// initializes configuration, file types, terminal interface (termbox), and
// starts the main editor loop.

import (
	"flag"
	"fmt"
	"os"

	"github.com/nsf/termbox-go"
)

// Version of the editor, injected at build time.
var Version = "dev"

func main() {
	// Initialize configuration from flags and the config file.
	if err := InitConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// If -version flag is provided, print version and exit.
	if Config.ShowVersion {
		fmt.Println(Version)
		return
	}

	// Apply tab widths to the supported file types.
	InitFileTypes()

	// Print file type information if -info flag is provided.
	if Config.ShowInfo {
		PrintInfo(os.Stdout)
		return
	}

	// Print the color theme if -colors flag is provided.
	if Config.ShowColors {
		PrintColors(os.Stdout)
		return
	}

	// Initialize termbox for TUI handling.
	err := termbox.Init()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init termbox: %v\n", err)
		os.Exit(1)
	}
	defer termbox.Close()

	termbox.SetInputMode(termbox.InputEsc)
	// Use 256 color mode for better aesthetics.
	termbox.SetOutputMode(termbox.Output256)

	editor := NewEditor(Config.DevMode)
	if Config.ConfigPath != "" {
		editor.addLog("Editor", fmt.Sprintf("Loaded config %s", Config.ConfigPath))
	}
	editor.PeriodicFileChangesCheck()

	// Load every file given on the command line, each into its own pane.
	for _, filename := range flag.Args() {
		if err := editor.LoadFile(filename); err != nil {
			termbox.Close()
			fmt.Fprintf(os.Stderr, "failed to open file %s: %v\n", filename, err)
			os.Exit(1)
		}
	}
	// Start with the first file active.
	editor.activePane = 0

	editor.HandleEvents()
}
