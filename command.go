package main

// Colon command handler (e.g., :q, :w, :e). It processes strings entered in
// ModeCommand and executes the corresponding actions.

import (
	"fmt"
	"strconv"
	"strings"
)

// Command provides a context for executing editor commands.
type Command struct {
	e *Editor
}

// IsValidCommand returns true if the command should be saved to history.
// Line numbers (pure integers) are not saved to history.
func (ch *Command) IsValidCommand(cmd string) bool {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return false
	}

	if _, err := strconv.Atoi(cmd); err == nil {
		return false
	}

	switch cmd {
	case "q", "q!", "w", "w!", "wa", "wq", "x", "e!", "sp", "split", "bn", "bp", "debug":
		return true
	}

	for _, prefix := range []string{"w ", "e ", "s/", "%s/"} {
		if strings.HasPrefix(cmd, prefix) {
			return true
		}
	}
	return false
}

// HandleAndSaveToHistory executes a command and saves it to history if valid.
func (ch *Command) HandleAndSaveToHistory(cmd string) {
	ch.Handle(cmd)
	if ch.IsValidCommand(cmd) {
		if len(ch.e.commandHistory) == 0 || ch.e.commandHistory[len(ch.e.commandHistory)-1] != cmd {
			ch.e.commandHistory = append(ch.e.commandHistory, cmd)
		}
	}
}

// NavigateHistoryUp moves backward through command history.
func (ch *Command) NavigateHistoryUp() {
	if len(ch.e.commandHistory) == 0 {
		return
	}

	if ch.e.commandHistoryIdx == -1 {
		ch.e.commandHistoryIdx = len(ch.e.commandHistory) - 1
	} else if ch.e.commandHistoryIdx > 0 {
		ch.e.commandHistoryIdx--
	}

	ch.e.commandBuffer = []rune(ch.e.commandHistory[ch.e.commandHistoryIdx])
	ch.e.commandCursorX = len(ch.e.commandBuffer)
}

// NavigateHistoryDown moves forward through command history.
func (ch *Command) NavigateHistoryDown() {
	if ch.e.commandHistoryIdx == -1 {
		return
	}

	ch.e.commandHistoryIdx++
	if ch.e.commandHistoryIdx >= len(ch.e.commandHistory) {
		// Past the newest entry the line is empty again.
		ch.e.commandHistoryIdx = -1
		ch.e.commandBuffer = []rune{}
		ch.e.commandCursorX = 0
	} else {
		ch.e.commandBuffer = []rune(ch.e.commandHistory[ch.e.commandHistoryIdx])
		ch.e.commandCursorX = len(ch.e.commandBuffer)
	}
}

// Handle parses and executes a command string.
func (ch *Command) Handle(cmd string) {
	cmd = strings.TrimSpace(cmd)
	switch {
	case cmd == "":
	case cmd == "q":
		ch.quit(false)
	case cmd == "q!":
		ch.quit(true)
	case cmd == "w":
		ch.write("", false)
	case cmd == "w!":
		ch.write("", true)
	case strings.HasPrefix(cmd, "w "):
		ch.write(strings.TrimSpace(strings.TrimPrefix(cmd, "w ")), false)
	case cmd == "wa":
		ch.writeAll()
	case cmd == "wq" || cmd == "x":
		if ch.write("", false) {
			ch.quit(false)
		}
	case cmd == "e!":
		ch.reload()
	case strings.HasPrefix(cmd, "e "):
		ch.edit(strings.TrimSpace(strings.TrimPrefix(cmd, "e ")))
	case cmd == "e":
		ch.e.message = "No filename specified"
	case cmd == "sp" || cmd == "split":
		ch.e.splitPane()
	case cmd == "bn":
		ch.e.nextPane()
	case cmd == "bp":
		ch.e.prevPane()
	case cmd == "debug":
		ch.e.toggleDebugWindow()
	case strings.HasPrefix(cmd, "s/") || strings.HasPrefix(cmd, "%s/"):
		ch.substitute(cmd)
	default:
		// If the command is a number, jump to that line.
		if lineNum, err := strconv.Atoi(cmd); err == nil {
			ch.e.gotoLine(lineNum)
		} else {
			ch.e.message = fmt.Sprintf("Command not found: %s", cmd)
		}
	}
	// After executing a command, return to Normal mode and clear the command buffer.
	if ch.e.mode == ModeCommand {
		ch.e.mode = ModeNormal
		ch.e.syncActiveCursor()
	}
	ch.e.commandBuffer = []rune{}
	ch.e.commandCursorX = 0
}

// quit closes the active pane, or the editor when it is the last one.
// Unsaved changes block it unless force is true.
func (ch *Command) quit(force bool) {
	e := ch.e
	if len(e.panes) > 1 {
		p := e.pane()
		shared := false
		for _, other := range e.panes {
			if other != p && other.doc == p.doc {
				shared = true
			}
		}
		if !force && !shared && e.docs[p.doc].Modified() {
			e.message = "No write since last change (use :q! to override)"
			return
		}
		e.closePane()
		return
	}

	if !force && len(e.unsavedDocuments()) > 0 {
		e.message = "No write since last change (use :q! to override)"
		return
	}
	e.quit = true
}

// write saves the active document. It reports whether the save succeeded.
func (ch *Command) write(filename string, force bool) bool {
	if err := ch.e.SaveFile(filename, force); err != nil {
		ch.e.message = err.Error()
		return false
	}
	return true
}

// writeAll saves every modified document that has a file name.
func (ch *Command) writeAll() {
	saved := 0
	var lastErr error
	for _, doc := range ch.e.docs {
		if doc.Path == "" || !doc.Modified() {
			continue
		}
		if err := doc.Save(""); err != nil {
			lastErr = err
			ch.e.addLog("File", err.Error())
			continue
		}
		saved++
	}
	if lastErr != nil {
		ch.e.message = fmt.Sprintf("Saved %d file(s), error: %v", saved, lastErr)
	} else {
		ch.e.message = fmt.Sprintf("Saved %d file(s)", saved)
	}
}

// reload discards the changes of the active document and reads its file
// again.
func (ch *Command) reload() {
	p := ch.e.pane()
	if err := ch.e.ReloadDocument(p.doc); err != nil {
		ch.e.message = err.Error()
		return
	}
	ch.e.message = "Reloaded from disk"
}

func (ch *Command) edit(filename string) {
	if err := ch.e.LoadFile(filename); err != nil {
		ch.e.message = fmt.Sprintf("Error opening file: %v", err)
	}
}

func (ch *Command) substitute(cmd string) {
	n, err := ch.e.executeReplace(cmd)
	switch {
	case err != nil:
		ch.e.message = err.Error()
	case n == 0:
		ch.e.message = "Pattern not found"
	default:
		ch.e.message = fmt.Sprintf("%d replacements made", n)
	}
}
