package main

// Supported file types, their extensions and language-specific settings like
// indentation and the tree-sitter grammar used for highlighting.

import "path/filepath"

// FileType represents the configuration for a specific language.
type FileType struct {
	Name       string   // Display name, also the document's language identifier.
	Extensions []string // File extensions (e.g., .go, .py) or filenames (e.g., Makefile).
	UseTabs    bool     // Whether to use tabs for indentation.
	Comment    string   // Single-line comment prefix (e.g., // or #).
	TabWidth   int      // Number of spaces for a tab.
	Grammar    string   // Tree-sitter grammar name, empty when not highlighted.
}

// fileTypes is the list of all known languages. The last entry is the
// fallback for unknown files.
var fileTypes = []*FileType{
	{
		Name:       "Go",
		Extensions: []string{".go"},
		UseTabs:    true,
		Comment:    "//",
		Grammar:    "go",
	},
	{
		Name:       "C",
		Extensions: []string{".c", ".h"},
		UseTabs:    true,
		Comment:    "//",
		Grammar:    "c",
	},
	{
		Name:       "JavaScript",
		Extensions: []string{".js", ".mjs"},
		UseTabs:    true,
		Comment:    "//",
		Grammar:    "javascript",
	},
	{
		Name:       "Python",
		Extensions: []string{".py"},
		UseTabs:    false,
		Comment:    "#",
		Grammar:    "python",
	},
	{
		Name:       "Bash",
		Extensions: []string{".sh", ".bash"},
		UseTabs:    true,
		Comment:    "#",
		Grammar:    "bash",
	},
	{
		Name:       "Lua",
		Extensions: []string{".lua"},
		UseTabs:    true,
		Comment:    "--",
		Grammar:    "lua",
	},
	{
		Name:       "Markdown",
		Extensions: []string{".md", ".markdown"},
		UseTabs:    false,
	},
	{
		Name:       "Makefile",
		Extensions: []string{".make", "Makefile", "makefile"},
		UseTabs:    true,
		Comment:    "#",
	},
	{
		Name:       "Text",
		Extensions: []string{},
		UseTabs:    false,
	},
}

// getFileType detects the file type based on the filename or extension.
func getFileType(filename string) *FileType {
	if filename == "" {
		return fileTypes[len(fileTypes)-1]
	}
	ext := filepath.Ext(filename)
	base := filepath.Base(filename)
	for _, ft := range fileTypes {
		for _, e := range ft.Extensions {
			// Check if the extension matches or if the base filename (like 'Makefile') matches.
			if e == ext || e == base {
				return ft
			}
		}
	}
	return fileTypes[len(fileTypes)-1]
}

// fileTypeByName returns the file type with the given name, or the fallback.
func fileTypeByName(name string) *FileType {
	for _, ft := range fileTypes {
		if ft.Name == name {
			return ft
		}
	}
	return fileTypes[len(fileTypes)-1]
}

// InitFileTypes resets language settings to the current global configuration.
func InitFileTypes() {
	for _, ft := range fileTypes {
		ft.TabWidth = Config.DefaultTabWidth
	}
}
