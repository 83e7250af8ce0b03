//go:build debug

package main

// debugAssertions makes every document mutation verify the line index.
const debugAssertions = true
