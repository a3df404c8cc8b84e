// Package utils provides common utility functions.
package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringHelper provides string utility functions for console output.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// Width returns the display width of str in terminal cells.
func (s *StringHelper) Width(str string) int {
	return runewidth.StringWidth(str)
}

// TruncateString shortens str to at most maxWidth display cells, marking the
// cut with "...". A non-positive maxWidth disables truncation.
func (s *StringHelper) TruncateString(str string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(str) <= maxWidth {
		return str
	}

	return runewidth.Truncate(str, maxWidth, "...")
}

// PadRight pads str with spaces up to width display cells.
func (s *StringHelper) PadRight(str string, width int) string {
	padding := width - runewidth.StringWidth(str)
	if padding <= 0 {
		return str
	}

	return str + strings.Repeat(" ", padding)
}

// PadLeft pads str with leading spaces up to width display cells.
func (s *StringHelper) PadLeft(str string, width int) string {
	padding := width - runewidth.StringWidth(str)
	if padding <= 0 {
		return str
	}

	return strings.Repeat(" ", padding) + str
}
