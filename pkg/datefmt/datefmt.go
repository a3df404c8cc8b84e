// Package datefmt translates strptime-style date patterns into Go time layouts.
package datefmt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISODate is the layout of normalized dates.
const ISODate = "2006-01-02"

// Pattern translation errors.
var (
	ErrEmptyPattern         = errors.New("date pattern is empty")
	ErrUnsupportedDirective = errors.New("unsupported date directive")
	ErrDanglingPercent      = errors.New("date pattern ends with '%'")
	ErrUnsupportedLiteral   = errors.New("unsupported literal in date pattern")
)

// directives maps strptime directives to Go layout elements. Numeric month,
// day, hour, minute and second use the non-padded forms so that both "3" and
// "03" are accepted, matching strptime.
var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "1",
	'd': "2",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'H': "15",
	'I': "3",
	'M': "4",
	'S': "5",
	'p': "PM",
	'%': "%",
}

// Layout converts a strptime pattern such as "%m/%d/%Y" into a Go layout.
//
// Literal letters, digits and underscores are rejected because the Go layout
// parser would read them as layout elements.
func Layout(pattern string) (string, error) {
	if pattern == "" {
		return "", ErrEmptyPattern
	}

	var sb strings.Builder

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			if isLayoutSensitive(c) {
				return "", fmt.Errorf("%w: %q in %q", ErrUnsupportedLiteral, c, pattern)
			}

			sb.WriteByte(c)

			continue
		}

		if i+1 >= len(pattern) {
			return "", fmt.Errorf("%w: %q", ErrDanglingPercent, pattern)
		}

		i++

		elem, ok := directives[pattern[i]]
		if !ok {
			return "", fmt.Errorf("%w: %%%c in %q", ErrUnsupportedDirective, pattern[i], pattern)
		}

		sb.WriteString(elem)
	}

	return sb.String(), nil
}

// Parse parses value against a strptime pattern.
func Parse(value, pattern string) (time.Time, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse(layout, value)
}

func isLayoutSensitive(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
