package source

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownEncoding is returned for encoding names no index recognises.
var ErrUnknownEncoding = errors.New("unknown encoding")

// encodingAliases covers common spellings that neither the WHATWG nor the
// IANA index knows.
var encodingAliases = map[string]string{
	"latin-1":   "iso-8859-1",
	"latin_1":   "iso-8859-1",
	"utf-8-sig": "utf-8",
	"utf_8":     "utf-8",
	"utf8-sig":  "utf-8",
}

// LookupEncoding resolves an encoding name. An empty name means UTF-8.
//
// The IANA index is consulted first so that ISO-8859-1 keeps its own byte
// mapping; the WHATWG index would substitute windows-1252. WHATWG labels such
// as "cp1252" are accepted as a fallback.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return unicode.UTF8, nil
	}

	if alias, ok := encodingAliases[key]; ok {
		key = alias
	}

	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}

	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	return enc, nil
}

// isUTF8 reports whether enc decodes UTF-8, in which case input is validated
// instead of being passed through a replacing decoder.
func isUTF8(enc encoding.Encoding) bool {
	if enc == unicode.UTF8 {
		return true
	}

	name, err := htmlindex.Name(enc)

	return err == nil && name == "utf-8"
}
