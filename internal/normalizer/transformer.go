package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"eligibility/internal/logger"
	"eligibility/pkg/datefmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transformer converts single raw field values into their normalized form.
// Every method accepts any string; an empty or blank input yields "".
type Transformer struct {
	nonDigitPattern *regexp.Regexp
	lower           cases.Caser
	log             *logger.Logger
}

// NewTransformer creates a new transformer instance. A nil logger discards
// the warnings raised for unparseable values.
func NewTransformer(log *logger.Logger) *Transformer {
	if log == nil {
		log = logger.Discard()
	}

	return &Transformer{
		nonDigitPattern: regexp.MustCompile(`\D`),
		lower:           cases.Lower(language.Und),
		log:             log,
	}
}

// TitleCase trims the value, lowercases it and uppercases the first
// character of each whitespace-delimited word. Hyphens and apostrophes do
// not start a word: "mary-jane" becomes "Mary-jane".
func (t *Transformer) TitleCase(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	lowered := t.lower.String(s)

	var sb strings.Builder

	sb.Grow(len(lowered))

	wordStart := true

	for _, r := range lowered {
		if wordStart {
			r = unicode.ToTitle(r)
		}

		wordStart = unicode.IsSpace(r)

		sb.WriteRune(r)
	}

	return sb.String()
}

// Lowercase trims and lowercases the value.
func (t *Transformer) Lowercase(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// FormatDate parses value with a strptime-style pattern and renders it as
// YYYY-MM-DD. Values that do not parse produce "" and a logged warning.
func (t *Transformer) FormatDate(value, pattern string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	parsed, err := datefmt.Parse(s, pattern)
	if err != nil {
		t.log.Warn("failed to parse date", "value", s, "format", pattern, "error", err)

		return ""
	}

	return parsed.Format(datefmt.ISODate)
}

// FormatPhone renders 10-digit numbers, or 11-digit numbers with a leading
// US country code, as DDD-DDD-DDDD. Any other digit count returns the
// trimmed input unchanged and logs a warning.
func (t *Transformer) FormatPhone(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	digits := t.nonDigitPattern.ReplaceAllString(s, "")

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}

	if len(digits) == 10 {
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	}

	t.log.Warn("unexpected phone format", "value", s, "digits", len(digits))

	return s
}
