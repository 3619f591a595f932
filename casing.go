package docgen

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseMode is the casing policy applied to labels and values for display.
type CaseMode int

const (
	CaseOriginal CaseMode = iota
	CaseUpper
	CaseLower
	CaseTitle
)

func (m CaseMode) String() string {
	switch m {
	case CaseUpper:
		return "upper"
	case CaseLower:
		return "lower"
	case CaseTitle:
		return "title"
	default:
		return "original"
	}
}

func (m *CaseMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "original", "none":
		*m = CaseOriginal
	case "upper", "uppercase":
		*m = CaseUpper
	case "lower", "lowercase":
		*m = CaseLower
	case "title", "titlecase":
		*m = CaseTitle
	default:
		return fmt.Errorf("unknown case mode %q", string(b))
	}
	return nil
}

func (m CaseMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ApplyCase transforms text according to m.
//
// Title capitalizes the first rune of every whitespace-delimited word and
// lowercases the rest, so acronyms such as "USA" become "Usa".
func ApplyCase(text string, m CaseMode) string {
	switch m {
	case CaseUpper:
		return cases.Upper(language.Und).String(text)
	case CaseLower:
		return cases.Lower(language.Und).String(text)
	case CaseTitle:
		return titleWords(text)
	default:
		return text
	}
}

func titleWords(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	start := true
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			start = true
		case start:
			r = unicode.ToTitle(r)
			start = false
		default:
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
