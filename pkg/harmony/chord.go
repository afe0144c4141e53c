package harmony

import (
	"fmt"
	"strings"
	"unicode"
)

// Chord is an opaque chord symbol payload such as "Dm7" or "C/E". The lead
// sheet never looks inside it; it only compares values.
type Chord struct {
	Symbol string `json:"symbol"`
}

// ParseChord trims raw and rejects empty symbols or symbols with spaces.
func ParseChord(raw string) (Chord, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Chord{}, fmt.Errorf("harmony: empty chord symbol")
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return Chord{}, fmt.Errorf("harmony: chord symbol %q contains whitespace", raw)
	}
	return Chord{Symbol: s}, nil
}

// MustChord parses the input and panics on error. Intended for tests.
func MustChord(raw string) Chord {
	c, err := ParseChord(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Chord) String() string {
	return c.Symbol
}
