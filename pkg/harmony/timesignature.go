// Package harmony holds the immutable musical values a lead sheet is built
// from: time signatures, bar/beat positions and chord payloads.
package harmony

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeSignature is a bar's meter, e.g. 3/4.
type TimeSignature struct {
	Upper int
	Lower int
}

// Common signatures.
var (
	TwoFour     = TimeSignature{Upper: 2, Lower: 4}
	ThreeFour   = TimeSignature{Upper: 3, Lower: 4}
	FourFour    = TimeSignature{Upper: 4, Lower: 4}
	FiveFour    = TimeSignature{Upper: 5, Lower: 4}
	TwoTwo      = TimeSignature{Upper: 2, Lower: 2}
	SixEight    = TimeSignature{Upper: 6, Lower: 8}
	TwelveEight = TimeSignature{Upper: 12, Lower: 8}
)

// ParseTimeSignature converts "3/4" into a TimeSignature.
func ParseTimeSignature(raw string) (TimeSignature, error) {
	upper, lower, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return TimeSignature{}, fmt.Errorf("harmony: time signature %q: expected upper/lower", raw)
	}
	u, err := strconv.Atoi(strings.TrimSpace(upper))
	if err != nil {
		return TimeSignature{}, fmt.Errorf("harmony: time signature %q: %w", raw, err)
	}
	l, err := strconv.Atoi(strings.TrimSpace(lower))
	if err != nil {
		return TimeSignature{}, fmt.Errorf("harmony: time signature %q: %w", raw, err)
	}
	ts := TimeSignature{Upper: u, Lower: l}
	if err := ts.Validate(); err != nil {
		return TimeSignature{}, err
	}
	return ts, nil
}

// MustTimeSignature parses the input and panics on error. Intended for tests.
func MustTimeSignature(raw string) TimeSignature {
	ts, err := ParseTimeSignature(raw)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate reports whether the signature can govern a bar.
func (ts TimeSignature) Validate() error {
	if ts.Upper < 1 || ts.Upper > 32 {
		return fmt.Errorf("harmony: time signature %s: upper must be in [1, 32]", ts)
	}
	switch ts.Lower {
	case 2, 4, 8, 16:
		return nil
	default:
		return fmt.Errorf("harmony: time signature %s: lower must be 2, 4, 8 or 16", ts)
	}
}

// NaturalBeatCount is the number of quarter-note beats in one bar.
func (ts TimeSignature) NaturalBeatCount() float64 {
	if ts.Lower == 0 {
		return 0
	}
	return float64(ts.Upper) * 4 / float64(ts.Lower)
}

// LastBeat is the start of the last natural beat. Positions at or past the
// natural beat count are clamped to it.
func (ts TimeSignature) LastBeat() float64 {
	last := ts.NaturalBeatCount() - 1
	if last < 0 {
		return 0
	}
	return last
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Upper, ts.Lower)
}

// MarshalText encodes the signature as "upper/lower".
func (ts TimeSignature) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText decodes "upper/lower".
func (ts *TimeSignature) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeSignature(string(text))
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
