package harmony

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Position locates an item in a lead sheet: a 0-based bar and a 0-based
// quarter-note beat inside that bar.
type Position struct {
	Bar  int     `json:"bar"`
	Beat float64 `json:"beat"`
}

// NewPosition validates bar and beat.
func NewPosition(bar int, beat float64) (Position, error) {
	p := Position{Bar: bar, Beat: beat}
	if err := p.Validate(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// ParsePosition reads "bar" or "bar:beat", e.g. "2:1.5".
func ParsePosition(raw string) (Position, error) {
	barPart, beatPart, hasBeat := strings.Cut(strings.TrimSpace(raw), ":")
	bar, err := strconv.Atoi(strings.TrimSpace(barPart))
	if err != nil {
		return Position{}, fmt.Errorf("harmony: position %q: bad bar: %w", raw, err)
	}
	beat := 0.0
	if hasBeat {
		beat, err = strconv.ParseFloat(strings.TrimSpace(beatPart), 64)
		if err != nil {
			return Position{}, fmt.Errorf("harmony: position %q: bad beat: %w", raw, err)
		}
	}
	return NewPosition(bar, beat)
}

// Validate rejects negative bars and negative or non-finite beats.
func (p Position) Validate() error {
	if p.Bar < 0 {
		return fmt.Errorf("harmony: position %s: negative bar", p)
	}
	if p.Beat < 0 || math.IsNaN(p.Beat) || math.IsInf(p.Beat, 0) {
		return fmt.Errorf("harmony: position %s: beat must be a finite value >= 0", p)
	}
	return nil
}

// Compare orders positions by bar, then beat. It returns -1, 0 or +1.
func (p Position) Compare(other Position) int {
	switch {
	case p.Bar < other.Bar:
		return -1
	case p.Bar > other.Bar:
		return 1
	case p.Beat < other.Beat:
		return -1
	case p.Beat > other.Beat:
		return 1
	default:
		return 0
	}
}

func (p Position) Before(other Position) bool { return p.Compare(other) < 0 }
func (p Position) After(other Position) bool  { return p.Compare(other) > 0 }
func (p Position) Equal(other Position) bool  { return p.Compare(other) == 0 }

// ClampTo keeps the beat strictly below the natural beat count of ts; an
// overflowing beat is moved to the start of the last beat.
func (p Position) ClampTo(ts TimeSignature) Position {
	if p.Beat >= ts.NaturalBeatCount() {
		p.Beat = ts.LastBeat()
	}
	return p
}

// Convert rescales the beat proportionally from the natural beat count of
// from to the one of to. The bar is unchanged and the result is clamped to
// to.
func (p Position) Convert(from, to TimeSignature) Position {
	if from == to {
		return p.ClampTo(to)
	}
	fromBeats := from.NaturalBeatCount()
	if fromBeats > 0 {
		p.Beat = p.Beat * to.NaturalBeatCount() / fromBeats
		// converted beats are rounded to 1/1000
		p.Beat = math.Round(p.Beat*1000) / 1000
	}
	return p.ClampTo(to)
}

// WithBar returns p moved to bar, beat unchanged.
func (p Position) WithBar(bar int) Position {
	p.Bar = bar
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("[%d:%s]", p.Bar, strconv.FormatFloat(p.Beat, 'f', -1, 64))
}
