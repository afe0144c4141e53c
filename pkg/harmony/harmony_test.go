package harmony

import "testing"

func TestParseTimeSignature(t *testing.T) {
	tests := []struct {
		raw     string
		want    TimeSignature
		beats   float64
		wantErr bool
	}{
		{raw: "4/4", want: FourFour, beats: 4},
		{raw: " 3 / 4 ", want: ThreeFour, beats: 3},
		{raw: "6/8", want: SixEight, beats: 3},
		{raw: "2/2", want: TwoTwo, beats: 4},
		{raw: "4", wantErr: true},
		{raw: "4/3", wantErr: true},
		{raw: "0/4", wantErr: true},
		{raw: "x/4", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimeSignature(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %v", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.raw, tt.want, got)
		}
		if got.NaturalBeatCount() != tt.beats {
			t.Fatalf("%q: expected %v natural beats, got %v", tt.raw, tt.beats, got.NaturalBeatCount())
		}
	}
}

func TestPositionCompare(t *testing.T) {
	a := Position{Bar: 1, Beat: 2}
	b := Position{Bar: 1, Beat: 2.5}
	c := Position{Bar: 2, Beat: 0}
	if !a.Before(b) || !b.Before(c) || !c.After(a) {
		t.Fatalf("unexpected ordering between %v %v %v", a, b, c)
	}
	if !a.Equal(Position{Bar: 1, Beat: 2}) {
		t.Fatalf("expected %v to equal itself", a)
	}
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("2:1.5")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p != (Position{Bar: 2, Beat: 1.5}) {
		t.Fatalf("unexpected position %v", p)
	}
	if p, err = ParsePosition("3"); err != nil || p != (Position{Bar: 3}) {
		t.Fatalf("expected [3:0], got %v (%v)", p, err)
	}
	if _, err := ParsePosition("-1:0"); err == nil {
		t.Fatalf("expected negative bar to fail")
	}
	if _, err := ParsePosition("1:-2"); err == nil {
		t.Fatalf("expected negative beat to fail")
	}
}

func TestClampTo(t *testing.T) {
	tests := []struct {
		beat float64
		ts   TimeSignature
		want float64
	}{
		{beat: 3.5, ts: FourFour, want: 3.5},
		{beat: 3.5, ts: ThreeFour, want: 2},
		{beat: 3, ts: ThreeFour, want: 2},
		{beat: 2.99, ts: ThreeFour, want: 2.99},
		{beat: 1, ts: TimeSignature{Upper: 3, Lower: 8}, want: 1},
		{beat: 1.5, ts: TimeSignature{Upper: 3, Lower: 8}, want: 0.5},
	}
	for _, tt := range tests {
		got := Position{Bar: 4, Beat: tt.beat}.ClampTo(tt.ts)
		if got.Beat != tt.want || got.Bar != 4 {
			t.Fatalf("clamp %v to %v: expected beat %v, got %v", tt.beat, tt.ts, tt.want, got)
		}
	}
}

func TestConvert(t *testing.T) {
	p := Position{Bar: 1, Beat: 3.5}
	got := p.Convert(FourFour, ThreeFour)
	if got.Bar != 1 || got.Beat != 2.625 {
		t.Fatalf("expected [1:2.625], got %v", got)
	}
	if got.Beat > ThreeFour.NaturalBeatCount() {
		t.Fatalf("converted beat %v exceeds 3/4", got.Beat)
	}
	back := got.Convert(ThreeFour, FourFour)
	if back.Beat != 3.5 {
		t.Fatalf("expected round trip to 3.5, got %v", back)
	}
	same := Position{Bar: 0, Beat: 3.5}.Convert(ThreeFour, ThreeFour)
	if same.Beat != 2 {
		t.Fatalf("expected same-signature convert to clamp, got %v", same)
	}
}

func TestTimeSignatureText(t *testing.T) {
	b, err := SixEight.MarshalText()
	if err != nil || string(b) != "6/8" {
		t.Fatalf("expected 6/8, got %q (%v)", b, err)
	}
	var ts TimeSignature
	if err := ts.UnmarshalText([]byte("5/4")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ts != FiveFour {
		t.Fatalf("expected 5/4, got %v", ts)
	}
}

func TestParseChord(t *testing.T) {
	if c, err := ParseChord(" Dm7 "); err != nil || c.Symbol != "Dm7" {
		t.Fatalf("expected Dm7, got %v (%v)", c, err)
	}
	for _, bad := range []string{"", "  ", "C maj7"} {
		if _, err := ParseChord(bad); err == nil {
			t.Fatalf("expected %q to fail", bad)
		}
	}
}
