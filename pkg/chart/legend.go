package chart

// Glyph is one piece of chart notation.
type Glyph struct {
	Symbol  string
	Example string
	Meaning string
}

// Legend lists the chart notation in the order a chart uses it.
func Legend() []Glyph {
	return []Glyph{
		{Symbol: "section", Example: `section "Bridge" 3/4`, Meaning: "starts a section with a name and a time signature"},
		{Symbol: "|", Example: "| C | F |", Meaning: "bar line, a row holds any number of bars"},
		{Symbol: "-", Example: "| - |", Meaning: "empty bar"},
		{Symbol: "@", Example: "| C F@3 |", Meaning: "explicit beat, counted from 0"},
		{Symbol: "//", Example: "// intro", Meaning: "comment until the end of the line"},
	}
}
