package synonyms

// ProcessorName is appended to Entity.Processors when the mapper rewrites a value.
const ProcessorName = "EntitySynonymMapper"

// Entity is a span found by an upstream extractor.
// Only Value and Processors are touched during resolution. Entity models
// the common fields only; use ResolveJSON on documents that carry others.
type Entity struct {
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Entity     string   `json:"entity,omitempty"`
	Value      any      `json:"value"`
	Confidence float64  `json:"confidence,omitempty"`
	Extractor  string   `json:"extractor,omitempty"`
	Processors []string `json:"processors,omitempty"`
}

// Example is a labeled training utterance.
type Example struct {
	Text     string `json:"text" yaml:"text"`
	Entities []Span `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// Span annotates Text[Start:End] (rune offsets) with its canonical value.
type Span struct {
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Entity string `json:"entity,omitempty" yaml:"entity,omitempty"`
	Value  any    `json:"value" yaml:"value"`
}

// SurfaceText returns the literal text covered by sp.
// Offsets are clamped to the text; an inverted span yields "".
func (ex Example) SurfaceText(sp Span) string {
	runes := []rune(ex.Text)
	start, end := sp.Start, sp.End
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// Conflict records two registrations that disagreed on a variant's canonical value.
type Conflict struct {
	Variant     string
	Previous    string
	Replacement string
}
