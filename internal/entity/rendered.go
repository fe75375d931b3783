package entity

// SpanKind discriminates the emitted span variants.
type SpanKind string

const (
	SpanText   SpanKind = "text"   // plain text, including whitespace
	SpanWord   SpanKind = "word"   // a standalone word token
	SpanPhrase SpanKind = "phrase" // a combined multi-word collocation span
)

// WordTier is the display tier resolved for a standalone word.
type WordTier string

const (
	TierPlain WordTier = "plain"
	TierVocab WordTier = "vocab" // vocabulary-tier highlight
	TierStudy WordTier = "study" // previously looked up, outranks vocab
)

// RenderedSpan is one element of the render-ready token sequence for a
// sentence. The metadata fields mirror what the view layer needs to recover
// the clicked word or phrase through a single delegated click handler.
type RenderedSpan struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`

	// Word is the canonical lowercase word key for word spans.
	Word string   `json:"word,omitempty"`
	Tier WordTier `json:"tier,omitempty"`

	// Phrase fields, set for phrase spans only.
	Phrase       string `json:"phrase,omitempty"`
	Studied      bool   `json:"studied,omitempty"`
	Difficulty   int32  `json:"difficulty,omitempty"`
	StartWordIdx int    `json:"start_word_idx,omitempty"`
	EndWordIdx   int    `json:"end_word_idx,omitempty"`
}

// RenderedSentence is the annotated form of one sentence.
type RenderedSentence struct {
	Index   int            `json:"index"` // global sentence index
	Text    string         `json:"text"`
	Spans   []RenderedSpan `json:"spans"`
	Unclear *UnclearMark   `json:"unclear,omitempty"`
}

// RenderedBlock is the displayable form of one content block.
type RenderedBlock struct {
	Type      BlockType          `json:"type"`
	Sentences []RenderedSentence `json:"sentences,omitempty"`

	// heading & subtitle
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"`

	// image
	Path    string `json:"path,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// RenderedSegment is the displayable form of one audio segment.
type RenderedSegment struct {
	Index     int                `json:"index"`
	Text      string             `json:"text"`
	Sentences []RenderedSentence `json:"sentences"`
	StartTime float64            `json:"start_time"`
	EndTime   float64            `json:"end_time"`
	Active    bool               `json:"active"`
}

// RenderedDocument is the full render output for one bundle. Text renderers
// populate Blocks; audio renderers populate Segments. The sentence totals let
// the client drive its progressive-reveal sentinel.
type RenderedDocument struct {
	BundleID string `json:"bundle_id"`
	Renderer string `json:"renderer"`
	Title    string `json:"title,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`

	Blocks   []RenderedBlock   `json:"blocks,omitempty"`
	Segments []RenderedSegment `json:"segments,omitempty"`

	TotalSentences    int  `json:"total_sentences"`
	RenderedSentences int  `json:"rendered_sentences"`
	HasMore           bool `json:"has_more"`
}
