package entity

import (
	"strings"
	"time"
)

// SourceType tags the origin format of a content bundle.
type SourceType string

const (
	SourceTypeUnspecified SourceType = ""
	SourceTypeEpub        SourceType = "epub"
	SourceTypePodcast     SourceType = "podcast"
	SourceTypeRSS         SourceType = "rss"
	SourceTypePlainText   SourceType = "plain_text"
	SourceTypeAudiobook   SourceType = "audiobook"
	SourceTypeComic       SourceType = "comic"
)

// ParseSourceType extracts the base source type from a raw tag. Compound tags
// such as "epub:dracula.epub:3" carry the type before the first colon.
func ParseSourceType(raw string) SourceType {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, ":"); idx >= 0 {
		raw = raw[:idx]
	}
	switch SourceType(strings.ToLower(raw)) {
	case SourceTypeEpub, SourceTypePodcast, SourceTypeRSS, SourceTypePlainText,
		SourceTypeAudiobook, SourceTypeComic:
		return SourceType(strings.ToLower(raw))
	default:
		return SourceTypeUnspecified
	}
}

// BlockType discriminates the content block variants.
type BlockType string

const (
	BlockParagraph    BlockType = "paragraph"
	BlockImage        BlockType = "image"
	BlockHeading      BlockType = "heading"
	BlockSubtitle     BlockType = "subtitle"
	BlockAudioSegment BlockType = "audio_segment"
)

// ContentBlock is a tagged variant over the block types. Only the fields
// relevant to the block's type are populated.
type ContentBlock struct {
	Type BlockType `json:"type"`

	// paragraph & audio_segment
	Sentences []string `json:"sentences,omitempty"`

	// heading & subtitle
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"`

	// image
	Path    string `json:"path,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`

	// audio_segment, seconds into the recording
	StartTime float64 `json:"start_time,omitempty"`
	EndTime   float64 `json:"end_time,omitempty"`
}

// HeadingLevel returns the block's heading level clamped to 1..6.
func (b *ContentBlock) HeadingLevel() int {
	if b.Level < 1 {
		return 1
	}
	if b.Level > 6 {
		return 6
	}
	return b.Level
}

// SentenceCount reports how many sentences the block contributes to the
// flattened global sentence index. Only paragraph and audio segment blocks
// carry sentences.
func (b *ContentBlock) SentenceCount() int {
	switch b.Type {
	case BlockParagraph, BlockAudioSegment:
		return len(b.Sentences)
	default:
		return 0
	}
}

// ContentBundle is one unit of readable or listenable content: an article,
// a book chapter, a podcast episode. Block order defines document order and
// is never mutated by renderers.
type ContentBundle struct {
	ID         string         `json:"id"`
	SourceType string         `json:"source_type"`
	Title      string         `json:"title"`
	Language   Language       `json:"language"`
	Blocks     []ContentBlock `json:"blocks,omitempty"`
	AudioURL   string         `json:"audio_url,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`

	// Sentences is the legacy flat form used by bundles ingested before
	// structured blocks existed. Renderers fall back to it when Blocks is empty.
	Sentences []string `json:"sentences,omitempty"`

	// Collocations holds externally detected phrase spans keyed by global
	// sentence index.
	Collocations map[int][]Collocation `json:"collocations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BaseSourceType resolves the bundle's compound source tag to its base type.
func (c *ContentBundle) BaseSourceType() SourceType {
	return ParseSourceType(c.SourceType)
}

// TotalSentences counts sentences across all blocks, falling back to the
// legacy flat list when no blocks are present.
func (c *ContentBundle) TotalSentences() int {
	if len(c.Blocks) == 0 {
		return len(c.Sentences)
	}
	total := 0
	for i := range c.Blocks {
		total += c.Blocks[i].SentenceCount()
	}
	return total
}

// HasAudioSegments reports whether the bundle carries at least one timed
// audio segment block.
func (c *ContentBundle) HasAudioSegments() bool {
	for i := range c.Blocks {
		if c.Blocks[i].Type == BlockAudioSegment {
			return true
		}
	}
	return false
}

// BundleFilter defines filtering options when listing bundles.
type BundleFilter struct {
	SourceType SourceType
	Keyword    string
}
