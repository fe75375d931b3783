package render

import (
	"context"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
)

// TextRenderer displays text-oriented bundles: epub chapters, RSS articles
// and plain text. It walks blocks in order keeping a running global sentence
// index, supports windowed (progressive-reveal) rendering, and falls back to
// the legacy flat sentence list for bundles ingested before structured blocks
// existed.
type TextRenderer struct {
	engine *annotate.Annotator
}

// NewTextRenderer constructs a text renderer over the given annotation engine.
func NewTextRenderer(engine *annotate.Annotator) *TextRenderer {
	return &TextRenderer{engine: engine}
}

var _ Renderer = (*TextRenderer)(nil)

func (r *TextRenderer) Name() string { return "text" }

// CanRender accepts bundles whose base source type is textual and which carry
// either structured blocks or the legacy sentence list.
func (r *TextRenderer) CanRender(bundle *entity.ContentBundle) bool {
	if bundle == nil {
		return false
	}
	switch bundle.BaseSourceType() {
	case entity.SourceTypeEpub, entity.SourceTypeRSS, entity.SourceTypePlainText:
		return len(bundle.Blocks) > 0 || len(bundle.Sentences) > 0
	default:
		return false
	}
}

func (r *TextRenderer) Render(_ context.Context, req Request) (*entity.RenderedDocument, error) {
	bundle := req.Bundle
	if bundle == nil {
		return nil, entity.ErrNoRenderableContent
	}

	doc := &entity.RenderedDocument{
		BundleID: bundle.ID,
		Renderer: r.Name(),
		Title:    bundle.Title,
	}

	if len(bundle.Blocks) == 0 {
		if len(bundle.Sentences) == 0 {
			// Upstream data may legitimately be empty (an article still
			// being ingested); render nothing rather than failing.
			return doc, nil
		}
		return r.renderLegacy(doc, req), nil
	}

	window := newSentenceWindow(req.Offset, req.Limit)
	for i := range bundle.Blocks {
		block := &bundle.Blocks[i]
		switch block.Type {
		case entity.BlockParagraph, entity.BlockAudioSegment:
			sentences := annotateSentences(r.engine, block.Sentences, window, req)
			if len(sentences) > 0 {
				doc.Blocks = append(doc.Blocks, entity.RenderedBlock{
					Type:      entity.BlockParagraph,
					Sentences: sentences,
				})
			}
		case entity.BlockHeading, entity.BlockSubtitle:
			if window.exhausted {
				continue
			}
			doc.Blocks = append(doc.Blocks, entity.RenderedBlock{
				Type:  block.Type,
				Text:  block.Text,
				Level: block.HeadingLevel(),
			})
		case entity.BlockImage:
			if window.exhausted {
				continue
			}
			doc.Blocks = append(doc.Blocks, entity.RenderedBlock{
				Type:    entity.BlockImage,
				Path:    block.Path,
				Alt:     block.Alt,
				Caption: block.Caption,
			})
		}
	}

	doc.TotalSentences = bundle.TotalSentences()
	doc.RenderedSentences = window.rendered
	doc.HasMore = window.offset+window.rendered < doc.TotalSentences
	return doc, nil
}

func (r *TextRenderer) renderLegacy(doc *entity.RenderedDocument, req Request) *entity.RenderedDocument {
	window := newSentenceWindow(req.Offset, req.Limit)
	sentences := annotateSentences(r.engine, req.Bundle.Sentences, window, req)
	if len(sentences) > 0 {
		doc.Blocks = append(doc.Blocks, entity.RenderedBlock{
			Type:      entity.BlockParagraph,
			Sentences: sentences,
		})
	}
	doc.TotalSentences = len(req.Bundle.Sentences)
	doc.RenderedSentences = window.rendered
	doc.HasMore = window.offset+window.rendered < doc.TotalSentences
	return doc
}
