package render

import (
	"context"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
)

// AudioRenderer displays audiobook/podcast-style bundles. It normalizes the
// bundle's audio segment blocks into an ordered segment list, annotates each
// segment's sentences through the same engine as the text renderer, and marks
// the active segment reported by the external audio player. Playback position
// tracking and transport controls stay with the player collaborator.
type AudioRenderer struct {
	engine *annotate.Annotator
}

// NewAudioRenderer constructs an audio renderer over the given annotation engine.
func NewAudioRenderer(engine *annotate.Annotator) *AudioRenderer {
	return &AudioRenderer{engine: engine}
}

var _ Renderer = (*AudioRenderer)(nil)

func (r *AudioRenderer) Name() string { return "audio" }

// CanRender accepts audiobook bundles, or any bundle that carries both an
// audio URL and at least one timed audio segment. An "audiobook" tag alone is
// not enough: without segments there is nothing to synchronise against.
func (r *AudioRenderer) CanRender(bundle *entity.ContentBundle) bool {
	if bundle == nil {
		return false
	}
	if bundle.BaseSourceType() == entity.SourceTypeAudiobook {
		return bundle.HasAudioSegments()
	}
	return bundle.AudioURL != "" && bundle.HasAudioSegments()
}

func (r *AudioRenderer) Render(_ context.Context, req Request) (*entity.RenderedDocument, error) {
	bundle := req.Bundle
	if bundle == nil {
		return nil, entity.ErrNoRenderableContent
	}

	doc := &entity.RenderedDocument{
		BundleID: bundle.ID,
		Renderer: r.Name(),
		Title:    bundle.Title,
		AudioURL: bundle.AudioURL,
	}

	window := newSentenceWindow(req.Offset, req.Limit)
	segmentIdx := 0
	for i := range bundle.Blocks {
		block := &bundle.Blocks[i]
		if block.Type != entity.BlockAudioSegment {
			continue
		}
		sentences := annotateSentences(r.engine, block.Sentences, window, req)
		if len(sentences) == 0 && window.exhausted {
			segmentIdx++
			continue
		}
		doc.Segments = append(doc.Segments, entity.RenderedSegment{
			Index:     segmentIdx,
			Text:      block.Text,
			Sentences: sentences,
			StartTime: block.StartTime,
			EndTime:   block.EndTime,
			Active:    segmentIdx == req.ActiveSegment && req.ActiveSegment >= 0,
		})
		segmentIdx++
	}

	doc.TotalSentences = bundle.TotalSentences()
	doc.RenderedSentences = window.rendered
	doc.HasMore = window.offset+window.rendered < doc.TotalSentences
	return doc, nil
}
