package render

import (
	"context"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
)

// Request carries a bundle plus the per-user annotation state needed to
// produce its displayable form. The renderer reads the bundle and the
// annotation inputs separately and never mutates either.
type Request struct {
	Bundle *entity.ContentBundle
	Sets   entity.StudySets

	// Unclear maps global sentence index to the learner's unclear flag.
	Unclear map[int]entity.UnclearMark

	// Limit caps how many sentences are rendered (progressive reveal);
	// zero means render everything. Offset skips sentences from the start
	// while keeping global indices intact.
	Offset int
	Limit  int

	// ActiveSegment is the audio player's reported active segment index;
	// negative when no segment is playing.
	ActiveSegment int
}

// Renderer is the strategy contract every renderer variant implements.
// CanRender must be a pure predicate over the bundle's shape so that
// registry resolution stays deterministic and repeatable.
type Renderer interface {
	Name() string
	CanRender(bundle *entity.ContentBundle) bool
	Render(ctx context.Context, req Request) (*entity.RenderedDocument, error)
}

// sentenceWindow tracks the offset/limit window over the flattened global
// sentence index during a block walk.
type sentenceWindow struct {
	offset    int
	limit     int
	next      int // next global sentence index
	rendered  int
	skipped   int
	exhausted bool
}

func newSentenceWindow(offset, limit int) *sentenceWindow {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return &sentenceWindow{offset: offset, limit: limit}
}

// take claims the next global sentence index. The second return reports
// whether the sentence falls inside the render window.
func (w *sentenceWindow) take() (int, bool) {
	idx := w.next
	w.next++
	if idx < w.offset {
		w.skipped++
		return idx, false
	}
	if w.limit > 0 && w.rendered >= w.limit {
		w.exhausted = true
		return idx, false
	}
	w.rendered++
	return idx, true
}

func annotateSentences(engine *annotate.Annotator, sentences []string, window *sentenceWindow, req Request) []entity.RenderedSentence {
	out := make([]entity.RenderedSentence, 0, len(sentences))
	for _, text := range sentences {
		idx, visible := window.take()
		if !visible {
			continue
		}
		var unclear *entity.UnclearMark
		if mark, ok := req.Unclear[idx]; ok {
			m := mark
			unclear = &m
		}
		out = append(out, *engine.AnnotateSentence(annotate.SentenceInput{
			Text:         text,
			Index:        idx,
			Sets:         req.Sets,
			Collocations: req.Bundle.Collocations[idx],
			Unclear:      unclear,
		}))
	}
	return out
}
