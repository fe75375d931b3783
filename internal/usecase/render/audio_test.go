package render

import (
	"context"
	"testing"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
)

func audioBundle() *entity.ContentBundle {
	return &entity.ContentBundle{
		ID:         "a1",
		SourceType: "audiobook",
		Title:      "Episode 12",
		AudioURL:   "https://cdn.example.com/ep12.mp3",
		Blocks: []entity.ContentBlock{
			{Type: entity.BlockAudioSegment, Text: "Welcome back.", Sentences: []string{"Welcome back."}, StartTime: 0, EndTime: 4.5},
			{Type: entity.BlockAudioSegment, Text: "Today we talk about idioms.", Sentences: []string{"Today we talk about idioms."}, StartTime: 4.5, EndTime: 11},
		},
	}
}

func TestAudioRenderer_CanRender(t *testing.T) {
	r := NewAudioRenderer(annotate.NewAnnotator())

	if !r.CanRender(audioBundle()) {
		t.Fatal("audiobook with segments should be renderable")
	}
	// An audiobook entry without segments does not qualify.
	if r.CanRender(&entity.ContentBundle{SourceType: "audiobook"}) {
		t.Fatal("audiobook without segments should not be renderable")
	}
	// Any bundle with audio URL plus segments qualifies.
	podcast := audioBundle()
	podcast.SourceType = "podcast"
	if !r.CanRender(podcast) {
		t.Fatal("podcast with audio URL and segments should be renderable")
	}
	podcast.AudioURL = ""
	if r.CanRender(podcast) {
		t.Fatal("non-audiobook bundle without audio URL should not be renderable")
	}
}

func TestAudioRenderer_SegmentsNormalizedAndActive(t *testing.T) {
	r := NewAudioRenderer(annotate.NewAnnotator())
	doc, err := r.Render(context.Background(), Request{Bundle: audioBundle(), Sets: emptySets(), ActiveSegment: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(doc.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(doc.Segments))
	}
	if doc.Segments[0].Active || !doc.Segments[1].Active {
		t.Fatalf("segment 1 should be active: %+v", doc.Segments)
	}
	if doc.Segments[1].Index != 1 || doc.Segments[1].StartTime != 4.5 {
		t.Fatalf("segment normalization wrong: %+v", doc.Segments[1])
	}
	if doc.AudioURL == "" {
		t.Fatal("document should carry the bundle audio URL")
	}
}

func TestAudioRenderer_SegmentsShareGlobalSentenceIndex(t *testing.T) {
	r := NewAudioRenderer(annotate.NewAnnotator())
	doc, err := r.Render(context.Background(), Request{
		Bundle: audioBundle(),
		Sets:   emptySets(),
		Unclear: map[int]entity.UnclearMark{
			1: {Choice: entity.UnclearVocabulary},
		},
		ActiveSegment: -1,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second := doc.Segments[1].Sentences[0]
	if second.Index != 1 {
		t.Fatalf("second segment sentence should have global index 1, got %d", second.Index)
	}
	if second.Unclear == nil || second.Unclear.Choice != entity.UnclearVocabulary {
		t.Fatalf("unclear mark should resolve by global index: %+v", second.Unclear)
	}
}
