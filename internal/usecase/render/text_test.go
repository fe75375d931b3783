package render

import (
	"context"
	"testing"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
)

func textBundle() *entity.ContentBundle {
	return &entity.ContentBundle{
		ID:         "b1",
		SourceType: "epub:dracula.epub:0",
		Title:      "Chapter 1",
		Blocks: []entity.ContentBlock{
			{Type: entity.BlockHeading, Text: "Chapter 1", Level: 9},
			{Type: entity.BlockParagraph, Sentences: []string{"First sentence.", "Second sentence."}},
			{Type: entity.BlockImage, Path: "img/castle.png", Alt: "castle"},
			{Type: entity.BlockParagraph, Sentences: []string{"Third sentence.", "Fourth sentence.", "Fifth sentence."}},
		},
	}
}

func emptySets() entity.StudySets {
	return entity.NewStudySets(nil, nil, nil, nil)
}

func TestTextRenderer_GlobalSentenceIndex(t *testing.T) {
	r := NewTextRenderer(annotate.NewAnnotator())
	doc, err := r.Render(context.Background(), Request{Bundle: textBundle(), Sets: emptySets(), ActiveSegment: -1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var indices []int
	for _, block := range doc.Blocks {
		for _, s := range block.Sentences {
			indices = append(indices, s.Index)
		}
	}
	want := []int{0, 1, 2, 3, 4}
	if len(indices) != len(want) {
		t.Fatalf("expected %d sentences, got %d", len(want), len(indices))
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Fatalf("sentence %d has global index %d, want %d", i, indices[i], want[i])
		}
	}
	if doc.TotalSentences != 5 || doc.HasMore {
		t.Fatalf("totals wrong: total=%d hasMore=%v", doc.TotalSentences, doc.HasMore)
	}
}

func TestTextRenderer_HeadingLevelClamped(t *testing.T) {
	r := NewTextRenderer(annotate.NewAnnotator())
	doc, err := r.Render(context.Background(), Request{Bundle: textBundle(), Sets: emptySets()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.Blocks[0].Type != entity.BlockHeading || doc.Blocks[0].Level != 6 {
		t.Fatalf("heading level should clamp to 6, got %+v", doc.Blocks[0])
	}
}

func TestTextRenderer_ProgressiveRevealWindow(t *testing.T) {
	r := NewTextRenderer(annotate.NewAnnotator())
	doc, err := r.Render(context.Background(), Request{Bundle: textBundle(), Sets: emptySets(), Limit: 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.RenderedSentences != 3 {
		t.Fatalf("rendered %d sentences, want 3", doc.RenderedSentences)
	}
	if !doc.HasMore {
		t.Fatal("window should report more sentences available")
	}

	// Next window keeps global indices intact.
	doc, err = r.Render(context.Background(), Request{Bundle: textBundle(), Sets: emptySets(), Offset: 3, Limit: 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	first := doc.Blocks[len(doc.Blocks)-1].Sentences[0]
	if first.Index != 3 {
		t.Fatalf("offset window should resume at global index 3, got %d", first.Index)
	}
	if doc.HasMore {
		t.Fatal("final window should not report more")
	}
}

func TestTextRenderer_UnclearMarkLookupByGlobalIndex(t *testing.T) {
	r := NewTextRenderer(annotate.NewAnnotator())
	req := Request{
		Bundle: textBundle(),
		Sets:   emptySets(),
		Unclear: map[int]entity.UnclearMark{
			3: {Choice: entity.UnclearBoth, MaxSimplifyStage: 1},
		},
	}
	doc, err := r.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	found := false
	for _, block := range doc.Blocks {
		for _, s := range block.Sentences {
			if s.Index == 3 {
				found = true
				if s.Unclear == nil || s.Unclear.Choice != entity.UnclearBoth {
					t.Fatalf("sentence 3 should carry the unclear mark, got %+v", s.Unclear)
				}
			} else if s.Unclear != nil {
				t.Fatalf("sentence %d should not carry an unclear mark", s.Index)
			}
		}
	}
	if !found {
		t.Fatal("sentence 3 missing from output")
	}
}

func TestTextRenderer_LegacySentencesFallback(t *testing.T) {
	r := NewTextRenderer(annotate.NewAnnotator())
	bundle := &entity.ContentBundle{
		ID:         "legacy",
		SourceType: "rss",
		Sentences:  []string{"One.", "Two."},
	}
	if !r.CanRender(bundle) {
		t.Fatal("legacy flat-sentence bundles should be renderable")
	}
	doc, err := r.Render(context.Background(), Request{Bundle: bundle, Sets: emptySets()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if doc.TotalSentences != 2 || len(doc.Blocks) != 1 || len(doc.Blocks[0].Sentences) != 2 {
		t.Fatalf("legacy render wrong: %+v", doc)
	}
}

func TestTextRenderer_EmptyBundleRendersNothing(t *testing.T) {
	r := NewTextRenderer(annotate.NewAnnotator())
	bundle := &entity.ContentBundle{ID: "empty", SourceType: "plain_text"}
	doc, err := r.Render(context.Background(), Request{Bundle: bundle, Sets: emptySets()})
	if err != nil {
		t.Fatalf("empty bundle must degrade gracefully, got err: %v", err)
	}
	if len(doc.Blocks) != 0 || doc.TotalSentences != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}

func TestTextRenderer_CanRender(t *testing.T) {
	r := NewTextRenderer(annotate.NewAnnotator())
	cases := []struct {
		sourceType string
		blocks     int
		want       bool
	}{
		{"epub", 1, true},
		{"rss", 1, true},
		{"plain_text", 1, true},
		{"epub:file.epub:2", 1, true},
		{"comic", 1, false},
		{"audiobook", 1, false},
		{"epub", 0, false},
	}
	for _, tc := range cases {
		bundle := &entity.ContentBundle{SourceType: tc.sourceType}
		for i := 0; i < tc.blocks; i++ {
			bundle.Blocks = append(bundle.Blocks, entity.ContentBlock{Type: entity.BlockParagraph, Sentences: []string{"x."}})
		}
		if got := r.CanRender(bundle); got != tc.want {
			t.Errorf("CanRender(%q, %d blocks) = %v, want %v", tc.sourceType, tc.blocks, got, tc.want)
		}
	}
}
