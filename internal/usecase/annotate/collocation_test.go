package annotate

import (
	"testing"

	"github.com/eslsoft/readflow/internal/entity"
)

func TestResolveCollocations_OverlapFreedom(t *testing.T) {
	candidates := []entity.Collocation{
		{Text: "a b", StartWordIdx: 0, EndWordIdx: 1, Confidence: 0.9},
		{Text: "b c", StartWordIdx: 1, EndWordIdx: 2, Confidence: 0.8},
		{Text: "d e", StartWordIdx: 3, EndWordIdx: 4, Confidence: 0.5},
	}
	accepted := ResolveCollocations(candidates, 5, nil)

	seen := make(map[int]bool)
	for _, span := range accepted {
		for w := span.StartWordIdx; w <= span.EndWordIdx; w++ {
			if seen[w] {
				t.Fatalf("word index %d claimed by two spans", w)
			}
			seen[w] = true
		}
	}
	if len(accepted) != 2 {
		t.Fatalf("expected 2 accepted spans, got %d", len(accepted))
	}
}

func TestResolveCollocations_StudiedOutranksDetected(t *testing.T) {
	// Two overlapping candidates of equal length; the studied one must win
	// regardless of confidence.
	candidates := []entity.Collocation{
		{Text: "give up", StartWordIdx: 1, EndWordIdx: 2, Confidence: 0.99},
		{Text: "up on", StartWordIdx: 2, EndWordIdx: 3, Confidence: 0.1},
	}
	studied := NormalizePhraseSet(map[string]struct{}{"up on": {}})

	accepted := ResolveCollocations(candidates, 5, studied)
	if len(accepted) != 1 {
		t.Fatalf("expected exactly 1 accepted span, got %d", len(accepted))
	}
	if accepted[0].StartWordIdx != 2 || accepted[0].EndWordIdx != 3 {
		t.Fatalf("expected studied span [2,3], got [%d,%d]", accepted[0].StartWordIdx, accepted[0].EndWordIdx)
	}
	if !accepted[0].Studied {
		t.Fatal("accepted span should carry the studied flag")
	}
}

func TestResolveCollocations_LongerSpanPreferred(t *testing.T) {
	candidates := []entity.Collocation{
		{Text: "b c", StartWordIdx: 1, EndWordIdx: 2, Confidence: 0.99},
		{Text: "a b c", StartWordIdx: 0, EndWordIdx: 2, Confidence: 0.1},
	}
	accepted := ResolveCollocations(candidates, 3, nil)
	if len(accepted) != 1 || accepted[0].StartWordIdx != 0 {
		t.Fatalf("expected longer span [0,2], got %+v", accepted)
	}
}

func TestResolveCollocations_MalformedSpansSkipped(t *testing.T) {
	candidates := []entity.Collocation{
		{Text: "bad", StartWordIdx: -1, EndWordIdx: 1},
		{Text: "bad", StartWordIdx: 3, EndWordIdx: 2},
		{Text: "bad", StartWordIdx: 2, EndWordIdx: 99},
		{Text: "ok", StartWordIdx: 0, EndWordIdx: 1},
	}
	accepted := ResolveCollocations(candidates, 4, nil)
	if len(accepted) != 1 || accepted[0].Text != "ok" {
		t.Fatalf("expected only the well-formed span, got %+v", accepted)
	}
}
