package annotate

import (
	"reflect"
	"testing"

	"github.com/eslsoft/readflow/internal/entity"
)

func TestAnnotateSentence_StudiedPhraseScenario(t *testing.T) {
	in := SentenceInput{
		Text: "I really like peanut butter sandwiches.",
		Sets: entity.NewStudySets(
			[]string{"peanut"},
			nil,
			[]string{"peanut butter"},
			nil,
		),
		Collocations: []entity.Collocation{
			{Text: "peanut butter", StartWordIdx: 3, EndWordIdx: 4, Difficulty: 2},
		},
	}

	rendered := NewAnnotator().AnnotateSentence(in)

	var phrase *entity.RenderedSpan
	for i := range rendered.Spans {
		if rendered.Spans[i].Kind == entity.SpanPhrase {
			if phrase != nil {
				t.Fatal("expected a single phrase span")
			}
			phrase = &rendered.Spans[i]
		}
	}
	if phrase == nil {
		t.Fatal("expected a combined phrase span")
	}
	if phrase.Text != "peanut butter" {
		t.Fatalf("phrase text = %q, want %q", phrase.Text, "peanut butter")
	}
	if !phrase.Studied {
		t.Fatal("phrase should be rendered with studied-phrase styling")
	}

	// "peanut" must not appear as a separately highlighted word.
	for _, span := range rendered.Spans {
		if span.Kind == entity.SpanWord && span.Word == "peanut" {
			t.Fatal("peanut should be part of the phrase span, not standalone")
		}
		if span.Kind == entity.SpanWord && (span.Word == "really" || span.Word == "like" || span.Word == "sandwiches") {
			if span.Tier != entity.TierPlain {
				t.Fatalf("word %q should be plain, got tier %s", span.Word, span.Tier)
			}
		}
	}
}

func TestAnnotateSentence_OverlappingStudiedWins(t *testing.T) {
	in := SentenceInput{
		Text: "a b c d e",
		Sets: entity.NewStudySets(nil, nil, []string{"c d"}, nil),
		Collocations: []entity.Collocation{
			{Text: "b c", StartWordIdx: 1, EndWordIdx: 2},
			{Text: "c d", StartWordIdx: 2, EndWordIdx: 3},
		},
	}
	rendered := NewAnnotator().AnnotateSentence(in)

	phrases := 0
	for _, span := range rendered.Spans {
		if span.Kind == entity.SpanPhrase {
			phrases++
			if span.StartWordIdx != 2 || span.EndWordIdx != 3 {
				t.Fatalf("expected studied span [2,3], got [%d,%d]", span.StartWordIdx, span.EndWordIdx)
			}
		}
	}
	if phrases != 1 {
		t.Fatalf("the losing candidate must be dropped entirely, got %d phrase spans", phrases)
	}
}

func TestAnnotateSentence_KnownWordSuppression(t *testing.T) {
	in := SentenceInput{
		Text: "the ubiquitous cat",
		Sets: entity.NewStudySets(
			[]string{"ubiquitous"},
			[]string{"ubiquitous"},
			nil,
			[]string{"ubiquitous"},
		),
	}
	rendered := NewAnnotator().AnnotateSentence(in)
	for _, span := range rendered.Spans {
		if span.Word == "ubiquitous" && span.Tier != entity.TierPlain {
			t.Fatalf("known word must suppress highlighting, got tier %s", span.Tier)
		}
	}
}

func TestAnnotateSentence_StudyWordOutranksVocab(t *testing.T) {
	in := SentenceInput{
		Text: "a ubiquitous cat",
		Sets: entity.NewStudySets([]string{"ubiquitous"}, []string{"ubiquitous"}, nil, nil),
	}
	rendered := NewAnnotator().AnnotateSentence(in)
	for _, span := range rendered.Spans {
		if span.Word == "ubiquitous" && span.Tier != entity.TierStudy {
			t.Fatalf("study word must outrank vocab highlight, got tier %s", span.Tier)
		}
	}
}

func TestAnnotateSentence_Idempotent(t *testing.T) {
	build := func() SentenceInput {
		// Freshly constructed, value-equal inputs each call.
		return SentenceInput{
			Text:  "I gave up on the idea.",
			Index: 7,
			Sets:  entity.NewStudySets([]string{"idea"}, []string{"gave"}, []string{"gave up"}, nil),
			Collocations: []entity.Collocation{
				{Text: "gave up", StartWordIdx: 1, EndWordIdx: 2, Difficulty: 1, Confidence: 0.8},
			},
			Unclear: &entity.UnclearMark{Choice: entity.UnclearGrammar},
		}
	}

	engine := NewAnnotator()
	first := engine.AnnotateSentence(build())
	second := engine.AnnotateSentence(build())

	if first != second {
		t.Fatal("value-equal inputs should hit the memo cache")
	}
	if !reflect.DeepEqual(first.Spans, annotate(build()).Spans) {
		t.Fatal("memoized output must equal a fresh computation")
	}
}

func TestAnnotateSentence_WhitespacePreserved(t *testing.T) {
	text := "keep  the   spacing"
	rendered := NewAnnotator().AnnotateSentence(SentenceInput{Text: text, Sets: entity.NewStudySets(nil, nil, nil, nil)})

	var joined string
	for _, span := range rendered.Spans {
		joined += span.Text
	}
	if joined != text {
		t.Fatalf("reassembled %q, want %q", joined, text)
	}
}

func TestAnnotateSentence_PunctuationTokenPlain(t *testing.T) {
	rendered := NewAnnotator().AnnotateSentence(SentenceInput{Text: "wait — what?", Sets: entity.NewStudySets(nil, nil, nil, nil)})
	for _, span := range rendered.Spans {
		if span.Text == "—" && span.Kind != entity.SpanText {
			t.Fatalf("pure punctuation token should be plain text, got kind %s", span.Kind)
		}
	}
}

func TestAnnotateSentence_UnclearMarkCarried(t *testing.T) {
	mark := &entity.UnclearMark{Choice: entity.UnclearVocabulary, MaxSimplifyStage: 2}
	rendered := NewAnnotator().AnnotateSentence(SentenceInput{Text: "hard sentence", Index: 3, Sets: entity.NewStudySets(nil, nil, nil, nil), Unclear: mark})
	if rendered.Unclear == nil || rendered.Unclear.Choice != entity.UnclearVocabulary {
		t.Fatalf("unclear mark not carried: %+v", rendered.Unclear)
	}
	if rendered.Index != 3 {
		t.Fatalf("sentence index = %d, want 3", rendered.Index)
	}
}
