package render

import (
	"context"
	"testing"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/sirupsen/logrus"
)

type stubRenderer struct {
	name    string
	accepts func(*entity.ContentBundle) bool
}

func (s *stubRenderer) Name() string { return s.name }
func (s *stubRenderer) CanRender(b *entity.ContentBundle) bool {
	if s.accepts == nil {
		return true
	}
	return s.accepts(b)
}
func (s *stubRenderer) Render(context.Context, Request) (*entity.RenderedDocument, error) {
	return &entity.RenderedDocument{Renderer: s.name}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRegistry_ExactMatch(t *testing.T) {
	reg := NewRegistry(quietLogger())
	text := &stubRenderer{name: "text"}
	reg.Register(entity.SourceTypeEpub, text)

	bundle := &entity.ContentBundle{SourceType: "epub:dracula.epub:3"}
	if got := reg.RendererForBundle(bundle); got != Renderer(text) {
		t.Fatalf("expected exact match on compound source type, got %v", got)
	}
}

func TestRegistry_ExactMatchGatedByCanRender(t *testing.T) {
	reg := NewRegistry(quietLogger())
	audiobook := &stubRenderer{name: "audio", accepts: func(b *entity.ContentBundle) bool {
		return b.HasAudioSegments()
	}}
	probe := &stubRenderer{name: "probe"}
	reg.Register(entity.SourceTypeAudiobook, audiobook)
	reg.Register(entity.SourceTypePlainText, probe)

	// Registered type but the concrete bundle does not qualify: the probe
	// phase must take over.
	bundle := &entity.ContentBundle{SourceType: "audiobook"}
	if got := reg.RendererForBundle(bundle); got != Renderer(probe) {
		t.Fatalf("expected probe fallback, got %v", got)
	}
}

func TestRegistry_ProbeInRegistrationOrder(t *testing.T) {
	reg := NewRegistry(quietLogger())
	first := &stubRenderer{name: "first"}
	second := &stubRenderer{name: "second"}
	reg.RegisterAll([]Registration{
		{entity.SourceTypeEpub, first},
		{entity.SourceTypeRSS, second},
	})

	bundle := &entity.ContentBundle{SourceType: "comic"}
	if got := reg.RendererForBundle(bundle); got != Renderer(first) {
		t.Fatalf("first registered renderer should win the probe, got %v", got)
	}
}

func TestRegistry_NoMatchReturnsNil(t *testing.T) {
	reg := NewRegistry(quietLogger())
	rejectAll := func(*entity.ContentBundle) bool { return false }
	text := &stubRenderer{name: "text", accepts: rejectAll}
	reg.RegisterAll([]Registration{
		{entity.SourceTypeEpub, text},
		{entity.SourceTypeRSS, text},
	})
	reg.SetFallback(&stubRenderer{name: "fallback", accepts: rejectAll})

	bundle := &entity.ContentBundle{SourceType: "comic"}
	if got := reg.RendererForBundle(bundle); got != nil {
		t.Fatalf("expected nil for unrenderable bundle, got %v", got)
	}
}

func TestRegistry_FallbackGatedByCanRender(t *testing.T) {
	reg := NewRegistry(quietLogger())
	fallback := &stubRenderer{name: "fallback"}
	reg.SetFallback(fallback)

	bundle := &entity.ContentBundle{SourceType: "comic"}
	if got := reg.RendererForBundle(bundle); got != Renderer(fallback) {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestRegistry_ResolutionDeterministic(t *testing.T) {
	reg := NewRegistry(quietLogger())
	a := &stubRenderer{name: "a"}
	b := &stubRenderer{name: "b"}
	reg.Register(entity.SourceTypeEpub, a)
	reg.Register(entity.SourceTypeRSS, b)

	bundle := &entity.ContentBundle{SourceType: "epub"}
	first := reg.RendererForBundle(bundle)
	second := reg.RendererForBundle(bundle)
	if first != second {
		t.Fatal("resolution must return the same renderer for the same bundle")
	}
}

func TestRegistry_OverwriteKeepsProbeOrder(t *testing.T) {
	reg := NewRegistry(quietLogger())
	a := &stubRenderer{name: "a"}
	b := &stubRenderer{name: "b"}
	reg.Register(entity.SourceTypeEpub, a)
	reg.Register(entity.SourceTypeEpub, b)

	if types := reg.SupportedTypes(); len(types) != 1 || types[0] != entity.SourceTypeEpub {
		t.Fatalf("overwrite should not duplicate registration order: %v", types)
	}
	if got := reg.Renderer(entity.SourceTypeEpub); got != Renderer(b) {
		t.Fatalf("overwrite should replace the mapping, got %v", got)
	}
}

func TestRegistry_Introspection(t *testing.T) {
	reg := NewRegistry(quietLogger())
	reg.Register(entity.SourceTypeEpub, &stubRenderer{name: "text"})

	if !reg.IsSupported(entity.SourceTypeEpub) {
		t.Fatal("epub should be supported")
	}
	if reg.IsSupported(entity.SourceTypeComic) {
		t.Fatal("comic should not be supported")
	}

	reg.Clear()
	if len(reg.SupportedTypes()) != 0 {
		t.Fatal("clear should reset registrations")
	}
	if reg.RendererForBundle(&entity.ContentBundle{SourceType: "epub"}) != nil {
		t.Fatal("cleared registry should resolve nothing")
	}
}
