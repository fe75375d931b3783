package usecase

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
	"github.com/eslsoft/readflow/internal/usecase/render"
)

type fakeContentRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.ContentBundle
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: make(map[string]*entity.ContentBundle)}
}

func (r *fakeContentRepo) Create(ctx context.Context, bundle *entity.ContentBundle) (*entity.ContentBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *bundle
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeContentRepo) GetByID(ctx context.Context, id string) (*entity.ContentBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, entity.ErrBundleNotFound
	}
	copy := *item
	return &copy, nil
}

func (r *fakeContentRepo) List(ctx context.Context, query *repository.ListBundleQuery) ([]*entity.ContentBundle, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.ContentBundle
	for _, item := range r.items {
		if query.SourceType != entity.SourceTypeUnspecified && item.BaseSourceType() != query.SourceType {
			continue
		}
		copy := *item
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *fakeContentRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrBundleNotFound
	}
	delete(r.items, id)
	return nil
}

func newRegistryForTest() *render.Registry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	engine := annotate.NewAnnotator()
	registry := render.NewRegistry(logger)
	text := render.NewTextRenderer(engine)
	registry.RegisterAll([]render.Registration{
		{SourceType: entity.SourceTypeEpub, Renderer: text},
		{SourceType: entity.SourceTypeRSS, Renderer: text},
		{SourceType: entity.SourceTypePlainText, Renderer: text},
		{SourceType: entity.SourceTypeAudiobook, Renderer: render.NewAudioRenderer(engine)},
	})
	return registry
}

func newContentUsecaseForTest(t *testing.T) (ContentUsecase, StudyUsecase) {
	t.Helper()
	study, impl := newStudyUsecaseForTest(map[string]int32{"house": 1})
	impl.clock = time.Now
	uc := NewContentUsecase(newFakeContentRepo(), study, newRegistryForTest())
	return uc, study
}

func TestCreateBundleAssignsID(t *testing.T) {
	uc, _ := newContentUsecaseForTest(t)

	created, err := uc.CreateBundle(context.Background(), &entity.ContentBundle{
		SourceType: "epub:kids",
		Title:      "The Little Prince",
		Sentences:  []string{"The house stood alone."},
	})
	if err != nil {
		t.Fatalf("CreateBundle failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated bundle ID")
	}
	if created.Language != entity.LanguageEnglish {
		t.Errorf("expected language default en, got %q", created.Language)
	}

	fetched, err := uc.GetBundle(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetBundle failed: %v", err)
	}
	if fetched.Title != "The Little Prince" {
		t.Errorf("unexpected title %q", fetched.Title)
	}
}

func TestCreateBundleRejectsUnknownSourceType(t *testing.T) {
	uc, _ := newContentUsecaseForTest(t)
	_, err := uc.CreateBundle(context.Background(), &entity.ContentBundle{SourceType: "vhs"})
	if !errors.Is(err, entity.ErrInvalidSourceType) {
		t.Fatalf("expected ErrInvalidSourceType, got %v", err)
	}
}

func TestGetBundleRejectsMalformedID(t *testing.T) {
	uc, _ := newContentUsecaseForTest(t)
	_, err := uc.GetBundle(context.Background(), "not-a-uuid")
	if !errors.Is(err, entity.ErrInvalidBundleID) {
		t.Fatalf("expected ErrInvalidBundleID, got %v", err)
	}
}

func TestRenderBundleAnnotatesStudyWords(t *testing.T) {
	uc, study := newContentUsecaseForTest(t)

	if _, err := study.CollectWord(context.Background(), 1, &entity.StudyWord{Word: "ephemeral"}); err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}

	created, err := uc.CreateBundle(context.Background(), &entity.ContentBundle{
		SourceType: "plain_text",
		Sentences:  []string{"An ephemeral house appeared."},
	})
	if err != nil {
		t.Fatalf("CreateBundle failed: %v", err)
	}

	doc, err := uc.RenderBundle(context.Background(), &RenderRequest{
		BundleID:      created.ID,
		UserID:        1,
		ActiveSegment: -1,
	})
	if err != nil {
		t.Fatalf("RenderBundle failed: %v", err)
	}
	if doc.Renderer != "text" {
		t.Errorf("expected text renderer, got %q", doc.Renderer)
	}

	var foundStudy, foundVocab bool
	for _, block := range doc.Blocks {
		for _, sentence := range block.Sentences {
			for _, span := range sentence.Spans {
				if span.Kind != entity.SpanWord {
					continue
				}
				switch span.Word {
				case "ephemeral":
					foundStudy = span.Tier == entity.TierStudy
				case "house":
					foundVocab = span.Tier == entity.TierVocab
				}
			}
		}
	}
	if !foundStudy {
		t.Error("expected 'ephemeral' to render as a study word")
	}
	if !foundVocab {
		t.Error("expected 'house' to render as a vocabulary word")
	}
}

func TestRenderBundleNoRendererForComic(t *testing.T) {
	uc, _ := newContentUsecaseForTest(t)

	created, err := uc.CreateBundle(context.Background(), &entity.ContentBundle{
		SourceType: "comic",
		Sentences:  []string{"Pow!"},
	})
	if err != nil {
		t.Fatalf("CreateBundle failed: %v", err)
	}

	_, err = uc.RenderBundle(context.Background(), &RenderRequest{BundleID: created.ID, UserID: 1, ActiveSegment: -1})
	if !errors.Is(err, entity.ErrNoRenderer) {
		t.Fatalf("expected ErrNoRenderer for comic bundle, got %v", err)
	}

	renderer, err := uc.ResolveRenderer(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ResolveRenderer failed: %v", err)
	}
	if renderer != nil {
		t.Errorf("expected nil renderer for comic bundle, got %q", renderer.Name())
	}
}
