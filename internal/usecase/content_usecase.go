package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/eslsoft/readflow/internal/usecase/render"
)

// ContentUsecase encapsulates business logic for content bundles and their
// rendering into annotated span streams.
type ContentUsecase interface {
	CreateBundle(ctx context.Context, bundle *entity.ContentBundle) (*entity.ContentBundle, error)
	GetBundle(ctx context.Context, id string) (*entity.ContentBundle, error)
	ListBundles(ctx context.Context, query *repository.ListBundleQuery) ([]*entity.ContentBundle, int64, error)
	DeleteBundle(ctx context.Context, id string) error

	// ResolveRenderer reports which renderer would handle the bundle, or nil
	// when none accepts it.
	ResolveRenderer(ctx context.Context, id string) (render.Renderer, error)

	RenderBundle(ctx context.Context, req *RenderRequest) (*entity.RenderedDocument, error)
}

// RenderRequest carries the parameters of one render call.
type RenderRequest struct {
	BundleID string
	UserID   int64

	// Offset/Limit window the sentence stream for progressive reveal;
	// Limit zero means everything.
	Offset int
	Limit  int

	// ActiveSegment is the audio player's active segment index, -1 when
	// no segment is active.
	ActiveSegment int
}

// NewContentUsecase wires the repositories and the renderer registry.
func NewContentUsecase(
	bundles repository.ContentRepository,
	study StudyUsecase,
	registry *render.Registry,
) ContentUsecase {
	return &contentUsecase{
		bundles:  bundles,
		study:    study,
		registry: registry,
		clock:    time.Now,
	}
}

type contentUsecase struct {
	bundles  repository.ContentRepository
	study    StudyUsecase
	registry *render.Registry
	clock    func() time.Time
}

func (u *contentUsecase) CreateBundle(ctx context.Context, bundle *entity.ContentBundle) (*entity.ContentBundle, error) {
	if bundle == nil {
		return nil, entity.ErrNoRenderableContent
	}
	if entity.ParseSourceType(bundle.SourceType) == entity.SourceTypeUnspecified {
		return nil, entity.ErrInvalidSourceType
	}

	copy := *bundle
	copy.SourceType = strings.ToLower(strings.TrimSpace(copy.SourceType))
	if copy.ID == "" {
		copy.ID = uuid.NewString()
	}
	if copy.Language == entity.LanguageUnspecified {
		copy.Language = entity.LanguageEnglish
	}
	now := u.clock()
	copy.CreatedAt = now
	copy.UpdatedAt = now

	return u.bundles.Create(ctx, &copy)
}

func (u *contentUsecase) GetBundle(ctx context.Context, id string) (*entity.ContentBundle, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrInvalidBundleID
	}
	return u.bundles.GetByID(ctx, id)
}

func (u *contentUsecase) ListBundles(ctx context.Context, query *repository.ListBundleQuery) ([]*entity.ContentBundle, int64, error) {
	query.Normalize()
	return u.bundles.List(ctx, query)
}

func (u *contentUsecase) DeleteBundle(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return entity.ErrInvalidBundleID
	}
	return u.bundles.Delete(ctx, id)
}

func (u *contentUsecase) ResolveRenderer(ctx context.Context, id string) (render.Renderer, error) {
	bundle, err := u.GetBundle(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.registry.RendererForBundle(bundle), nil
}

func (u *contentUsecase) RenderBundle(ctx context.Context, req *RenderRequest) (*entity.RenderedDocument, error) {
	if req == nil {
		return nil, entity.ErrInvalidBundleID
	}
	if req.UserID <= 0 {
		return nil, entity.ErrInvalidUserID
	}

	bundle, err := u.GetBundle(ctx, req.BundleID)
	if err != nil {
		return nil, err
	}

	renderer := u.registry.RendererForBundle(bundle)
	if renderer == nil {
		return nil, entity.ErrNoRenderer
	}

	sets, err := u.study.SetsForUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	unclear, err := u.study.UnclearForBundle(ctx, req.UserID, bundle.ID)
	if err != nil {
		return nil, err
	}

	return renderer.Render(ctx, render.Request{
		Bundle:        bundle,
		Sets:          sets,
		Unclear:       unclear,
		Offset:        req.Offset,
		Limit:         req.Limit,
		ActiveSegment: req.ActiveSegment,
	})
}
