package app

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	adapterhttp "github.com/eslsoft/readflow/internal/adapter/http"
	httpH "github.com/eslsoft/readflow/internal/adapter/http/handlers"
	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/infrastructure/config"
	"github.com/eslsoft/readflow/internal/infrastructure/server"
	"github.com/eslsoft/readflow/internal/usecase"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
	"github.com/eslsoft/readflow/internal/usecase/render"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger *logrus.Logger
	Server *server.Server
}

func provideVocabTier(cfg *config.Config) int32 {
	return cfg.Render.VocabTier
}

// provideRenderRegistry assembles the production renderer set. Comic bundles
// stay unregistered: no renderer handles them yet, so resolution reports
// them as unsupported.
func provideRenderRegistry(logger *logrus.Logger) *render.Registry {
	engine := annotate.NewAnnotator()
	registry := render.NewRegistry(logger)

	text := render.NewTextRenderer(engine)
	audio := render.NewAudioRenderer(engine)
	registry.RegisterAll([]render.Registration{
		{SourceType: entity.SourceTypeEpub, Renderer: text},
		{SourceType: entity.SourceTypeRSS, Renderer: text},
		{SourceType: entity.SourceTypePlainText, Renderer: text},
		{SourceType: entity.SourceTypeAudiobook, Renderer: audio},
		{SourceType: entity.SourceTypePodcast, Renderer: audio},
	})
	return registry
}

func provideRouter(logger *logrus.Logger, content usecase.ContentUsecase, study usecase.StudyUsecase) *gin.Engine {
	return adapterhttp.NewRouter(adapterhttp.RouterConfig{
		BundleHandler: httpH.NewBundleHandler(logger, content),
		StudyHandler:  httpH.NewStudyHandler(logger, study),
		HealthHandler: httpH.NewHealthHandler(),
	})
}
