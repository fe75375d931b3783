package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/eslsoft/readflow/internal/adapter/http/handlers"
	httpMW "github.com/eslsoft/readflow/internal/adapter/http/middleware"
)

type RouterConfig struct {
	BundleHandler *httpH.BundleHandler
	StudyHandler  *httpH.StudyHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger())
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Bundles & rendering
		if cfg.BundleHandler != nil {
			api.POST("/bundles", cfg.BundleHandler.Create)
			api.GET("/bundles", cfg.BundleHandler.List)
			api.GET("/bundles/:id", cfg.BundleHandler.Get)
			api.DELETE("/bundles/:id", cfg.BundleHandler.Delete)
			api.GET("/bundles/:id/render", cfg.BundleHandler.Render)
			api.GET("/bundles/:id/renderer", cfg.BundleHandler.Renderer)
		}

		// Study words & phrases
		if cfg.StudyHandler != nil {
			api.POST("/study/words", cfg.StudyHandler.CollectWord)
			api.GET("/study/words", cfg.StudyHandler.ListWords)
			api.POST("/study/words/:id/known", cfg.StudyHandler.MarkWordKnown)
			api.DELETE("/study/words/:id", cfg.StudyHandler.DeleteWord)
			api.POST("/study/phrases", cfg.StudyHandler.CollectPhrase)
			api.GET("/study/phrases", cfg.StudyHandler.ListPhrases)
			api.DELETE("/study/phrases/:id", cfg.StudyHandler.DeletePhrase)

			// Unclear flags, addressed per bundle sentence
			api.GET("/bundles/:id/unclear", cfg.StudyHandler.ListUnclear)
			api.PUT("/bundles/:id/unclear/:idx", cfg.StudyHandler.MarkUnclear)
			api.DELETE("/bundles/:id/unclear/:idx", cfg.StudyHandler.ClearUnclear)
		}
	}

	return r
}
