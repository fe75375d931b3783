package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/readflow/internal/adapter/http/response"
	"github.com/eslsoft/readflow/internal/adapter/mapping"
	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/eslsoft/readflow/internal/usecase"
)

// BundleHandler serves the content bundle endpoints, including rendering.
type BundleHandler struct {
	log     logrus.FieldLogger
	content usecase.ContentUsecase
}

func NewBundleHandler(log logrus.FieldLogger, content usecase.ContentUsecase) *BundleHandler {
	return &BundleHandler{
		log:     log.WithField("handler", "BundleHandler"),
		content: content,
	}
}

func (h *BundleHandler) Create(c *gin.Context) {
	var bundle entity.ContentBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.content.CreateBundle(c.Request.Context(), &bundle)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondCreated(c, created)
}

func (h *BundleHandler) List(c *gin.Context) {
	query := &repository.ListBundleQuery{
		Pagination: repository.Pagination{
			PageNo:   queryInt32(c, "page_no", 0),
			PageSize: queryInt32(c, "page_size", 0),
		},
		SourceType: entity.ParseSourceType(c.Query("source_type")),
		Keyword:    c.Query("keyword"),
	}
	bundles, total, err := h.content.ListBundles(c.Request.Context(), query)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"bundles": mapping.FromBundleSummaries(bundles),
		"total":   total,
	})
}

func (h *BundleHandler) Get(c *gin.Context) {
	bundle, err := h.content.GetBundle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, bundle)
}

func (h *BundleHandler) Delete(c *gin.Context) {
	if err := h.content.DeleteBundle(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

// Render returns the annotated, display-ready form of a bundle for one
// learner. Offset and limit window the sentence stream; active_segment
// marks the audio player's position, -1 when idle.
func (h *BundleHandler) Render(c *gin.Context) {
	req := &usecase.RenderRequest{
		BundleID:      c.Param("id"),
		UserID:        queryInt64(c, "user_id", 0),
		Offset:        queryInt(c, "offset", 0),
		Limit:         queryInt(c, "limit", 0),
		ActiveSegment: queryInt(c, "active_segment", -1),
	}
	doc, err := h.content.RenderBundle(c.Request.Context(), req)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, doc)
}

// Renderer reports which renderer would handle the bundle. A bundle no
// renderer accepts is a regular answer here, not an error.
func (h *BundleHandler) Renderer(c *gin.Context) {
	renderer, err := h.content.ResolveRenderer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	if renderer == nil {
		response.RespondOK(c, gin.H{"supported": false})
		return
	}
	response.RespondOK(c, gin.H{"supported": true, "renderer": renderer.Name()})
}
