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

// StudyHandler serves the study word, study phrase and unclear sentence
// endpoints.
type StudyHandler struct {
	log   logrus.FieldLogger
	study usecase.StudyUsecase
}

func NewStudyHandler(log logrus.FieldLogger, study usecase.StudyUsecase) *StudyHandler {
	return &StudyHandler{
		log:   log.WithField("handler", "StudyHandler"),
		study: study,
	}
}

type collectWordRequest struct {
	UserID   int64  `json:"user_id"`
	Word     string `json:"word"`
	Language string `json:"language"`
	Notes    string `json:"notes"`
}

func (h *StudyHandler) CollectWord(c *gin.Context) {
	var req collectWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	word := &entity.StudyWord{
		Word:     req.Word,
		Language: entity.ParseLanguage(req.Language),
		Notes:    req.Notes,
	}
	collected, err := h.study.CollectWord(c.Request.Context(), req.UserID, word)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, mapping.FromStudyWord(collected))
}

func (h *StudyHandler) ListWords(c *gin.Context) {
	kind := entity.StudyWordKind(c.DefaultQuery("kind", string(entity.StudyKindStudy)))
	query := &repository.ListStudyWordQuery{
		Pagination: repository.Pagination{
			PageNo:   queryInt32(c, "page_no", 0),
			PageSize: queryInt32(c, "page_size", 0),
		},
		FilterOrder: repository.FilterOrder{
			Filter:  c.Query("filter"),
			OrderBy: c.Query("order_by"),
		},
		UserID: queryInt64(c, "user_id", 0),
		Kind:   kind,
	}
	words, total, err := h.study.ListStudyWords(c.Request.Context(), query)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"words": mapping.FromStudyWords(words),
		"total": total,
	})
}

func (h *StudyHandler) MarkWordKnown(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	word, err := h.study.MarkWordKnown(c.Request.Context(), queryInt64(c, "user_id", 0), id)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, mapping.FromStudyWord(word))
}

func (h *StudyHandler) DeleteWord(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.study.DeleteStudyWord(c.Request.Context(), queryInt64(c, "user_id", 0), id); err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

type collectPhraseRequest struct {
	UserID   int64  `json:"user_id"`
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (h *StudyHandler) CollectPhrase(c *gin.Context) {
	var req collectPhraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	phrase := &entity.StudyPhrase{
		Text:     req.Text,
		Language: entity.ParseLanguage(req.Language),
	}
	collected, err := h.study.CollectPhrase(c.Request.Context(), req.UserID, phrase)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, mapping.FromStudyPhrase(collected))
}

func (h *StudyHandler) ListPhrases(c *gin.Context) {
	query := &repository.ListStudyPhraseQuery{
		Pagination: repository.Pagination{
			PageNo:   queryInt32(c, "page_no", 0),
			PageSize: queryInt32(c, "page_size", 0),
		},
		FilterOrder: repository.FilterOrder{
			Filter:  c.Query("filter"),
			OrderBy: c.Query("order_by"),
		},
		UserID: queryInt64(c, "user_id", 0),
	}
	phrases, total, err := h.study.ListStudyPhrases(c.Request.Context(), query)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{
		"phrases": mapping.FromStudyPhrases(phrases),
		"total":   total,
	})
}

func (h *StudyHandler) DeletePhrase(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.study.DeleteStudyPhrase(c.Request.Context(), queryInt64(c, "user_id", 0), id); err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

type markUnclearRequest struct {
	UserID           int64  `json:"user_id"`
	Choice           string `json:"choice"`
	MaxSimplifyStage int32  `json:"max_simplify_stage"`
}

func (h *StudyHandler) MarkUnclear(c *gin.Context) {
	idx, err := pathInt64(c, "idx")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_sentence_index", err)
		return
	}
	var req markUnclearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	mark := &entity.UnclearSentence{
		UserID:           req.UserID,
		BundleID:         c.Param("id"),
		SentenceIdx:      int(idx),
		Choice:           entity.UnclearChoice(req.Choice),
		MaxSimplifyStage: req.MaxSimplifyStage,
	}
	saved, err := h.study.MarkUnclear(c.Request.Context(), mark)
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, mapping.FromUnclearSentence(saved))
}

func (h *StudyHandler) ClearUnclear(c *gin.Context) {
	idx, err := pathInt64(c, "idx")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_sentence_index", err)
		return
	}
	userID := queryInt64(c, "user_id", 0)
	if err := h.study.ClearUnclear(c.Request.Context(), userID, c.Param("id"), int(idx)); err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

func (h *StudyHandler) ListUnclear(c *gin.Context) {
	userID := queryInt64(c, "user_id", 0)
	marks, err := h.study.UnclearForBundle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondDomainError(c, h.log, err)
		return
	}
	response.RespondOK(c, gin.H{"unclear": marks})
}
