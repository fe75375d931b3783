package mapping

import (
	"errors"
	"net/http"

	"github.com/eslsoft/readflow/internal/entity"
)

// HTTPStatus resolves a domain error to the HTTP status and machine-readable
// code the API responds with.
func HTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidBundleID),
		errors.Is(err, entity.ErrInvalidSourceType),
		errors.Is(err, entity.ErrNoRenderableContent),
		errors.Is(err, entity.ErrInvalidStudyWordText),
		errors.Is(err, entity.ErrInvalidStudyPhrase),
		errors.Is(err, entity.ErrInvalidUserID),
		errors.Is(err, entity.ErrInvalidUnclearChoice),
		errors.Is(err, entity.ErrInvalidSentenceIndex):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, entity.ErrBundleNotFound),
		errors.Is(err, entity.ErrStudyWordNotFound),
		errors.Is(err, entity.ErrStudyPhraseNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, entity.ErrDuplicateStudyWord),
		errors.Is(err, entity.ErrDuplicatePhrase):
		return http.StatusConflict, "already_exists"
	case errors.Is(err, entity.ErrNoRenderer):
		return http.StatusUnprocessableEntity, "unsupported_content"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
