package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/readflow/internal/adapter/http/response"
	"github.com/eslsoft/readflow/internal/adapter/mapping"
)

// respondDomainError translates a usecase error into the API error envelope.
// Server-side failures get logged; client mistakes do not.
func respondDomainError(c *gin.Context, log logrus.FieldLogger, err error) {
	status, code := mapping.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.RespondError(c, status, code, err)
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func queryInt(c *gin.Context, key string, fallback int) int {
	return int(queryInt64(c, key, int64(fallback)))
}

func queryInt32(c *gin.Context, key string, fallback int32) int32 {
	return int32(queryInt64(c, key, int64(fallback)))
}

func pathInt64(c *gin.Context, key string) (int64, error) {
	return strconv.ParseInt(c.Param(key), 10, 64)
}
