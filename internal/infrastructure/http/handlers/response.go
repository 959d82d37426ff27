// Package handlers provides the gin handlers of the public REST API
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/middleware"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

const msgInvalidBody = "Invalid request body"

// respondError writes the error envelope. Errors that are not AppErrors are
// logged and reported as internal.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(err, "")
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, apperrors.ToErrorResponse(appErr, middleware.GetRequestID(c)))
}

// bindJSON decodes the body into target, writing a 400 on failure
func bindJSON(c *gin.Context, logger *zap.Logger, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		respondError(c, logger, apperrors.NewBadRequestError(msgInvalidBody).WithCause(err))
		return false
	}
	return true
}

// language reads an optional language, from the body value when given or
// the lang query parameter otherwise. Unknown codes are a 400.
func language(c *gin.Context, logger *zap.Logger, fromBody shared.Language) (shared.Language, bool) {
	raw := string(fromBody)
	if raw == "" {
		raw = c.Query("lang")
	}
	lang, err := shared.ParseLanguage(raw)
	if err != nil {
		respondError(c, logger, apperrors.NewValidationError(err.Error()).WithMetadata("language", raw))
		return "", false
	}
	return lang, true
}
