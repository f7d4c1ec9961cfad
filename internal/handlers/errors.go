package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// respondError maps a service error to a status code and a message the user can act on.
// fallback is returned for failures the user cannot fix.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := http.StatusInternalServerError
	body := dto.ErrorResponse{Error: fallback}

	var fields apperrors.ValidationErrors
	switch {
	case errors.As(err, &fields):
		status = http.StatusUnprocessableEntity
		body.Error = "the request is invalid"
		body.Fields = fields
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusUnprocessableEntity
		body.Error = apperrors.UserMessage(err, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		body.Error = apperrors.UserMessage(err, "not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Error = "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		body.Error = apperrors.UserMessage(err, "you are not allowed to do this in this team")
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
		body.Error = apperrors.UserMessage(err, "the request conflicts with the current state")
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, body)
}

// respondBindError reports a malformed body or query. Validator failures are listed per field.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{
				Field:   lowerFirst(fe.Field()),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request", Fields: fields})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
