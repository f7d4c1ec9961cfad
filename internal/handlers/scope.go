package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/team_cfo_backend/internal/dto"
	"github.com/SscSPs/team_cfo_backend/internal/middleware"
)

// teamScope extracts the caller and the team from a request under /teams/:teamID.
// It writes the 401 itself when the caller is missing.
func teamScope(c *gin.Context) (logger *slog.Logger, userID, teamID string, ok bool) {
	logger = middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return logger, "", "", false
	}
	teamID = c.Param("teamID")
	logger = logger.With(slog.String("team_id", teamID))
	return logger, userID, teamID, true
}
