package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"

	"github.com/SscSPs/team_cfo_backend/internal/notify"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful API calls of authenticated users.
func PosthogMiddleware(posthogClient *notify.PosthogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/teams/:teamID/spend-intents" -> "api_v1_teams_:teamID_spend-intents"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := posthog.NewProperties().
			Set("method", c.Request.Method).
			Set("status_code", c.Writer.Status())
		if teamID := c.Param("teamID"); teamID != "" {
			props.Set("team_id", teamID)
		}

		if err := posthogClient.Enqueue(userID, eventName, props); err != nil {
			GetLoggerFromContext(c).Warn("Failed to enqueue posthog event", "error", err)
		}
	}
}
