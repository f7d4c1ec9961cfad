package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/team_cfo_backend/cmd/docs"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/middleware"
	"github.com/SscSPs/team_cfo_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", getHealth)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	RegisterTeamRoutes(v1, services)

	setupSwaggerRoutes(r, cfg)
}

// RegisterTeamRoutes mounts every team-scoped route under /teams/:teamID.
// Membership and role checks happen in the services.
func RegisterTeamRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	team := rg.Group("/teams/:teamID")

	registerSpendIntentRoutes(team, services.SpendIntent, services.Approval)
	registerSigningAuthorityRoutes(team, services.Team)
	registerTransactionRoutes(team, services.Transaction)
	registerBankFeedRoutes(team, services.BankFeed, services.Reconciliation)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
