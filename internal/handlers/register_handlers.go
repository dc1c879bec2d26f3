package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/karthikkrishnakumar/workfriar-backend/cmd/docs"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/middleware"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/config"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/platform/metrics"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("login rate limit: %w", err)
	}
	registerAuthRoutes(r, cfg, services, loginLimiter)

	setupAPIRoutes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIRoutes configures the authenticated /api groups.
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api", middleware.AuthMiddleware(middleware.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		CookieName: cfg.AuthCookieName,
	}))

	admin := api.Group("/admin")
	RegisterApprovalRoutes(admin, services.Approval)
	RegisterReportRoutes(admin, services.Report, services.Timesheet)
	RegisterRoleRoutes(admin, services.Role)
	RegisterCatalogRoutes(admin, services.Category, services.Subscription)
	RegisterProjectTeamRoutes(admin, services.ProjectTeam)

	user := api.Group("/user")
	RegisterUserRoutes(user, services)
	RegisterCategoryReadRoutes(user, services.Category)

	RegisterProjectRoutes(api.Group("/project"), services.Project)
	RegisterStatusReportRoutes(api.Group("/project-status-report"), services.StatusReport)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
