package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/pfm_backend/cmd/docs"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/middleware"
	"github.com/SscSPs/pfm_backend/internal/platform/config"
	"github.com/SscSPs/pfm_backend/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// loginRate throttles login attempts per client IP.
const loginRate = "5-M"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("registering validators: %w", err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter, err := middleware.NewRateLimiter(loginRate)
	if err != nil {
		return fmt.Errorf("login rate limiter: %w", err)
	}
	registerAuthRoutes(r, services.Auth, middleware.StrictRateLimit(loginLimiter))

	if err := setupAPIV1Routes(r, cfg, services, analytics); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) error {
	apiLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("api rate limiter %q: %w", cfg.RateLimit, err)
	}

	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(apiLimiter),
		middleware.PosthogMiddleware(analytics),
	)

	registerUserRoutes(v1, service.User)
	registerBankAccountRoutes(v1, service.BankAccount)
	registerTransactionRoutes(v1, service.Transaction)
	registerBudgetRoutes(v1, service.Budget)
	registerGoalRoutes(v1, service.Goal)
	registerPlannedEventRoutes(v1, service.PlannedEvent)
	registerHoldingRoutes(v1, service.Holding)
	registerCurrencyRateRoutes(v1, service.CurrencyRate, service.Conversion, cfg.DefaultBaseCurrency)
	registerReportingRoutes(v1, service.Reporting, service.Goal)
	registerAIRoutes(v1, service.AI)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
