// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/passmeter/backend/config"
	"github.com/passmeter/backend/internal/application/usecase/auth"
	"github.com/passmeter/backend/internal/application/usecase/strength"
	"github.com/passmeter/backend/internal/domain/valueobject"
	"github.com/passmeter/backend/internal/infra/cache"
	"github.com/passmeter/backend/internal/infra/metrics"
	"github.com/passmeter/backend/internal/infra/server/router"
	"github.com/passmeter/backend/internal/integration/adapters"
	"github.com/passmeter/backend/internal/integration/email"
	"github.com/passmeter/backend/internal/integration/entrypoint/controller"
	"github.com/passmeter/backend/internal/integration/entrypoint/middleware"
	"github.com/passmeter/backend/internal/integration/persistence"
	"github.com/passmeter/backend/internal/integration/web"
	"github.com/passmeter/backend/internal/integration/worker"
)

// Injector holds all application dependencies.
type Injector struct {
	Config              *config.Config
	DB                  *gorm.DB
	Redis               *redis.Client
	Router              *router.Router
	Metrics             *metrics.Metrics
	TokenCleanupWorker  *worker.TokenCleanupWorker
	EmailWorker         *email.Worker
	LoginRateLimiter    *middleware.RateLimiter
	StrengthRateLimiter *middleware.RateLimiter
	ResetRateLimiter    *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case rate limits are kept in memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	minStrength, err := valueobject.ParseStrengthLabel(cfg.Password.MinStrength)
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_MIN_STRENGTH: %w", err)
	}

	// Create adapters/services
	appMetrics := metrics.New()
	passwordService := adapters.NewPasswordService(minStrength)
	estimator := adapters.NewStrengthEstimator()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo, cfg.Password.ResetTokenExpiry)

	// Create email services
	emailService := email.NewService(emailQueueRepo)
	emailRenderer, err := email.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailWorker := email.NewWorker(
		emailQueueRepo,
		email.NewSender(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail),
		emailRenderer,
		email.WorkerConfig{PollInterval: cfg.Email.PollInterval, BatchSize: cfg.Email.BatchSize},
	)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	changePasswordUseCase := auth.NewChangePasswordUseCase(userRepo, passwordService, tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)

	// Create strength use cases
	evaluateUseCase := strength.NewEvaluatePasswordUseCase(passwordService, estimator, appMetrics)

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Create controllers
	healthController := controller.NewHealthController(
		func(ctx context.Context) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(ctx) == nil
		},
		redisHealthChecker(redisClient),
	)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(changePasswordUseCase)
	strengthController := controller.NewStrengthController(evaluateUseCase)
	pageController := controller.NewPageController(registerUseCase, evaluateUseCase)
	resetController := controller.NewPasswordResetController(forgotPasswordUseCase, resetPasswordUseCase, evaluateUseCase)

	// Create middleware
	var store middleware.RateLimitStore
	if redisClient != nil {
		store = middleware.NewRedisStore(redisClient)
	}
	loginMaxAttempts := cfg.RateLimit.LoginMaxAttempts
	strengthMaxAttempts := cfg.RateLimit.StrengthMaxAttempts
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginMaxAttempts = 1000
		strengthMaxAttempts = 1000
	}
	loginRateLimiter := middleware.NewRateLimiterWithConfig("login", store, loginMaxAttempts, cfg.RateLimit.Window)
	strengthRateLimiter := middleware.NewRateLimiterWithConfig("strength", store, strengthMaxAttempts, cfg.RateLimit.Window)
	resetRateLimiter := middleware.NewRateLimiterWithConfig("password_reset", store, loginMaxAttempts, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		strengthController,
		pageController,
		resetController,
		renderer,
		appMetrics,
		loginRateLimiter,
		strengthRateLimiter,
		resetRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:              cfg,
		DB:                  db,
		Redis:               redisClient,
		Router:              r,
		Metrics:             appMetrics,
		TokenCleanupWorker:  worker.NewTokenCleanupWorker(tokenRepo, cfg.JWT.TokenCleanupInterval),
		EmailWorker:         emailWorker,
		LoginRateLimiter:    loginRateLimiter,
		StrengthRateLimiter: strengthRateLimiter,
		ResetRateLimiter:    resetRateLimiter,
	}, nil
}

func redisHealthChecker(client *redis.Client) controller.HealthChecker {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) bool {
		return cache.HealthCheck(ctx, client)
	}
}
