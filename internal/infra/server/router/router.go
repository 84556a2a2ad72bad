// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/passmeter/backend/internal/infra/metrics"
	"github.com/passmeter/backend/internal/integration/entrypoint/controller"
	"github.com/passmeter/backend/internal/integration/entrypoint/middleware"
	"github.com/passmeter/backend/internal/integration/web"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	userController      *controller.UserController
	strengthController  *controller.StrengthController
	pageController      *controller.PageController
	resetController     *controller.PasswordResetController
	renderer            *web.Renderer
	metrics             *metrics.Metrics
	loginRateLimiter    *middleware.RateLimiter
	strengthRateLimiter *middleware.RateLimiter
	resetRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
// Any controller may be nil; its routes are then not registered.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	strengthController *controller.StrengthController,
	pageController *controller.PageController,
	resetController *controller.PasswordResetController,
	renderer *web.Renderer,
	appMetrics *metrics.Metrics,
	loginRateLimiter *middleware.RateLimiter,
	strengthRateLimiter *middleware.RateLimiter,
	resetRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		userController:      userController,
		strengthController:  strengthController,
		pageController:      pageController,
		resetController:     resetController,
		renderer:            renderer,
		metrics:             appMetrics,
		loginRateLimiter:    loginRateLimiter,
		strengthRateLimiter: strengthRateLimiter,
		resetRateLimiter:    resetRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	if r.metrics != nil {
		r.engine.Use(r.metrics.Middleware())
	}

	// Setup routes
	r.setupHealthRoutes()
	r.setupPageRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	if r.healthController != nil {
		r.engine.GET("/health", r.healthController.Check)
	}
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

// setupPageRoutes configures the sign-up and password reset pages and their static assets.
func (r *Router) setupPageRoutes() {
	if r.renderer == nil || r.pageController == nil {
		return
	}

	r.engine.SetHTMLTemplate(r.renderer.Templates())
	r.engine.StaticFS("/static", http.FS(web.StaticFS()))

	r.engine.GET("/", r.pageController.ShowRegister)
	r.engine.GET("/register", r.pageController.ShowRegister)
	r.engine.POST("/register", r.pageController.SubmitRegister)

	if r.resetController != nil {
		r.engine.GET("/reset-password", r.resetController.ShowResetPassword)
		r.engine.POST("/reset-password", r.resetController.SubmitResetPassword)
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Password reset routes (public; requesting a link is rate limited)
		if r.resetController != nil && r.resetRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/forgot-password", r.resetRateLimiter.Middleware(), r.resetController.ForgotPassword)
				auth.POST("/reset-password", r.resetController.ResetPassword)
			}
		}

		// Password strength routes (public, rate limited)
		if r.strengthController != nil && r.strengthRateLimiter != nil {
			password := v1.Group("/password")
			{
				password.POST("/strength", r.strengthRateLimiter.Middleware(), r.strengthController.Evaluate)
			}
		}

		// User routes (require authentication)
		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.PUT("/me/password", r.userController.ChangePassword)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
