package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"eduresource-api/internal/models"
	"eduresource-api/internal/shared/middleware"
	"eduresource-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	router.GET("/health", healthCheckHandler(c))

	authenticated := middleware.Authenticate(c.JWTManager)
	userOnly := middleware.RequireRole(models.RoleUser)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	setupAuthRoutes(router, c, authenticated, adminOnly)

	api := router.Group("", authenticated, userOnly)
	setupAuthorRoutes(api, c, adminOnly)
	setupCategoryRoutes(api, c, adminOnly)
	setupMaterialRoutes(api, c, adminOnly)
	setupReviewRoutes(api, c, adminOnly)

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container, authenticated, adminOnly gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/register/admin", authenticated, adminOnly, c.AuthHandler.RegisterAdmin)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container, adminOnly gin.HandlerFunc) {
	authors := api.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.GetAll)
		authors.GET("/:authorId", c.AuthorHandler.GetByID)
		authors.POST("", adminOnly, c.AuthorHandler.Create)
		authors.PUT("/:authorId", adminOnly, c.AuthorHandler.Update)
		authors.DELETE("/:authorId", adminOnly, c.AuthorHandler.Delete)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(api *gin.RouterGroup, c *container.Container, adminOnly gin.HandlerFunc) {
	categories := api.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.GetAll)
		categories.GET("/:categoryId", c.CategoryHandler.GetByID)
		categories.POST("", adminOnly, c.CategoryHandler.Create)
		categories.PUT("/:categoryId", adminOnly, c.CategoryHandler.Update)
		categories.DELETE("/:categoryId", adminOnly, c.CategoryHandler.Delete)
	}
}

// ========================================
// MATERIAL ROUTES
// ========================================
func setupMaterialRoutes(api *gin.RouterGroup, c *container.Container, adminOnly gin.HandlerFunc) {
	materials := api.Group("/materials")
	{
		materials.GET("", c.MaterialHandler.GetAll)
		materials.GET("/category/:categoryId", c.MaterialHandler.GetByCategory)
		materials.GET("/category/:categoryId/sortByDate", c.MaterialHandler.GetByCategorySorted)
		materials.GET("/:materialId", c.MaterialHandler.GetByID)
		materials.POST("", adminOnly, c.MaterialHandler.Create)
		materials.PUT("/:materialId", adminOnly, c.MaterialHandler.Update)
		materials.PATCH("/:materialId", adminOnly, c.MaterialHandler.Patch)
		materials.DELETE("/:materialId", adminOnly, c.MaterialHandler.Delete)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(api *gin.RouterGroup, c *container.Container, adminOnly gin.HandlerFunc) {
	reviews := api.Group("/materials/:materialId/reviews")
	{
		reviews.GET("", c.ReviewHandler.GetAll)
		reviews.GET("/:reviewId", c.ReviewHandler.GetByID)
		reviews.POST("", c.ReviewHandler.Create)
		reviews.PUT("/:reviewId", c.ReviewHandler.Update)
		reviews.DELETE("/:reviewId", adminOnly, c.ReviewHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":   "ok",
			"database": "ok",
			"version":  appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		statusCode := http.StatusOK
		if err := appCtx.Store.DB().PingContext(ctx); err != nil {
			log.Error().Err(err).Msg("Health check: database ping failed")
			health["status"] = "degraded"
			health["database"] = "error"
			statusCode = http.StatusServiceUnavailable
		}

		if appCtx.DB != nil {
			if stats := appCtx.DB.PoolStats(); stats != nil {
				health["pool"] = stats
			}
		}

		c.JSON(statusCode, health)
	}
}
