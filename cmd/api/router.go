package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devevent-backend/internal/shared/middleware"
	"devevent-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// multipart form lớn hơn giới hạn này sẽ spill ra temp file
	router.MaxMultipartMemory = c.Config.Upload.MaxImageBytes + 1<<20

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowedOrigins),
	)

	router.GET("/health", healthCheckHandler(c))

	// Home feed tách khỏi /events để không chiếm một slug
	router.GET("/feed", c.EventHandler.ListHomeFeed)

	setupEventRoutes(router, c)
	setupBookingRoutes(router, c)

	return router
}

// ========================================
// EVENT ROUTES
// ========================================
func setupEventRoutes(r *gin.Engine, c *container.Container) {
	events := r.Group("/events")
	{
		events.POST("", c.EventHandler.CreateEvent)
		events.GET("", c.EventHandler.ListEvents)
		events.GET("/:slug", c.EventHandler.GetEvent)
		events.GET("/:slug/similar", c.EventHandler.ListSimilarEvents)
	}
}

// ========================================
// BOOKING ROUTES
// ========================================
func setupBookingRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/bookings", c.BookingHandler.CreateBooking)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis, không có cache vẫn phục vụ được
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		// Check image host
		storageStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Storage.HealthCheck(ctx); err != nil {
				storageStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
			"storage":  storageStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
