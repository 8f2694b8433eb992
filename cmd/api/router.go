package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"personas-api/internal/shared/middleware"
	"personas-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	persons := router.Group("/persons")
	{
		persons.POST("", c.PersonaHandler.Create)
		persons.GET("", c.PersonaHandler.List)
		persons.GET("/:id", c.PersonaHandler.GetByID)
		persons.PUT("/:id", c.PersonaHandler.Update)
		persons.DELETE("/:id", c.PersonaHandler.Delete)
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		statusCode := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.Ping(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		health["services"] = gin.H{"database": dbStatus}

		c.JSON(statusCode, health)
	}
}
