package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
	}

	catalog := router.Group("/catalog")
	{
		catalog.GET("", c.BookHandler.Home)

		setupAuthorRoutes(catalog, c)
		setupGenreRoutes(catalog, c)
		setupBookRoutes(catalog, c)
		setupBookInstanceRoutes(catalog, c)
	}

	return router
}

func setupAuthorRoutes(catalog *gin.RouterGroup, c *container.Container) {
	authors := catalog.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.POST("", c.AuthorHandler.Create)
	}

	author := catalog.Group("/author")
	{
		author.GET("/:id", c.AuthorHandler.GetDetail)
		author.PUT("/:id", c.AuthorHandler.Update)
		author.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

func setupGenreRoutes(catalog *gin.RouterGroup, c *container.Container) {
	genres := catalog.Group("/genres")
	{
		genres.GET("", c.GenreHandler.List)
		genres.POST("", c.GenreHandler.Create)
	}

	genre := catalog.Group("/genre")
	{
		genre.GET("/:id", c.GenreHandler.GetDetail)
		genre.PUT("/:id", c.GenreHandler.Update)
		genre.DELETE("/:id", c.GenreHandler.Delete)
	}
}

func setupBookRoutes(catalog *gin.RouterGroup, c *container.Container) {
	books := catalog.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.POST("", c.BookHandler.Create)
		books.GET("/form-data", c.BookHandler.GetFormData)
	}

	book := catalog.Group("/book")
	{
		book.GET("/:id", c.BookHandler.GetDetail)
		book.GET("/:id/form-data", c.BookHandler.GetFormData)
		book.PUT("/:id", c.BookHandler.Update)
		book.DELETE("/:id", c.BookHandler.Delete)
	}
}

func setupBookInstanceRoutes(catalog *gin.RouterGroup, c *container.Container) {
	instances := catalog.Group("/bookinstances")
	{
		instances.GET("", c.InstanceHandler.List)
		instances.POST("", c.InstanceHandler.Create)
		instances.GET("/form-data", c.InstanceHandler.GetFormData)
	}

	instance := catalog.Group("/bookinstance")
	{
		instance.GET("/:id", c.InstanceHandler.GetDetail)
		instance.GET("/:id/form-data", c.InstanceHandler.GetFormData)
		instance.PUT("/:id", c.InstanceHandler.Update)
		instance.DELETE("/:id", c.InstanceHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Redis degradation never fails the check: caches are best effort.
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

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
