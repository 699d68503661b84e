package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/server/http/handlers"
	"github.com/polkiloo/orderdesk/internal/server/http/middleware"
)

const streamPath = "/api/admin/orders/stream"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.AdminFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(middleware.CompressResponse(streamPath))
	engine.SetHTMLTemplate(handlers.PageTemplate())

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade, facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	admin := api.Group("/admin")
	admin.POST("/login", authHandler.Login)
	admin.POST("/logout", authHandler.Logout)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(facade))
	adminAuth.GET("/me", authHandler.Me)
	adminAuth.GET("/orders", orderHandler.Board)
	adminAuth.GET("/orders/stream", orderHandler.Stream)
	adminAuth.POST("/orders/:id/deliver", orderHandler.Deliver)

	page := engine.Group("/admin")
	page.Use(middleware.AuthRequired(facade))
	page.GET("", orderHandler.Page)

	return engine
}
