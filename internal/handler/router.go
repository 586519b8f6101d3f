package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cicd-demo/board-service/internal/platform/middleware"
)

// NewRouter builds the gin engine with the global middleware stack and all
// routes mounted under /api.
func NewRouter(log *zap.Logger, allowedOrigin string, messages *MessageHandler, routes *RouteHandler) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(allowedOrigin))
	router.Use(middleware.SecurityHeadersMiddleware())

	api := router.Group("/api")
	messages.RegisterRoutes(api)
	if routes != nil {
		routes.RegisterRoutes(api)
	}
	return router
}
