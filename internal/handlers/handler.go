package handlers

import (
	"github.com/vskc23/user-profile-integration/internal/logger"
	"github.com/vskc23/user-profile-integration/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		// Unauthenticated: registration and token sign-in
		api.POST("/register", h.register)
		api.POST("/token", h.signIn)

		// Profile and image routes require verified credentials
		users := api.Group("/users", h.authMiddleware)
		{
			users.GET("/:username", h.getProfile)
			users.POST("/:username/images", h.uploadImage)
			users.DELETE("/:username/images/:imageId", h.deleteImage)
		}
	}

	return router
}
