package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/memorywall/api/internal/container"
	"github.com/memorywall/api/internal/handlers"
	"github.com/memorywall/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID", "x-host-id", "x-user-id", "x-admin-passcode"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(middleware.CallerContext(container.Config.AdminPasscode, container.Config.DefaultHostID))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"ok":      true,
				"service": "memory-wall-api",
				"time":    time.Now().UTC().Format(time.RFC3339),
			})
		})

		v1.POST("/hooks/blob-created", handlers.BlobCreatedHook(container.Logger))
	}

	eventRoutes := v1.Group("/events")
	{
		eventRoutes.GET("", handlers.ListEvents(container.EventService))
		eventRoutes.POST("", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/:eventId", handlers.GetEvent(container.EventService))
		eventRoutes.PATCH("/:eventId", handlers.PatchEvent(container.EventService))
		eventRoutes.DELETE("/:eventId", handlers.DeleteEvent(container.EventService))

		eventRoutes.POST("/:eventId/members", handlers.AddMembers(container.EventService))
		eventRoutes.DELETE("/:eventId/members/:memberId", handlers.RemoveMember(container.EventService))

		eventRoutes.POST("/:eventId/media/sas", handlers.SignUpload(container.MediaService))
		eventRoutes.GET("/:eventId/media", handlers.ListMedia(container.MediaService))
		eventRoutes.POST("/:eventId/media", handlers.CreateMedia(container.MediaService))
		eventRoutes.DELETE("/:eventId/media/:mediaId", handlers.DeleteMedia(container.MediaService))
		eventRoutes.GET("/:eventId/media/:mediaId/sas", handlers.SignRead(container.MediaService))

		eventRoutes.GET("/:eventId/download", handlers.DownloadArchive(container.ArchiveService, container.Logger))
	}

	return r
}
