package main

import (
	"github.com/RadW2020/shogunito/backend/internal/handlers"
	"github.com/RadW2020/shogunito/backend/internal/middleware"
	"github.com/RadW2020/shogunito/backend/internal/models"
	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	db := models.GetDB()
	access := services.NewAccessService(db)

	// Rate limiter for the public auth endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Shared playlist review page (public, token is the capability)
		playlistHandler := handlers.NewPlaylistHandler(db)
		api.GET("/playlists/shared/:token", playlistHandler.GetShared)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)

			// Workflow statuses (read for all users)
			statusHandler := handlers.NewStatusHandler(db)
			protected.GET("/statuses", statusHandler.List)

			// Notifications
			notificationHandler := handlers.NewNotificationHandler(db)
			protected.GET("/notifications", notificationHandler.List)
			protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)

			// The caller's own project grants
			permissionHandler := handlers.NewPermissionHandler(db)
			protected.GET("/permissions/my-projects", permissionHandler.MyProjects)

			// Projects
			projectHandler := handlers.NewProjectHandler(db)
			projects := protected.Group("/projects")
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)

			// Read access inside a project
			viewer := projects.Group("/:id", middleware.RequireProjectRole(access, models.RoleViewer))
			{
				viewer.GET("", projectHandler.GetByID)

				episodeHandler := handlers.NewEpisodeHandler(db)
				viewer.GET("/episodes", episodeHandler.List)
				viewer.GET("/episodes/:episodeID", episodeHandler.GetByID)

				sequenceHandler := handlers.NewSequenceHandler(db)
				viewer.GET("/sequences", sequenceHandler.List)
				viewer.GET("/sequences/:sequenceID", sequenceHandler.GetByID)

				shotHandler := handlers.NewShotHandler(db)
				viewer.GET("/shots", shotHandler.List)
				viewer.GET("/shots/:shotID", shotHandler.GetByID)

				assetHandler := handlers.NewAssetHandler(db)
				viewer.GET("/assets", assetHandler.List)
				viewer.GET("/assets/:assetID", assetHandler.GetByID)

				versionHandler := handlers.NewVersionHandler(db, svc.taskQueue)
				viewer.GET("/versions", versionHandler.List)
				viewer.GET("/versions/:versionID", versionHandler.GetByID)

				noteHandler := handlers.NewNoteHandler(db, svc.taskQueue)
				viewer.GET("/notes", noteHandler.List)

				viewer.GET("/playlists", playlistHandler.List)
				viewer.GET("/playlists/:playlistID", playlistHandler.GetByID)
			}

			// Write access inside a project
			contributor := projects.Group("/:id", middleware.RequireProjectRole(access, models.RoleContributor))
			{
				contributor.PUT("", projectHandler.Update)

				episodeHandler := handlers.NewEpisodeHandler(db)
				contributor.POST("/episodes", episodeHandler.Create)
				contributor.PUT("/episodes/:episodeID", episodeHandler.Update)
				contributor.DELETE("/episodes/:episodeID", episodeHandler.Delete)

				sequenceHandler := handlers.NewSequenceHandler(db)
				contributor.POST("/sequences", sequenceHandler.Create)
				contributor.PUT("/sequences/:sequenceID", sequenceHandler.Update)
				contributor.DELETE("/sequences/:sequenceID", sequenceHandler.Delete)

				shotHandler := handlers.NewShotHandler(db)
				contributor.POST("/shots", shotHandler.Create)
				contributor.PUT("/shots/:shotID", shotHandler.Update)
				contributor.DELETE("/shots/:shotID", shotHandler.Delete)

				assetHandler := handlers.NewAssetHandler(db)
				contributor.POST("/assets", assetHandler.Create)
				contributor.PUT("/assets/:assetID", assetHandler.Update)
				contributor.DELETE("/assets/:assetID", assetHandler.Delete)

				versionHandler := handlers.NewVersionHandler(db, svc.taskQueue)
				contributor.POST("/versions", versionHandler.Create)
				contributor.DELETE("/versions/:versionID", versionHandler.Delete)

				noteHandler := handlers.NewNoteHandler(db, svc.taskQueue)
				contributor.POST("/notes", noteHandler.Create)
				contributor.DELETE("/notes/:noteID", noteHandler.Delete)

				contributor.POST("/playlists", playlistHandler.Create)
				contributor.DELETE("/playlists/:playlistID", playlistHandler.Delete)
				contributor.POST("/playlists/:playlistID/items", playlistHandler.AddItem)
				contributor.DELETE("/playlists/:playlistID/items/:versionID", playlistHandler.RemoveItem)
			}

			// Owner-only operations
			owner := projects.Group("/:id", middleware.RequireProjectRole(access, models.RoleOwner))
			{
				owner.DELETE("", projectHandler.Delete)

				owner.GET("/permissions", permissionHandler.List)
				owner.POST("/permissions", permissionHandler.Grant)
				owner.PATCH("/permissions/:userID", permissionHandler.ChangeRole)
				owner.DELETE("/permissions/:userID", permissionHandler.Revoke)
			}
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
		{
			// Users
			userHandler := handlers.NewUserHandler(db)
			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			// Workflow statuses (write operations)
			statusHandler := handlers.NewStatusHandler(db)
			admin.POST("/statuses", statusHandler.Create)
			admin.PUT("/statuses/:id", statusHandler.Update)
			admin.DELETE("/statuses/:id", statusHandler.Delete)

			// System Logs
			systemLogHandler := handlers.NewSystemLogHandler(db)
			admin.GET("/system-logs", systemLogHandler.List)
			admin.GET("/system-logs/modules", systemLogHandler.GetModules)
			admin.GET("/system-logs/retention", systemLogHandler.GetRetention)
			admin.PUT("/system-logs/retention", systemLogHandler.UpdateRetention)
			admin.POST("/system-logs/cleanup", systemLogHandler.Cleanup)

			// System Config
			systemConfigHandler := handlers.NewSystemConfigHandler(db, svc.dailyDigestService)
			admin.GET("/system-config/digest", systemConfigHandler.GetDigestConfig)
			admin.PUT("/system-config/digest", systemConfigHandler.UpdateDigestConfig)
			admin.GET("/system-config/digest-regions", systemConfigHandler.GetSupportedRegions)
		}
	}
}
