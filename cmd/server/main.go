package main

import (
	"community_justice_go/config"
	"community_justice_go/db"
	"community_justice_go/handlers"
	"community_justice_go/middleware"
	"community_justice_go/models"
	"community_justice_go/services"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Session{},
		&models.Case{},
		&models.AuditLog{},
		&models.PlatformSettings{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize branding storage (R2 when configured, local otherwise)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/register", handlers.RegisterHandler)
	e.POST("/api/login", handlers.LoginHandler)
	e.GET("/api/settings/image/:field", handlers.ServeSettingsImageHandler)

	// Protected routes (valid session plus an approved role)
	protected := e.Group("/api")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/me", handlers.GetCurrentUserHandler)

		approved := protected.Group("")
		approved.Use(middleware.RequireApproved())
		approved.Use(middleware.AuditActor())
		{
			// Judge case registry
			caseRoutes := approved.Group("/cases")
			{
				caseRoutes.POST("", handlers.CreateCaseHandler,
					middleware.RequirePermission(middleware.ActionRegisterCase))
				caseRoutes.GET("", handlers.ListMyCasesHandler,
					middleware.RequirePermission(middleware.ActionViewOwnCases))
				caseRoutes.GET("/:id", handlers.GetCaseHandler,
					middleware.RequirePermission(middleware.ActionViewOwnCases))
				caseRoutes.PUT("/:id/status", handlers.UpdateCaseStatusHandler,
					middleware.RequirePermission(middleware.ActionProgressCase))
				caseRoutes.POST("/:id/extension", handlers.RequestExtensionHandler,
					middleware.RequirePermission(middleware.ActionProgressCase))
				caseRoutes.GET("/:id/record.pdf", handlers.CaseRecordPDFHandler,
					middleware.RequirePermission(middleware.ActionViewOwnCases))
			}

			// Administrator surface
			adminRoutes := approved.Group("/admin")
			{
				adminRoutes.GET("/users/pending", handlers.ListPendingUsersHandler,
					middleware.RequirePermission(middleware.ActionApproveUsers))
				adminRoutes.POST("/users/:id/approve", handlers.ApproveUserHandler,
					middleware.RequirePermission(middleware.ActionApproveUsers))
				adminRoutes.POST("/users/:id/reject", handlers.RejectUserHandler,
					middleware.RequirePermission(middleware.ActionApproveUsers))

				adminRoutes.GET("/cases", handlers.ListCasesHandler,
					middleware.RequirePermission(middleware.ActionViewAllCases))
				adminRoutes.GET("/cases/:id", handlers.AdminGetCaseHandler,
					middleware.RequirePermission(middleware.ActionViewAllCases))
				adminRoutes.PUT("/cases/:id", handlers.EditCaseHandler,
					middleware.RequirePermission(middleware.ActionEditAnyCase))
				adminRoutes.PUT("/cases/:id/status", handlers.AdminCaseStatusHandler,
					middleware.RequirePermission(middleware.ActionEditAnyCase))
				adminRoutes.DELETE("/cases/:id", handlers.DeleteCaseHandler,
					middleware.RequirePermission(middleware.ActionDeleteCase))
				adminRoutes.GET("/cases/:id/record.pdf", handlers.CaseRecordPDFHandler,
					middleware.RequirePermission(middleware.ActionViewAllCases))

				adminRoutes.GET("/stats", handlers.StatsHandler,
					middleware.RequirePermission(middleware.ActionViewStats))

				adminRoutes.GET("/export/csv", handlers.ExportCasesCSVHandler,
					middleware.RequirePermission(middleware.ActionExportCases))
				adminRoutes.GET("/export/xlsx", handlers.ExportCasesXLSXHandler,
					middleware.RequirePermission(middleware.ActionExportCases))

				adminRoutes.GET("/audit-logs", handlers.ListAuditLogsHandler,
					middleware.RequirePermission(middleware.ActionViewAuditLog))
				adminRoutes.GET("/audit-logs/case/:caseNumber", handlers.CaseAuditHistoryHandler,
					middleware.RequirePermission(middleware.ActionViewAuditLog))

				adminRoutes.GET("/settings", handlers.GetSettingsHandler,
					middleware.RequirePermission(middleware.ActionManageSettings))
				adminRoutes.PUT("/settings", handlers.UpdateSettingsHandler,
					middleware.RequirePermission(middleware.ActionManageSettings))
				adminRoutes.POST("/settings/image/:field", handlers.UploadSettingsImageHandler,
					middleware.RequirePermission(middleware.ActionManageSettings))
			}
		}
	}

	// Start background cleanup jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
