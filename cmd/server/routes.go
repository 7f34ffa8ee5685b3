package main

import (
	"github.com/Bithika-Jain/Project-Exhibition/internal/middleware"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	// Rate limiter for the anonymous auth endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// Public routes
	public := r.Group("", authLimiter.Middleware())
	{
		public.POST("/signup/", svc.authHandler.Signup)
		public.POST("/auth/login", svc.authHandler.Login)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthRequired(), middleware.AuditLog())
	{
		// Session
		protected.GET("/auth/me", svc.authHandler.Me)
		protected.POST("/auth/logout", svc.authHandler.Logout)

		// Students
		protected.GET("/students/", svc.studentHandler.List)
		protected.POST("/students/", svc.studentHandler.Create)
		protected.GET("/students/:id/", svc.studentHandler.Get)
		protected.PATCH("/students/:id/", svc.studentHandler.Update)

		// Faculty
		protected.GET("/faculty/", svc.facultyHandler.List)
		protected.POST("/faculty/", svc.facultyHandler.Create)
		protected.GET("/faculty/:id/", svc.facultyHandler.Get)
		protected.PATCH("/faculty/:id/", svc.facultyHandler.Update)

		// Committees
		protected.GET("/committees/", svc.committeeHandler.List)
		protected.POST("/committees/", svc.committeeHandler.Apply)
		protected.POST("/committees/apply/", svc.committeeHandler.Apply)
		protected.GET("/committees/:id/", svc.committeeHandler.Get)
		protected.PATCH("/committees/:id/", svc.committeeHandler.Update)

		// Projects
		protected.GET("/projects/", svc.projectHandler.List)
		protected.POST("/projects/", svc.projectHandler.Create)
		protected.GET("/projects/my/", svc.projectHandler.My)
		protected.GET("/projects/pending_review/", svc.projectHandler.PendingReview)
		protected.GET("/projects/:id/", svc.projectHandler.GetByID)
		protected.PATCH("/projects/:id/", svc.projectHandler.Update)
		protected.DELETE("/projects/:id/", svc.projectHandler.Delete)
		protected.POST("/projects/:id/approve/", svc.projectHandler.Approve)
		protected.POST("/projects/:id/reject/", svc.projectHandler.Reject)
		protected.GET("/projects/:id/reviews/", svc.projectHandler.Reviews)

		// Applications
		protected.GET("/applications/", svc.applicationHandler.List)
		protected.POST("/applications/", svc.applicationHandler.Create)
		protected.GET("/applications/my/", svc.applicationHandler.My)
		protected.GET("/applications/faculty_applications/", svc.applicationHandler.FacultyApplications)
		protected.GET("/applications/export/", svc.applicationHandler.Export)
		protected.GET("/applications/:id/", svc.applicationHandler.Get)
		protected.DELETE("/applications/:id/", svc.applicationHandler.Withdraw)
		protected.POST("/applications/:id/select/", svc.applicationHandler.Select)
		protected.POST("/applications/:id/reject/", svc.applicationHandler.Reject)
		protected.POST("/applications/:id/shortlist/", svc.applicationHandler.Shortlist)
	}

	// Admin only routes
	admin := r.Group("")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AuditLog())
	{
		admin.POST("/committees/:id/approve/", svc.committeeHandler.Approve)

		admin.GET("/system-logs/", svc.systemLogHandler.List)
		admin.GET("/system-logs/modules/", svc.systemLogHandler.GetModules)
		admin.GET("/system-logs/retention/", svc.systemLogHandler.GetRetention)
		admin.PUT("/system-logs/retention/", svc.systemLogHandler.SetRetention)
		admin.POST("/system-logs/cleanup/", svc.systemLogHandler.Cleanup)
	}
}
