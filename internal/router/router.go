package router

import (
	"github.com/gin-gonic/gin"

	"auditdesk/internal/config"
	"auditdesk/internal/domain"
	"auditdesk/internal/handler"
	"auditdesk/internal/middleware"
	"auditdesk/internal/service"
)

// Handlers bundles every HTTP handler wired into the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Tenant     *handler.TenantHandler
	User       *handler.UserHandler
	Engagement *handler.EngagementHandler
	Review     *handler.ReviewHandler
	Balance    *handler.BalanceHandler
	COA        *handler.COAHandler
	Comment    *handler.CommentHandler
	Issue      *handler.IssueHandler
	Invoice    *handler.InvoiceHandler
	File       *handler.FileHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, authSvc service.AuthService, h Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	// Engagement routes
	engagements := protected.Group("/engagements")
	engagements.POST("", h.Engagement.Create)
	engagements.GET("", h.Engagement.List)
	engagements.GET("/:id", h.Engagement.GetByID)
	engagements.PUT("/:id", h.Engagement.Update)
	engagements.PUT("/:id/team", h.Engagement.UpdateTeam)
	engagements.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Engagement.Delete)

	// Section routes
	engagements.POST("/:id/sections", h.Engagement.CreateSections)
	engagements.GET("/:id/sections", h.Engagement.ListSections)
	engagements.DELETE("/:id/sections/:sectionID", middleware.RequireRole(domain.RoleAdmin), h.Engagement.DeleteSection)

	// Review and sign-off routes
	engagements.GET("/:id/overview", h.Review.Overview)
	engagements.GET("/:id/sections/:sectionID/summary", h.Review.SectionSummary)
	engagements.POST("/:id/sections/:sectionID/review", h.Review.Review)
	engagements.DELETE("/:id/reviews/:reviewID", h.Review.Unreview)
	engagements.POST("/:id/sections/:sectionID/signoff", h.Review.SignOff)
	engagements.DELETE("/:id/sections/:sectionID/signoff", h.Review.RemoveSignOff)

	// Trial balance routes
	engagements.GET("/:id/balances", h.Balance.Get)
	engagements.POST("/:id/balances/imports", h.Balance.Enqueue)
	engagements.GET("/:id/balances/imports", h.Balance.ListImports)
	engagements.GET("/:id/balances/export", h.Balance.ExportCSV)
	protected.POST("/balances/preview", h.Balance.Preview)
	protected.GET("/balances/imports/:importID", h.Balance.GetImport)

	// Chart of accounts routes
	engagements.POST("/:id/accounts/import", h.COA.Import)
	engagements.GET("/:id/accounts", h.COA.List)
	engagements.DELETE("/:id/accounts", middleware.RequireRole(domain.RoleAdmin), h.COA.Delete)

	// Comment routes
	engagements.POST("/:id/comments", h.Comment.Create)
	engagements.GET("/:id/sections/:sectionID/comments", h.Comment.ListBySection)
	engagements.GET("/:id/comments/unresolved", h.Comment.ListUnresolved)
	comments := protected.Group("/comments")
	comments.POST("/:commentID/resolve", h.Comment.Resolve)
	comments.POST("/:commentID/reopen", h.Comment.Reopen)
	comments.DELETE("/:commentID", h.Comment.Delete)

	// Issue board routes
	issues := protected.Group("/issues")
	issues.POST("", h.Issue.Create)
	issues.GET("", h.Issue.List)
	issues.GET("/board", h.Issue.Board)
	issues.GET("/:id", h.Issue.GetByID)
	issues.PUT("/:id", h.Issue.Update)
	issues.POST("/:id/move", h.Issue.Move)
	issues.POST("/:id/sprint", h.Issue.AssignSprint)
	issues.DELETE("/:id", h.Issue.Delete)

	sprints := protected.Group("/sprints")
	sprints.POST("", h.Issue.CreateSprint)
	sprints.GET("", h.Issue.ListSprints)
	sprints.POST("/:id/close", h.Issue.CloseSprint)
	sprints.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Issue.DeleteSprint)

	// Billing routes
	invoices := protected.Group("/invoices")
	invoices.POST("", h.Invoice.CreateInvoice)
	invoices.GET("", h.Invoice.ListInvoices)
	invoices.GET("/:id", h.Invoice.GetInvoice)
	invoices.POST("/:id/send", h.Invoice.SendInvoice)
	invoices.POST("/:id/pay", h.Invoice.MarkInvoicePaid)
	invoices.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Invoice.DeleteInvoice)

	quotes := protected.Group("/quotes")
	quotes.POST("", h.Invoice.CreateQuote)
	quotes.GET("", h.Invoice.ListQuotes)
	quotes.GET("/:id", h.Invoice.GetQuote)
	quotes.POST("/:id/status", h.Invoice.UpdateQuoteStatus)
	quotes.POST("/:id/convert", h.Invoice.ConvertQuote)
	quotes.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Invoice.DeleteQuote)

	// File routes
	files := protected.Group("/files")
	files.POST("/upload", h.File.Upload)
	files.GET("", h.File.List)
	files.GET("/:id", h.File.GetByID)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.File.Delete)

	// User management (tenant-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), h.User.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Update)
	users.PUT("/:id/password", h.User.ChangePassword)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Delete)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", h.Tenant.Create)
	admin.GET("/tenants", h.Tenant.List)
	admin.GET("/tenants/:id", h.Tenant.GetByID)
	admin.PUT("/tenants/:id", h.Tenant.Update)
	admin.DELETE("/tenants/:id", h.Tenant.Delete)

	return r
}
